package services

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"study-planner-api/models"
)

// icsTimeLayout is the UTC basic format used for DTSTART/DTEND.
const icsTimeLayout = "20060102T150405Z"

const icsProdID = "-//Study Planner//Study Schedule//EN"

// CalendarEvent is a VEVENT read back from an iCalendar document.
type CalendarEvent struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// BuildICS renders sessions as an iCalendar document.
func BuildICS(sessions []models.ScheduleSession) string {
	var b strings.Builder
	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("CALSCALE:GREGORIAN")
	writeLine("PRODID:" + icsProdID)

	stamp := time.Now().UTC().Format(icsTimeLayout)
	for _, s := range sessions {
		description := s.Description
		if description == "" {
			description = "Study session"
		}
		writeLine("BEGIN:VEVENT")
		if s.ID != "" {
			writeLine("UID:" + escapeText(s.ID))
		}
		writeLine("DTSTAMP:" + stamp)
		writeLine("SUMMARY:" + escapeText(s.Title))
		writeLine("DTSTART:" + s.Start.UTC().Format(icsTimeLayout))
		writeLine("DTEND:" + s.End.UTC().Format(icsTimeLayout))
		writeLine("DESCRIPTION:" + escapeText(description))
		writeLine("END:VEVENT")
	}

	b.WriteString("END:VCALENDAR")
	return b.String()
}

// ParseICS reads the events of a document written by BuildICS.
func ParseICS(doc string) ([]CalendarEvent, error) {
	var (
		events  []CalendarEvent
		current *CalendarEvent
	)

	scanner := bufio.NewScanner(strings.NewReader(doc))
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		switch {
		case line == "BEGIN:VEVENT":
			current = &CalendarEvent{}
			continue
		case line == "END:VEVENT":
			if current == nil {
				return nil, fmt.Errorf("line %d: END:VEVENT without BEGIN", lineNo)
			}
			events = append(events, *current)
			current = nil
			continue
		case current == nil:
			continue
		}

		var err error
		switch name {
		case "UID":
			current.UID = unescapeText(value)
		case "SUMMARY":
			current.Summary = unescapeText(value)
		case "DESCRIPTION":
			current.Description = unescapeText(value)
		case "DTSTART":
			current.Start, err = time.Parse(icsTimeLayout, value)
		case "DTEND":
			current.End, err = time.Parse(icsTimeLayout, value)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read calendar: %w", err)
	}
	if current != nil {
		return nil, fmt.Errorf("unterminated VEVENT")
	}
	return events, nil
}

var (
	icsEscaper   = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r\n", `\n`, "\n", `\n`)
	icsUnescaper = strings.NewReplacer(`\\`, `\`, `\;`, ";", `\,`, ",", `\n`, "\n", `\N`, "\n")
)

func escapeText(s string) string {
	return icsEscaper.Replace(s)
}

func unescapeText(s string) string {
	return icsUnescaper.Replace(s)
}
