package services

import (
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"study-planner-api/models"
)

// SubjectImporter reads subject lists from spreadsheets.
type SubjectImporter struct{}

func NewSubjectImporter() *SubjectImporter {
	return &SubjectImporter{}
}

type subjectColumns struct {
	id, name, difficulty, examDate, weeklyHours, topics int
}

// ParseSubjects reads the first sheet of an xlsx workbook. The first row is
// the header; rows without a name are skipped.
func (s *SubjectImporter) ParseSubjects(file io.Reader) ([]models.Subject, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	cols := s.findColumns(rows[0])
	if cols.name < 0 {
		return nil, fmt.Errorf("header row has no name column: %v", rows[0])
	}

	subjects := make([]models.Subject, 0, len(rows)-1)
	for i, row := range rows[1:] {
		name := cell(row, cols.name)
		if name == "" {
			continue
		}

		subject := models.Subject{
			ID:          cell(row, cols.id),
			Name:        name,
			Difficulty:  s.parseDifficulty(cell(row, cols.difficulty)),
			ExamDate:    s.parseExamDate(cell(row, cols.examDate)),
			WeeklyHours: s.parseHours(cell(row, cols.weeklyHours), i+2),
			Topics:      s.parseTopics(cell(row, cols.topics)),
		}
		if subject.ID == "" {
			subject.ID = fmt.Sprintf("subject-%d", len(subjects)+1)
		}
		subjects = append(subjects, subject)
	}

	log.Printf("Imported %d subjects from sheet %s", len(subjects), sheets[0])
	return subjects, nil
}

func (s *SubjectImporter) findColumns(header []string) subjectColumns {
	cols := subjectColumns{-1, -1, -1, -1, -1, -1}
	for i, raw := range header {
		switch strings.ReplaceAll(strings.ToLower(cleanValue(raw)), "_", " ") {
		case "id":
			cols.id = i
		case "name", "subject":
			cols.name = i
		case "difficulty":
			cols.difficulty = i
		case "exam date", "examdate":
			cols.examDate = i
		case "weekly hours", "weeklyhours":
			cols.weeklyHours = i
		case "topics":
			cols.topics = i
		}
	}
	return cols
}

func (s *SubjectImporter) parseDifficulty(value string) models.Difficulty {
	if value == "" {
		return models.Difficulty{}
	}
	if level, err := strconv.ParseFloat(value, 64); err == nil {
		return models.DifficultyFromLevel(int(math.Round(level)))
	}
	return models.DifficultyFromLabel(value)
}

var examDateLayouts = []string{"2006-01-02", "02.01.2006", "01/02/2006"}

// parseExamDate normalises known layouts to YYYY-MM-DD. Anything else is
// kept as written.
func (s *SubjectImporter) parseExamDate(value string) string {
	for _, layout := range examDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return value
}

func (s *SubjectImporter) parseHours(value string, line int) float64 {
	if value == "" {
		return 0
	}
	hours, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
	if err != nil || hours < 0 {
		log.Printf("Row %d: ignoring weekly hours %q", line, value)
		return 0
	}
	return hours
}

func (s *SubjectImporter) parseTopics(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ';' })
	topics := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			topics = append(topics, p)
		}
	}
	return topics
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return cleanValue(row[col])
}

// cleanValue strips whitespace and ="text" formula wrappers.
func cleanValue(value string) string {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "=") {
		value = strings.TrimPrefix(value, "=")
		value = strings.Trim(value, "\"")
	}
	return strings.TrimSpace(value)
}
