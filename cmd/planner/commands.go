package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"study-planner-api/models"
	"study-planner-api/planner"
	"study-planner-api/services"
)

// plannerInput is the JSON read with --file.
type plannerInput struct {
	Subjects    []models.Subject        `json:"subjects"`
	Preferences models.StudyPreferences `json:"preferences"`
	Stats       models.StudyStats       `json:"stats"`
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "planner",
		Short:        "Offline study schedule and goal generator",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringP("file", "f", "", "input JSON with subjects, preferences and stats (- for stdin)")
	root.PersistentFlags().String("now", "", "planning time as RFC3339 (default current time)")
	root.PersistentFlags().String("tz", "", "IANA timezone for planning (default local)")
	_ = root.MarkPersistentFlagRequired("file")

	root.AddCommand(newScheduleCmd())
	root.AddCommand(newGoalsCmd())
	return root
}

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print a seven-day study schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, now, err := loadInput(cmd)
			if err != nil {
				return err
			}
			sessions := planner.GenerateSchedule(input.Subjects, input.Preferences, now)

			if ics, _ := cmd.Flags().GetBool("ics"); ics {
				_, err := io.WriteString(cmd.OutOrStdout(), services.BuildICS(sessions))
				return err
			}
			return writeJSON(cmd.OutOrStdout(), models.GenerateScheduleResponse{
				Sessions: sessions,
				Stats:    planner.Summarize(sessions),
			})
		},
	}
	cmd.Flags().Bool("ics", false, "print an iCalendar document instead of JSON")
	return cmd
}

func newGoalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goals",
		Short: "Print today's mini goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, now, err := loadInput(cmd)
			if err != nil {
				return err
			}
			goals := planner.ComposeGoals(input.Subjects, input.Preferences, input.Stats, now)
			return writeJSON(cmd.OutOrStdout(), map[string]any{"goals": goals})
		},
	}
}

func loadInput(cmd *cobra.Command) (plannerInput, time.Time, error) {
	var input plannerInput

	path, _ := cmd.Flags().GetString("file")
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return input, time.Time{}, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return input, time.Time{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	now, err := resolveNow(cmd)
	return input, now, err
}

func resolveNow(cmd *cobra.Command) (time.Time, error) {
	loc := time.Local
	if tz, _ := cmd.Flags().GetString("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return time.Time{}, fmt.Errorf("unknown timezone %q: %w", tz, err)
		}
		loc = l
	}

	raw, _ := cmd.Flags().GetString("now")
	if raw == "" {
		return time.Now().In(loc), nil
	}
	now, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now: %w", err)
	}
	return now.In(loc), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
