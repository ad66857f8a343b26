package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"study-planner-api/models"
)

const (
	sessionKey     = "study_session"
	statsKey       = "study_stats"
	DefaultSubject = "general"
)

// StudyTimer tracks open study sessions and accumulated minutes per client.
type StudyTimer struct {
	store Store
}

func NewStudyTimer(store Store) *StudyTimer {
	return &StudyTimer{store: store}
}

// Start opens a session for subject, replacing any running one.
func (t *StudyTimer) Start(ctx context.Context, clientID, subject string, now time.Time) (models.RunningSession, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = DefaultSubject
	}
	running := models.RunningSession{StartAt: now, Subject: subject}
	if err := t.store.Set(ctx, ClientKey(clientID, sessionKey), running); err != nil {
		return models.RunningSession{}, fmt.Errorf("failed to save study session: %w", err)
	}
	return running, nil
}

// Stop closes the running session and adds its rounded minutes to the
// client's stats. Without a running session it reports 0 minutes.
func (t *StudyTimer) Stop(ctx context.Context, clientID string, now time.Time) (int, models.StudyStats, error) {
	key := ClientKey(clientID, sessionKey)

	var running models.RunningSession
	found, err := t.store.Get(ctx, key, &running)
	if err != nil {
		return 0, models.StudyStats{}, fmt.Errorf("failed to read study session: %w", err)
	}
	if !found {
		stats, err := t.Stats(ctx, clientID)
		return 0, stats, err
	}

	elapsed := now.Sub(running.StartAt)
	if elapsed < 0 {
		elapsed = 0
	}
	minutes := int(math.Round(elapsed.Minutes()))

	stats, err := t.Stats(ctx, clientID)
	if err != nil {
		return 0, models.StudyStats{}, err
	}
	stats.TotalMinutes += minutes
	stats.PerSubject[running.Subject] += minutes

	if err := t.store.Set(ctx, ClientKey(clientID, statsKey), stats); err != nil {
		return 0, models.StudyStats{}, fmt.Errorf("failed to save study stats: %w", err)
	}
	if err := t.store.Remove(ctx, key); err != nil {
		return 0, models.StudyStats{}, fmt.Errorf("failed to clear study session: %w", err)
	}
	return minutes, stats, nil
}

// RecordedStats is Stats with unreadable values treated as no history.
func (t *StudyTimer) RecordedStats(ctx context.Context, clientID string) models.StudyStats {
	stats := GetOr(ctx, t.store, ClientKey(clientID, statsKey), models.StudyStats{})
	if stats.PerSubject == nil {
		stats.PerSubject = make(map[string]int)
	}
	return stats
}

// Stats returns accumulated minutes, zero when nothing was recorded yet.
func (t *StudyTimer) Stats(ctx context.Context, clientID string) (models.StudyStats, error) {
	var stats models.StudyStats
	if _, err := t.store.Get(ctx, ClientKey(clientID, statsKey), &stats); err != nil {
		return models.StudyStats{}, fmt.Errorf("failed to read study stats: %w", err)
	}
	if stats.PerSubject == nil {
		stats.PerSubject = make(map[string]int)
	}
	return stats, nil
}
