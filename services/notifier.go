package services

import (
	"log"
	"sort"
	"sync"
	"time"

	"study-planner-api/models"
)

// Sink delivers a due notification.
type Sink interface {
	Deliver(n models.Notification)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(n models.Notification)

func (f SinkFunc) Deliver(n models.Notification) { f(n) }

// LogSink writes notifications to the process log.
type LogSink struct{}

func (LogSink) Deliver(n models.Notification) {
	log.Printf("notification %s: %s - %s", n.ID, n.Title, n.Body)
}

type pendingNotification struct {
	notification models.Notification
	timer        *time.Timer
}

// Notifier fires one-shot notifications at or after their time.
type Notifier struct {
	mu      sync.Mutex
	sink    Sink
	pending map[string]*pendingNotification
}

func NewNotifier(sink Sink) *Notifier {
	if sink == nil {
		sink = LogSink{}
	}
	return &Notifier{
		sink:    sink,
		pending: make(map[string]*pendingNotification),
	}
}

// Schedule arms n relative to now. Past or present times fire straight
// away. Scheduling an ID again replaces the earlier timer.
func (n *Notifier) Schedule(notification models.Notification, now time.Time) {
	n.Cancel(notification.ID)

	delay := notification.When.Sub(now)
	if delay <= 0 {
		n.sink.Deliver(notification)
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	entry := &pendingNotification{notification: notification}
	entry.timer = time.AfterFunc(delay, func() {
		n.mu.Lock()
		current, ok := n.pending[notification.ID]
		if ok && current == entry {
			delete(n.pending, notification.ID)
		}
		n.mu.Unlock()
		if ok && current == entry {
			n.sink.Deliver(notification)
		}
	})
	n.pending[notification.ID] = entry
}

// Cancel stops a pending notification and reports whether one was pending.
func (n *Notifier) Cancel(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	entry, ok := n.pending[id]
	if !ok {
		return false
	}
	entry.timer.Stop()
	delete(n.pending, id)
	return true
}

// Pending lists notifications that have not fired, soonest first.
func (n *Notifier) Pending() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]models.Notification, 0, len(n.pending))
	for _, entry := range n.pending {
		out = append(out, entry.notification)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].When.Equal(out[j].When) {
			return out[i].ID < out[j].ID
		}
		return out[i].When.Before(out[j].When)
	})
	return out
}

// Stop cancels everything pending.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id, entry := range n.pending {
		entry.timer.Stop()
		delete(n.pending, id)
	}
}

var windowHours = map[string]int{
	"morning":   7,
	"afternoon": 14,
	"evening":   18,
	"night":     21,
}

// ReminderTime picks today's hour for a day-part, shifted by offset hours
// so goals do not collide, moved to tomorrow when it is not in the future.
func ReminderTime(window string, offset int, now time.Time) time.Time {
	hour, ok := windowHours[window]
	if !ok {
		hour = windowHours["evening"]
	}
	y, m, d := now.Date()
	when := time.Date(y, m, d, hour+offset, 0, 0, 0, now.Location())
	if !when.After(now) {
		when = when.AddDate(0, 0, 1)
	}
	return when
}
