package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// SessionTracker implements domain.IdleTracker: one idle timer per browser
// session. Every authenticated request resets the timer; expiry clears the
// stored tokens and CSRF token and marks the session timed out so the next
// request lands on the login screen with a timeout reason.
type SessionTracker struct {
	mu       sync.Mutex
	timers   map[string]*time.Timer
	idleTTL  time.Duration
	sessions domain.SessionStore
}

// NewSessionTracker creates a tracker with the given idle window.
func NewSessionTracker(sessions domain.SessionStore, idleTTL time.Duration) *SessionTracker {
	return &SessionTracker{
		timers:   make(map[string]*time.Timer),
		idleTTL:  idleTTL,
		sessions: sessions,
	}
}

// Start implements domain.IdleTracker. Starting an already-tracked session
// replaces its timer, so exactly one timer is ever live per session.
func (t *SessionTracker) Start(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if old, ok := t.timers[sessionID]; ok {
		old.Stop()
	}
	t.timers[sessionID] = time.AfterFunc(t.idleTTL, func() { t.expire(sessionID) })
}

// Touch implements domain.IdleTracker: user activity resets the window.
// Touching an untracked session is a no-op.
func (t *SessionTracker) Touch(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[sessionID]; ok {
		timer.Reset(t.idleTTL)
	}
}

// End implements domain.IdleTracker. Idempotent.
func (t *SessionTracker) End(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[sessionID]; ok {
		timer.Stop()
		delete(t.timers, sessionID)
	}
}

func (t *SessionTracker) expire(sessionID string) {
	t.mu.Lock()
	delete(t.timers, sessionID)
	t.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := t.sessions.MarkTimeout(ctx, sessionID); err != nil {
		log.Printf("%s: session_id=%s error=%v timestamp=%s",
			domain.SessionTimeoutEvent, sessionID, err, time.Now().UTC().Format(time.RFC3339))
		return
	}
	log.Printf("%s: session_id=%s timestamp=%s",
		domain.SessionTimeoutEvent, sessionID, time.Now().UTC().Format(time.RFC3339))
}
