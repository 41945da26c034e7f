package drafts

import (
	"context"
	"log"
	"sync"
	"time"

	"staffloop/models"
)

// DefaultQuietPeriod is how long edits must pause before an autosave fires.
const DefaultQuietPeriod = 1 * time.Second

// Autosaver debounces draft snapshots into a Store. Trailing-edge debounce:
// every Touch resets the timer and only the latest snapshot is written once
// the quiet period elapses. Implements wizard.AutosaveSink.
type Autosaver struct {
	store Store
	key   string
	quiet time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending models.SavedDraft
	has     bool
}

func NewAutosaver(store Store, key string, quiet time.Duration) *Autosaver {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Autosaver{store: store, key: key, quiet: quiet}
}

// Touch records a new snapshot and (re)arms the timer, superseding any
// pending write.
func (a *Autosaver) Touch(draft models.EventDraft, step int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = models.SavedDraft{EventData: draft, Step: step, SavedAt: time.Now().UTC()}
	a.has = true
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.quiet, a.fire)
}

func (a *Autosaver) fire() {
	a.mu.Lock()
	if !a.has {
		a.mu.Unlock()
		return
	}
	snapshot := a.pending
	a.has = false
	a.mu.Unlock()

	if err := a.store.Set(context.Background(), a.key, snapshot); err != nil {
		// autosave is best effort; the user still has the live draft
		log.Printf("Autosave write failed for %s: %v", a.key, err)
	}
}

// Flush writes any pending snapshot immediately. Used on page-hide style
// events and in tests.
func (a *Autosaver) Flush() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
	a.fire()
}

// Clear drops both the pending snapshot and the stored one. Called on
// explicit save, submission, and discard.
func (a *Autosaver) Clear() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.has = false
	a.mu.Unlock()

	if err := a.store.Clear(context.Background(), a.key); err != nil {
		log.Printf("Autosave clear failed for %s: %v", a.key, err)
	}
}
