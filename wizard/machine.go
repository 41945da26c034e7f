package wizard

import (
	"context"
	"reflect"
	"sync"

	"staffloop/models"
)

// Session states beyond the numbered steps.
type SessionState int

const (
	StateEditing SessionState = iota
	StateConfirmingCancel
	StateSubmitted
	StateDiscarded
)

// Submitter is the event-storage collaborator the session hands a finished
// draft to.
type Submitter interface {
	CreateEvent(ctx context.Context, draft models.EventDraft) (string, error)
}

// AutosaveSink receives draft snapshots after every mutation and a clear
// signal when the session ends. The sink owns debouncing; the session just
// reports.
type AutosaveSink interface {
	Touch(draft models.EventDraft, step int)
	Clear()
}

// nopSink is used when no autosave channel is wired (edit mode).
type nopSink struct{}

func (nopSink) Touch(models.EventDraft, int) {}
func (nopSink) Clear()                       {}

// Session drives one wizard run: a draft, a current step, forward navigation
// gated by step validation, and a single submission. Safe for the handful of
// goroutines a request cycle involves; the draft itself is owned exclusively
// by this session.
type Session struct {
	mu sync.Mutex

	draft    models.EventDraft
	initial  models.EventDraft
	step     int
	state    SessionState
	editMode bool

	submitter Submitter
	autosave  AutosaveSink

	isCreating bool
	eventID    string
}

// NewSession starts a wizard at step 1 with an empty (or hydrated) draft.
// Edit-mode sessions never autosave locally, so their sink is discarded.
func NewSession(draft models.EventDraft, step int, editMode bool, submitter Submitter, autosave AutosaveSink) *Session {
	if step < FirstStep || step > LastStep {
		step = FirstStep
	}
	if autosave == nil || editMode {
		autosave = nopSink{}
	}
	return &Session{
		draft:     draft,
		initial:   draft,
		step:      step,
		state:     StateEditing,
		editMode:  editMode,
		submitter: submitter,
		autosave:  autosave,
	}
}

func (s *Session) Draft() models.EventDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *Session) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// EventID returns the created event's id once the session is submitted.
func (s *Session) EventID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventID
}

// Dirty reports whether any field differs from the draft the session started
// with. Cancelling a dirty session requires confirmation.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !reflect.DeepEqual(s.draft, s.initial)
}

// Dispatch applies a mutation action and reports the new draft to the
// autosave sink.
func (s *Session) Dispatch(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitted || s.state == StateDiscarded {
		return ErrSessionClosed
	}
	next, err := Apply(s.draft, a)
	if err != nil {
		return err
	}
	s.draft = next
	s.autosave.Touch(s.draft, s.step)
	return nil
}

// Advance moves to the next step if the current one validates. The returned
// result carries the diagnostics either way.
func (s *Session) Advance() StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := ValidateStep(s.draft, s.step)
	if res.OK && s.step < LastStep {
		s.step++
		s.autosave.Touch(s.draft, s.step)
	}
	return res
}

// Back always succeeds; no validation on backward navigation.
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step > FirstStep {
		s.step--
		s.autosave.Touch(s.draft, s.step)
	}
}

// RequestCancel starts the cancel flow. A clean session discards immediately;
// a dirty one moves to the confirmation sub-state.
func (s *Session) RequestCancel() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing {
		return s.state
	}
	if reflect.DeepEqual(s.draft, s.initial) {
		s.state = StateDiscarded
		s.autosave.Clear()
	} else {
		s.state = StateConfirmingCancel
	}
	return s.state
}

// ConfirmCancel discards the draft and clears the autosave channel.
func (s *Session) ConfirmCancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConfirmingCancel {
		return
	}
	s.state = StateDiscarded
	s.autosave.Clear()
}

// DismissCancel returns to editing.
func (s *Session) DismissCancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateConfirmingCancel {
		s.state = StateEditing
	}
}

// Submit creates the event. Only reachable from the last step; while a
// submission is in flight every further call fails fast, so rapid repeated
// clicks produce exactly one create call. On failure the session stays at the
// last step with the draft intact.
func (s *Session) Submit(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.state == StateSubmitted || s.state == StateDiscarded {
		s.mu.Unlock()
		return "", ErrSessionClosed
	}
	if s.step != LastStep {
		s.mu.Unlock()
		return "", ErrNotAtFinalStep
	}
	if s.isCreating {
		s.mu.Unlock()
		return "", ErrSubmissionInFlight
	}
	if res := ValidateAll(s.draft); !res.OK {
		s.mu.Unlock()
		return "", NewValidationError("draft", res.Errors[0])
	}
	s.isCreating = true
	draft := s.draft
	s.mu.Unlock()

	id, err := s.submitter.CreateEvent(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isCreating = false
	if err != nil {
		return "", err
	}
	s.state = StateSubmitted
	s.eventID = id
	s.autosave.Clear()
	return id, nil
}
