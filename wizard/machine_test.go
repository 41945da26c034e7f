package wizard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"staffloop/models"
)

type fakeSubmitter struct {
	calls int32
	delay time.Duration
	fail  bool
}

func (f *fakeSubmitter) CreateEvent(ctx context.Context, draft models.EventDraft) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.fail {
		return "", errors.New("backend unavailable")
	}
	return "e000000000001", nil
}

type recordingSink struct {
	mu      sync.Mutex
	touches int
	cleared bool
}

func (r *recordingSink) Touch(models.EventDraft, int) {
	r.mu.Lock()
	r.touches++
	r.mu.Unlock()
}

func (r *recordingSink) Clear() {
	r.mu.Lock()
	r.cleared = true
	r.mu.Unlock()
}

func submittableDraft() models.EventDraft {
	d := models.EventDraft{
		Name:      "Launch Night",
		Location:  "Pier 9",
		StartDate: "2026-09-12",
		Schedule:  models.Schedule{StartTime: "18:00", EndTime: "23:00"},
	}
	d = AddRole(d, "", "r1", "Security")
	d = SetRoleStaffCount(d, "", "r1", 1)
	d = AssignStaff(d, "", "r1", models.StaffRef{ID: "s1", Name: "Mina"}, "")
	return d
}

func TestAdvanceGatedBackwardFree(t *testing.T) {
	s := NewSession(models.EventDraft{}, FirstStep, false, &fakeSubmitter{}, nil)

	if res := s.Advance(); res.OK {
		t.Fatalf("advance past empty step 1 allowed")
	}
	if s.Step() != FirstStep {
		t.Fatalf("step moved despite failed validation")
	}

	err := s.Dispatch(Action{Type: ActionSetBasics, Name: "Launch Night", Location: "Pier 9", StartDate: "2026-09-12"})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if res := s.Advance(); !res.OK {
		t.Fatalf("advance blocked on valid step: %v", res.Errors)
	}
	if s.Step() != StepSchedule {
		t.Fatalf("expected step 2, at %d", s.Step())
	}

	s.Back()
	if s.Step() != FirstStep {
		t.Fatalf("backward navigation blocked")
	}
}

func TestCancelConfirmationFlow(t *testing.T) {
	sink := &recordingSink{}
	s := NewSession(models.EventDraft{}, FirstStep, false, &fakeSubmitter{}, sink)

	if err := s.Dispatch(Action{Type: ActionSetBasics, Name: "x"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if got := s.RequestCancel(); got != StateConfirmingCancel {
		t.Fatalf("dirty cancel skipped confirmation, state=%v", got)
	}

	s.DismissCancel()
	if s.State() != StateEditing {
		t.Fatalf("dismiss did not return to editing")
	}

	s.RequestCancel()
	s.ConfirmCancel()
	if s.State() != StateDiscarded {
		t.Fatalf("confirm did not discard")
	}
	if !sink.cleared {
		t.Fatalf("discard did not clear the autosave channel")
	}
}

func TestCleanCancelDiscardsImmediately(t *testing.T) {
	s := NewSession(models.EventDraft{}, FirstStep, false, &fakeSubmitter{}, nil)
	if got := s.RequestCancel(); got != StateDiscarded {
		t.Fatalf("clean session should discard without confirmation, state=%v", got)
	}
}

// Rapid repeated submits while one is in flight make exactly one create call.
func TestAtMostOneSubmission(t *testing.T) {
	sub := &fakeSubmitter{delay: 50 * time.Millisecond}
	s := NewSession(submittableDraft(), LastStep, false, sub, nil)

	var wg sync.WaitGroup
	var okCount, inFlight int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Submit(context.Background())
			switch {
			case err == nil:
				atomic.AddInt32(&okCount, 1)
			case errors.Is(err, ErrSubmissionInFlight) || errors.Is(err, ErrSessionClosed):
				atomic.AddInt32(&inFlight, 1)
			default:
				t.Errorf("unexpected submit error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&sub.calls); got != 1 {
		t.Fatalf("expected exactly one create call, got %d", got)
	}
	if okCount != 1 {
		t.Fatalf("expected exactly one successful submit, got %d", okCount)
	}
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	sub := &fakeSubmitter{fail: true}
	sink := &recordingSink{}
	s := NewSession(submittableDraft(), LastStep, false, sub, sink)

	if _, err := s.Submit(context.Background()); err == nil {
		t.Fatalf("expected backend failure to surface")
	}
	if s.State() != StateEditing {
		t.Fatalf("failed submit changed state")
	}
	if s.Step() != LastStep {
		t.Fatalf("failed submit moved off the last step")
	}
	if sink.cleared {
		t.Fatalf("failed submit cleared the autosave channel")
	}

	// recovery: a working backend succeeds on retry
	sub.fail = false
	id, err := s.Submit(context.Background())
	if err != nil || id == "" {
		t.Fatalf("retry failed: %v", err)
	}
	if s.State() != StateSubmitted || !sink.cleared {
		t.Fatalf("successful submit did not finalize the session")
	}
}

func TestSubmitOnlyFromLastStep(t *testing.T) {
	s := NewSession(submittableDraft(), FirstStep, false, &fakeSubmitter{}, nil)
	if _, err := s.Submit(context.Background()); !errors.Is(err, ErrNotAtFinalStep) {
		t.Fatalf("expected ErrNotAtFinalStep, got %v", err)
	}
}

func TestEditModeSkipsAutosave(t *testing.T) {
	sink := &recordingSink{}
	s := NewSession(submittableDraft(), FirstStep, true, &fakeSubmitter{}, sink)
	if err := s.Dispatch(Action{Type: ActionSetBasics, Name: "Renamed", Location: "Pier 9", StartDate: "2026-09-12"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if sink.touches != 0 {
		t.Fatalf("edit-mode session wrote %d autosaves", sink.touches)
	}
}
