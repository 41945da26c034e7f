package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"staffloop/db"
	"staffloop/events"
	"staffloop/globals"
	"staffloop/models"
	"staffloop/utils"
	"staffloop/wizard"
)

// One live wizard session per organizer. Opening a new one replaces any
// previous session without touching its autosaved draft.
var sessions = struct {
	sync.Mutex
	m map[string]*wizard.Session
}{m: make(map[string]*wizard.Session)}

func sessionFor(userID string) (*wizard.Session, bool) {
	sessions.Lock()
	defer sessions.Unlock()
	s, ok := sessions.m[userID]
	return s, ok
}

// submitterFor picks the event persistence for a session: editing an
// existing event updates it in place, a fresh wizard creates one.
func submitterFor(userID, eventID string) wizard.Submitter {
	if eventID != "" {
		return events.Updater{EventID: eventID, OrganizerID: userID}
	}
	return events.Creator{OrganizerID: userID}
}

func sessionSnapshot(s *wizard.Session) utils.M {
	return utils.M{
		"draft": s.Draft(),
		"step":  s.Step(),
		"state": s.State(),
	}
}

// OpenWizard starts a wizard session. Body: {eventid} to edit an existing
// event, otherwise a fresh session that resumes from the autosaved draft
// when one exists.
func OpenWizard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user")
		return
	}

	var body struct {
		EventID string `json:"eventid"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&body)
	}

	var session *wizard.Session
	resumed := false
	if body.EventID != "" {
		// edit mode: load the event, no autosave channel
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		var event models.Event
		err := db.EventsCollection.FindOne(ctx, bson.M{
			"eventid":     body.EventID,
			"organizerid": userID,
		}).Decode(&event)
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Event not found")
			return
		}
		session = wizard.NewSession(event.Draft, wizard.FirstStep, true,
			submitterFor(userID, body.EventID), nil)
	} else {
		draft := models.EventDraft{}
		step := wizard.FirstStep
		if saved, exists, err := AutosaveStore.Get(r.Context(), userID); err == nil && exists {
			draft = saved.EventData
			step = saved.Step
			resumed = true
		}
		sink := NewAutosaver(AutosaveStore, userID, DefaultQuietPeriod)
		session = wizard.NewSession(draft, step, false,
			submitterFor(userID, ""), sink)
	}

	sessions.Lock()
	sessions.m[userID] = session
	sessions.Unlock()

	resp := sessionSnapshot(session)
	resp["resumed"] = resumed
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// WizardAction applies one draft mutation to the open session.
func WizardAction(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	session, ok := sessionFor(userID)
	if !ok {
		utils.RespondWithError(w, http.StatusConflict, "No open wizard session")
		return
	}

	var action wizard.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := session.Dispatch(action); err != nil {
		var verr *wizard.ValidationError
		if errors.As(err, &verr) {
			utils.RespondWithError(w, http.StatusBadRequest, verr.Error())
			return
		}
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sessionSnapshot(session))
}

// WizardAdvance validates the current step and moves forward when clean.
func WizardAdvance(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	session, ok := sessionFor(userID)
	if !ok {
		utils.RespondWithError(w, http.StatusConflict, "No open wizard session")
		return
	}

	res := session.Advance()
	resp := sessionSnapshot(session)
	resp["ok"] = res.OK
	resp["errors"] = res.Errors
	resp["warnings"] = res.Warnings
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// WizardBack moves one step back, never validating.
func WizardBack(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	session, ok := sessionFor(userID)
	if !ok {
		utils.RespondWithError(w, http.StatusConflict, "No open wizard session")
		return
	}
	session.Back()
	utils.RespondWithJSON(w, http.StatusOK, sessionSnapshot(session))
}

// WizardCancel runs the cancel flow. Body: {} requests cancellation,
// {confirm:true} discards a dirty draft, {dismiss:true} keeps editing.
func WizardCancel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	session, ok := sessionFor(userID)
	if !ok {
		utils.RespondWithError(w, http.StatusConflict, "No open wizard session")
		return
	}

	var body struct {
		Confirm bool `json:"confirm"`
		Dismiss bool `json:"dismiss"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&body)
	}

	var state wizard.SessionState
	switch {
	case body.Confirm:
		session.ConfirmCancel()
		state = session.State()
	case body.Dismiss:
		session.DismissCancel()
		state = session.State()
	default:
		state = session.RequestCancel()
	}

	if state == wizard.StateDiscarded {
		sessions.Lock()
		delete(sessions.m, userID)
		sessions.Unlock()
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"state": state})
}

// WizardSubmit creates the event from the confirm step. Duplicate submits
// while one is in flight are rejected without a second create.
func WizardSubmit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	session, ok := sessionFor(userID)
	if !ok {
		utils.RespondWithError(w, http.StatusConflict, "No open wizard session")
		return
	}

	eventID, err := session.Submit(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrSubmissionInFlight):
			utils.RespondWithError(w, http.StatusConflict, "Submission already in progress")
		case errors.Is(err, wizard.ErrNotAtFinalStep):
			utils.RespondWithError(w, http.StatusBadRequest, "Finish the wizard before submitting")
		case errors.Is(err, wizard.ErrSessionClosed):
			utils.RespondWithError(w, http.StatusConflict, "Wizard session is closed")
		default:
			var verr *wizard.ValidationError
			if errors.As(err, &verr) {
				utils.RespondWithError(w, http.StatusBadRequest, verr.Error())
				return
			}
			log.Printf("wizard submit for user %s: %v", userID, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create event")
		}
		return
	}

	sessions.Lock()
	delete(sessions.m, userID)
	sessions.Unlock()

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"eventid": eventID, "success": true})
}
