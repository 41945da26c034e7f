package staffing

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"staffloop/db"
	"staffloop/globals"
	"staffloop/middleware"
	"staffloop/models"
	"staffloop/mq"
	"staffloop/utils"
	"staffloop/wizard"
)

// GenerateSupervisorToken issues and stores an access token for a team's
// supervisor. POST body: {eventid, team, staff}.
func GenerateSupervisorToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		EventID string           `json:"eventid"`
		Team    models.Team      `json:"team"`
		Staff   *models.StaffRef `json:"staff"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	token, err := NewSupervisorToken(input.EventID, input.Team, input.Staff, time.Now().UTC())
	if err != nil {
		var verr *wizard.ValidationError
		if errors.As(err, &verr) {
			utils.RespondWithError(w, http.StatusBadRequest, verr.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if _, err := db.SupervisorTokensCollection.InsertOne(context.TODO(), token); err != nil {
		log.Printf("Error inserting supervisor token: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save token")
		return
	}

	go mq.Emit("supervisor-token-created", mq.Index{
		EntityType: "supervisortoken", EntityId: token.ID, Method: "POST",
		ItemType: "event", ItemId: token.EventID,
	})

	link := ""
	if input.Staff != nil {
		var linkErr error
		link, linkErr = ShareTokenLink(globals.BaseURL, token, input.Team, *input.Staff)
		var notInTeam *ErrStaffNotInTeam
		if errors.As(linkErr, &notInTeam) {
			// warning-grade: the caller shows a toast but still gets the link
			utils.RespondWithJSON(w, http.StatusCreated, utils.M{
				"token":   token,
				"link":    link,
				"warning": notInTeam.Error(),
			})
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"token": token, "link": link})
}

// GetSupervisorTokens lists tokens issued for an event.
func GetSupervisorTokens(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	cursor, err := db.SupervisorTokensCollection.Find(r.Context(), bson.M{"eventid": eventID})
	if err != nil {
		log.Printf("DB error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(r.Context())

	var tokens []models.SupervisorAccessToken
	if err := cursor.All(r.Context(), &tokens); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(tokens) == 0 {
		tokens = []models.SupervisorAccessToken{}
	}
	utils.RespondWithJSON(w, http.StatusOK, tokens)
}

// TokenQR renders the share link as a QR PNG for in-person handoff. Organizer
// only: the link embeds the raw access token.
func TokenQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if _, err := middleware.ValidateJWT(r.Header.Get("Authorization")); err != nil {
		log.Printf("JWT validation error: %v", err)
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tokenID := ps.ByName("tokenid")

	var token models.SupervisorAccessToken
	err := db.SupervisorTokensCollection.FindOne(r.Context(), bson.M{"id": tokenID}).Decode(&token)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Token not found")
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	link, _ := ShareTokenLink(globals.BaseURL, token, models.Team{ID: token.TeamID}, models.StaffRef{ID: token.SupervisorStaffID})
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// VerifySupervisorToken resolves a raw access token to its record, used by
// the supervisor view. Expired or inactive tokens are rejected.
func VerifySupervisorToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	raw := r.URL.Query().Get("token")
	if raw == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Token is required")
		return
	}

	var token models.SupervisorAccessToken
	err := db.SupervisorTokensCollection.FindOne(r.Context(), bson.M{"access_token": raw}).Decode(&token)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	if !token.IsActive || time.Now().After(token.ExpiresAt) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Token expired")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, token)
}

// SearchAssignable proxies FindAssignableStaff over the Mongo roster.
// Query params: q, exclude_assigned; body optionally carries the draft for
// exclusion.
func SearchAssignable(roster Roster) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		opts := SearchOptions{}
		if r.URL.Query().Get("exclude_assigned") == "true" {
			opts.ExcludeAssigned = true
			if err := json.NewDecoder(r.Body).Decode(&opts.Draft); err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "Invalid draft payload")
				return
			}
		}

		results, err := FindAssignableStaff(r.Context(), roster, r.URL.Query().Get("q"), opts)
		if err != nil {
			log.Printf("Roster search error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Staff search failed")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, results)
	}
}
