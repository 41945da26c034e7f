package checkin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"staffloop/db"
	"staffloop/rdx"
	"staffloop/utils"
)

const otpTTL = 10 * time.Minute

// RequestEnrollmentOTP issues a one-time code gating facial enrollment.
// Delivery (SMS/WhatsApp) is the messaging collaborator's job; this endpoint
// only generates and caches the code.
func RequestEnrollmentOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		StaffID string `json:"staffid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.StaffID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Staff ID is required")
		return
	}

	otp := utils.GenerateRandomDigitString(6)
	if err := rdx.SetWithExpiry("enroll-otp:"+input.StaffID, otp, otpTTL); err != nil {
		log.Printf("Failed to cache OTP: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate code")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "expires_in": int(otpTTL.Seconds())})
}

// VerifyEnrollmentOTP checks the code and marks the staff member enrolled.
func VerifyEnrollmentOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		StaffID string `json:"staffid"`
		OTP     string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	stored, err := rdx.RdxGet("enroll-otp:" + input.StaffID)
	if err != nil || stored != input.OTP {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired OTP")
		return
	}

	_, err = db.StaffCollection.UpdateOne(
		context.TODO(),
		bson.M{"staffid": input.StaffID},
		bson.M{"$set": bson.M{"photo_enrolled": true}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to enroll staff member")
		return
	}

	rdx.RdxDel("enroll-otp:" + input.StaffID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
