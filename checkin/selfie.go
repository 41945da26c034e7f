package checkin

import (
	"context"
	"log"
	"net/http"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"staffloop/db"
	"staffloop/utils"
)

var selfieUploadPath = "./static/selfiepic"

// UploadSelfie attaches the check-in selfie to an attendance record. The
// original and a 300px thumbnail are written under the selfie upload path.
func UploadSelfie(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	checkinID := ps.ByName("checkinid")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form")
		return
	}

	file, _, err := r.FormFile("selfie")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Selfie file is required")
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid image")
		return
	}

	if err := utils.EnsureDir(selfieUploadPath); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating upload directory")
		return
	}

	// unique name per upload so a retake never serves a stale cached photo
	name := utils.GetUUID() + ".jpg"
	originalPath := filepath.Join(selfieUploadPath, name)
	if err := imaging.Save(img, originalPath); err != nil {
		log.Printf("Error saving selfie: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving selfie")
		return
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(selfieUploadPath, "thumb_"+name)); err != nil {
		log.Printf("Error saving selfie thumbnail: %v", err)
	}

	res, err := db.CheckinsCollection.UpdateOne(
		context.TODO(),
		bson.M{"checkinid": checkinID},
		bson.M{"$set": bson.M{"selfie_photo": name}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to attach selfie")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Check-in not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "selfie_photo": name})
}
