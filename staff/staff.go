package staff

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staffloop/db"
	"staffloop/models"
	"staffloop/utils"
)

// GetStaff lists roster entries with optional name search and role filter.
func GetStaff(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	search := strings.TrimSpace(r.URL.Query().Get("search"))
	role := strings.TrimSpace(r.URL.Query().Get("role"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	query := bson.M{}
	if search != "" {
		query["name"] = bson.M{"$regex": search, "$options": "i"}
	}
	if role != "" {
		query["preferred_roles"] = role
	}

	skip := (page - 1) * limit
	opts := options.Find().SetSkip(int64(skip)).SetLimit(int64(limit))

	cursor, err := db.StaffCollection.Find(ctx, query, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error querying staff")
		return
	}
	defer cursor.Close(ctx)

	var results []models.StaffProfile
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.StaffProfile{}
	}

	total, _ := db.StaffCollection.CountDocuments(ctx, query)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"data":  results,
		"total": total,
	})
}

func GetStaffByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	staffID := ps.ByName("staffid")
	if staffID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing staff ID")
		return
	}

	var profile models.StaffProfile
	err := db.StaffCollection.FindOne(ctx, bson.M{"staffid": staffID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Staff member not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch staff member")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, profile)
}

// GetStaffRoles returns the distinct preferred roles across the roster, for
// the role filter dropdowns.
func GetStaffRoles(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	values, err := db.StaffCollection.Distinct(ctx, "preferred_roles", bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch roles")
		return
	}

	roles := make([]string, 0, len(values))
	for _, v := range values {
		if str, ok := v.(string); ok && str != "" {
			roles = append(roles, str)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, roles)
}

// CreateStaff registers a roster entry.
func CreateStaff(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var profile models.StaffProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if strings.TrimSpace(profile.Name) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}

	profile.StaffID = "s" + utils.GenerateID(12)
	profile.CreatedAt = time.Now().UTC()

	if _, err := db.StaffCollection.InsertOne(context.TODO(), profile); err != nil {
		log.Printf("Error inserting staff profile: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create staff member")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, profile)
}

// MongoRoster adapts the staff collection to the assigner's roster interface.
type MongoRoster struct{}

func (MongoRoster) Search(ctx context.Context, query string) ([]models.StaffRef, error) {
	filter := bson.M{}
	if q := strings.TrimSpace(query); q != "" {
		filter["name"] = bson.M{"$regex": q, "$options": "i"}
	}

	cursor, err := db.StaffCollection.Find(ctx, filter, options.Find().SetLimit(50))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.StaffProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}

	refs := make([]models.StaffRef, 0, len(profiles))
	for _, p := range profiles {
		refs = append(refs, models.StaffRef{
			ID:          p.StaffID,
			Name:        p.Name,
			Role:        p.Role,
			ContactInfo: p.ContactInfo,
		})
	}
	return refs, nil
}
