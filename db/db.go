package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection             *mongo.Collection
	EventsCollection           *mongo.Collection
	StaffCollection            *mongo.Collection
	CheckinsCollection         *mongo.Collection
	SupervisorTokensCollection *mongo.Collection
	BroadcastsCollection       *mongo.Collection
	Client                     *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	ClientOptions := options.Client().ApplyURI(uri)
	Client, err = mongo.Connect(context.TODO(), ClientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	UserCollection = Client.Database("staffloopdb").Collection("users")
	EventsCollection = Client.Database("staffloopdb").Collection("events")
	StaffCollection = Client.Database("staffloopdb").Collection("staff")
	CheckinsCollection = Client.Database("staffloopdb").Collection("checkins")
	SupervisorTokensCollection = Client.Database("staffloopdb").Collection("supervisortokens")
	BroadcastsCollection = Client.Database("staffloopdb").Collection("broadcasts")
}
