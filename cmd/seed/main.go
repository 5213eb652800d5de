package main

import (
	"context"
	"log"
	"os"
	"time"

	"globtek-backend/internal/auth"
	"globtek-backend/internal/config"
	"globtek-backend/internal/db"
	"globtek-backend/internal/models"
	"globtek-backend/internal/team"
	"globtek-backend/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedService struct {
	Title       string
	Description string
	Icon        string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	seedServices := []seedService{
		{Title: "Naval Architecture", Description: "Hull form development, stability analysis and classification support for new builds and conversions.", Icon: "ship"},
		{Title: "Coastal Engineering", Description: "Breakwaters, shoreline protection and metocean studies for coastal infrastructure.", Icon: "waves"},
		{Title: "Structural Engineering", Description: "Design and assessment of marine, industrial and civil structures.", Icon: "building"},
		{Title: "Marine Surveys", Description: "Condition surveys, hydrographic surveys and asset integrity inspections.", Icon: "compass"},
		{Title: "Project Management", Description: "Owner's engineer and full project delivery services from concept to commissioning.", Icon: "clipboard"},
	}

	now := time.Now().In(cfg.Timezone)
	for _, svc := range seedServices {
		slug := utils.Slugify(svc.Title)
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":         primitive.NewObjectID().Hex(),
				"title":       svc.Title,
				"slug":        slug,
				"description": svc.Description,
				"icon":        svc.Icon,
				"createdAt":   now,
				"updatedAt":   now,
			},
		}
		opts := options.Update().SetUpsert(true)
		if _, err := cols.Services.UpdateOne(ctx, bson.M{"slug": slug}, update, opts); err != nil {
			log.Fatalf("seed service %q: %v", svc.Title, err)
		}
		log.Printf("seeded service %q", slug)
	}

	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Println("SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD not set, skipping admin account")
		return
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		log.Fatal(err)
	}

	id := uuid.NewString()
	accountUpdate := bson.M{
		"$setOnInsert": models.Account{
			ID:           id,
			Email:        adminEmail,
			PasswordHash: hash,
			Role:         models.AccountRoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := cols.Accounts.UpdateOne(ctx, bson.M{"email": adminEmail}, accountUpdate, opts); err != nil {
		log.Fatalf("seed admin account: %v", err)
	}

	profileUpdate := bson.M{
		"$setOnInsert": team.Profile{
			ID:        id,
			Email:     adminEmail,
			FullName:  "Site Administrator",
			Role:      "admin",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if _, err := cols.Profiles.UpdateOne(ctx, bson.M{"email": adminEmail}, profileUpdate, opts); err != nil {
		log.Fatalf("seed admin profile: %v", err)
	}

	log.Printf("seeded admin %q", adminEmail)
}
