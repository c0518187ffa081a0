package main

import (
	"fmt"
	"log"
	"os"

	"github.com/campusbooks/campusbooks-backend/internal/config"
	"github.com/campusbooks/campusbooks-backend/internal/db"
	"github.com/campusbooks/campusbooks-backend/internal/model"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.User{}, &model.Listing{}, &model.Message{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var count int64
	if err := gdb.Model(&model.Listing{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count listings: %w", err)
	}
	if count > 0 && os.Getenv("FORCE_SEED") != "true" {
		log.Printf("listings already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		users, listings := buildSeedData()
		for i := range users {
			if err := tx.Create(&users[i]).Error; err != nil {
				return fmt.Errorf("seed user: %w", err)
			}
		}
		for i := range listings {
			if err := tx.Create(&listings[i]).Error; err != nil {
				return fmt.Errorf("seed listing: %w", err)
			}
		}
		log.Printf("seeded %d users and %d listings", len(users), len(listings))
		return nil
	})
}

func buildSeedData() ([]model.User, []model.Listing) {
	strPtr := func(s string) *string { return &s }

	users := []model.User{
		{ID: "seed-user-maya", Email: strPtr("maya@example.edu"), FirstName: strPtr("Maya"), LastName: strPtr("Chen")},
		{ID: "seed-user-diego", Email: strPtr("diego@example.edu"), FirstName: strPtr("Diego"), LastName: strPtr("Ramos")},
		{ID: "seed-user-amara", Email: strPtr("amara@example.edu"), FirstName: strPtr("Amara"), LastName: strPtr("Okafor")},
	}

	listings := []model.Listing{
		{
			ID:         uuid.NewString(),
			UserID:     users[0].ID,
			Title:      "Calculus: Early Transcendentals (9th Edition)",
			CourseCode: "MATH 151",
			Author:     strPtr("James Stewart"),
			Price:      "65.00",
			Condition:  model.ConditionGood,
			Status:     model.ListingStatusActive,
		},
		{
			ID:          uuid.NewString(),
			UserID:      users[0].ID,
			Title:       "Organic Chemistry",
			CourseCode:  "CHEM 210",
			Author:      strPtr("Paula Bruice"),
			Price:       "80.50",
			Condition:   model.ConditionLikeNew,
			Description: strPtr("Barely used, no highlights."),
			Status:      model.ListingStatusActive,
		},
		{
			ID:         uuid.NewString(),
			UserID:     users[1].ID,
			Title:      "Introduction to Algorithms (CLRS)",
			CourseCode: "CS 341",
			Author:     strPtr("Cormen, Leiserson, Rivest, Stein"),
			Price:      "45.00",
			Condition:  model.ConditionUsed,
			Status:     model.ListingStatusActive,
		},
		{
			ID:         uuid.NewString(),
			UserID:     users[2].ID,
			Title:      "Principles of Economics",
			CourseCode: "ECON 101",
			Author:     strPtr("N. Gregory Mankiw"),
			Price:      "30.00",
			Condition:  model.ConditionNew,
			Status:     model.ListingStatusSold,
		},
	}
	return users, listings
}
