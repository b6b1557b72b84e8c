package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/achmadwirra/inventory-asset/pkg/metadata"
	"github.com/achmadwirra/inventory-asset/pkg/models"
)

type seedUser struct {
	email    string
	password string
	role     string
}

// Seed fills an empty database with a starter data set: one user per
// role, the default categories and a handful of assets. It is a no-op
// when any user already exists, so re-running it is safe.
func Seed(db *sql.DB, log *zap.Logger) error {
	goquDB := goqu.New("postgres", db)

	var userCount int
	if _, err := goquDB.From("users").Select(goqu.COUNT("*")).Executor().ScanVal(&userCount); err != nil {
		return fmt.Errorf("failed to inspect users table: %w", err)
	}
	if userCount > 0 {
		log.Info("Database seed: users already present, nothing to do")
		return nil
	}

	seedUsers := []seedUser{
		{email: "admin@example.com", password: "admin123", role: "admin"},
		{email: "staff@example.com", password: "staff123", role: "staff"},
		{email: "employee@example.com", password: "employee123", role: "employee"},
	}

	for _, u := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}

		insert := goquDB.Insert("users").Rows(goqu.Record{
			"email":         u.email,
			"password_hash": string(hash),
			"role":          u.role,
		})
		if _, err := insert.Executor().Exec(); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.email, err)
		}
		log.Info("Database seed: created user", zap.String("email", u.email), zap.String("role", u.role))
	}

	categoryIDs := make(map[string]int)
	for _, name := range []string{"Laptop", "Monitor", "Phone", "Peripheral"} {
		category := models.NewAssetCategory(name)

		var id int
		insert := goquDB.Insert("asset_categories").
			Rows(goqu.Record{"name": category.Name, "deleted_at": category.DeletedAt}).
			Returning("id")
		if _, err := insert.Executor().ScanVal(&id); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", name, err)
		}
		categoryIDs[name] = id
	}
	log.Info("Database seed: created categories", zap.Int("count", len(categoryIDs)))

	purchased := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	seedAssets := []*models.Asset{
		models.SeedAsset("LAP-100", "Dell Latitude 5440", categoryIDs["Laptop"], purchased, "Warehouse A", metadata.StatusInStock, nil),
		models.SeedAsset("LAP-101", "ThinkPad T14", categoryIDs["Laptop"], purchased, "Warehouse A", metadata.StatusInStock, nil),
		models.SeedAsset("MON-200", "Dell U2723QE", categoryIDs["Monitor"], purchased, "Warehouse B", metadata.StatusInStock, nil),
		models.SeedAsset("PHN-300", "iPhone 15", categoryIDs["Phone"], purchased, "Warehouse A", metadata.StatusMaintenance, nil),
	}

	for _, asset := range seedAssets {
		insert := goquDB.Insert("assets").Rows(goqu.Record{
			"asset_code":          asset.AssetCode,
			"name":                asset.Name,
			"category_id":         asset.CategoryID,
			"status":              string(asset.Status),
			"purchase_date":       asset.PurchaseDate,
			"location":            asset.Location,
			"assigned_to_user_id": asset.AssignedToUserID,
		})
		if _, err := insert.Executor().Exec(); err != nil {
			return fmt.Errorf("failed to seed asset %s: %w", asset.AssetCode, err)
		}
	}
	log.Info("Database seed: created assets", zap.Int("count", len(seedAssets)))

	return nil
}
