package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"useradmin/internal/config"
	apperrors "useradmin/internal/errors"
	"useradmin/internal/model"
	"useradmin/internal/repository"
	"useradmin/internal/service"
)

// defaultUsers is seeded when SEED_FILE is not set.
var defaultUsers = []model.User{
	{ID: "1", Name: "Alice Johnson", Email: "alice.johnson@example.com"},
	{ID: "2", Name: "Bob Smith", Email: "bob.smith@example.com"},
	{ID: "3", Name: "Carol White", Email: "carol.white@example.com"},
	{ID: "4", Name: "Dan Brown", Email: "dan.brown@example.com"},
	{ID: "5", Name: "Eve Davis", Email: "eve.davis@example.com"},
	{ID: "6", Name: "Frank Miller", Email: "frank.miller@example.com"},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	repo, closeStore, err := repository.Open(cfg, false)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer closeStore()
	log.Printf("Opened %s store", cfg.StoreDriver)

	users := defaultUsers
	if cfg.SeedFile != "" {
		log.Printf("Reading users from: %s", cfg.SeedFile)
		users, err = readSeedFile(cfg.SeedFile)
		if err != nil {
			log.Fatalf("Failed to read seed file: %v", err)
		}
	}

	valid := make([]model.User, 0, len(users))
	skipped := 0
	for _, u := range users {
		if u.ID == "" || u.Name == "" || !service.IsEmail(u.Email) {
			log.Printf("Skipping invalid user: id=%q email=%q", u.ID, u.Email)
			skipped++
			continue
		}
		valid = append(valid, u)
	}
	if skipped > 0 {
		log.Printf("Skipped %d invalid users", skipped)
	}

	log.Println("Seeding users...")
	created, updated, err := seedUsers(context.Background(), repo, valid)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Existing users updated: %d", updated)
	log.Printf("  - Total users processed: %d", created+updated)
}

// readSeedFile parses a {"users": [...]} document.
func readSeedFile(path string) ([]model.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var list model.UserList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return list.Users, nil
}

// seedUsers creates missing users and overwrites the name and email of existing ones.
func seedUsers(ctx context.Context, repo repository.UserRepository, users []model.User) (created int, updated int, err error) {
	for _, user := range users {
		existing, err := repo.FindByID(ctx, user.ID)
		if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
			return created, updated, fmt.Errorf("error checking user %s: %w", user.ID, err)
		}

		if existing != nil {
			existing.Name = user.Name
			existing.Email = user.Email
			if err := repo.Update(ctx, existing); err != nil {
				return created, updated, fmt.Errorf("error updating user %s: %w", user.ID, err)
			}
			updated++
			continue
		}

		u := user
		if err := repo.Create(ctx, &u); err != nil {
			return created, updated, fmt.Errorf("error creating user %s: %w", user.ID, err)
		}
		created++
	}
	return created, updated, nil
}
