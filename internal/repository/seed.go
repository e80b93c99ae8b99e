package repository

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"industry-lens/internal/models"
)

// SeedDemoData loads a small fixture set into the in-memory store: one admin,
// one regular user, a handful of professionals and approved reviews. It exists
// so a dev instance is usable out of the box; authentication itself never
// special-cases these accounts.
func SeedDemoData(ctx context.Context, store *MemoryStore) error {
	testHash, err := bcrypt.GenerateFromPassword([]byte("testpass123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	adminHash, err := bcrypt.GenerateFromPassword([]byte("adminpass123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	users := []models.User{
		{
			ID: "test-user-001", Email: "test@industrylens.com", Username: "TestUser",
			Password: string(testHash), Role: models.RoleUser, AgreedToTerms: true,
			Bio: "Testing account for Industry Lens", ReviewCount: 2, CreatedAt: base,
		},
		{
			ID: "admin-001", Email: "admin@industrylens.com", Username: "Admin",
			Password: string(adminHash), Role: models.RoleAdmin, AgreedToTerms: true,
			Bio: "Administrator account", CreatedAt: base,
		},
	}

	professionals := []models.Professional{
		{
			ID: "prof-001", Name: "Sarah Mitchell", Department: "Director",
			IMDBLink: "https://www.imdb.com/name/nm0000001", VerifiedIMDB: true,
			AverageRating: 5, TotalReviews: 1, AddedBy: "admin",
			CreatedAt: base.Add(14 * 24 * time.Hour),
		},
		{
			ID: "prof-002", Name: "Marcus Chen", Department: "Producer",
			IMDBLink: "https://www.imdb.com/name/nm0000002", VerifiedIMDB: true,
			AverageRating: 3, TotalReviews: 1, AddedBy: "admin",
			CreatedAt: base.Add(31 * 24 * time.Hour),
		},
		{
			ID: "prof-003", Name: "Jessica Torres", Department: "Actor",
			AddedBy: "user", CreatedAt: base.Add(45 * 24 * time.Hour),
		},
	}

	reviews := []models.Review{
		{
			ID: "rev-001", ProfessionalID: "prof-001", UserID: "test-user-001",
			Rating: 5, Title: "Exceptional Director to Work With",
			Content:        "Sarah is one of the most professional directors I've worked with. Clear communication, respects everyone on set.",
			ProjectContext: `Feature Film - "Midnight Sun"`, WorkingRelationship: "Co-worker",
			Status: models.StatusApproved, HelpfulCount: 24,
			CreatedAt: base.Add(166 * 24 * time.Hour), UpdatedAt: base.Add(166 * 24 * time.Hour),
		},
		{
			ID: "rev-002", ProfessionalID: "prof-002", UserID: "test-user-001",
			Rating: 3, Title: "Mixed Experience",
			Content:        "Strong industry connections, but communication could be improved. Payments were sometimes delayed.",
			ProjectContext: `TV Series - "Echo Chamber"`, WorkingRelationship: "Contractor",
			Status: models.StatusApproved, HelpfulCount: 18, FlagCount: 1,
			CreatedAt: base.Add(201 * 24 * time.Hour), UpdatedAt: base.Add(201 * 24 * time.Hour),
		},
	}

	flags := []models.Flag{
		{
			ID: "flag-001", ReviewID: "rev-002", UserID: "test-user-001",
			Reason: "Potentially defamatory content", Status: models.FlagPending,
			CreatedAt: base.Add(202 * 24 * time.Hour),
		},
	}

	for i := range users {
		if err := store.CreateUser(ctx, &users[i]); err != nil {
			return err
		}
	}
	for i := range professionals {
		if err := store.CreateProfessional(ctx, &professionals[i]); err != nil {
			return err
		}
	}
	for i := range reviews {
		if err := store.CreateReview(ctx, &reviews[i]); err != nil {
			return err
		}
	}
	for i := range flags {
		if err := store.CreateFlag(ctx, &flags[i]); err != nil {
			return err
		}
	}

	log.Printf("Seeded demo data: %d users, %d professionals, %d reviews", len(users), len(professionals), len(reviews))
	return nil
}
