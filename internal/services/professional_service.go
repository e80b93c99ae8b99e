package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"industry-lens/internal/models"
	"industry-lens/internal/repository"
	"industry-lens/internal/utils"
)

type ProfessionalService struct {
	professionals repository.ProfessionalRepository
	reviews       repository.ReviewRepository
	users         repository.UserRepository
	tmdb          *utils.TMDBClient
}

func NewProfessionalService(
	professionals repository.ProfessionalRepository,
	reviews repository.ReviewRepository,
	users repository.UserRepository,
	tmdb *utils.TMDBClient,
) *ProfessionalService {
	return &ProfessionalService{
		professionals: professionals,
		reviews:       reviews,
		users:         users,
		tmdb:          tmdb,
	}
}

func (s *ProfessionalService) Search(ctx context.Context, query, department string) ([]models.Professional, error) {
	return s.professionals.SearchProfessionals(ctx, query, department)
}

func (s *ProfessionalService) Departments() []string {
	return models.Departments
}

// PublicReview is an approved review as shown on a profile page. The author is
// never exposed; reviews are anonymous by design.
type PublicReview struct {
	ID                  string    `json:"id"`
	Rating              int       `json:"rating"`
	Title               string    `json:"title"`
	Content             string    `json:"content"`
	ProjectContext      string    `json:"projectContext,omitempty"`
	WorkingRelationship string    `json:"workingRelationship,omitempty"`
	HelpfulCount        int       `json:"helpfulCount"`
	CreatedAt           time.Time `json:"createdAt"`
}

type ProfessionalProfile struct {
	models.Professional
	Reviews            []PublicReview `json:"reviews"`
	RatingDistribution map[int]int    `json:"ratingDistribution"`
}

// Profile returns a professional with their approved reviews, anonymized, and
// the count of approved reviews per star rating.
func (s *ProfessionalService) Profile(ctx context.Context, id string) (*ProfessionalProfile, error) {
	prof, err := s.professionals.GetProfessional(ctx, id)
	if err != nil {
		return nil, err
	}

	approved, err := s.reviews.GetApprovedReviewsByProfessional(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := &ProfessionalProfile{
		Professional:       *prof,
		Reviews:            make([]PublicReview, 0, len(approved)),
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	for _, r := range approved {
		profile.Reviews = append(profile.Reviews, PublicReview{
			ID:                  r.ID,
			Rating:              r.Rating,
			Title:               r.Title,
			Content:             r.Content,
			ProjectContext:      r.ProjectContext,
			WorkingRelationship: r.WorkingRelationship,
			HelpfulCount:        r.HelpfulCount,
			CreatedAt:           r.CreatedAt,
		})
		if r.Rating >= 1 && r.Rating <= 5 {
			profile.RatingDistribution[r.Rating]++
		}
	}
	return profile, nil
}

type CreateProfessionalInput struct {
	Name       string `json:"name" binding:"required"`
	Department string `json:"department" binding:"required"`
	IMDBLink   string `json:"imdbLink"`
}

// FindOrCreate backs the review submission flow: a user naming a professional
// who is not in the catalog yet gets a fresh profile, otherwise the existing
// one. Matching is by exact name within the department, case-insensitive.
func (s *ProfessionalService) FindOrCreate(ctx context.Context, addedBy string, input CreateProfessionalInput) (*models.Professional, bool, error) {
	existing, err := s.professionals.FindProfessionalByNameAndDepartment(ctx, input.Name, input.Department)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, false, err
	}

	prof := &models.Professional{
		ID:         uuid.NewString(),
		Name:       input.Name,
		Department: input.Department,
		IMDBLink:   input.IMDBLink,
		AddedBy:    addedBy,
		CreatedAt:  time.Now(),
	}
	s.enrichFromTMDB(ctx, prof)

	if err := s.professionals.CreateProfessional(ctx, prof); err != nil {
		return nil, false, err
	}
	return prof, true, nil
}

// Create is the admin path; unlike FindOrCreate it refuses a duplicate
// name+department instead of returning the existing entry.
func (s *ProfessionalService) Create(ctx context.Context, addedBy string, input CreateProfessionalInput) (*models.Professional, error) {
	if _, err := s.professionals.FindProfessionalByNameAndDepartment(ctx, input.Name, input.Department); err == nil {
		return nil, fmt.Errorf("%w: %s already exists in %s", models.ErrDuplicate, input.Name, input.Department)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	prof := &models.Professional{
		ID:         uuid.NewString(),
		Name:       input.Name,
		Department: input.Department,
		IMDBLink:   input.IMDBLink,
		AddedBy:    addedBy,
		CreatedAt:  time.Now(),
	}
	s.enrichFromTMDB(ctx, prof)

	if err := s.professionals.CreateProfessional(ctx, prof); err != nil {
		return nil, err
	}
	return prof, nil
}

// ProfessionalOverview adds the moderation counters an admin listing needs.
type ProfessionalOverview struct {
	models.Professional
	PendingReviews int `json:"pendingReviews"`
}

func (s *ProfessionalService) AdminList(ctx context.Context) ([]ProfessionalOverview, error) {
	professionals, err := s.professionals.GetAllProfessionals(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]ProfessionalOverview, 0, len(professionals))
	for _, p := range professionals {
		item := ProfessionalOverview{Professional: p}
		reviews, err := s.reviews.GetReviewsByProfessional(ctx, p.ID)
		if err == nil {
			for _, r := range reviews {
				if r.Status == models.StatusPending {
					item.PendingReviews++
				}
			}
		}
		results = append(results, item)
	}
	return results, nil
}

// ProfessionalDetails is the admin view: every review regardless of status,
// with author usernames resolved.
type ProfessionalDetails struct {
	models.Professional
	Reviews         []ModerationReview `json:"reviews"`
	AddedByUsername string             `json:"addedByUsername,omitempty"`
}

func (s *ProfessionalService) AdminGet(ctx context.Context, id string) (*ProfessionalDetails, error) {
	prof, err := s.professionals.GetProfessional(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &ProfessionalDetails{Professional: *prof}
	if adder, err := s.users.GetUserByID(ctx, prof.AddedBy); err == nil {
		details.AddedByUsername = adder.Username
	}

	reviews, err := s.reviews.GetReviewsByProfessional(ctx, id)
	if err != nil {
		return nil, err
	}
	details.Reviews = make([]ModerationReview, 0, len(reviews))
	for _, r := range reviews {
		item := ModerationReview{Review: r, Author: "Unknown"}
		if author, err := s.users.GetUserByID(ctx, r.UserID); err == nil {
			item.Author = author.Username
		}
		details.Reviews = append(details.Reviews, item)
	}
	return details, nil
}

type ProfessionalUpdate struct {
	Name       *string `json:"name"`
	Department *string `json:"department"`
	IMDBLink   *string `json:"imdbLink"`
	PhotoURL   *string `json:"photoUrl"`
}

func (s *ProfessionalService) Update(ctx context.Context, id string, upd ProfessionalUpdate) (*models.Professional, error) {
	prof, err := s.professionals.GetProfessional(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		prof.Name = *upd.Name
	}
	if upd.Department != nil {
		prof.Department = *upd.Department
	}
	if upd.IMDBLink != nil {
		prof.IMDBLink = *upd.IMDBLink
	}
	if upd.PhotoURL != nil {
		prof.PhotoURL = *upd.PhotoURL
	}

	if err := s.professionals.UpdateProfessional(ctx, prof); err != nil {
		return nil, err
	}
	return prof, nil
}

// ToggleReviews turns review submission for a profile on or off, e.g. while a
// legal complaint is being handled.
func (s *ProfessionalService) ToggleReviews(ctx context.Context, id, reason string) (*models.Professional, error) {
	prof, err := s.professionals.GetProfessional(ctx, id)
	if err != nil {
		return nil, err
	}

	prof.ReviewsDisabled = !prof.ReviewsDisabled
	if prof.ReviewsDisabled {
		prof.ReviewsDisabledReason = reason
	} else {
		prof.ReviewsDisabledReason = ""
	}

	if err := s.professionals.UpdateProfessional(ctx, prof); err != nil {
		return nil, err
	}
	return prof, nil
}

// SetIMDBLink stores a new IMDB link and re-runs metadata enrichment off it.
func (s *ProfessionalService) SetIMDBLink(ctx context.Context, id, imdbLink string) (*models.Professional, error) {
	prof, err := s.professionals.GetProfessional(ctx, id)
	if err != nil {
		return nil, err
	}

	prof.IMDBLink = imdbLink
	prof.VerifiedIMDB = false
	s.enrichFromTMDB(ctx, prof)

	if err := s.professionals.UpdateProfessional(ctx, prof); err != nil {
		return nil, err
	}
	return prof, nil
}

func (s *ProfessionalService) Verify(ctx context.Context, id string) (*models.Professional, error) {
	prof, err := s.professionals.GetProfessional(ctx, id)
	if err != nil {
		return nil, err
	}
	prof.VerifiedIMDB = !prof.VerifiedIMDB
	if err := s.professionals.UpdateProfessional(ctx, prof); err != nil {
		return nil, err
	}
	return prof, nil
}

// RefreshMetadata re-pulls photo and credits from TMDB. Fails with
// ErrFeatureUnavailable when no API key is configured.
func (s *ProfessionalService) RefreshMetadata(ctx context.Context, id string) (*models.Professional, error) {
	if !s.tmdb.Enabled() {
		return nil, models.ErrFeatureUnavailable
	}

	prof, err := s.professionals.GetProfessional(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.pullTMDB(ctx, prof); err != nil {
		return nil, err
	}
	if err := s.professionals.UpdateProfessional(ctx, prof); err != nil {
		return nil, err
	}
	return prof, nil
}

// GetProject proxies a single movie/tv lookup for the project detail page.
func (s *ProfessionalService) GetProject(ctx context.Context, mediaType, id string) (*utils.TMDBProject, error) {
	if !s.tmdb.Enabled() {
		return nil, models.ErrFeatureUnavailable
	}
	project, err := s.tmdb.GetProject(ctx, mediaType, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, models.ErrNotFound
	}
	return project, nil
}

// enrichFromTMDB is best-effort: a failed or disabled lookup leaves the
// profile as-is.
func (s *ProfessionalService) enrichFromTMDB(ctx context.Context, prof *models.Professional) {
	if !s.tmdb.Enabled() {
		return
	}
	if err := s.pullTMDB(ctx, prof); err != nil {
		log.Printf("TMDB enrichment failed for %s: %v", prof.Name, err)
	}
}

func (s *ProfessionalService) pullTMDB(ctx context.Context, prof *models.Professional) error {
	var person *utils.TMDBPerson

	if imdbID := utils.ExtractIMDBID(prof.IMDBLink); imdbID != "" {
		found, err := s.tmdb.FindByIMDBID(ctx, imdbID)
		if err != nil {
			return err
		}
		person = found
	}
	if person == nil {
		found, err := s.tmdb.SearchPerson(ctx, prof.Name)
		if err != nil {
			return err
		}
		person = found
	}
	if person == nil {
		return nil
	}

	prof.TMDBID = person.ID
	if url := person.PhotoURL(); url != "" {
		prof.PhotoURL = url
	}

	details, err := s.tmdb.GetPerson(ctx, person.ID)
	if err != nil {
		return err
	}
	if details != nil {
		prof.Credits = topCredits(details, 20)
	}
	return nil
}

// topCredits flattens cast and crew credits, dedupes by TMDB id, and keeps the
// most popular entries.
func topCredits(details *utils.TMDBPersonDetails, limit int) []models.Credit {
	all := append([]utils.TMDBCredit{}, details.CombinedCredits.Cast...)
	all = append(all, details.CombinedCredits.Crew...)

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Popularity > all[j].Popularity
	})

	seen := make(map[int]bool)
	credits := make([]models.Credit, 0, limit)
	for _, c := range all {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		credits = append(credits, models.Credit{
			ID:         c.ID,
			Title:      creditTitle(c),
			Type:       creditType(c),
			Year:       creditYear(c),
			Role:       creditRole(c),
			PosterPath: c.PosterPath,
		})
		if len(credits) == limit {
			break
		}
	}
	return credits
}

func creditTitle(c utils.TMDBCredit) string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

func creditType(c utils.TMDBCredit) string {
	if c.MediaType == "tv" {
		return "tv"
	}
	return "movie"
}

func creditYear(c utils.TMDBCredit) string {
	date := c.ReleaseDate
	if date == "" {
		date = c.FirstAirDate
	}
	if len(date) >= 4 {
		return date[:4]
	}
	return ""
}

func creditRole(c utils.TMDBCredit) string {
	if c.Character != "" {
		return c.Character
	}
	return c.Job
}
