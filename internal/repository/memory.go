package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"industry-lens/internal/models"
)

// MemoryStore keeps all entities in mutex-protected maps. It satisfies every
// repository interface and is the default backend when no MONGO_URI is
// configured; tests run against it directly.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[string]models.User
	professionals map[string]models.Professional
	reviews       map[string]models.Review
	flags         map[string]models.Flag
	notifications map[string]models.Notification
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]models.User),
		professionals: make(map[string]models.Professional),
		reviews:       make(map[string]models.Review),
		flags:         make(map[string]models.Flag),
		notifications: make(map[string]models.Notification),
	}
}

// --- users ---

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemoryStore) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			u := u
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemoryStore) GetAllUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (s *MemoryStore) UpdateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return models.ErrNotFound
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *MemoryStore) CountUsersByRole(ctx context.Context, role models.Role) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, u := range s.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) AdjustReviewCount(ctx context.Context, id string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.ErrNotFound
	}
	u.ReviewCount += delta
	if u.ReviewCount < 0 {
		u.ReviewCount = 0
	}
	s.users[id] = u
	return nil
}

// --- professionals ---

func (s *MemoryStore) CreateProfessional(ctx context.Context, prof *models.Professional) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.professionals[prof.ID] = *prof
	return nil
}

func (s *MemoryStore) GetProfessional(ctx context.Context, id string) (*models.Professional, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.professionals[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) GetAllProfessionals(ctx context.Context) ([]models.Professional, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profs := make([]models.Professional, 0, len(s.professionals))
	for _, p := range s.professionals {
		profs = append(profs, p)
	}
	sort.Slice(profs, func(i, j int) bool { return profs[i].CreatedAt.Before(profs[j].CreatedAt) })
	return profs, nil
}

func (s *MemoryStore) UpdateProfessional(ctx context.Context, prof *models.Professional) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.professionals[prof.ID]; !ok {
		return models.ErrNotFound
	}
	s.professionals[prof.ID] = *prof
	return nil
}

func (s *MemoryStore) SearchProfessionals(ctx context.Context, query, department string) ([]models.Professional, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(query)
	results := make([]models.Professional, 0)
	for _, p := range s.professionals {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.IMDBLink), q) {
			continue
		}
		if department != "" && department != "all" && p.Department != department {
			continue
		}
		results = append(results, p)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CreatedAt.Before(results[j].CreatedAt) })
	return results, nil
}

func (s *MemoryStore) FindProfessionalByNameAndDepartment(ctx context.Context, name, department string) (*models.Professional, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.professionals {
		if strings.EqualFold(p.Name, name) && p.Department == department {
			p := p
			return &p, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemoryStore) UpdateProfessionalStats(ctx context.Context, id string, totalReviews int, averageRating float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.professionals[id]
	if !ok {
		return models.ErrNotFound
	}
	p.TotalReviews = totalReviews
	p.AverageRating = averageRating
	s.professionals[id] = p
	return nil
}

// --- reviews ---

func (s *MemoryStore) CreateReview(ctx context.Context, review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[review.ID] = *review
	return nil
}

func (s *MemoryStore) GetReview(ctx context.Context, id string) (*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reviews[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &r, nil
}

func (s *MemoryStore) GetAllReviews(ctx context.Context) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviewsWhere(func(models.Review) bool { return true }), nil
}

func (s *MemoryStore) UpdateReview(ctx context.Context, review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[review.ID]; !ok {
		return models.ErrNotFound
	}
	s.reviews[review.ID] = *review
	return nil
}

func (s *MemoryStore) DeleteReview(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.reviews, id)
	return nil
}

func (s *MemoryStore) GetReviewsByProfessional(ctx context.Context, professionalID string) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviewsWhere(func(r models.Review) bool { return r.ProfessionalID == professionalID }), nil
}

func (s *MemoryStore) GetApprovedReviewsByProfessional(ctx context.Context, professionalID string) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviewsWhere(func(r models.Review) bool {
		return r.ProfessionalID == professionalID && r.Status == models.StatusApproved
	}), nil
}

func (s *MemoryStore) GetReviewsByUser(ctx context.Context, userID string) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviewsWhere(func(r models.Review) bool { return r.UserID == userID }), nil
}

func (s *MemoryStore) FindReviewByProfessionalAndUser(ctx context.Context, professionalID, userID string) (*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reviews {
		if r.ProfessionalID == professionalID && r.UserID == userID {
			r := r
			return &r, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemoryStore) DeleteReviewsByUser(ctx context.Context, userID string) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := make([]models.Review, 0)
	for id, r := range s.reviews {
		if r.UserID == userID {
			deleted = append(deleted, r)
			delete(s.reviews, id)
		}
	}
	return deleted, nil
}

func (s *MemoryStore) reviewsWhere(match func(models.Review) bool) []models.Review {
	results := make([]models.Review, 0)
	for _, r := range s.reviews {
		if match(r) {
			results = append(results, r)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CreatedAt.Before(results[j].CreatedAt) })
	return results
}

// --- flags ---

func (s *MemoryStore) CreateFlag(ctx context.Context, flag *models.Flag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[flag.ID] = *flag
	return nil
}

func (s *MemoryStore) GetFlag(ctx context.Context, id string) (*models.Flag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.flags[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &f, nil
}

func (s *MemoryStore) GetAllFlags(ctx context.Context) ([]models.Flag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	flags := make([]models.Flag, 0, len(s.flags))
	for _, f := range s.flags {
		flags = append(flags, f)
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i].CreatedAt.Before(flags[j].CreatedAt) })
	return flags, nil
}

func (s *MemoryStore) UpdateFlag(ctx context.Context, flag *models.Flag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.flags[flag.ID]; !ok {
		return models.ErrNotFound
	}
	s.flags[flag.ID] = *flag
	return nil
}

// --- notifications ---

func (s *MemoryStore) CreateNotification(ctx context.Context, notif *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[notif.ID] = *notif
	return nil
}

func (s *MemoryStore) ListNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]models.Notification, 0)
	for _, n := range s.notifications {
		if n.UserID == userID {
			results = append(results, n)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CreatedAt.After(results[j].CreatedAt) })
	return results, nil
}

func (s *MemoryStore) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) MarkNotificationRead(ctx context.Context, id, userID string) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return nil, models.ErrNotFound
	}
	n.Read = true
	s.notifications[id] = n
	return &n, nil
}

func (s *MemoryStore) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			s.notifications[id] = n
		}
	}
	return nil
}

func (s *MemoryStore) DeleteNotification(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return models.ErrNotFound
	}
	delete(s.notifications, id)
	return nil
}
