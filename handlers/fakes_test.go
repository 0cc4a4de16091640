package handlers

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"beneficiarydesk/models"
	"beneficiarydesk/repository"

	"golang.org/x/crypto/bcrypt"
)

// fakeUserRepo is an in-memory credential store for handler tests.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*models.AppUser
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.AppUser{}}
}

// addUser seeds a user with a bcrypt-hashed password and returns its id.
func (r *fakeUserRepo) addUser(name, email, password, role string) string {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := strconv.Itoa(r.nextID)
	r.users[id] = &models.AppUser{
		ID:        id,
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		Role:      models.NormalizeRole(role),
		CreatedAt: time.Now(),
	}
	return id
}

func (r *fakeUserRepo) CreateUser(user *models.AppUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	hashed, _ := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.MinCost)
	user.Password = string(hashed)
	user.Role = models.NormalizeRole(user.Role)
	r.nextID++
	user.ID = strconv.Itoa(r.nextID)
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.AppUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetUserByID(id string) (*models.AppUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	clone.Password = ""
	return &clone, nil
}

func (r *fakeUserRepo) ListUsers(excludeID string) ([]*models.AppUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.AppUser
	for id, u := range r.users {
		if id == excludeID {
			continue
		}
		clone := *u
		clone.Password = ""
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) UpdateUser(id string, update repository.UserUpdate) (*models.AppUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Role != nil {
		u.Role = models.NormalizeRole(*update.Role)
	}
	clone := *u
	clone.Password = ""
	return &clone, nil
}

func (r *fakeUserRepo) DeleteUser(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// fakeBeneficiaryRepo is an in-memory ledger. Token issuance uses the same
// guarded counter increment the real backends use, so the concurrency
// property is exercisable without a database.
type fakeBeneficiaryRepo struct {
	mu       sync.Mutex
	nextID   int
	counters map[string]int64
	records  []*models.Beneficiary
}

func newFakeBeneficiaryRepo() *fakeBeneficiaryRepo {
	return &fakeBeneficiaryRepo{counters: map[string]int64{}}
}

func (r *fakeBeneficiaryRepo) Register(b *models.Beneficiary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.CNIC == b.CNIC {
			return repository.ErrDuplicateKey
		}
	}

	now := time.Now()
	day := repository.TokenDay(now)
	r.counters[day]++

	r.nextID++
	b.ID = strconv.Itoa(r.nextID)
	b.TokenID = repository.FormatTokenID(day, r.counters[day])
	if b.Status == "" {
		b.Status = models.StatusPending
	}
	b.CreatedAt = now
	b.UpdatedAt = now

	clone := *b
	r.records = append(r.records, &clone)
	return nil
}

func (r *fakeBeneficiaryRepo) FindByID(id string) (*models.Beneficiary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.records {
		if b.ID == id {
			clone := *b
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeBeneficiaryRepo) FindByToken(tokenID string) (*models.Beneficiary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.records {
		if b.TokenID == tokenID {
			clone := *b
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeBeneficiaryRepo) List(filter repository.ListFilter, page, limit int64) ([]*models.Beneficiary, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matches []*models.Beneficiary
	for _, b := range r.records {
		switch {
		case filter.TokenID != "":
			if b.TokenID != filter.TokenID {
				continue
			}
		case filter.CNIC != "":
			if b.CNIC != filter.CNIC {
				continue
			}
		}
		clone := *b
		matches = append(matches, &clone)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })

	total := int64(len(matches))
	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matches[start:end], total, nil
}

func (r *fakeBeneficiaryRepo) UpdateStatusRemarks(id string, update repository.BeneficiaryUpdate) (*models.Beneficiary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if update.Status != nil && !models.ValidStatus(*update.Status) {
		return nil, repository.ErrInvalidStatus
	}
	for _, b := range r.records {
		if b.ID != id {
			continue
		}
		if update.Status != nil {
			b.Status = *update.Status
		}
		if update.Remarks != nil {
			b.Remarks = *update.Remarks
		}
		b.UpdatedAt = time.Now()
		clone := *b
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeBeneficiaryRepo) DashboardStats() (*models.DashboardStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &models.DashboardStats{}
	startOfDay := repository.StartOfDay(time.Now())
	for _, b := range r.records {
		stats.TotalBeneficiaries++
		if !b.CreatedAt.Before(startOfDay) {
			stats.VisitorsToday++
		}
		switch b.Status {
		case models.StatusPending:
			stats.StatusBreakdown.Pending++
		case models.StatusInProgress:
			stats.StatusBreakdown.InProgress++
		case models.StatusCompleted:
			stats.StatusBreakdown.Completed++
		}
	}
	return stats, nil
}

// cnicForIndex builds a unique well-formed cnic for table tests.
func cnicForIndex(i int) string {
	return fmt.Sprintf("%05d-%07d-%d", 10000+i, 1000000+i, i%10)
}

func beneficiaryStatusUpdate(status string) repository.BeneficiaryUpdate {
	return repository.BeneficiaryUpdate{Status: &status}
}
