package mock

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a looked-up user does not exist
var ErrUserNotFound = errors.New("user not found")

// User is a record served by the stub API
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CreatedUser is the payload returned for newly created users
type CreatedUser struct {
	Name      string    `json:"name"`
	Job       string    `json:"job"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserStore is the in-memory user table behind the stub endpoints
type UserStore struct {
	mu    sync.RWMutex
	users map[int]*User
}

// NewUserStore creates a store seeded with a fixed user set
func NewUserStore() *UserStore {
	s := &UserStore{users: make(map[int]*User)}
	s.seed()
	return s
}

var seedNames = [][2]string{
	{"Ada", "Fleming"}, {"Janet", "Weir"}, {"Emma", "Wong"},
	{"Noah", "Holt"}, {"Charles", "Mori"}, {"Tracey", "Ramos"},
	{"Mia", "Lawson"}, {"Lars", "Ferguson"}, {"Tobias", "Funk"},
	{"Byron", "Field"}, {"Rachel", "Howe"}, {"Eugene", "Bates"},
}

func (s *UserStore) seed() {
	for i, name := range seedNames {
		id := i + 1
		s.users[id] = &User{
			ID:        id,
			Email:     strings.ToLower(name[0]) + "." + strings.ToLower(name[1]) + "@example.com",
			FirstName: name[0],
			LastName:  name[1],
		}
	}
}

// Get retrieves a user by ID
func (s *UserStore) Get(id int) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// List returns one page of users ordered by ID, plus the total count
func (s *UserStore) List(page, perPage int) ([]*User, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*User, 0, len(s.users))
	for _, user := range s.users {
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)
	start := (page - 1) * perPage
	if start >= total || start < 0 {
		return []*User{}, total
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return all[start:end], total
}

// Create records a new user and returns the created payload
func (s *UserStore) Create(name, job string) *CreatedUser {
	return &CreatedUser{
		Name:      name,
		Job:       job,
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}
}

// Count returns the number of seeded users
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Reset restores the seeded user set
func (s *UserStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[int]*User)
	s.seed()
}
