// Package memory implements an in-memory user store for development and testing.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"userhub/internal/domain"
)

// UserRepository keeps users in a map guarded by one mutex, which also makes
// the live-email uniqueness check atomic with the write.
type UserRepository struct {
	mu     sync.Mutex
	users  map[int64]*domain.User
	nextID int64
	now    func() time.Time
}

var _ domain.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[int64]*domain.User),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the timestamp source.
func (r *UserRepository) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

func (r *UserRepository) List(ctx context.Context, opts domain.ListOptions) ([]*domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	opts = opts.Normalize()
	search := strings.ToLower(opts.Search)

	var matched []*domain.User
	for _, u := range r.users {
		if u.DeletedAt != nil {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Name), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		matched = append(matched, u)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start := min(opts.Offset(), len(matched))
	end := min(start+opts.Limit, len(matched))

	out := make([]*domain.User, 0, end-start)
	for _, u := range matched[start:end] {
		out = append(out, clone(u))
	}

	return out, total, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok || u.DeletedAt != nil {
		return nil, domain.ErrUserNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u := r.liveByEmail(email); u != nil {
		return clone(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.liveByEmail(email) != nil, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.liveByEmail(user.Email) != nil {
		return domain.ErrEmailAlreadyExists
	}

	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	now := r.now()
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = clone(user)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok || existing.DeletedAt != nil {
		return domain.ErrUserNotFound
	}
	if other := r.liveByEmail(user.Email); other != nil && other.ID != user.ID {
		return domain.ErrEmailAlreadyExists
	}

	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = r.now()

	r.users[user.ID] = clone(user)
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok || u.DeletedAt != nil {
		return domain.ErrUserNotFound
	}

	now := r.now()
	u.DeletedAt = &now
	return nil
}

func (r *UserRepository) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, u := range r.users {
		if u.DeletedAt != nil && u.DeletedAt.Before(before) {
			delete(r.users, id)
			n++
		}
	}
	return n, nil
}

func (r *UserRepository) liveByEmail(email string) *domain.User {
	for _, u := range r.users {
		if u.DeletedAt == nil && u.Email == email {
			return u
		}
	}
	return nil
}

func clone(u *domain.User) *domain.User {
	c := *u
	if u.DeletedAt != nil {
		t := *u.DeletedAt
		c.DeletedAt = &t
	}
	return &c
}
