package memory

import (
	"context"
	"sync"

	"accountapp/internal/core/domain"
	"accountapp/internal/core/port"
)

// userStore keeps users in process memory. Username uniqueness is checked
// and claimed under the same lock.
type userStore struct {
	mu         sync.RWMutex
	nextID     int
	byUsername map[string]domain.User
	byUUID     map[string]string
}

func NewUserStore() port.UserStore {
	return &userStore{
		byUsername: make(map[string]domain.User),
		byUUID:     make(map[string]string),
	}
}

func (s *userStore) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byUsername[username]

	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}

	return user, nil
}

func (s *userStore) FindByUUID(ctx context.Context, uid string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	username, ok := s.byUUID[uid]

	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}

	return s.byUsername[username], nil
}

func (s *userStore) Insert(ctx context.Context, user domain.User) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[user.Username]; taken {
		return domain.User{}, domain.ErrUsernameTaken
	}

	s.nextID++
	user.ID = s.nextID

	s.byUsername[user.Username] = user
	s.byUUID[user.UUID.String()] = user.Username

	return user, nil
}

func (s *userStore) DeleteByUUID(ctx context.Context, uid string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	username, ok := s.byUUID[uid]

	if !ok {
		return domain.ErrUserNotFound
	}

	delete(s.byUUID, uid)
	delete(s.byUsername, username)

	return nil
}
