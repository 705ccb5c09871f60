package user

import (
	"context"
	"sync"
)

// StubRepo is an in-memory Repo implementation for tests.
type StubRepo struct {
	mu     sync.RWMutex
	users  map[int]User
	nextId int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{
		users:  make(map[int]User),
		nextId: 1,
	}
}

func (r *StubRepo) CreateUser(ctx context.Context, user User) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.Id = r.nextId
	r.users[user.Id] = user
	r.nextId++
	return user.Id, nil
}

func (r *StubRepo) GetUser(ctx context.Context, id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *StubRepo) GetUserByUid(ctx context.Context, uid string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Uid == uid {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (r *StubRepo) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[userId]
	if !ok {
		return User{}, ErrUserNotFound
	}
	existing.Email = user.Email
	existing.DisplayName = user.DisplayName
	existing.Settings = user.Settings
	r.users[userId] = existing
	return existing, nil
}

func (r *StubRepo) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = make(map[int]User)
	r.nextId = 1
}
