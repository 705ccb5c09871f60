package content

import (
	"context"
	"sync"
)

// CatalogStub is an in-memory Catalog implementation for tests.
type CatalogStub struct {
	mu            sync.RWMutex
	modules       []Module
	exercises     []Exercise
	modulesErr    error
	exercisesErr  error
	moduleCalls   int
	exerciseCalls int
}

func NewCatalogStub() *CatalogStub {
	return &CatalogStub{}
}

func (s *CatalogStub) ListAllModules(ctx context.Context) ([]Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moduleCalls++
	if s.modulesErr != nil {
		return nil, s.modulesErr
	}
	return append([]Module(nil), s.modules...), nil
}

func (s *CatalogStub) ListAllExercises(ctx context.Context) ([]Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exerciseCalls++
	if s.exercisesErr != nil {
		return nil, s.exercisesErr
	}
	return append([]Exercise(nil), s.exercises...), nil
}

func (s *CatalogStub) SetModules(modules ...Module) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modules = modules
}

func (s *CatalogStub) SetExercises(exercises ...Exercise) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exercises = exercises
}

func (s *CatalogStub) SetErrors(modulesErr error, exercisesErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modulesErr = modulesErr
	s.exercisesErr = exercisesErr
}

// Calls reports how many times each list operation was invoked.
func (s *CatalogStub) Calls() (modules int, exercises int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moduleCalls, s.exerciseCalls
}

func (s *CatalogStub) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modules = nil
	s.exercises = nil
	s.modulesErr = nil
	s.exercisesErr = nil
	s.moduleCalls = 0
	s.exerciseCalls = 0
}
