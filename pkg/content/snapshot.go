package content

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Snapshot is a request-scoped, in-memory copy of the full catalog keyed
// by external id. It is built once per request and passed down, so the
// aggregation step never re-queries the content service per item.
type Snapshot struct {
	modules   map[string]Module
	exercises map[string]Exercise
}

// EmptySnapshot resolves nothing. Used to degrade gracefully when the
// catalog fetch fails: items render as not-found placeholders.
func EmptySnapshot() Snapshot {
	return Snapshot{
		modules:   map[string]Module{},
		exercises: map[string]Exercise{},
	}
}

// NewSnapshot fetches the module and exercise catalogs concurrently and
// indexes them by external id.
func NewSnapshot(ctx context.Context, catalog Catalog) (Snapshot, error) {
	var modules []Module
	var exercises []Exercise

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		modules, err = catalog.ListAllModules(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		exercises, err = catalog.ListAllExercises(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return EmptySnapshot(), err
	}

	snapshot := Snapshot{
		modules:   make(map[string]Module, len(modules)),
		exercises: make(map[string]Exercise, len(exercises)),
	}
	for _, m := range modules {
		snapshot.modules[m.ExternalId] = m
	}
	for _, e := range exercises {
		snapshot.exercises[e.ExternalId] = e
	}
	return snapshot, nil
}

// Module resolves a module by external id, nil when absent.
func (s Snapshot) Module(externalId string) *Module {
	if m, ok := s.modules[externalId]; ok {
		return &m
	}
	return nil
}

// Exercise resolves an exercise by external id, nil when absent.
func (s Snapshot) Exercise(externalId string) *Exercise {
	if e, ok := s.exercises[externalId]; ok {
		return &e
	}
	return nil
}
