package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot(t *testing.T) {
	t.Run("should fetch each list exactly once", func(t *testing.T) {
		// given
		catalog := NewCatalogStub()
		catalog.SetModules(Module{ExternalId: "mod-1", Title: "Bandeja basics"})
		catalog.SetExercises(Exercise{ExternalId: "ex-1", Title: "Wall volleys"})

		// when
		snapshot, err := NewSnapshot(context.Background(), catalog)

		// then
		require.NoError(t, err)
		moduleCalls, exerciseCalls := catalog.Calls()
		assert.Equal(t, 1, moduleCalls)
		assert.Equal(t, 1, exerciseCalls)

		module := snapshot.Module("mod-1")
		require.NotNil(t, module)
		assert.Equal(t, "Bandeja basics", module.Title)

		exercise := snapshot.Exercise("ex-1")
		require.NotNil(t, exercise)
		assert.Equal(t, "Wall volleys", exercise.Title)
	})

	t.Run("should return nil for unknown external ids", func(t *testing.T) {
		// given
		catalog := NewCatalogStub()

		// when
		snapshot, err := NewSnapshot(context.Background(), catalog)

		// then
		require.NoError(t, err)
		assert.Nil(t, snapshot.Module("mod-999"))
		assert.Nil(t, snapshot.Exercise("ex-999"))
	})

	t.Run("should fail when the module fetch fails", func(t *testing.T) {
		// given
		catalog := NewCatalogStub()
		catalog.SetErrors(errors.New("boom"), nil)

		// when
		_, err := NewSnapshot(context.Background(), catalog)

		// then
		assert.Error(t, err)
	})

	t.Run("should fail when the exercise fetch fails", func(t *testing.T) {
		// given
		catalog := NewCatalogStub()
		catalog.SetErrors(nil, errors.New("boom"))

		// when
		_, err := NewSnapshot(context.Background(), catalog)

		// then
		assert.Error(t, err)
	})
}

func TestEmptySnapshot(t *testing.T) {
	snapshot := EmptySnapshot()

	assert.Nil(t, snapshot.Module("mod-1"))
	assert.Nil(t, snapshot.Exercise("ex-1"))
}
