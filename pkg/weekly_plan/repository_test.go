package weekly_plan

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/padelcoach/padelcoach/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	container, openDB := test_utils.TestWithDB()
	db = openDB()
	code := m.Run()
	db.Close()
	_ = testcontainers.TerminateContainer(container)
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository, int) {
	t.Helper()
	ctx := context.Background()

	_, err := db.Exec(ctx, "TRUNCATE weekly_plan_modules, weekly_plans, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	var userId int
	err = db.QueryRow(ctx,
		"INSERT INTO users (uid, email) VALUES ('coach-1', 'coach@example.com') RETURNING id").Scan(&userId)
	require.NoError(t, err)

	return ctx, NewRepo(db), userId
}

func TestRepositoryImpl_CreatePlan(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	week := Week{Year: 2025, Number: 3}

	// when
	plan, err := repo.CreatePlan(ctx, userId, week)

	// then
	assert.NoError(t, err)
	assert.Equal(t, userId, plan.UserId)
	assert.Equal(t, week, plan.Week)
	assert.False(t, plan.CreatedAt.IsZero())

	stored, err := repo.GetPlan(ctx, userId, week)
	assert.NoError(t, err)
	assert.Equal(t, plan.Id, stored.Id)
}

func TestRepositoryImpl_CreatePlan_ShouldRejectDuplicateWeek(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	week := Week{Year: 2025, Number: 3}
	_, err := repo.CreatePlan(ctx, userId, week)
	require.NoError(t, err)

	// when
	_, err = repo.CreatePlan(ctx, userId, week)

	// then
	assert.ErrorIs(t, err, ErrPlanAlreadyExists)
}

func TestRepositoryImpl_GetPlan_ShouldReturnNotFoundForMissingWeek(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)

	// when
	_, err := repo.GetPlan(ctx, userId, Week{Year: 2025, Number: 3})

	// then
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestRepositoryImpl_AppendItem_ShouldAssignSequentialOrderPerDay(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	plan, err := repo.CreatePlan(ctx, userId, Week{Year: 2025, Number: 3})
	require.NoError(t, err)

	// when
	first, err := repo.AppendItem(ctx, plan.Id, Monday, "mod-1", ModuleItem, nil, "")
	require.NoError(t, err)
	second, err := repo.AppendItem(ctx, plan.Id, Monday, "ex-1", ExerciseItem, nil, "")
	require.NoError(t, err)
	otherDay, err := repo.AppendItem(ctx, plan.Id, Tuesday, "mod-2", ModuleItem, nil, "")
	require.NoError(t, err)

	// then
	assert.Equal(t, 0, first.OrderIndex)
	assert.Equal(t, 1, second.OrderIndex)
	assert.Equal(t, 0, otherDay.OrderIndex)
}

func TestRepositoryImpl_AppendItem_ShouldHonorExplicitOrderIndex(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	plan, err := repo.CreatePlan(ctx, userId, Week{Year: 2025, Number: 3})
	require.NoError(t, err)
	orderIndex := 7

	// when
	item, err := repo.AppendItem(ctx, plan.Id, Monday, "mod-1", ModuleItem, &orderIndex, "with cones")

	// then
	assert.NoError(t, err)
	assert.Equal(t, 7, item.OrderIndex)
	assert.Equal(t, "with cones", item.Notes)
	assert.Equal(t, ModuleItem, item.Type)
}

func TestRepositoryImpl_ListItems_ShouldOrderByDayThenIndex(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	plan, err := repo.CreatePlan(ctx, userId, Week{Year: 2025, Number: 3})
	require.NoError(t, err)
	_, err = repo.AppendItem(ctx, plan.Id, Friday, "mod-3", ModuleItem, nil, "")
	require.NoError(t, err)
	_, err = repo.AppendItem(ctx, plan.Id, Monday, "mod-1", ModuleItem, nil, "")
	require.NoError(t, err)
	_, err = repo.AppendItem(ctx, plan.Id, Monday, "mod-2", ModuleItem, nil, "")
	require.NoError(t, err)

	// when
	items, err := repo.ListItems(ctx, plan.Id)

	// then
	assert.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "mod-1", items[0].ExternalId)
	assert.Equal(t, "mod-2", items[1].ExternalId)
	assert.Equal(t, "mod-3", items[2].ExternalId)
}

func TestRepositoryImpl_ListItemsForDay(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	plan, err := repo.CreatePlan(ctx, userId, Week{Year: 2025, Number: 3})
	require.NoError(t, err)
	_, err = repo.AppendItem(ctx, plan.Id, Monday, "mod-1", ModuleItem, nil, "")
	require.NoError(t, err)
	_, err = repo.AppendItem(ctx, plan.Id, Tuesday, "mod-2", ModuleItem, nil, "")
	require.NoError(t, err)

	// when
	items, err := repo.ListItemsForDay(ctx, plan.Id, Tuesday)

	// then
	assert.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "mod-2", items[0].ExternalId)
	assert.Equal(t, Tuesday, items[0].Day)
}

func TestRepositoryImpl_UpdateItem(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	plan, err := repo.CreatePlan(ctx, userId, Week{Year: 2025, Number: 3})
	require.NoError(t, err)
	item, err := repo.AppendItem(ctx, plan.Id, Monday, "mod-1", ModuleItem, nil, "old notes")
	require.NoError(t, err)
	orderIndex := 4
	notes := "new notes"

	// when
	updated, err := repo.UpdateItem(ctx, userId, item.Id, ItemUpdate{OrderIndex: &orderIndex, Notes: &notes})

	// then
	assert.NoError(t, err)
	assert.Equal(t, 4, updated.OrderIndex)
	assert.Equal(t, "new notes", updated.Notes)
	assert.False(t, updated.UpdatedAt.Before(item.UpdatedAt))
}

func TestRepositoryImpl_UpdateItem_ShouldScopeToOwner(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	plan, err := repo.CreatePlan(ctx, userId, Week{Year: 2025, Number: 3})
	require.NoError(t, err)
	item, err := repo.AppendItem(ctx, plan.Id, Monday, "mod-1", ModuleItem, nil, "")
	require.NoError(t, err)

	var otherUserId int
	err = db.QueryRow(ctx,
		"INSERT INTO users (uid, email) VALUES ('coach-2', 'other@example.com') RETURNING id").Scan(&otherUserId)
	require.NoError(t, err)
	notes := "hijack"

	// when
	_, err = repo.UpdateItem(ctx, otherUserId, item.Id, ItemUpdate{Notes: &notes})

	// then
	assert.ErrorIs(t, err, ErrPlanItemNotFound)
}

func TestRepositoryImpl_GetItem(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	plan, err := repo.CreatePlan(ctx, userId, Week{Year: 2025, Number: 3})
	require.NoError(t, err)
	item, err := repo.AppendItem(ctx, plan.Id, Wednesday, "ex-1", ExerciseItem, nil, "")
	require.NoError(t, err)

	// when
	stored, err := repo.GetItem(ctx, userId, item.Id)

	// then
	assert.NoError(t, err)
	assert.Equal(t, item.Id, stored.Id)
	assert.Equal(t, ExerciseItem, stored.Type)
	assert.Equal(t, Wednesday, stored.Day)
}

func TestRepositoryImpl_DeleteItem(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	plan, err := repo.CreatePlan(ctx, userId, Week{Year: 2025, Number: 3})
	require.NoError(t, err)
	item, err := repo.AppendItem(ctx, plan.Id, Monday, "mod-1", ModuleItem, nil, "")
	require.NoError(t, err)

	// when
	err = repo.DeleteItem(ctx, userId, item.Id)

	// then
	assert.NoError(t, err)
	items, err := repo.ListItems(ctx, plan.Id)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestRepositoryImpl_DeleteItem_ShouldReturnNotFoundForMissingItem(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)

	// when
	err := repo.DeleteItem(ctx, userId, 999)

	// then
	assert.ErrorIs(t, err, ErrPlanItemNotFound)
}
