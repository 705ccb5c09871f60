package weekly_plan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrPlanNotFound = errors.New("weekly plan not found")
var ErrPlanItemNotFound = errors.New("weekly plan item not found")
var ErrPlanAlreadyExists = errors.New("weekly plan already exists for week")

// uniqueViolation is the Postgres error code raised when the
// (user_id, year, week_number) unique index rejects a duplicate plan.
const uniqueViolation = "23505"

type Repository interface {
	GetPlan(ctx context.Context, userId int, week Week) (WeeklyPlan, error)
	// CreatePlan inserts a new plan header. It returns ErrPlanAlreadyExists
	// when a plan for the same (user, year, week) exists; callers follow a
	// check-then-create contract, no upsert is attempted.
	CreatePlan(ctx context.Context, userId int, week Week) (WeeklyPlan, error)
	// ListItems returns all items of a plan ordered by (day_of_week, order_index).
	ListItems(ctx context.Context, planId int) ([]PlanItem, error)
	ListItemsForDay(ctx context.Context, planId int, day DayOfWeek) ([]PlanItem, error)
	// AppendItem inserts an item. When orderIndex is nil the next index for
	// (plan, day) is computed as max existing + 1, starting at 0.
	AppendItem(ctx context.Context, planId int, day DayOfWeek, externalId string, itemType ItemType, orderIndex *int, notes string) (PlanItem, error)
	GetItem(ctx context.Context, userId int, itemId int) (PlanItem, error)
	UpdateItem(ctx context.Context, userId int, itemId int, update ItemUpdate) (PlanItem, error)
	DeleteItem(ctx context.Context, userId int, itemId int) error
}

type repositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) GetPlan(ctx context.Context, userId int, week Week) (WeeklyPlan, error) {
	query := `SELECT id, user_id, year, week_number, created_at
			  FROM weekly_plans
			  WHERE user_id = $1 AND year = $2 AND week_number = $3`
	var plan WeeklyPlan
	err := r.db.QueryRow(ctx, query, userId, week.Year, week.Number).Scan(
		&plan.Id,
		&plan.UserId,
		&plan.Week.Year,
		&plan.Week.Number,
		&plan.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return WeeklyPlan{}, ErrPlanNotFound
		}
		return WeeklyPlan{}, fmt.Errorf("could not get weekly plan: %w", err)
	}
	return plan, nil
}

func (r *repositoryImpl) CreatePlan(ctx context.Context, userId int, week Week) (WeeklyPlan, error) {
	query := `INSERT INTO weekly_plans (user_id, year, week_number)
			  VALUES ($1, $2, $3)
			  RETURNING id, user_id, year, week_number, created_at`
	var plan WeeklyPlan
	err := r.db.QueryRow(ctx, query, userId, week.Year, week.Number).Scan(
		&plan.Id,
		&plan.UserId,
		&plan.Week.Year,
		&plan.Week.Number,
		&plan.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return WeeklyPlan{}, ErrPlanAlreadyExists
		}
		return WeeklyPlan{}, fmt.Errorf("could not create weekly plan: %w", err)
	}
	return plan, nil
}

const itemColumns = `id, weekly_plan_id, item_external_id, item_type, day_of_week, order_index, notes, created_at, updated_at`

func scanItem(row pgx.Row) (PlanItem, error) {
	var item PlanItem
	err := row.Scan(
		&item.Id,
		&item.PlanId,
		&item.ExternalId,
		&item.Type,
		&item.Day,
		&item.OrderIndex,
		&item.Notes,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	return item, err
}

func (r *repositoryImpl) ListItems(ctx context.Context, planId int) ([]PlanItem, error) {
	query := `SELECT ` + itemColumns + `
			  FROM weekly_plan_modules
			  WHERE weekly_plan_id = $1
			  ORDER BY day_of_week, order_index, id`
	return r.listItems(ctx, query, planId)
}

func (r *repositoryImpl) ListItemsForDay(ctx context.Context, planId int, day DayOfWeek) ([]PlanItem, error) {
	query := `SELECT ` + itemColumns + `
			  FROM weekly_plan_modules
			  WHERE weekly_plan_id = $1 AND day_of_week = $2
			  ORDER BY order_index, id`
	return r.listItems(ctx, query, planId, int(day))
}

func (r *repositoryImpl) listItems(ctx context.Context, query string, args ...any) ([]PlanItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []PlanItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *repositoryImpl) AppendItem(
	ctx context.Context,
	planId int,
	day DayOfWeek,
	externalId string,
	itemType ItemType,
	orderIndex *int,
	notes string,
) (PlanItem, error) {
	if orderIndex != nil {
		query := `INSERT INTO weekly_plan_modules
					(weekly_plan_id, item_external_id, item_type, day_of_week, order_index, notes)
				  VALUES ($1, $2, $3, $4, $5, $6)
				  RETURNING ` + itemColumns
		return scanItem(r.db.QueryRow(ctx, query, planId, externalId, string(itemType), int(day), *orderIndex, notes))
	}

	// Next order index for the day: max existing + 1, 0 on an empty day.
	query := `INSERT INTO weekly_plan_modules
				(weekly_plan_id, item_external_id, item_type, day_of_week, order_index, notes)
			  SELECT $1, $2, $3, $4, COALESCE(MAX(order_index) + 1, 0), $5
			  FROM weekly_plan_modules
			  WHERE weekly_plan_id = $1 AND day_of_week = $4
			  RETURNING ` + itemColumns
	return scanItem(r.db.QueryRow(ctx, query, planId, externalId, string(itemType), int(day), notes))
}

func (r *repositoryImpl) GetItem(ctx context.Context, userId int, itemId int) (PlanItem, error) {
	query := `SELECT item.id, item.weekly_plan_id, item.item_external_id, item.item_type,
					 item.day_of_week, item.order_index, item.notes, item.created_at, item.updated_at
			  FROM weekly_plan_modules item
			  JOIN weekly_plans plan ON plan.id = item.weekly_plan_id
			  WHERE plan.user_id = $1 AND item.id = $2`
	item, err := scanItem(r.db.QueryRow(ctx, query, userId, itemId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PlanItem{}, ErrPlanItemNotFound
		}
		return PlanItem{}, fmt.Errorf("could not get plan item: %w", err)
	}
	return item, nil
}

func (r *repositoryImpl) UpdateItem(ctx context.Context, userId int, itemId int, update ItemUpdate) (PlanItem, error) {
	sets := []string{"updated_at = now()"}
	args := []any{userId, itemId}
	placeholder := 3
	if update.OrderIndex != nil {
		sets = append(sets, fmt.Sprintf("order_index = $%d", placeholder))
		args = append(args, *update.OrderIndex)
		placeholder++
	}
	if update.Notes != nil {
		sets = append(sets, fmt.Sprintf("notes = $%d", placeholder))
		args = append(args, *update.Notes)
	}

	query := `UPDATE weekly_plan_modules item
			  SET ` + strings.Join(sets, ", ") + `
			  FROM weekly_plans plan
			  WHERE plan.id = item.weekly_plan_id AND plan.user_id = $1 AND item.id = $2
			  RETURNING item.id, item.weekly_plan_id, item.item_external_id, item.item_type,
						item.day_of_week, item.order_index, item.notes, item.created_at, item.updated_at`
	item, err := scanItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PlanItem{}, ErrPlanItemNotFound
		}
		return PlanItem{}, fmt.Errorf("could not update plan item: %w", err)
	}
	return item, nil
}

func (r *repositoryImpl) DeleteItem(ctx context.Context, userId int, itemId int) error {
	query := `DELETE FROM weekly_plan_modules item
			  USING weekly_plans plan
			  WHERE plan.id = item.weekly_plan_id AND plan.user_id = $1 AND item.id = $2`
	result, err := r.db.Exec(ctx, query, userId, itemId)
	if err != nil {
		log.Errorf("failed to delete plan item %d: %v", itemId, err)
		return fmt.Errorf("could not delete plan item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrPlanItemNotFound
	}
	return nil
}
