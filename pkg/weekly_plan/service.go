package weekly_plan

import (
	"context"
	"errors"
	"fmt"

	"github.com/padelcoach/padelcoach/internal/utils"
	"github.com/padelcoach/padelcoach/pkg/content"
	"github.com/padelcoach/padelcoach/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// GetWeeklyPlan builds the full seven-day view for a week. A missing
	// plan yields an empty view, not an error. Store and catalog failures
	// are logged and degrade the view instead of propagating.
	GetWeeklyPlan(ctx context.Context, week Week) (WeeklyPlanView, error)
	// GetDayDetails builds the view for a single day of a week.
	GetDayDetails(ctx context.Context, week Week, day DayOfWeek) (DayView, error)
	// AddItemToDay appends a catalog item to a day, creating the plan
	// header lazily when the week has none yet.
	AddItemToDay(ctx context.Context, week Week, day DayOfWeek, externalId string, itemType ItemType, orderIndex *int, notes string) (PlanItem, error)
	UpdateItem(ctx context.Context, itemId int, update ItemUpdate) (PlanItem, error)
	RemoveItem(ctx context.Context, itemId int) error
	CurrentWeek() Week
}

type ServiceImpl struct {
	repo    Repository
	catalog content.Catalog
	clock   utils.Clock
}

func NewService(repo Repository, catalog content.Catalog, clock utils.Clock) Service {
	return &ServiceImpl{repo: repo, catalog: catalog, clock: clock}
}

func (s *ServiceImpl) CurrentWeek() Week {
	return CurrentWeek(s.clock)
}

func (s *ServiceImpl) GetWeeklyPlan(ctx context.Context, week Week) (WeeklyPlanView, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return WeeklyPlanView{}, fmt.Errorf("failed to get current user: %w", err)
	}

	plan, err := s.repo.GetPlan(ctx, userId, week)
	if err != nil {
		if !errors.Is(err, ErrPlanNotFound) {
			log.Errorf("failed to get weekly plan for %s: %v", week, err)
		}
		return s.emptyView(week), nil
	}

	items, err := s.repo.ListItems(ctx, plan.Id)
	if err != nil {
		log.Errorf("failed to list items of weekly plan %d: %v", plan.Id, err)
		return s.emptyView(week), nil
	}

	view := s.emptyView(week)
	view.Plan = &plan
	s.fillDays(ctx, view.Days, items)
	return view, nil
}

func (s *ServiceImpl) GetDayDetails(ctx context.Context, week Week, day DayOfWeek) (DayView, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return DayView{}, fmt.Errorf("failed to get current user: %w", err)
	}

	dayView := s.emptyDayView(week, day)

	plan, err := s.repo.GetPlan(ctx, userId, week)
	if err != nil {
		if !errors.Is(err, ErrPlanNotFound) {
			log.Errorf("failed to get weekly plan for %s: %v", week, err)
		}
		return dayView, nil
	}

	items, err := s.repo.ListItemsForDay(ctx, plan.Id, day)
	if err != nil {
		log.Errorf("failed to list items of weekly plan %d for day %d: %v", plan.Id, day, err)
		return dayView, nil
	}

	days := []DayView{dayView}
	s.fillDays(ctx, days, items)
	return days[0], nil
}

// fillDays resolves items against a catalog snapshot and distributes them
// over the given day views. Items keep the (day, order_index) ordering the
// repository query produced.
func (s *ServiceImpl) fillDays(ctx context.Context, days []DayView, items []PlanItem) {
	if len(items) == 0 {
		return
	}

	snapshot, err := content.NewSnapshot(ctx, s.catalog)
	if err != nil {
		// Degrade: items stay listed, unresolved entries render as
		// not-found placeholders downstream.
		log.Errorf("failed to fetch content catalog: %v", err)
		snapshot = content.EmptySnapshot()
	}

	byDay := make(map[DayOfWeek]int, len(days))
	for i, dayView := range days {
		byDay[dayView.Day] = i
	}

	for _, item := range items {
		i, ok := byDay[item.Day]
		if !ok {
			continue
		}
		itemView := PlanItemView{PlanItem: item}
		switch item.Type {
		case ModuleItem:
			itemView.Module = snapshot.Module(item.ExternalId)
		case ExerciseItem:
			itemView.Exercise = snapshot.Exercise(item.ExternalId)
		}
		days[i].Items = append(days[i].Items, itemView)
	}
}

func (s *ServiceImpl) emptyView(week Week) WeeklyPlanView {
	days := make([]DayView, 0, 7)
	for day := Monday; day <= Sunday; day++ {
		days = append(days, s.emptyDayView(week, day))
	}
	return WeeklyPlanView{
		Week:          week,
		StartDate:     week.Start(),
		EndDate:       week.End(),
		IsCurrentWeek: week == s.CurrentWeek(),
		Days:          days,
	}
}

func (s *ServiceImpl) emptyDayView(week Week, day DayOfWeek) DayView {
	date := week.DateOf(day)
	now := s.clock.Now()
	return DayView{
		Week:    week,
		Day:     day,
		Date:    date,
		IsToday: date.Year() == now.Year() && date.YearDay() == now.YearDay(),
		Items:   []PlanItemView{},
	}
}

func (s *ServiceImpl) AddItemToDay(
	ctx context.Context,
	week Week,
	day DayOfWeek,
	externalId string,
	itemType ItemType,
	orderIndex *int,
	notes string,
) (PlanItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return PlanItem{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if externalId == "" {
		return PlanItem{}, fmt.Errorf("item external id is required")
	}

	plan, err := s.repo.GetPlan(ctx, userId, week)
	if errors.Is(err, ErrPlanNotFound) {
		plan, err = s.repo.CreatePlan(ctx, userId, week)
	}
	if err != nil {
		// A concurrent session may have created the header between the
		// check and the create; that surfaces here as a generic failure.
		log.Errorf("failed to resolve weekly plan for %s: %v", week, err)
		return PlanItem{}, fmt.Errorf("failed to resolve weekly plan: %w", err)
	}

	item, err := s.repo.AppendItem(ctx, plan.Id, day, externalId, itemType, orderIndex, notes)
	if err != nil {
		log.Errorf("failed to append item to plan %d: %v", plan.Id, err)
		return PlanItem{}, fmt.Errorf("failed to append item: %w", err)
	}
	return item, nil
}

func (s *ServiceImpl) UpdateItem(ctx context.Context, itemId int, update ItemUpdate) (PlanItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return PlanItem{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if update.OrderIndex == nil && update.Notes == nil {
		return PlanItem{}, fmt.Errorf("no fields to update")
	}

	item, err := s.repo.UpdateItem(ctx, userId, itemId, update)
	if err != nil {
		if errors.Is(err, ErrPlanItemNotFound) {
			return PlanItem{}, ErrPlanItemNotFound
		}
		log.Errorf("failed to update plan item %d: %v", itemId, err)
		return PlanItem{}, err
	}
	return item, nil
}

func (s *ServiceImpl) RemoveItem(ctx context.Context, itemId int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteItem(ctx, userId, itemId)
}
