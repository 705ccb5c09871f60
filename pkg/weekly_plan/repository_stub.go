package weekly_plan

import (
	"context"
	"sort"
	"sync"
	"time"
)

// StubRepository is an in-memory Repository implementation for tests.
type StubRepository struct {
	mu         sync.RWMutex
	plans      map[int]WeeklyPlan
	items      map[int]PlanItem
	nextPlanId int
	nextItemId int
	now        time.Time

	// Errs, when set, are returned verbatim by every method.
	Err error
}

func NewStubRepository() *StubRepository {
	return &StubRepository{
		plans:      make(map[int]WeeklyPlan),
		items:      make(map[int]PlanItem),
		nextPlanId: 1,
		nextItemId: 1,
		now:        time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func (r *StubRepository) GetPlan(ctx context.Context, userId int, week Week) (WeeklyPlan, error) {
	if r.Err != nil {
		return WeeklyPlan{}, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, plan := range r.plans {
		if plan.UserId == userId && plan.Week == week {
			return plan, nil
		}
	}
	return WeeklyPlan{}, ErrPlanNotFound
}

func (r *StubRepository) CreatePlan(ctx context.Context, userId int, week Week) (WeeklyPlan, error) {
	if r.Err != nil {
		return WeeklyPlan{}, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, plan := range r.plans {
		if plan.UserId == userId && plan.Week == week {
			return WeeklyPlan{}, ErrPlanAlreadyExists
		}
	}
	plan := WeeklyPlan{
		Id:        r.nextPlanId,
		UserId:    userId,
		Week:      week,
		CreatedAt: r.now,
	}
	r.plans[plan.Id] = plan
	r.nextPlanId++
	return plan, nil
}

func (r *StubRepository) ListItems(ctx context.Context, planId int) ([]PlanItem, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var items []PlanItem
	for _, item := range r.items {
		if item.PlanId == planId {
			items = append(items, item)
		}
	}
	sortItems(items)
	return items, nil
}

func (r *StubRepository) ListItemsForDay(ctx context.Context, planId int, day DayOfWeek) ([]PlanItem, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var items []PlanItem
	for _, item := range r.items {
		if item.PlanId == planId && item.Day == day {
			items = append(items, item)
		}
	}
	sortItems(items)
	return items, nil
}

func (r *StubRepository) AppendItem(
	ctx context.Context,
	planId int,
	day DayOfWeek,
	externalId string,
	itemType ItemType,
	orderIndex *int,
	notes string,
) (PlanItem, error) {
	if r.Err != nil {
		return PlanItem{}, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	index := 0
	if orderIndex != nil {
		index = *orderIndex
	} else {
		for _, item := range r.items {
			if item.PlanId == planId && item.Day == day && item.OrderIndex >= index {
				index = item.OrderIndex + 1
			}
		}
	}

	item := PlanItem{
		Id:         r.nextItemId,
		PlanId:     planId,
		ExternalId: externalId,
		Type:       itemType,
		Day:        day,
		OrderIndex: index,
		Notes:      notes,
		CreatedAt:  r.now,
		UpdatedAt:  r.now,
	}
	r.items[item.Id] = item
	r.nextItemId++
	return item, nil
}

func (r *StubRepository) GetItem(ctx context.Context, userId int, itemId int) (PlanItem, error) {
	if r.Err != nil {
		return PlanItem{}, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[itemId]
	if !ok || !r.ownedBy(item, userId) {
		return PlanItem{}, ErrPlanItemNotFound
	}
	return item, nil
}

func (r *StubRepository) UpdateItem(ctx context.Context, userId int, itemId int, update ItemUpdate) (PlanItem, error) {
	if r.Err != nil {
		return PlanItem{}, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemId]
	if !ok || !r.ownedBy(item, userId) {
		return PlanItem{}, ErrPlanItemNotFound
	}
	if update.OrderIndex != nil {
		item.OrderIndex = *update.OrderIndex
	}
	if update.Notes != nil {
		item.Notes = *update.Notes
	}
	item.UpdatedAt = r.now.Add(time.Minute)
	r.items[itemId] = item
	return item, nil
}

func (r *StubRepository) DeleteItem(ctx context.Context, userId int, itemId int) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemId]
	if !ok || !r.ownedBy(item, userId) {
		return ErrPlanItemNotFound
	}
	delete(r.items, itemId)
	return nil
}

func (r *StubRepository) ownedBy(item PlanItem, userId int) bool {
	plan, ok := r.plans[item.PlanId]
	return ok && plan.UserId == userId
}

func (r *StubRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans = make(map[int]WeeklyPlan)
	r.items = make(map[int]PlanItem)
	r.nextPlanId = 1
	r.nextItemId = 1
	r.Err = nil
}

func sortItems(items []PlanItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Day != items[j].Day {
			return items[i].Day < items[j].Day
		}
		if items[i].OrderIndex != items[j].OrderIndex {
			return items[i].OrderIndex < items[j].OrderIndex
		}
		return items[i].Id < items[j].Id
	})
}
