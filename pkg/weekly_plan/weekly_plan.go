package weekly_plan

import (
	"fmt"
	"time"

	"github.com/padelcoach/padelcoach/pkg/content"
)

// ItemType says which catalog a plan item's external id points at.
type ItemType string

const (
	ModuleItem   ItemType = "module"
	ExerciseItem ItemType = "exercise"
)

// ParseItemType validates the wire representation of an item type.
func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ModuleItem, ExerciseItem:
		return ItemType(s), nil
	}
	return "", fmt.Errorf("invalid item type: %q (must be %q or %q)", s, ModuleItem, ExerciseItem)
}

// WeeklyPlan is the per-(user, year, week) container row. It is created
// lazily when the first item is added to a week and never deleted.
type WeeklyPlan struct {
	Id        int
	UserId    int
	Week      Week
	CreatedAt time.Time
}

// PlanItem is one scheduled occurrence of a module or exercise on a
// specific day of a weekly plan.
type PlanItem struct {
	Id         int
	PlanId     int
	ExternalId string
	Type       ItemType
	Day        DayOfWeek
	// OrderIndex is a display-order hint within (plan, day). It is not
	// unique; ties are broken by insertion order.
	OrderIndex int
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ItemUpdate carries the mutable fields of a plan item. Nil fields are
// left untouched.
type ItemUpdate struct {
	OrderIndex *int
	Notes      *string
}

// PlanItemView is a PlanItem enriched with its resolved catalog entry.
// Module and Exercise stay nil when the external id does not resolve,
// so the UI can render a not-found placeholder instead of failing.
type PlanItemView struct {
	PlanItem
	Module   *content.Module
	Exercise *content.Exercise
}

// DayView is the view model for a single day of a weekly plan.
type DayView struct {
	Week    Week
	Day     DayOfWeek
	Date    time.Time
	IsToday bool
	Items   []PlanItemView
}

// WeeklyPlanView is the view model for a full week. Plan is nil when no
// plan exists yet; Days always holds the seven requested dates.
type WeeklyPlanView struct {
	Plan          *WeeklyPlan
	Week          Week
	StartDate     time.Time
	EndDate       time.Time
	IsCurrentWeek bool
	Days          []DayView
}
