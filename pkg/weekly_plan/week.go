package weekly_plan

import (
	"fmt"
	"time"

	"github.com/padelcoach/padelcoach/internal/utils"
)

// DayOfWeek is an ISO-8601 day number: 1 = Monday ... 7 = Sunday.
type DayOfWeek int

const (
	Monday DayOfWeek = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// lastTrainingDay is the last day of the Mon-Fri training window used by
// day navigation. Saturday and Sunday stay addressable as plan data but
// are skipped when stepping between days.
const lastTrainingDay = Friday

// NewDayOfWeek validates an ISO day number.
func NewDayOfWeek(day int) (DayOfWeek, error) {
	if day < int(Monday) || day > int(Sunday) {
		return 0, fmt.Errorf("invalid day of week: %d (must be between 1 and 7)", day)
	}
	return DayOfWeek(day), nil
}

var dayLabels = map[DayOfWeek]string{
	Monday:    "Segunda-feira",
	Tuesday:   "Terça-feira",
	Wednesday: "Quarta-feira",
	Thursday:  "Quinta-feira",
	Friday:    "Sexta-feira",
	Saturday:  "Sábado",
	Sunday:    "Domingo",
}

// Label returns the user-facing name of the day.
func (d DayOfWeek) Label() string {
	return dayLabels[d]
}

// Week identifies one ISO-8601 week: weeks start on Monday and week 1 is
// the week containing the year's first Thursday.
type Week struct {
	Year   int
	Number int
}

// NewWeek validates the (year, number) pair. The week number must exist in
// the given year, so week 53 is rejected for 52-week years.
func NewWeek(year int, number int) (Week, error) {
	if year < 1 {
		return Week{}, fmt.Errorf("invalid year: %d", year)
	}
	if max := WeeksInYear(year); number < 1 || number > max {
		return Week{}, fmt.Errorf("invalid week number: %d (year %d has %d weeks)", number, year, max)
	}
	return Week{Year: year, Number: number}, nil
}

// WeekFromDate returns the ISO week containing the given date.
func WeekFromDate(date time.Time) Week {
	year, number := date.ISOWeek()
	return Week{Year: year, Number: number}
}

// CurrentWeek returns the ISO week containing the clock's current time.
func CurrentWeek(clock utils.Clock) Week {
	return WeekFromDate(clock.Now())
}

// WeeksInYear returns the number of ISO weeks (52 or 53) in the given year.
// December 28th always falls in the year's last ISO week.
func WeeksInYear(year int) int {
	_, number := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return number
}

// Start returns the Monday of the week. Week 1's Monday is found from
// January 4th, which always belongs to ISO week 1.
func (w Week) Start() time.Time {
	jan4 := time.Date(w.Year, time.January, 4, 0, 0, 0, 0, time.UTC)
	isoDay := int(jan4.Weekday())
	if isoDay == 0 {
		isoDay = 7
	}
	week1Monday := jan4.AddDate(0, 0, 1-isoDay)
	return week1Monday.AddDate(0, 0, (w.Number-1)*7)
}

// End returns the Sunday of the week.
func (w Week) End() time.Time {
	return w.Start().AddDate(0, 0, 6)
}

// DateOf returns the calendar date of the given day within the week.
func (w Week) DateOf(day DayOfWeek) time.Time {
	return w.Start().AddDate(0, 0, int(day)-1)
}

// Contains reports whether the given date falls inside the week.
func (w Week) Contains(date time.Time) bool {
	return WeekFromDate(date) == w
}

// Previous returns the week before w, rolling into the last ISO week of
// the previous year when w is week 1.
func (w Week) Previous() Week {
	if w.Number == 1 {
		return Week{Year: w.Year - 1, Number: WeeksInYear(w.Year - 1)}
	}
	return Week{Year: w.Year, Number: w.Number - 1}
}

// Next returns the week after w, rolling into week 1 of the next year
// when w is the year's last ISO week.
func (w Week) Next() Week {
	if w.Number == WeeksInYear(w.Year) {
		return Week{Year: w.Year + 1, Number: 1}
	}
	return Week{Year: w.Year, Number: w.Number + 1}
}

// PreviousTrainingDay steps one day back within the Mon-Fri training
// window: Monday goes to Friday of the previous week.
func (w Week) PreviousTrainingDay(day DayOfWeek) (Week, DayOfWeek) {
	if day <= Monday {
		return w.Previous(), lastTrainingDay
	}
	return w, day - 1
}

// NextTrainingDay steps one day forward within the Mon-Fri training
// window: Friday goes to Monday of the next week.
func (w Week) NextTrainingDay(day DayOfWeek) (Week, DayOfWeek) {
	if day >= lastTrainingDay {
		return w.Next(), Monday
	}
	return w, day + 1
}

// String returns the ISO week format ISO 8601 e.g. "2025-W03"
func (w Week) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Number)
}
