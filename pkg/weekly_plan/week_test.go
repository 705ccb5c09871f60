package weekly_plan

import (
	"testing"
	"time"

	"github.com/padelcoach/padelcoach/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeek(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		number  int
		wantErr bool
	}{
		{name: "first week of the year", year: 2025, number: 1},
		{name: "last week of a 52-week year", year: 2025, number: 52},
		{name: "week 53 of a 53-week year", year: 2020, number: 53},
		{name: "week 53 of a 52-week year", year: 2025, number: 53, wantErr: true},
		{name: "week zero", year: 2025, number: 0, wantErr: true},
		{name: "week far out of range", year: 2025, number: 60, wantErr: true},
		{name: "negative week", year: 2025, number: -1, wantErr: true},
		{name: "year zero", year: 0, number: 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week, err := NewWeek(tt.year, tt.number)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.year, week.Year)
			assert.Equal(t, tt.number, week.Number)
		})
	}
}

func TestWeeksInYear(t *testing.T) {
	assert.Equal(t, 53, WeeksInYear(2020))
	assert.Equal(t, 52, WeeksInYear(2021))
	assert.Equal(t, 52, WeeksInYear(2024))
	assert.Equal(t, 52, WeeksInYear(2025))
	assert.Equal(t, 53, WeeksInYear(2026))
}

func TestWeek_StartAndEnd(t *testing.T) {
	tests := []struct {
		name      string
		week      Week
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "week in the middle of the year",
			week:      Week{Year: 2025, Number: 3},
			wantStart: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "week 1 starting in the previous calendar year",
			week:      Week{Year: 2025, Number: 1},
			wantStart: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "week 1 starting on January 1st",
			week:      Week{Year: 2024, Number: 1},
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "week 53 of a long year",
			week:      Week{Year: 2020, Number: 53},
			wantStart: time.Date(2020, 12, 28, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := tt.week.Start()
			end := tt.week.End()

			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
			assert.Equal(t, time.Monday, start.Weekday())
			assert.Equal(t, time.Sunday, end.Weekday())
			assert.Equal(t, 6*24*time.Hour, end.Sub(start))
		})
	}
}

func TestWeek_RoundTripsThroughItsOwnDates(t *testing.T) {
	for year := 2019; year <= 2027; year++ {
		for number := 1; number <= WeeksInYear(year); number++ {
			week := Week{Year: year, Number: number}
			assert.Equal(t, week, WeekFromDate(week.Start()), "start of %s", week)
			assert.Equal(t, week, WeekFromDate(week.End()), "end of %s", week)
			assert.True(t, week.Contains(week.DateOf(Wednesday)))
		}
	}
}

func TestWeek_PreviousAndNext(t *testing.T) {
	tests := []struct {
		name string
		week Week
		prev Week
		next Week
	}{
		{
			name: "middle of the year",
			week: Week{Year: 2025, Number: 10},
			prev: Week{Year: 2025, Number: 9},
			next: Week{Year: 2025, Number: 11},
		},
		{
			name: "week 1 rolls back into previous year",
			week: Week{Year: 2024, Number: 1},
			prev: Week{Year: 2023, Number: 52},
			next: Week{Year: 2024, Number: 2},
		},
		{
			name: "last week rolls forward into next year",
			week: Week{Year: 2023, Number: 52},
			prev: Week{Year: 2023, Number: 51},
			next: Week{Year: 2024, Number: 1},
		},
		{
			name: "week 1 after a 53-week year",
			week: Week{Year: 2021, Number: 1},
			prev: Week{Year: 2020, Number: 53},
			next: Week{Year: 2021, Number: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.prev, tt.week.Previous())
			assert.Equal(t, tt.next, tt.week.Next())

			// prev and next are inverse operations
			assert.Equal(t, tt.week, tt.week.Previous().Next())
			assert.Equal(t, tt.week, tt.week.Next().Previous())
		})
	}
}

func TestWeek_TrainingDayNavigation(t *testing.T) {
	week := Week{Year: 2025, Number: 10}

	t.Run("steps through the Mon-Fri window", func(t *testing.T) {
		nextWeek, nextDay := week.NextTrainingDay(Tuesday)
		assert.Equal(t, week, nextWeek)
		assert.Equal(t, Wednesday, nextDay)

		prevWeek, prevDay := week.PreviousTrainingDay(Thursday)
		assert.Equal(t, week, prevWeek)
		assert.Equal(t, Wednesday, prevDay)
	})

	t.Run("Friday wraps to Monday of the next week", func(t *testing.T) {
		nextWeek, nextDay := week.NextTrainingDay(Friday)
		assert.Equal(t, week.Next(), nextWeek)
		assert.Equal(t, Monday, nextDay)
	})

	t.Run("Monday wraps to Friday of the previous week", func(t *testing.T) {
		prevWeek, prevDay := week.PreviousTrainingDay(Monday)
		assert.Equal(t, week.Previous(), prevWeek)
		assert.Equal(t, Friday, prevDay)
	})

	t.Run("weekend days re-enter the window", func(t *testing.T) {
		nextWeek, nextDay := week.NextTrainingDay(Saturday)
		assert.Equal(t, week.Next(), nextWeek)
		assert.Equal(t, Monday, nextDay)

		prevWeek, prevDay := week.PreviousTrainingDay(Sunday)
		assert.Equal(t, week, prevWeek)
		assert.Equal(t, Saturday, prevDay)
	})

	t.Run("a full forward cycle visits five days per week", func(t *testing.T) {
		current, day := week, Monday
		for i := 0; i < 5; i++ {
			current, day = current.NextTrainingDay(day)
		}
		assert.Equal(t, week.Next(), current)
		assert.Equal(t, Monday, day)
	})
}

func TestCurrentWeek(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)}

	week := CurrentWeek(clock)

	assert.Equal(t, Week{Year: 2025, Number: 3}, week)
}

func TestNewDayOfWeek(t *testing.T) {
	for day := 1; day <= 7; day++ {
		parsed, err := NewDayOfWeek(day)
		require.NoError(t, err)
		assert.Equal(t, DayOfWeek(day), parsed)
	}

	_, err := NewDayOfWeek(0)
	assert.Error(t, err)
	_, err = NewDayOfWeek(8)
	assert.Error(t, err)
}

func TestDayOfWeek_Label(t *testing.T) {
	assert.Equal(t, "Segunda-feira", Monday.Label())
	assert.Equal(t, "Sexta-feira", Friday.Label())
	assert.Equal(t, "Domingo", Sunday.Label())
}

func TestWeek_String(t *testing.T) {
	assert.Equal(t, "2025-W03", Week{Year: 2025, Number: 3}.String())
	assert.Equal(t, "2020-W53", Week{Year: 2020, Number: 53}.String())
}
