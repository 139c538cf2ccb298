package app_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactdir/internal/contacts/app"
	"contactdir/internal/contacts/domain/entities"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDaysUntilBirthday(t *testing.T) {
	tests := []struct {
		name     string
		birthday time.Time
		today    time.Time
		expected int
	}{
		{
			name:     "birthday later this year",
			birthday: date(1990, time.June, 15),
			today:    date(2024, time.June, 10),
			expected: 5,
		},
		{
			name:     "birthday today",
			birthday: date(1990, time.June, 10),
			today:    date(2024, time.June, 10),
			expected: 0,
		},
		{
			name:     "birthday already passed rolls to next year",
			birthday: date(1990, time.June, 1),
			today:    date(2024, time.June, 10),
			expected: 356,
		},
		{
			name:     "time of day is ignored",
			birthday: date(1990, time.June, 15),
			today:    time.Date(2024, time.June, 10, 23, 59, 59, 0, time.UTC),
			expected: 5,
		},
		{
			name:     "february 29 clamps to february 28 in non-leap years",
			birthday: date(1992, time.February, 29),
			today:    date(2023, time.February, 25),
			expected: 3,
		},
		{
			name:     "february 29 keeps its day in leap years",
			birthday: date(1992, time.February, 29),
			today:    date(2024, time.February, 25),
			expected: 4,
		},
		{
			name:     "year boundary rollover",
			birthday: date(1990, time.January, 2),
			today:    date(2024, time.December, 31),
			expected: 2,
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			assert.Equal(t, ttt.expected, app.DaysUntilBirthday(ttt.birthday, ttt.today))
		})
	}
}

func TestFilterUpcomingBirthdays(t *testing.T) {
	today := date(2024, time.June, 10)

	within := &entities.Contact{ID: 1, Birthday: date(1990, time.June, 15)}
	onBoundary := &entities.Contact{ID: 2, Birthday: date(1985, time.June, 17)}
	outside := &entities.Contact{ID: 3, Birthday: date(1970, time.June, 18)}
	todayContact := &entities.Contact{ID: 4, Birthday: date(2000, time.June, 10)}
	passed := &entities.Contact{ID: 5, Birthday: date(1995, time.June, 1)}

	contacts := []*entities.Contact{within, onBoundary, outside, todayContact, passed}

	t.Run("window boundary is inclusive", func(t *testing.T) {
		upcoming := app.FilterUpcomingBirthdays(7, today, contacts)

		require.Len(t, upcoming, 3)
		assert.Contains(t, upcoming, within)
		assert.Contains(t, upcoming, onBoundary)
		assert.Contains(t, upcoming, todayContact)
	})

	t.Run("zero shift matches only today", func(t *testing.T) {
		upcoming := app.FilterUpcomingBirthdays(0, today, contacts)

		require.Len(t, upcoming, 1)
		assert.Equal(t, todayContact, upcoming[0])
	})

	t.Run("large shift wraps past birthdays into next year", func(t *testing.T) {
		upcoming := app.FilterUpcomingBirthdays(360, today, contacts)

		assert.Len(t, upcoming, 5)
	})

	t.Run("empty input yields empty non-nil slice", func(t *testing.T) {
		upcoming := app.FilterUpcomingBirthdays(7, today, nil)

		require.NotNil(t, upcoming)
		assert.Empty(t, upcoming)
	})
}
