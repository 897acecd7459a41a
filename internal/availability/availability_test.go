package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	base := Interval{Start: day(10), End: day(12)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", Interval{day(10), day(12)}, true},
		{"partial overlap right", Interval{day(11), day(13)}, true},
		{"partial overlap left", Interval{day(9), day(11)}, true},
		{"contained", Interval{day(10), day(11)}, true},
		{"containing", Interval{day(8), day(14)}, true},
		{"touching at check-out", Interval{day(12), day(14)}, false},
		{"touching at check-in", Interval{day(8), day(10)}, false},
		{"disjoint", Interval{day(20), day(22)}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}

func TestBookedUnits(t *testing.T) {
	claims := []Claim{
		{Interval{day(10), day(12)}, 3},
		{Interval{day(12), day(14)}, 2}, // starts on the requested check-out day
		{Interval{day(11), day(13)}, 1},
	}
	assert.Equal(t, 4, BookedUnits(claims, Interval{day(10), day(12)}))
	assert.Equal(t, 0, BookedUnits(nil, Interval{day(10), day(12)}))
}

func TestEvaluate(t *testing.T) {
	t.Run("enough units", func(t *testing.T) {
		r := Evaluate(1, "Deluxe Room", 5, 3, 2, false)
		assert.True(t, r.OK)
		assert.Equal(t, 2, r.AvailableUnits)
		assert.Equal(t, 3, r.BookedUnits)
	})

	t.Run("not enough units", func(t *testing.T) {
		r := Evaluate(1, "Deluxe Room", 5, 3, 3, false)
		assert.False(t, r.OK)
		assert.Equal(t, 2, r.AvailableUnits)
	})

	t.Run("overbooked reports zero not negative", func(t *testing.T) {
		r := Evaluate(1, "Deluxe Room", 5, 7, 1, false)
		assert.False(t, r.OK)
		assert.Equal(t, 0, r.AvailableUnits)
	})

	t.Run("zero requested is invalid", func(t *testing.T) {
		r := Evaluate(1, "Deluxe Room", 5, 0, 0, false)
		assert.False(t, r.OK)
	})

	t.Run("exclusive free", func(t *testing.T) {
		r := Evaluate(2, "Function Hall", 1, 0, 1, true)
		assert.True(t, r.OK)
		assert.Equal(t, 1, r.AvailableUnits)
	})

	t.Run("exclusive with any overlap", func(t *testing.T) {
		r := Evaluate(2, "Function Hall", 1, 1, 1, true)
		assert.False(t, r.OK)
		assert.Equal(t, 0, r.AvailableUnits)
	})
}

func TestValidateWindow(t *testing.T) {
	today := day(1)

	t.Run("within all limits", func(t *testing.T) {
		assert.NoError(t, ValidateWindow(3, day(5), 1, 7, 90, today))
	})

	t.Run("zero limits are unlimited", func(t *testing.T) {
		assert.NoError(t, ValidateWindow(365, day(5).AddDate(2, 0, 0), 0, 0, 0, today))
	})

	t.Run("too short", func(t *testing.T) {
		err := ValidateWindow(1, day(5), 2, 7, 0, today)
		var re *RuleError
		assert.ErrorAs(t, err, &re)
		assert.Equal(t, "min_days", re.Rule)
		assert.Equal(t, 2, re.Limit)
	})

	t.Run("too long names the limit", func(t *testing.T) {
		err := ValidateWindow(8, day(5), 1, 7, 0, today)
		var re *RuleError
		assert.ErrorAs(t, err, &re)
		assert.Equal(t, "max_days", re.Rule)
		assert.Contains(t, re.Error(), "7")
	})

	t.Run("beyond advance horizon", func(t *testing.T) {
		err := ValidateWindow(2, today.AddDate(0, 0, 91), 1, 7, 90, today)
		var re *RuleError
		assert.ErrorAs(t, err, &re)
		assert.Equal(t, "advance_days", re.Rule)
	})

	t.Run("on the advance horizon", func(t *testing.T) {
		assert.NoError(t, ValidateWindow(2, today.AddDate(0, 0, 90), 1, 7, 90, today))
	})
}
