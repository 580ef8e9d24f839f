package querybuilder

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-username/game-event-analytics/internal/models"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", value)
	require.NoError(t, err)
	return ts
}

func testPeriods(t *testing.T, n int) []models.TimePeriod {
	t.Helper()
	periods := make([]models.TimePeriod, 0, n)
	start := mustTime(t, "2024-01-01 00:00:00")
	for i := 0; i < n; i++ {
		periods = append(periods, models.TimePeriod{
			Start: start.AddDate(0, 0, i*14),
			End:   start.AddDate(0, 0, i*14+6).Add(23*time.Hour + 59*time.Minute + 59*time.Second),
		})
	}
	return periods
}

func TestTimeConditionClauseCount(t *testing.T) {
	tests := []struct {
		name    string
		periods int
		wantORs int
	}{
		{name: "single period", periods: 1, wantORs: 0},
		{name: "two periods", periods: 2, wantORs: 1},
		{name: "five periods", periods: 5, wantORs: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, params, err := timeCondition(testPeriods(t, tt.periods))
			require.NoError(t, err)

			assert.Equal(t, tt.wantORs, strings.Count(cond, " OR "))
			assert.Equal(t, tt.periods, strings.Count(cond, "created_day BETWEEN"))
			assert.Equal(t, tt.periods*4, len(params))

			// Well-formed for embedding: balanced parens, no dangling operator.
			assert.Equal(t, strings.Count(cond, "("), strings.Count(cond, ")"))
			assert.True(t, strings.HasPrefix(cond, "("))
			assert.True(t, strings.HasSuffix(cond, ")"))
			assert.False(t, strings.HasSuffix(strings.TrimRight(cond, ") "), "OR"))
		})
	}
}

func TestTimeConditionTwoPeriodsShape(t *testing.T) {
	cond, _, err := timeCondition(testPeriods(t, 2))
	require.NoError(t, err)

	// Exactly one OR joining exactly two parenthesized groups.
	inner := strings.TrimSuffix(strings.TrimPrefix(cond, "("), ")")
	groups := strings.Split(inner, " OR ")
	require.Len(t, groups, 2)
	for _, g := range groups {
		assert.True(t, strings.HasPrefix(g, "("))
		assert.True(t, strings.HasSuffix(g, ")"))
	}
}

func TestTimeConditionParameters(t *testing.T) {
	periods := []models.TimePeriod{{
		Start: mustTime(t, "2024-01-01 00:00:00"),
		End:   mustTime(t, "2024-01-07 23:59:59"),
	}}

	cond, params, err := timeCondition(periods)
	require.NoError(t, err)

	// Values never appear in the text, only placeholders.
	assert.NotContains(t, cond, "2024-01-01")
	assert.Contains(t, cond, "{p0_start_day:Date}")
	assert.Contains(t, cond, "{p0_end_day:Date}")
	assert.Contains(t, cond, "{p0_start:DateTime}")
	assert.Contains(t, cond, "{p0_end:DateTime}")
	assert.Len(t, params, 4)
}

func TestTimeConditionDeterminism(t *testing.T) {
	periods := testPeriods(t, 3)

	first, _, err := timeCondition(periods)
	require.NoError(t, err)
	second, _, err := timeCondition(periods)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTimeConditionEmpty(t *testing.T) {
	_, _, err := timeCondition(nil)
	require.Error(t, err)

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
