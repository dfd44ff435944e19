package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthDates_MondaysOfMarch2025(t *testing.T) {
	dates := MonthDates(2025, time.March, time.Monday)

	assert.Equal(t, []string{
		"2025-03-03",
		"2025-03-10",
		"2025-03-17",
		"2025-03-24",
		"2025-03-31",
	}, dates)
}

func TestMonthDates_February(t *testing.T) {
	// fevereiro de 2024 é bissexto: 29 dias, cinco quintas
	dates := MonthDates(2024, time.February, time.Thursday)
	require.Len(t, dates, 5)
	assert.Equal(t, "2024-02-01", dates[0])
	assert.Equal(t, "2024-02-29", dates[4])
}

func TestMonthDates_AllInRequestedWeekday(t *testing.T) {
	dates := MonthDates(2025, time.July, time.Sunday)
	for _, d := range dates {
		parsed, err := time.Parse(DateLayout, d)
		require.NoError(t, err)
		assert.Equal(t, time.Sunday, parsed.Weekday())
	}
}

func TestNextMonth(t *testing.T) {
	year, month := NextMonth(2025, time.March)
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.April, month)
}

func TestNextMonth_DecemberWrapsYear(t *testing.T) {
	year, month := NextMonth(2025, time.December)
	assert.Equal(t, 2026, year)
	assert.Equal(t, time.January, month)
}

func TestCombineDateTime(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	got, err := CombineDateTime("2025-03-10", "09:30", loc)
	require.NoError(t, err)

	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 10, got.Day())
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, loc, got.Location())
}

func TestCombineDateTime_Invalid(t *testing.T) {
	_, err := CombineDateTime("10/03/2025", "09:30", time.UTC)
	assert.Error(t, err)

	_, err = CombineDateTime("2025-03-10", "9h30", time.UTC)
	assert.Error(t, err)
}
