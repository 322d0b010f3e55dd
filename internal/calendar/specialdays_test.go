package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecialDayIndexAccumulates(t *testing.T) {
	xmas := Date{Year: 2024, Month: time.December, Day: 25}
	idx := NewSpecialDayIndex([]SpecialDay{
		{Date: xmas, Name: "Christmas", IsHoliday: true},
		{Date: Date{Year: 2024, Month: time.January, Day: 1}, Name: "New Year's Day", IsHoliday: true},
		{Date: xmas, Name: "Office Closure"},
	})

	require.Len(t, idx.Lookup(xmas), 2)
	assert.Equal(t, "Christmas, Office Closure", idx.Names(xmas))
	assert.True(t, idx.HasHoliday(xmas))
}

func TestSpecialDayIndexNonHoliday(t *testing.T) {
	d := Date{Year: 2024, Month: time.March, Day: 3}
	idx := NewSpecialDayIndex([]SpecialDay{{Date: d, Name: "Birthday"}})

	assert.False(t, idx.HasHoliday(d))
	assert.Equal(t, "Birthday", idx.Names(d))
}

func TestSpecialDayIndexExactDateOnly(t *testing.T) {
	idx := NewSpecialDayIndex([]SpecialDay{
		{Date: Date{Year: 2023, Month: time.December, Day: 25}, Name: "Christmas", IsHoliday: true},
	})
	d := Date{Year: 2024, Month: time.December, Day: 25}

	assert.Empty(t, idx.Names(d))
	assert.False(t, idx.HasHoliday(d))
}

func TestSpecialDayJSON(t *testing.T) {
	raw := `[{"date":"2024-12-25","name":"Christmas","is_holiday":true},{"date":"2024-12-24","name":"Eve","is_holiday":false}]`
	var days []SpecialDay
	require.NoError(t, json.Unmarshal([]byte(raw), &days))
	require.Len(t, days, 2)
	assert.Equal(t, Date{Year: 2024, Month: time.December, Day: 25}, days[0].Date)
	assert.True(t, days[0].IsHoliday)
	assert.False(t, days[1].IsHoliday)

	out, err := json.Marshal(days[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-12-25","name":"Christmas","is_holiday":true}`, string(out))
}

func TestSpecialDayJSONRejectsBadDate(t *testing.T) {
	var days []SpecialDay
	err := json.Unmarshal([]byte(`[{"date":"2024-13-01","name":"x","is_holiday":true}]`), &days)
	assert.Error(t, err)
}

func TestDateString(t *testing.T) {
	assert.Equal(t, "0001-01-01", Date{Year: 1, Month: time.January, Day: 1}.String())
	assert.Equal(t, "2024-02-29", Date{Year: 2024, Month: time.February, Day: 29}.String())
}
