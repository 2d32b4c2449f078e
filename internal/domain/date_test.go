package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("15-01-2026")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.January, 15), d)
}

func TestParseDateRejectsISO(t *testing.T) {
	_, err := ParseDate("2026-01-15")
	assert.Error(t, err)
}

func TestDateStringRoundTrip(t *testing.T) {
	d := NewDate(2026, time.March, 2)
	assert.Equal(t, "02-03-2026", d.String())

	back, err := ParseDate(d.String())
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		CheckIn Date `json:"checkInDate"`
	}

	b, err := json.Marshal(payload{CheckIn: NewDate(2026, time.January, 10)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"checkInDate":"10-01-2026"}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"checkInDate":"12-01-2026"}`), &p))
	assert.Equal(t, NewDate(2026, time.January, 12), p.CheckIn)
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2026, time.January, 10)
	b := NewDate(2026, time.January, 12)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
}

func TestDateAddDaysCrossesMonth(t *testing.T) {
	d := NewDate(2026, time.January, 30)
	assert.Equal(t, NewDate(2026, time.February, 2), d.AddDays(3))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2026, time.January, 15, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, NewDate(2026, time.January, 15), d)

	require.NoError(t, d.Scan("2026-02-20"))
	assert.Equal(t, NewDate(2026, time.February, 20), d)

	assert.Error(t, d.Scan(42))
}

func TestDateValue(t *testing.T) {
	v, err := NewDate(2026, time.January, 15).Value()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), v)
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	d := DateOf(time.Date(2026, time.January, 15, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, NewDate(2026, time.January, 15), d)
}
