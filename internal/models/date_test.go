package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	item := InventoryItem{ID: "1", Name: "豆腐", ExpiryDate: &Date{Year: 2024, Month: time.March, Day: 5}}
	data, err := json.Marshal(item)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"expiry_date":"2024-03-05"`)

	var decoded InventoryItem
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.ExpiryDate)
	assert.Equal(t, *item.ExpiryDate, *decoded.ExpiryDate)

	var bad InventoryItem
	assert.Error(t, json.Unmarshal([]byte(`{"expiry_date":"03/05/2024"}`), &bad))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-12-31"))
	assert.Equal(t, "2024-12-31", d.String())

	require.NoError(t, d.Scan([]byte("2025-01-02T00:00:00Z")))
	assert.Equal(t, "2025-01-02", d.String())

	require.NoError(t, d.Scan(time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-02-03", d.String())

	assert.Error(t, d.Scan(42))
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2024, time.February, 28)
	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, 2, d.AddDays(2).DaysSince(d))
	assert.Equal(t, -2, d.DaysSince(d.AddDays(2)))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, Date{}.IsZero())
}

func TestRecipeHasTag(t *testing.T) {
	r := Recipe{Tags: []string{"快手", " Vegan "}}
	assert.True(t, r.HasTag("vegan"))
	assert.True(t, r.HasTag("快手"))
	assert.False(t, r.HasTag("甜点"))
}
