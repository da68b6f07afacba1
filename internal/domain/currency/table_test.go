package currency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConvertThroughUSD(t *testing.T) {
	tbl := NewTable()
	tbl.Replace(map[string]float64{"USD": 1, "EUR": 0.9}, time.Now())

	assert.Equal(t, 90.0, tbl.Convert(100, "USD", "EUR"))
	assert.InDelta(t, 111.1, tbl.Convert(100, "EUR", "USD"), 1e-9)
}

func TestConvertMissingRateFallsBackToIdentity(t *testing.T) {
	tbl := NewTable()
	tbl.Replace(map[string]float64{"USD": 1, "EUR": 0.9}, time.Now())

	assert.Equal(t, 100.0, tbl.Convert(100, "USD", "XYZ"))
	assert.Equal(t, 100.0, tbl.Convert(100, "XYZ", "USD"))
}

func TestConvertRoundsToOneDecimal(t *testing.T) {
	tbl := NewTable()
	tbl.Replace(map[string]float64{"USD": 1, "GBP": 0.7777}, time.Now())

	assert.Equal(t, 77.8, tbl.Convert(100, "USD", "GBP"))
}

func TestReplaceDropsBadRatesAndUppercases(t *testing.T) {
	tbl := NewTable()
	tbl.Replace(map[string]float64{"usd": 1, "bad": -1, "": 2}, time.Now())

	_, ok := tbl.Rate("USD")
	assert.True(t, ok)
	_, ok = tbl.Rate("bad")
	assert.False(t, ok)
	assert.Len(t, tbl.Snapshot(), 1)
}

func TestRateLookupIsCaseInsensitive(t *testing.T) {
	tbl := NewTable()
	tbl.Replace(map[string]float64{"EUR": 0.9}, time.Now())

	r, ok := tbl.Rate("eur")
	assert.True(t, ok)
	assert.Equal(t, 0.9, r)
}

func TestRefreshedAt(t *testing.T) {
	tbl := NewTable()
	assert.True(t, tbl.RefreshedAt().IsZero())

	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	tbl.Replace(map[string]float64{"USD": 1}, now)
	assert.Equal(t, now, tbl.RefreshedAt())
}
