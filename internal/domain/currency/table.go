package currency

import (
	"math"
	"strings"
	"sync"
	"time"
)

// BaseCurrency is the implicit hub for two-hop conversion.
const BaseCurrency = "USD"

// Table is a cached exchange-rate table keyed by currency code, each rate
// expressed against USD. It is replaced wholesale on refresh and read
// concurrently by price-rendering handlers, hence the RWMutex.
type Table struct {
	mu        sync.RWMutex
	rates     map[string]float64
	refreshed time.Time
}

func NewTable() *Table {
	return &Table{rates: map[string]float64{}}
}

// Replace swaps in a new rate set. Codes are upper-cased; non-positive rates
// are dropped.
func (t *Table) Replace(rates map[string]float64, now time.Time) {
	if t == nil {
		return
	}
	clean := make(map[string]float64, len(rates))
	for code, rate := range rates {
		c := strings.ToUpper(strings.TrimSpace(code))
		if c == "" || rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			continue
		}
		clean[c] = rate
	}

	t.mu.Lock()
	t.rates = clean
	t.refreshed = now
	t.mu.Unlock()
}

// Rate returns the rate-vs-USD for code.
func (t *Table) Rate(code string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rates[strings.ToUpper(strings.TrimSpace(code))]
	return r, ok
}

// Convert converts amount from one currency to another by normalizing
// through USD, rounded to one decimal place. If either rate is missing the
// amount is returned unchanged (identity fallback — display code prefers a
// wrong-currency figure over an error).
func (t *Table) Convert(amount float64, from, to string) float64 {
	rf, okf := t.Rate(from)
	rt, okt := t.Rate(to)
	if !okf || !okt {
		return amount
	}
	converted := amount / rf * rt
	return math.Round(converted*10) / 10
}

// RefreshedAt reports when the table was last replaced (zero if never).
func (t *Table) RefreshedAt() time.Time {
	if t == nil {
		return time.Time{}
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.refreshed
}

// Snapshot returns a copy of the current rates for serving.
func (t *Table) Snapshot() map[string]float64 {
	if t == nil {
		return map[string]float64{}
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]float64, len(t.rates))
	for k, v := range t.rates {
		out[k] = v
	}
	return out
}
