package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	currencydom "straightenup/internal/domain/currency"
)

var ErrCurrencyInvalidArgument = errors.New("currency_usecase: invalid argument")

// RateSource is the outbound port for the exchange-rate service.
type RateSource interface {
	// FetchRates returns the full rate-vs-USD table.
	FetchRates(ctx context.Context) (map[string]float64, error)
}

// CurrencyUsecase owns the cached rate table. Refresh failures keep the
// previous table; conversion callers are never told the rates are stale.
type CurrencyUsecase struct {
	table  *currencydom.Table
	source RateSource
	clock  Clock
}

func NewCurrencyUsecase(source RateSource) *CurrencyUsecase {
	return &CurrencyUsecase{
		table:  currencydom.NewTable(),
		source: source,
		clock:  systemClock{},
	}
}

// NewCurrencyUsecaseWithClock is useful for tests.
func NewCurrencyUsecaseWithClock(source RateSource, clock Clock) *CurrencyUsecase {
	uc := NewCurrencyUsecase(source)
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// Refresh replaces the whole table from the external source. On transport
// failure the previous table stays untouched and the failure is only logged.
func (uc *CurrencyUsecase) Refresh(ctx context.Context) {
	if uc.source == nil {
		return
	}
	rates, err := uc.source.FetchRates(ctx)
	if err != nil {
		log.Printf("[currency_usecase] rate refresh failed err=%v (keeping previous table)", err)
		return
	}
	uc.table.Replace(rates, uc.clock.Now())
	log.Printf("[currency_usecase] rates refreshed count=%d", len(rates))
}

// Convert converts through USD; missing rates fall back to the input amount.
func (uc *CurrencyUsecase) Convert(amount float64, from, to string) (float64, error) {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return 0, ErrCurrencyInvalidArgument
	}
	return uc.table.Convert(amount, from, to), nil
}

// Rates returns the current table snapshot for serving.
func (uc *CurrencyUsecase) Rates() map[string]float64 {
	return uc.table.Snapshot()
}
