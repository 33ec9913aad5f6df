// test/benchmarks/helpers.go
package benchmarks

import (
	"io"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/ammerola/resell-pos/internal/core/domain"
)

// quietLogger discards output so logging cost stays out of the numbers
func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// reservationSet builds n lines over variants 1..n with a repeated variant
// every tenth line, the shape a long checkout ticket usually has.
func reservationSet(n int) domain.ReservationSet {
	set := make(domain.ReservationSet, 0, n)
	for i := 1; i <= n; i++ {
		id := domain.VariantID(i)
		if i%10 == 0 {
			id = domain.VariantID(i - 1)
		}
		set = append(set, domain.ReservationLine{
			VariantID: id,
			Quantity:  1 + i%3,
			UnitPrice: decimal.NewFromFloat(9.99),
		})
	}
	return set
}

// stockFor seeds enough units for every variant in set
func stockFor(set domain.ReservationSet, plenty int) map[domain.VariantID]int {
	levels := make(map[domain.VariantID]int, len(set))
	for _, line := range set {
		levels[line.VariantID] = plenty
	}
	return levels
}
