package orders

import (
	"math"

	"github.com/ariefcatur/nirmala-invitations/internal/catalog"
)

// PriceOf returns the order total in Rupiah. 0 means "not computable": a nil entry,
// or a print quantity so large the total does not fit in an int.
//
// Print: UnitPrice covers the first 50 cards, every started extra batch of 50 costs
// another UnitPrice (51 cards = 2 batches).
func PriceOf(e *catalog.Entry, d Draft) int {
	total, _ := priceOf(e, d)
	return total
}

func priceOf(e *catalog.Entry, d Draft) (int, bool) {
	if e == nil {
		return 0, false
	}
	if e.Channel != catalog.ChannelPrint {
		return e.UnitPrice, true
	}
	extra := d.Quantity - PrintBatchSize
	if extra < 0 {
		extra = 0
	}
	batches := extra / PrintBatchSize
	if extra%PrintBatchSize != 0 {
		batches++
	}
	// batches+1 kali harga satuan harus muat di int
	if e.UnitPrice > 0 && batches >= math.MaxInt/e.UnitPrice {
		return 0, false
	}
	return (batches + 1) * e.UnitPrice, true
}
