package orders

import (
	"math"
	"testing"

	"github.com/ariefcatur/nirmala-invitations/internal/catalog"
	"github.com/stretchr/testify/assert"
)

func TestPriceOfPrintBatches(t *testing.T) {
	e := &catalog.Entry{ID: "2", Channel: catalog.ChannelPrint, UnitPrice: 100000}
	cases := []struct {
		qty  int
		want int
	}{
		{50, 100000},
		{51, 200000},
		{100, 200000},
		{101, 300000},
		{120, 300000},
		{10, 100000}, // below minimum still prices one batch
	}
	for _, c := range cases {
		assert.Equal(t, c.want, PriceOf(e, Draft{Channel: catalog.ChannelPrint, Quantity: c.qty}), "qty=%d", c.qty)
	}
}

func TestPriceOfPrintMatchesBatchFormula(t *testing.T) {
	e := &catalog.Entry{Channel: catalog.ChannelPrint, UnitPrice: 120000}
	for q := 50; q <= 1000; q++ {
		batches := 1 + (q-50+49)/50
		assert.Equal(t, e.UnitPrice*batches, PriceOf(e, Draft{Quantity: q}))
	}
}

func TestPriceOfDigitalIgnoresQuantity(t *testing.T) {
	e := &catalog.Entry{ID: "1", Channel: catalog.ChannelDigital, UnitPrice: 150000}
	for _, q := range []int{0, 1, 999} {
		assert.Equal(t, 150000, PriceOf(e, Draft{Quantity: q}))
	}
}

func TestPriceOfAbsentEntry(t *testing.T) {
	assert.Equal(t, 0, PriceOf(nil, Draft{Quantity: 500}))
}

func TestPriceOfHugeQuantityIsNotComputable(t *testing.T) {
	e := &catalog.Entry{ID: "2", Channel: catalog.ChannelPrint, UnitPrice: 100000}
	for _, q := range []int{math.MaxInt, math.MaxInt - 10, math.MaxInt / 2} {
		assert.Equal(t, 0, PriceOf(e, Draft{Channel: catalog.ChannelPrint, Quantity: q}), "qty=%d", q)
	}

	// the largest quantity that still fits prices positive
	last := (math.MaxInt / e.UnitPrice) * PrintBatchSize
	total := PriceOf(e, Draft{Channel: catalog.ChannelPrint, Quantity: last})
	assert.Equal(t, (math.MaxInt/e.UnitPrice)*e.UnitPrice, total)
	assert.Equal(t, 0, PriceOf(e, Draft{Channel: catalog.ChannelPrint, Quantity: last + 1}))
}

func TestAddRevenueSaturates(t *testing.T) {
	assert.Equal(t, 300, addRevenue(100, 200))
	assert.Equal(t, math.MaxInt, addRevenue(math.MaxInt-5, 10))
}
