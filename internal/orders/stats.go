package orders

import (
	"math"

	"github.com/ariefcatur/nirmala-invitations/internal/catalog"
)

type Stats struct {
	TotalOrders     int `json:"total_orders"`
	PendingOrders   int `json:"pending_orders"`
	CompletedOrders int `json:"completed_orders"`
	DigitalOrders   int `json:"digital_orders"`
	PrintOrders     int `json:"print_orders"`
	TotalRevenue    int `json:"total_revenue"`
}

// Aggregate folds the ledger into back-office totals. Orders whose design is no
// longer in the catalog add nothing to revenue.
func Aggregate(orders []Order, cat *catalog.Catalog) Stats {
	var s Stats
	s.TotalOrders = len(orders)
	for _, o := range orders {
		switch o.Status {
		case StatusPending:
			s.PendingOrders++
		case StatusCompleted:
			s.CompletedOrders++
		}
		switch o.Channel {
		case catalog.ChannelDigital:
			s.DigitalOrders++
		case catalog.ChannelPrint:
			s.PrintOrders++
		}
		if e, ok := cat.FindByID(o.CatalogID); ok {
			s.TotalRevenue = addRevenue(s.TotalRevenue, PriceOf(&e, o.Draft))
		}
	}
	return s
}

// addRevenue saturates at math.MaxInt instead of wrapping negative.
func addRevenue(sum, p int) int {
	if p > math.MaxInt-sum {
		return math.MaxInt
	}
	return sum + p
}
