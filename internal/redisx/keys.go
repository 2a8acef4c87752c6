package redisx

import "time"

const (
	// Cache status order: order_status:{order_id} -> {"id": "...", "status": "..."}
	KeyOrderStatus = "order_status:%s"

	// Sesi admin back-office: session:admin:{token} -> username
	KeyAdminSession = "session:admin:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLStatusCache = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
)
