package orders

const (
	TopicOrderSubmitted     = "invitation.order.submitted"
	TopicOrderStatusChanged = "invitation.order.status_changed"
)

// Partition key = order id, supaya semua event 1 order maintain urutan.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
