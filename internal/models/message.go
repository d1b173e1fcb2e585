package models

import "time"

// StatusUpdateMessage represents a status update notification
type StatusUpdateMessage struct {
	OrderID      int64     `json:"order_id"`
	TableNumber  int       `json:"table_number"`
	CustomerName string    `json:"customer_name"`
	OldStatus    string    `json:"old_status"`
	NewStatus    string    `json:"new_status"`
	ChangedBy    string    `json:"changed_by"`
	Timestamp    time.Time `json:"timestamp"`
}

// CreateStatusUpdateMessage creates a StatusUpdateMessage for an applied status change
func CreateStatusUpdateMessage(order *Order, change StatusChange) *StatusUpdateMessage {
	return &StatusUpdateMessage{
		OrderID:      change.OrderID,
		TableNumber:  order.TableNumber,
		CustomerName: order.CustomerName,
		OldStatus:    string(change.OldStatus),
		NewStatus:    string(change.NewStatus),
		ChangedBy:    change.ChangedBy,
		Timestamp:    change.ChangedAt.UTC(),
	}
}
