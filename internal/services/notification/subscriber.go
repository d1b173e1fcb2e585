// Package notification prints order status changes delivered over the
// notifications fanout.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"restaurant-backoffice/internal/logger"
	"restaurant-backoffice/internal/messaging"
	"restaurant-backoffice/internal/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// Subscriber handles notification messages
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
	out      io.Writer
}

// NewSubscriber creates a new notification subscriber writing to out
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger, out io.Writer) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
		out:      out,
	}
}

// Run consumes notifications until ctx is cancelled
func (s *Subscriber) Run(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	err := s.consumer.StartConsuming(ctx, s.HandleNotification)

	if closeErr := s.consumer.Close(); closeErr != nil {
		s.logger.Warn("consumer_close_failed", "Failed to close consumer", requestID, map[string]interface{}{
			"error": closeErr.Error(),
		})
	}
	s.logger.Info("graceful_shutdown", "Notification subscriber stopped", requestID, nil)
	return err
}

// HandleNotification decodes one status update and prints it
func (s *Subscriber) HandleNotification(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var update models.StatusUpdateMessage
	if err := json.Unmarshal(body, &update); err != nil {
		return fmt.Errorf("failed to parse notification: %w", err)
	}

	if _, err := fmt.Fprintln(s.out, formatNotification(&update)); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}

	s.logger.Info("notification_displayed", "Status update displayed", requestID, map[string]interface{}{
		"order_id":   update.OrderID,
		"old_status": update.OldStatus,
		"new_status": update.NewStatus,
		"changed_by": update.ChangedBy,
	})
	return nil
}

// formatNotification creates a human-readable notification message
func formatNotification(u *models.StatusUpdateMessage) string {
	timestamp := u.Timestamp.Format(timestampLayout)
	who := orderLabel(u)

	switch models.OrderStatus(u.NewStatus) {
	case models.StatusPreparing:
		return fmt.Sprintf("🍳 [%s] %s is now being prepared.", timestamp, who)
	case models.StatusReady:
		return fmt.Sprintf("✅ [%s] %s is ready to serve.", timestamp, who)
	case models.StatusCompleted:
		return fmt.Sprintf("🎉 [%s] %s has been completed.", timestamp, who)
	default:
		return fmt.Sprintf("📋 [%s] %s status changed from '%s' to '%s' by %s.",
			timestamp, who, u.OldStatus, u.NewStatus, u.ChangedBy)
	}
}

func orderLabel(u *models.StatusUpdateMessage) string {
	label := fmt.Sprintf("Order #%d (table %d", u.OrderID, u.TableNumber)
	if u.CustomerName != "" {
		label += ", " + u.CustomerName
	}
	return label + ")"
}
