package notification

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"restaurant-backoffice/internal/logger"
	"restaurant-backoffice/internal/models"
)

func TestFormatNotification(t *testing.T) {
	at := time.Date(2025, time.March, 14, 19, 30, 5, 0, time.UTC)

	tests := []struct {
		name string
		msg  models.StatusUpdateMessage
		want string
	}{
		{
			name: "preparing",
			msg:  models.StatusUpdateMessage{OrderID: 7, TableNumber: 4, CustomerName: "Meera", OldStatus: "PENDING", NewStatus: "PREPARING", Timestamp: at},
			want: "🍳 [2025-03-14 19:30:05] Order #7 (table 4, Meera) is now being prepared.",
		},
		{
			name: "ready without customer",
			msg:  models.StatusUpdateMessage{OrderID: 8, TableNumber: 2, NewStatus: "READY", Timestamp: at},
			want: "✅ [2025-03-14 19:30:05] Order #8 (table 2) is ready to serve.",
		},
		{
			name: "completed",
			msg:  models.StatusUpdateMessage{OrderID: 9, TableNumber: 1, NewStatus: "COMPLETED", Timestamp: at},
			want: "🎉 [2025-03-14 19:30:05] Order #9 (table 1) has been completed.",
		},
		{
			name: "back to pending",
			msg:  models.StatusUpdateMessage{OrderID: 9, TableNumber: 1, OldStatus: "READY", NewStatus: "PENDING", ChangedBy: "manager", Timestamp: at},
			want: "📋 [2025-03-14 19:30:05] Order #9 (table 1) status changed from 'READY' to 'PENDING' by manager.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatNotification(&tt.msg); got != tt.want {
				t.Errorf("got  %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestHandleNotification(t *testing.T) {
	var out bytes.Buffer
	s := NewSubscriber(nil, logger.NewWithWriter("test", io.Discard, slog.LevelDebug), &out)

	body := []byte(`{"order_id":3,"table_number":5,"old_status":"PENDING","new_status":"READY","changed_by":"kitchen","timestamp":"2025-03-14T19:30:00Z"}`)
	if err := s.HandleNotification(context.Background(), body); err != nil {
		t.Fatalf("HandleNotification: %v", err)
	}
	if !strings.Contains(out.String(), "Order #3 (table 5) is ready to serve.") {
		t.Errorf("output = %q", out.String())
	}

	if err := s.HandleNotification(context.Background(), []byte(`not json`)); err == nil {
		t.Error("expected parse error")
	}
}
