package command

import (
	"context"
	"testing"
	"time"

	"github.com/lagerkern/replenish/internal/analytics/domain"
)

func TestRecordBooking(t *testing.T) {
	tests := []struct {
		name    string
		cmd     RecordBookingCommand
		wantErr bool
	}{
		{
			name: "valid consumption",
			cmd:  RecordBookingCommand{ItemID: 1, UsageCode: 3, Amount: 2, StreamID: 1},
		},
		{
			name: "valid negative adjustment",
			cmd:  RecordBookingCommand{ItemID: 1, UsageCode: domain.UsageCorrection, Amount: -2},
		},
		{
			name:    "missing item",
			cmd:     RecordBookingCommand{Amount: 2},
			wantErr: true,
		},
		{
			name:    "zero amount",
			cmd:     RecordBookingCommand{ItemID: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &fakeLedger{}
			handler := NewRecordBookingHandler(ledger)

			err := handler.Handle(context.Background(), tt.cmd)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if len(ledger.entries) != 0 {
					t.Errorf("invalid booking must not be stored")
				}
				return
			}
			if err != nil {
				t.Fatalf("Handle returned error: %v", err)
			}
			if len(ledger.entries) != 1 {
				t.Fatalf("expected one stored entry, got %d", len(ledger.entries))
			}
			if ledger.entries[0].OccurredAt.IsZero() {
				t.Error("OccurredAt must default to now")
			}
		})
	}
}

func TestRecordBookingKeepsExplicitTimestamp(t *testing.T) {
	occurred := time.Date(2026, 8, 20, 6, 30, 0, 0, time.UTC)
	ledger := &fakeLedger{}
	handler := NewRecordBookingHandler(ledger)

	err := handler.Handle(context.Background(), RecordBookingCommand{
		ItemID:     1,
		UsageCode:  3,
		Amount:     1,
		OccurredAt: occurred,
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if !ledger.entries[0].OccurredAt.Equal(occurred) {
		t.Errorf("OccurredAt = %v, want %v", ledger.entries[0].OccurredAt, occurred)
	}
}
