package restock

import (
	"errors"
	"testing"

	"github.com/lagerkern/replenish/internal/analytics/domain"
)

func itemWithPack(id uint, name string, min, max, current, maxOrder int) domain.Item {
	return domain.Item{
		ID:               id,
		Name:             name,
		MinStock:         min,
		MaxStock:         max,
		CurrentQuantity:  current,
		MaxOrderQuantity: maxOrder,
		Sizes: []domain.PackSize{
			{ItemID: id, Unit: "piece", Amount: 1},
			{ItemID: id, Unit: "box", Amount: 12, IsDefault: true},
		},
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		name     string
		item     domain.Item
		openSums map[uint]int
		wantLine bool
		units    int
		base     int
		pending  int
	}{
		{
			name:     "below minimum orders up to max",
			item:     itemWithPack(1, "Gloves", 10, 50, 5, 0),
			wantLine: true,
			units:    3, // needed 45, 45/12 = 3 whole boxes
			base:     36,
			pending:  5,
		},
		{
			name:     "order cap limits units",
			item:     itemWithPack(1, "Gloves", 10, 50, 5, 2),
			wantLine: true,
			units:    2,
			base:     24,
			pending:  5,
		},
		{
			name:     "pending exactly at minimum still triggers",
			item:     itemWithPack(1, "Gloves", 10, 50, 10, 0),
			wantLine: true,
			units:    3, // needed 40
			base:     36,
			pending:  10,
		},
		{
			name:     "pending above minimum is skipped",
			item:     itemWithPack(1, "Gloves", 10, 50, 11, 0),
			wantLine: false,
		},
		{
			name:     "open orders count toward pending",
			item:     itemWithPack(1, "Gloves", 10, 50, 2, 0),
			openSums: map[uint]int{1: 20},
			wantLine: false, // pending 22 > min 10
		},
		{
			name:     "needed smaller than a pack orders one pack",
			item:     itemWithPack(1, "Gloves", 10, 15, 10, 0),
			wantLine: true,
			units:    1, // needed 5, still one full box
			base:     12,
			pending:  10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := Lines([]domain.Item{tt.item}, tt.openSums)
			if err != nil {
				t.Fatalf("Lines returned error: %v", err)
			}
			if !tt.wantLine {
				if len(lines) != 0 {
					t.Fatalf("expected no lines, got %+v", lines)
				}
				return
			}
			if len(lines) != 1 {
				t.Fatalf("expected one line, got %d", len(lines))
			}
			line := lines[0]
			if line.OrderUnits != tt.units {
				t.Errorf("OrderUnits = %d, want %d", line.OrderUnits, tt.units)
			}
			if line.BaseAmount != tt.base {
				t.Errorf("BaseAmount = %d, want %d", line.BaseAmount, tt.base)
			}
			if line.Pending != tt.pending {
				t.Errorf("Pending = %d, want %d", line.Pending, tt.pending)
			}
			if line.OrderUnit != "box" {
				t.Errorf("OrderUnit = %q, want box", line.OrderUnit)
			}
			if line.BaseUnit != "piece" {
				t.Errorf("BaseUnit = %q, want piece", line.BaseUnit)
			}
		})
	}
}

func TestLinesPendingText(t *testing.T) {
	item := itemWithPack(1, "Gloves", 30, 100, 24, 0)

	lines, err := Lines([]domain.Item{item}, nil)
	if err != nil {
		t.Fatalf("Lines returned error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	// 24 pieces is exactly two boxes.
	if lines[0].PendingText != "2 box" {
		t.Errorf("PendingText = %q, want %q", lines[0].PendingText, "2 box")
	}
}

func TestLinesMissingPackAbortsRun(t *testing.T) {
	broken := domain.Item{ID: 7, Name: "Masks", MinStock: 10, MaxStock: 50}
	fine := itemWithPack(1, "Gloves", 10, 50, 5, 0)

	_, err := Lines([]domain.Item{fine, broken}, nil)
	if err == nil {
		t.Fatal("expected error for item without order pack")
	}

	var integrityErr *domain.DataIntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("expected DataIntegrityError, got %T: %v", err, err)
	}
	if integrityErr.ItemID != 7 {
		t.Errorf("ItemID = %d, want 7", integrityErr.ItemID)
	}
}

func TestLinesSortedByName(t *testing.T) {
	items := []domain.Item{
		itemWithPack(2, "zinc cream", 10, 50, 0, 0),
		itemWithPack(1, "Gloves", 10, 50, 0, 0),
		itemWithPack(3, "aprons", 10, 50, 0, 0),
	}

	lines, err := Lines(items, nil)
	if err != nil {
		t.Fatalf("Lines returned error: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	want := []string{"aprons", "Gloves", "zinc cream"}
	for i, name := range want {
		if lines[i].ItemName != name {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i].ItemName, name)
		}
	}
}

func TestAmountText(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want string
	}{
		{
			name: "different units show equivalent",
			line: Line{OrderUnit: "box", OrderUnits: 3, BaseUnit: "piece", BaseAmount: 36},
			want: "3 box = 36 piece",
		},
		{
			name: "base unit ordering omits equivalent",
			line: Line{OrderUnit: "piece", OrderUnits: 5, BaseUnit: "piece", BaseAmount: 5},
			want: "5 piece",
		},
		{
			name: "missing base unit omits equivalent",
			line: Line{OrderUnit: "box", OrderUnits: 2, BaseAmount: 24},
			want: "2 box",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.AmountText(); got != tt.want {
				t.Errorf("AmountText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequests(t *testing.T) {
	lines := []Line{
		{ItemID: 1, BaseAmount: 36},
		{ItemID: 2, BaseAmount: 12},
	}

	requests := Requests(lines)
	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requests))
	}
	if requests[0].ItemID != 1 || requests[0].AmountDesired != 36 {
		t.Errorf("requests[0] = %+v, want item 1 amount 36", requests[0])
	}
	if requests[1].ItemID != 2 || requests[1].AmountDesired != 12 {
		t.Errorf("requests[1] = %+v, want item 2 amount 12", requests[1])
	}
}
