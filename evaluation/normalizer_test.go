package evaluation

import (
	"math"
	"testing"
	"time"
)

func fptr(v float64) *float64 {
	return &v
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNormalizeBid_WithVAT(t *testing.T) {
	p := &Proposal{
		ID:            10,
		SupplierID:    1,
		SupplierName:  "ООО Альфа",
		SubmittedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		VATApplicable: true,
		VATRate:       20,
	}
	line := &BidLine{ID: 100, ItemID: 5, Quantity: 2, UnitPrice: fptr(875), TotalPrice: fptr(1750)}

	bid, ok := NormalizeBid(p, line)
	if !ok {
		t.Fatal("expected valid candidate")
	}
	if !almostEqual(bid.TotalPriceWithVAT, 2100) {
		t.Fatalf("expected total with VAT 2100, got %v", bid.TotalPriceWithVAT)
	}
	if !almostEqual(bid.UnitPriceWithVAT, 1050) {
		t.Fatalf("expected unit with VAT 1050, got %v", bid.UnitPriceWithVAT)
	}
	if !almostEqual(bid.VATAmount, 350) {
		t.Fatalf("expected VAT amount 350, got %v", bid.VATAmount)
	}
}

func TestNormalizeBid_WithoutVAT(t *testing.T) {
	p := &Proposal{ID: 11, SupplierID: 2, VATApplicable: false, VATRate: 20}
	line := &BidLine{ID: 101, ItemID: 5, Quantity: 2, TotalPrice: fptr(1700)}

	bid, ok := NormalizeBid(p, line)
	if !ok {
		t.Fatal("expected valid candidate")
	}
	if bid.TotalPriceWithVAT != 1700 {
		t.Fatalf("expected total unchanged 1700, got %v", bid.TotalPriceWithVAT)
	}
	if bid.VATAmount != 0 {
		t.Fatalf("expected zero VAT amount, got %v", bid.VATAmount)
	}
	// Цена за единицу восстанавливается из итога, когда она не заполнена
	if !almostEqual(bid.UnitPrice, 850) {
		t.Fatalf("expected derived unit price 850, got %v", bid.UnitPrice)
	}
}

func TestNormalizeBid_InvalidTotals(t *testing.T) {
	p := &Proposal{ID: 12, SupplierID: 3, VATApplicable: true, VATRate: 20}

	cases := []struct {
		name string
		line BidLine
	}{
		{"missing total", BidLine{ID: 1, ItemID: 5, Quantity: 2}},
		{"zero total", BidLine{ID: 2, ItemID: 5, Quantity: 2, TotalPrice: fptr(0)}},
		{"negative total", BidLine{ID: 3, ItemID: 5, Quantity: 2, TotalPrice: fptr(-100)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := NormalizeBid(p, &tc.line); ok {
				t.Fatalf("line %q must not be a candidate", tc.name)
			}
		})
	}
}
