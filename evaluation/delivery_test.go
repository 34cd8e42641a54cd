package evaluation

import "testing"

func TestOverrideSet_ExplicitOverrideWins(t *testing.T) {
	set := BuildOverrideSet([]DeliveryOverride{
		{ItemID: 1, SupplierID: 10, Amount: 100},
		{ItemID: 2, SupplierID: 10, Amount: 50},
	})

	if got := set.DeliveryCost(1, 10); got != 100 {
		t.Fatalf("expected override 100, got %v", got)
	}
	if got := set.DeliveryCost(2, 10); got != 50 {
		t.Fatalf("expected override 50, got %v", got)
	}
}

func TestOverrideSet_NoOverrideMeansZero(t *testing.T) {
	set := BuildOverrideSet(nil)

	if got := set.DeliveryCost(1, 10); got != 0 {
		t.Fatalf("expected zero delivery without override, got %v", got)
	}
}

func TestOverrideSet_OtherPairNotApplied(t *testing.T) {
	set := BuildOverrideSet([]DeliveryOverride{{ItemID: 1, SupplierID: 10, Amount: 100}})

	// Корректировка действует только на свою пару (позиция, поставщик)
	if got := set.DeliveryCost(1, 11); got != 0 {
		t.Fatalf("expected zero for other supplier, got %v", got)
	}
	if got := set.DeliveryCost(2, 10); got != 0 {
		t.Fatalf("expected zero for other item, got %v", got)
	}
}

func TestOverrideSet_NegativeAmountIgnored(t *testing.T) {
	set := BuildOverrideSet([]DeliveryOverride{{ItemID: 1, SupplierID: 10, Amount: -30}})

	if got := set.DeliveryCost(1, 10); got != 0 {
		t.Fatalf("expected negative override to resolve to zero, got %v", got)
	}
}
