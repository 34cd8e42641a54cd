package evaluation

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// specSnapshot сценарий из постановки: позиция 2 шт × 1000 плановой цены,
// Альфа предлагает 1700 без НДС, Бета 1750 с НДС 20% (2100 с НДС)
func specSnapshot() *Snapshot {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &Snapshot{
		Tender: Tender{ID: 1, Number: "T-2026-001", Title: "Закупка металлопроката", Status: TenderStatusEvaluation, Currency: "RUB"},
		Items: []Item{
			{ID: 1, Position: 1, Name: "Лист стальной 3мм", Unit: "т", Quantity: 2, EstimatedUnitPrice: fptr(1000)},
		},
		Proposals: []Proposal{
			{
				ID: 10, SupplierID: 100, SupplierName: "ООО Альфа",
				Status: ProposalStatusSubmitted, SubmittedAt: base,
				Currency: "RUB", VATApplicable: false,
				Lines: []BidLine{{ID: 1000, ItemID: 1, Quantity: 2, UnitPrice: fptr(850), TotalPrice: fptr(1700)}},
			},
			{
				ID: 11, SupplierID: 101, SupplierName: "АО Бета",
				Status: ProposalStatusSubmitted, SubmittedAt: base.Add(time.Hour),
				Currency: "RUB", VATApplicable: true, VATRate: 20,
				Lines: []BidLine{{ID: 1001, ItemID: 1, Quantity: 2, UnitPrice: fptr(875), TotalPrice: fptr(1750)}},
			},
		},
		TakenAt: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestEngine_Evaluate_SpecScenario(t *testing.T) {
	engine := NewEngine(DefaultAnalyzerConfig())

	result, err := engine.Evaluate(specSnapshot())
	if err != nil {
		t.Fatalf("Evaluate() returned error: %v", err)
	}

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item result, got %d", len(result.Items))
	}
	item := result.Items[0]

	if len(item.Candidates) != 2 {
		t.Fatalf("expected 2 candidates for 2 bidding suppliers, got %d", len(item.Candidates))
	}
	if item.Winner == nil || item.Winner.SupplierName != "ООО Альфа" {
		t.Fatalf("expected Альфа to win, got %+v", item.Winner)
	}
	if !almostEqual(item.Winner.ComparablePrice, 1700) {
		t.Fatalf("expected comparable 1700, got %v", item.Winner.ComparablePrice)
	}
	if item.RunnerUp == nil || item.RunnerUp.SupplierName != "АО Бета" {
		t.Fatalf("expected Бета as runner-up, got %+v", item.RunnerUp)
	}
	if !almostEqual(item.RunnerUp.ComparablePrice, 2100) {
		t.Fatalf("expected runner-up comparable 2100, got %v", item.RunnerUp.ComparablePrice)
	}
	if item.Savings == nil || !almostEqual(*item.Savings, 300) {
		t.Fatalf("expected savings 300, got %v", item.Savings)
	}
}

func TestEngine_Evaluate_SpecScenarioWithOverride(t *testing.T) {
	engine := NewEngine(DefaultAnalyzerConfig())

	snap := specSnapshot()
	snap.Overrides = []DeliveryOverride{{ItemID: 1, SupplierID: 100, Amount: 100}}

	result, err := engine.Evaluate(snap)
	if err != nil {
		t.Fatalf("Evaluate() returned error: %v", err)
	}

	item := result.Items[0]
	if !almostEqual(item.Winner.ComparablePrice, 1800) {
		t.Fatalf("expected comparable 1800 after override, got %v", item.Winner.ComparablePrice)
	}
	if item.Winner.SupplierName != "ООО Альфа" {
		t.Fatalf("Альфа must still win (1800 < 2100), got %s", item.Winner.SupplierName)
	}
	if item.Savings == nil || !almostEqual(*item.Savings, 200) {
		t.Fatalf("expected savings 200 after override, got %v", item.Savings)
	}
	if !almostEqual(result.Summary.TotalDeliveryCost, 100) {
		t.Fatalf("expected delivery total 100, got %v", result.Summary.TotalDeliveryCost)
	}
}

func TestEngine_Evaluate_DeadOverrideIgnored(t *testing.T) {
	engine := NewEngine(DefaultAnalyzerConfig())

	snap := specSnapshot()
	// Корректировка для поставщика без ставки по позиции — молча пропускается
	snap.Overrides = []DeliveryOverride{{ItemID: 1, SupplierID: 999, Amount: 500}}

	result, err := engine.Evaluate(snap)
	if err != nil {
		t.Fatalf("Evaluate() must not fail on dead override: %v", err)
	}
	if !almostEqual(result.Items[0].Winner.ComparablePrice, 1700) {
		t.Fatalf("dead override must not change prices, got %v", result.Items[0].Winner.ComparablePrice)
	}
}

func TestEngine_Evaluate_NotReadyStatuses(t *testing.T) {
	engine := NewEngine(DefaultAnalyzerConfig())

	for _, status := range []TenderStatus{TenderStatusDraft, TenderStatusPublished, TenderStatusBidding, TenderStatusCancelled} {
		snap := specSnapshot()
		snap.Tender.Status = status

		if _, err := engine.Evaluate(snap); !errors.Is(err, ErrTenderNotReady) {
			t.Fatalf("status %s: expected ErrTenderNotReady, got %v", status, err)
		}
	}
}

func TestEngine_Evaluate_AwardedAllowed(t *testing.T) {
	engine := NewEngine(DefaultAnalyzerConfig())

	snap := specSnapshot()
	snap.Tender.Status = TenderStatusAwarded

	if _, err := engine.Evaluate(snap); err != nil {
		t.Fatalf("AWARDED tender must be evaluable: %v", err)
	}
}

func TestEngine_Evaluate_NilSnapshot(t *testing.T) {
	engine := NewEngine(DefaultAnalyzerConfig())

	if _, err := engine.Evaluate(nil); !errors.Is(err, ErrNilSnapshot) {
		t.Fatalf("expected ErrNilSnapshot, got %v", err)
	}
}

func TestEngine_Evaluate_NonRankingProposalsExcluded(t *testing.T) {
	engine := NewEngine(DefaultAnalyzerConfig())

	snap := specSnapshot()
	snap.Proposals[1].Status = ProposalStatusWithdrawn

	result, err := engine.Evaluate(snap)
	if err != nil {
		t.Fatalf("Evaluate() returned error: %v", err)
	}
	item := result.Items[0]
	if len(item.Candidates) != 1 {
		t.Fatalf("withdrawn proposal must not rank, got %d candidates", len(item.Candidates))
	}
	if item.RunnerUp != nil {
		t.Fatal("runner-up impossible with one remaining supplier")
	}
}

func TestEngine_Evaluate_NoBidsItem(t *testing.T) {
	engine := NewEngine(DefaultAnalyzerConfig())

	snap := specSnapshot()
	snap.Items = append(snap.Items, Item{ID: 2, Position: 2, Name: "Уголок 50х50", Unit: "т", Quantity: 1, EstimatedUnitPrice: fptr(700)})

	result, err := engine.Evaluate(snap)
	if err != nil {
		t.Fatalf("no-bids item must not fail evaluation: %v", err)
	}

	empty := result.Items[1]
	if empty.Winner != nil || empty.RunnerUp != nil {
		t.Fatalf("expected absent winner for no-bids item, got %+v", empty.Winner)
	}
	// Позиция без ставок не дает ни нулей в суммах, ни вклада в план
	if !almostEqual(result.Summary.TotalWinnerPrice, 1700) {
		t.Fatalf("expected winner total 1700, got %v", result.Summary.TotalWinnerPrice)
	}
	if !almostEqual(result.Summary.TotalEstimatedPrice, 2000) {
		t.Fatalf("expected estimated total 2000, got %v", result.Summary.TotalEstimatedPrice)
	}
	if result.Summary.ItemsWithoutBids != 1 {
		t.Fatalf("expected 1 item without bids, got %d", result.Summary.ItemsWithoutBids)
	}
}

func TestEngine_Evaluate_Idempotent(t *testing.T) {
	engine := NewEngine(DefaultAnalyzerConfig())

	snap := specSnapshot()
	snap.Overrides = []DeliveryOverride{{ItemID: 1, SupplierID: 100, Amount: 100}}

	first, err := engine.Evaluate(snap)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := engine.Evaluate(snap)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal first: %v", err)
	}
	secondJSON, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal second: %v", err)
	}

	if string(firstJSON) != string(secondJSON) {
		t.Fatal("two runs on unchanged snapshot must be byte-identical")
	}
}

func TestEngine_CompareItemPrices(t *testing.T) {
	engine := NewEngine(DefaultAnalyzerConfig())

	snap := specSnapshot()
	snap.Tender.Status = TenderStatusBidding // таблица цен доступна до стадии оценки

	comparisons, err := engine.CompareItemPrices(snap)
	if err != nil {
		t.Fatalf("CompareItemPrices() returned error: %v", err)
	}
	if len(comparisons) != 1 {
		t.Fatalf("expected 1 item, got %d", len(comparisons))
	}
	if len(comparisons[0].Bids) != 2 {
		t.Fatalf("expected 2 bids, got %d", len(comparisons[0].Bids))
	}
	if comparisons[0].Bids[0].ComparablePrice > comparisons[0].Bids[1].ComparablePrice {
		t.Fatal("comparison bids must be sorted ascending")
	}
}
