package database

import (
	"errors"
	"testing"
	"time"

	"tenderserver/evaluation"
)

func TestLoadEvaluationSnapshot(t *testing.T) {
	db := newTestDB(t)

	alphaID, err := db.CreateSupplier(&Supplier{Name: "ООО Альфа", VATApplicable: false})
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	betaID, err := db.CreateSupplier(&Supplier{Name: "ООО Бета", VATApplicable: true, VATRate: 20})
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}

	tenderID, err := db.CreateTender(&Tender{
		Number: "T-2026-007",
		Title:  "Закупка крепежа",
		Status: "EVALUATION",
		Items: []TenderItem{
			{Name: "Болт М12", Unit: "кг", Quantity: 100, EstimatedUnitPrice: fptr(20)},
			{Name: "Гайка М12", Unit: "кг", Quantity: 50},
		},
	})
	if err != nil {
		t.Fatalf("CreateTender: %v", err)
	}
	tender, err := db.GetTender(tenderID)
	if err != nil {
		t.Fatalf("GetTender: %v", err)
	}

	submitted := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	if _, err := db.CreateProposal(&Proposal{
		TenderID:    tenderID,
		SupplierID:  alphaID,
		SubmittedAt: &submitted,
		Lines: []ProposalItem{
			{TenderItemID: tender.Items[0].ID, Quantity: 100, TotalPrice: fptr(1900)},
		},
	}); err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	if _, err := db.CreateProposal(&Proposal{
		TenderID:            tenderID,
		SupplierID:          betaID,
		BlanketDeliveryCost: fptr(300),
		Lines: []ProposalItem{
			{TenderItemID: tender.Items[0].ID, Quantity: 100, TotalPrice: fptr(1600)},
			{TenderItemID: tender.Items[1].ID, Quantity: 50, TotalPrice: fptr(900)},
		},
	}); err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	if err := db.UpsertDeliveryOverride(&DeliveryOverride{
		TenderItemID: tender.Items[0].ID, SupplierID: betaID, Amount: 120,
	}); err != nil {
		t.Fatalf("UpsertDeliveryOverride: %v", err)
	}

	snap, err := db.LoadEvaluationSnapshot(tenderID)
	if err != nil {
		t.Fatalf("LoadEvaluationSnapshot: %v", err)
	}

	if snap.Tender.Number != "T-2026-007" || snap.Tender.Status != evaluation.TenderStatusEvaluation {
		t.Errorf("неожиданный заголовок тендера: %+v", snap.Tender)
	}
	if snap.TakenAt.IsZero() {
		t.Error("TakenAt не заполнен")
	}

	if len(snap.Items) != 2 {
		t.Fatalf("ожидалось 2 позиции, получено %d", len(snap.Items))
	}
	if snap.Items[0].Name != "Болт М12" || snap.Items[0].Position != 1 {
		t.Errorf("позиции должны идти в порядке position: %+v", snap.Items)
	}
	if snap.Items[1].EstimatedUnitPrice != nil {
		t.Error("отсутствующая оценка должна прийти как nil")
	}

	if len(snap.Proposals) != 2 {
		t.Fatalf("ожидалось 2 предложения, получено %d", len(snap.Proposals))
	}
	alpha, beta := snap.Proposals[0], snap.Proposals[1]
	if alpha.SupplierName != "ООО Альфа" || alpha.VATApplicable {
		t.Errorf("атрибуты НДС Альфы подтянуты неверно: %+v", alpha)
	}
	if !alpha.SubmittedAt.Equal(submitted) {
		t.Errorf("потеряно время подачи: %v", alpha.SubmittedAt)
	}
	if !beta.VATApplicable || beta.VATRate != 20 {
		t.Errorf("атрибуты НДС Беты подтянуты неверно: %+v", beta)
	}
	if beta.BlanketDeliveryCost == nil || *beta.BlanketDeliveryCost != 300 {
		t.Errorf("потеряна общая стоимость доставки: %+v", beta)
	}
	if len(beta.Lines) != 2 {
		t.Fatalf("ожидались 2 строки у Беты, получено %d", len(beta.Lines))
	}
	if beta.Lines[0].ItemID != tender.Items[0].ID || *beta.Lines[0].TotalPrice != 1600 {
		t.Errorf("строки Беты подтянуты неверно: %+v", beta.Lines)
	}

	if len(snap.Overrides) != 1 {
		t.Fatalf("ожидалась 1 корректировка, получено %d", len(snap.Overrides))
	}
	o := snap.Overrides[0]
	if o.ItemID != tender.Items[0].ID || o.SupplierID != betaID || o.Amount != 120 {
		t.Errorf("корректировка подтянута неверно: %+v", o)
	}
}

func TestLoadEvaluationSnapshotNotFound(t *testing.T) {
	db := newTestDB(t)
	if _, err := db.LoadEvaluationSnapshot(12345); !errors.Is(err, ErrNotFound) {
		t.Errorf("ожидалась ErrNotFound, получено: %v", err)
	}
}

// Снапшот скармливается движку напрямую: проверяем сквозной путь от БД до отчета
func TestSnapshotFeedsEngine(t *testing.T) {
	db := newTestDB(t)

	alphaID, err := db.CreateSupplier(&Supplier{Name: "ООО Альфа"})
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	betaID, err := db.CreateSupplier(&Supplier{Name: "ООО Бета"})
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}

	tenderID, err := db.CreateTender(&Tender{
		Number: "T-1", Title: "Сквозной тест", Status: "EVALUATION",
		Items: []TenderItem{{Name: "Позиция", Quantity: 10, EstimatedUnitPrice: fptr(200)}},
	})
	if err != nil {
		t.Fatalf("CreateTender: %v", err)
	}
	tender, err := db.GetTender(tenderID)
	if err != nil {
		t.Fatalf("GetTender: %v", err)
	}
	itemID := tender.Items[0].ID

	if _, err := db.CreateProposal(&Proposal{
		TenderID: tenderID, SupplierID: alphaID,
		Lines: []ProposalItem{{TenderItemID: itemID, Quantity: 10, TotalPrice: fptr(1700)}},
	}); err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	if _, err := db.CreateProposal(&Proposal{
		TenderID: tenderID, SupplierID: betaID,
		Lines: []ProposalItem{{TenderItemID: itemID, Quantity: 10, TotalPrice: fptr(1850)}},
	}); err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}

	snap, err := db.LoadEvaluationSnapshot(tenderID)
	if err != nil {
		t.Fatalf("LoadEvaluationSnapshot: %v", err)
	}

	engine := evaluation.NewEngine(evaluation.DefaultAnalyzerConfig())
	result, err := engine.Evaluate(snap)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Winner == nil {
		t.Fatalf("ожидался победитель по единственной позиции: %+v", result.Items)
	}
	if result.Items[0].Winner.SupplierName != "ООО Альфа" {
		t.Errorf("победителем должна быть Альфа: %+v", result.Items[0].Winner)
	}
	if result.Summary.TotalWinnerPrice != 1700 {
		t.Errorf("ожидалась итоговая цена 1700, получена %v", result.Summary.TotalWinnerPrice)
	}
}
