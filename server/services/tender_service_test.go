package services

import (
	"path/filepath"
	"testing"

	"tenderserver/database"
	apperrors "tenderserver/server/errors"
)

func newTestService(t *testing.T) (*TenderService, *database.TenderDB) {
	t.Helper()
	db, err := database.NewTenderDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewTenderDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewTenderService(db), db
}

func fptr(v float64) *float64 { return &v }

func mustStatusCode(t *testing.T, err error, want int) {
	t.Helper()
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("ожидалась AppError, получено: %v", err)
	}
	if appErr.StatusCode() != want {
		t.Errorf("ожидался статус %d, получен %d (%s)", want, appErr.StatusCode(), appErr.UserMessage())
	}
}

func createBiddingTender(t *testing.T, ts *TenderService) *database.Tender {
	t.Helper()
	tender, err := ts.CreateTender(&database.Tender{
		Number: "T-1", Title: "Тест",
		Items: []database.TenderItem{{Name: "Позиция", Quantity: 10, EstimatedUnitPrice: fptr(100)}},
	})
	if err != nil {
		t.Fatalf("CreateTender: %v", err)
	}
	for _, status := range []string{"PUBLISHED", "BIDDING"} {
		if tender, err = ts.ChangeTenderStatus(tender.ID, status); err != nil {
			t.Fatalf("ChangeTenderStatus(%s): %v", status, err)
		}
	}
	return tender
}

func TestCreateTenderValidation(t *testing.T) {
	ts, _ := newTestService(t)

	cases := []struct {
		name   string
		tender database.Tender
	}{
		{"пустой номер", database.Tender{Title: "Тест", Items: []database.TenderItem{{Name: "П", Quantity: 1}}}},
		{"пустое название", database.Tender{Number: "T-1", Items: []database.TenderItem{{Name: "П", Quantity: 1}}}},
		{"без позиций", database.Tender{Number: "T-1", Title: "Тест"}},
		{"нулевое количество", database.Tender{Number: "T-1", Title: "Тест", Items: []database.TenderItem{{Name: "П", Quantity: 0}}}},
		{"отрицательная оценка", database.Tender{Number: "T-1", Title: "Тест", Items: []database.TenderItem{{Name: "П", Quantity: 1, EstimatedUnitPrice: fptr(-5)}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ts.CreateTender(&tc.tender)
			if err == nil {
				t.Fatal("ожидалась ошибка валидации")
			}
			mustStatusCode(t, err, 400)
		})
	}
}

func TestCreateTenderDuplicateNumber(t *testing.T) {
	ts, _ := newTestService(t)

	item := []database.TenderItem{{Name: "П", Quantity: 1}}
	if _, err := ts.CreateTender(&database.Tender{Number: "T-1", Title: "Первый", Items: item}); err != nil {
		t.Fatalf("CreateTender: %v", err)
	}
	_, err := ts.CreateTender(&database.Tender{Number: "T-1", Title: "Дубль", Items: item})
	if err == nil {
		t.Fatal("ожидался конфликт по номеру")
	}
	mustStatusCode(t, err, 409)
}

func TestTenderStatusTransitions(t *testing.T) {
	ts, _ := newTestService(t)

	tender, err := ts.CreateTender(&database.Tender{
		Number: "T-1", Title: "Тест",
		Items: []database.TenderItem{{Name: "П", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateTender: %v", err)
	}

	// Прыжок через стадию запрещен
	if _, err := ts.ChangeTenderStatus(tender.ID, "EVALUATION"); err == nil {
		t.Error("переход DRAFT -> EVALUATION должен быть запрещен")
	} else {
		mustStatusCode(t, err, 409)
	}

	// Полный жизненный цикл
	for _, status := range []string{"PUBLISHED", "BIDDING", "EVALUATION", "AWARDED"} {
		if tender, err = ts.ChangeTenderStatus(tender.ID, status); err != nil {
			t.Fatalf("переход в %s: %v", status, err)
		}
	}

	// AWARDED терминален
	if _, err := ts.ChangeTenderStatus(tender.ID, "CANCELLED"); err == nil {
		t.Error("переход из AWARDED должен быть запрещен")
	}

	// Повтор того же статуса идемпотентен
	if _, err := ts.ChangeTenderStatus(tender.ID, "AWARDED"); err != nil {
		t.Errorf("повтор текущего статуса не должен падать: %v", err)
	}

	if _, err := ts.ChangeTenderStatus(tender.ID, "НЕИЗВЕСТНО"); err == nil {
		t.Error("неизвестный статус должен отклоняться")
	}
}

func TestCreateProposalGuards(t *testing.T) {
	ts, db := newTestService(t)
	tender := createBiddingTender(t, ts)
	supplierID, err := db.CreateSupplier(&database.Supplier{Name: "ООО Альфа"})
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}

	// Строка на чужую позицию
	_, err = ts.CreateProposal(&database.Proposal{
		TenderID: tender.ID, SupplierID: supplierID,
		Lines: []database.ProposalItem{{TenderItemID: 9999, Quantity: 1, TotalPrice: fptr(100)}},
	})
	if err == nil {
		t.Fatal("строка на чужую позицию должна отклоняться")
	}
	mustStatusCode(t, err, 400)

	// Неизвестный поставщик
	_, err = ts.CreateProposal(&database.Proposal{
		TenderID: tender.ID, SupplierID: 9999,
		Lines: []database.ProposalItem{{TenderItemID: tender.Items[0].ID, Quantity: 1, TotalPrice: fptr(100)}},
	})
	if err == nil {
		t.Fatal("неизвестный поставщик должен отклоняться")
	}
	mustStatusCode(t, err, 404)

	// Нормальное предложение проходит
	p, err := ts.CreateProposal(&database.Proposal{
		TenderID: tender.ID, SupplierID: supplierID,
		Lines: []database.ProposalItem{{TenderItemID: tender.Items[0].ID, Quantity: 10, TotalPrice: fptr(900)}},
	})
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	if p.SupplierName != "ООО Альфа" {
		t.Errorf("не подтянулось имя поставщика: %q", p.SupplierName)
	}

	// После закрытия приема предложения не принимаются
	if _, err := ts.ChangeTenderStatus(tender.ID, "EVALUATION"); err != nil {
		t.Fatalf("ChangeTenderStatus: %v", err)
	}
	_, err = ts.CreateProposal(&database.Proposal{
		TenderID: tender.ID, SupplierID: supplierID,
		Lines: []database.ProposalItem{{TenderItemID: tender.Items[0].ID, Quantity: 10, TotalPrice: fptr(800)}},
	})
	if err == nil {
		t.Fatal("прием после закрытия должен отклоняться")
	}
	mustStatusCode(t, err, 409)
}

func TestProposalStatusTransitions(t *testing.T) {
	ts, db := newTestService(t)
	tender := createBiddingTender(t, ts)
	supplierID, err := db.CreateSupplier(&database.Supplier{Name: "ООО Альфа"})
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	p, err := ts.CreateProposal(&database.Proposal{
		TenderID: tender.ID, SupplierID: supplierID,
		Lines: []database.ProposalItem{{TenderItemID: tender.Items[0].ID, Quantity: 10, TotalPrice: fptr(900)}},
	})
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}

	// SUBMITTED -> ACCEPTED минуя рассмотрение запрещен
	if _, err := ts.ChangeProposalStatus(p.ID, "ACCEPTED"); err == nil {
		t.Error("переход SUBMITTED -> ACCEPTED должен быть запрещен")
	}

	if p, err = ts.ChangeProposalStatus(p.ID, "UNDER_REVIEW"); err != nil {
		t.Fatalf("переход в UNDER_REVIEW: %v", err)
	}
	if p, err = ts.ChangeProposalStatus(p.ID, "ACCEPTED"); err != nil {
		t.Fatalf("переход в ACCEPTED: %v", err)
	}

	// ACCEPTED терминален
	if _, err := ts.ChangeProposalStatus(p.ID, "WITHDRAWN"); err == nil {
		t.Error("переход из ACCEPTED должен быть запрещен")
	}
}

func TestDeliveryOverrideLifecycle(t *testing.T) {
	ts, db := newTestService(t)
	tender := createBiddingTender(t, ts)
	supplierID, err := db.CreateSupplier(&database.Supplier{Name: "ООО Альфа"})
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	itemID := tender.Items[0].ID

	// Чужая позиция
	err = ts.SetDeliveryOverride(tender.ID, &database.DeliveryOverride{TenderItemID: 9999, SupplierID: supplierID, Amount: 100})
	if err == nil {
		t.Fatal("корректировка на чужую позицию должна отклоняться")
	}
	mustStatusCode(t, err, 400)

	if err := ts.SetDeliveryOverride(tender.ID, &database.DeliveryOverride{TenderItemID: itemID, SupplierID: supplierID, Amount: 100}); err != nil {
		t.Fatalf("SetDeliveryOverride: %v", err)
	}
	overrides, err := ts.ListDeliveryOverrides(tender.ID)
	if err != nil {
		t.Fatalf("ListDeliveryOverrides: %v", err)
	}
	if len(overrides) != 1 || overrides[0].Amount != 100 {
		t.Errorf("неожиданные корректировки: %+v", overrides)
	}

	if err := ts.DeleteDeliveryOverride(itemID, supplierID); err != nil {
		t.Fatalf("DeleteDeliveryOverride: %v", err)
	}
	err = ts.DeleteDeliveryOverride(itemID, supplierID)
	if err == nil {
		t.Fatal("повторное удаление должно вернуть 404")
	}
	mustStatusCode(t, err, 404)
}
