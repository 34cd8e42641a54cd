package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"tenderserver/database"
	"tenderserver/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := database.NewTenderDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewTenderDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	return NewServer(db, cfg)
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decodeInto(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response: %v\n%s", err, w.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получен %d", w.Code)
	}
}

// Полный путь тендера через HTTP API: от создания до отчета об оценке
func TestTenderLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	// Поставщики: Альфа без НДС, Бета с НДС 20%
	var alpha, beta database.Supplier
	w := doJSON(t, srv, http.MethodPost, "/api/suppliers", map[string]interface{}{
		"name": "ООО Альфа",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("создание Альфы: %d %s", w.Code, w.Body.String())
	}
	decodeInto(t, w, &alpha)

	w = doJSON(t, srv, http.MethodPost, "/api/suppliers", map[string]interface{}{
		"name": "ООО Бета", "vat_applicable": true, "vat_rate": 20,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("создание Беты: %d %s", w.Code, w.Body.String())
	}
	decodeInto(t, w, &beta)

	// Тендер с одной позицией, плановая стоимость 10 x 200 = 2000
	var tender database.Tender
	w = doJSON(t, srv, http.MethodPost, "/api/tenders", map[string]interface{}{
		"number": "T-2026-001",
		"title":  "Закупка крепежа",
		"items": []map[string]interface{}{
			{"name": "Болт М12", "unit": "кг", "quantity": 10, "estimated_unit_price": 200},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("создание тендера: %d %s", w.Code, w.Body.String())
	}
	decodeInto(t, w, &tender)
	itemID := tender.Items[0].ID

	// Оценка до стадии EVALUATION должна отклоняться
	w = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/tenders/%d/evaluation", tender.ID), nil)
	if w.Code != http.StatusConflict {
		t.Errorf("оценка в DRAFT: ожидался 409, получен %d", w.Code)
	}

	for _, status := range []string{"PUBLISHED", "BIDDING"} {
		w = doJSON(t, srv, http.MethodPut, fmt.Sprintf("/api/tenders/%d/status", tender.ID), map[string]string{"status": status})
		if w.Code != http.StatusOK {
			t.Fatalf("переход в %s: %d %s", status, w.Code, w.Body.String())
		}
	}

	// Предложения: Альфа 1700 без НДС, Бета 1500 + НДС 20% = 1800
	w = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/tenders/%d/proposals", tender.ID), map[string]interface{}{
		"supplier_id": alpha.ID,
		"lines":       []map[string]interface{}{{"tender_item_id": itemID, "quantity": 10, "total_price": 1700}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("предложение Альфы: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/tenders/%d/proposals", tender.ID), map[string]interface{}{
		"supplier_id": beta.ID,
		"lines":       []map[string]interface{}{{"tender_item_id": itemID, "quantity": 10, "total_price": 1500}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("предложение Беты: %d %s", w.Code, w.Body.String())
	}

	// Таблица сравнения доступна еще на стадии приема
	w = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/tenders/%d/comparison", tender.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("сравнение цен: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, srv, http.MethodPut, fmt.Sprintf("/api/tenders/%d/status", tender.ID), map[string]string{"status": "EVALUATION"})
	if w.Code != http.StatusOK {
		t.Fatalf("переход в EVALUATION: %d %s", w.Code, w.Body.String())
	}

	// Отчет: Альфа 1700 против Беты 1800 с НДС
	var result struct {
		Items []struct {
			Winner *struct {
				SupplierName    string  `json:"supplier_name"`
				ComparablePrice float64 `json:"comparable_price"`
			} `json:"winner"`
		} `json:"items"`
		Summary struct {
			TotalSavings float64 `json:"total_savings"`
		} `json:"summary"`
	}
	w = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/tenders/%d/evaluation", tender.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("оценка: %d %s", w.Code, w.Body.String())
	}
	decodeInto(t, w, &result)
	if len(result.Items) != 1 || result.Items[0].Winner == nil {
		t.Fatalf("ожидался победитель: %s", w.Body.String())
	}
	if result.Items[0].Winner.SupplierName != "ООО Альфа" {
		t.Errorf("НДС Беты должен проигрывать Альфе: %+v", result.Items[0].Winner)
	}
	if result.Summary.TotalSavings != 300 {
		t.Errorf("ожидалась экономия 300, получено %v", result.Summary.TotalSavings)
	}

	// Корректировка доставки Альфе 200 меняет победителя на Бету (1900 против 1800)
	w = doJSON(t, srv, http.MethodPut, fmt.Sprintf("/api/tenders/%d/overrides", tender.ID), map[string]interface{}{
		"tender_item_id": itemID, "supplier_id": alpha.ID, "amount": 200,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("корректировка: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/tenders/%d/evaluation", tender.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("повторная оценка: %d %s", w.Code, w.Body.String())
	}
	decodeInto(t, w, &result)
	if result.Items[0].Winner.SupplierName != "ООО Бета" {
		t.Errorf("после корректировки должна побеждать Бета: %+v", result.Items[0].Winner)
	}

	// Выгрузка отчета в CSV
	w = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/tenders/%d/evaluation/export?format=csv", tender.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("экспорт: %d %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("Content-Type экспорта: %q", ct)
	}
}

func TestUnknownTenderReturns404(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, http.MethodGet, "/api/tenders/9999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("ожидался 404, получен %d", w.Code)
	}
}

func TestInvalidIDReturns400(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, http.MethodGet, "/api/tenders/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("ожидался 400, получен %d", w.Code)
	}
}
