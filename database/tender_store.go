package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateSupplier создает поставщика и возвращает его ID
func (db *TenderDB) CreateSupplier(s *Supplier) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO suppliers (name, inn, vat_applicable, vat_rate) VALUES (?, ?, ?, ?)`,
		s.Name, s.INN, s.VATApplicable, s.VATRate,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create supplier: %w", err)
	}
	return result.LastInsertId()
}

// GetSupplier возвращает поставщика по ID
func (db *TenderDB) GetSupplier(id int64) (*Supplier, error) {
	var s Supplier
	var inn sql.NullString
	err := db.conn.QueryRow(
		`SELECT id, name, inn, vat_applicable, vat_rate, created_at FROM suppliers WHERE id = ?`, id,
	).Scan(&s.ID, &s.Name, &inn, &s.VATApplicable, &s.VATRate, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	s.INN = nullString(inn)
	return &s, nil
}

// ListSuppliers возвращает всех поставщиков
func (db *TenderDB) ListSuppliers() ([]Supplier, error) {
	rows, err := db.conn.Query(
		`SELECT id, name, inn, vat_applicable, vat_rate, created_at FROM suppliers ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []Supplier
	for rows.Next() {
		var s Supplier
		var inn sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &inn, &s.VATApplicable, &s.VATRate, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		s.INN = nullString(inn)
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

// CreateTender создает тендер вместе с позициями в одной транзакции
func (db *TenderDB) CreateTender(t *Tender) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	status := t.Status
	if status == "" {
		status = "DRAFT"
	}
	currency := t.Currency
	if currency == "" {
		currency = "RUB"
	}

	result, err := tx.Exec(
		`INSERT INTO tenders (number, title, status, currency) VALUES (?, ?, ?, ?)`,
		t.Number, t.Title, status, currency,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create tender: %w", err)
	}
	tenderID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get tender id: %w", err)
	}

	for i := range t.Items {
		item := &t.Items[i]
		position := item.Position
		if position == 0 {
			position = i + 1
		}
		unit := item.Unit
		if unit == "" {
			unit = "шт"
		}
		if _, err := tx.Exec(
			`INSERT INTO tender_items (tender_id, position, name, unit, quantity, estimated_unit_price)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			tenderID, position, item.Name, unit, item.Quantity, floatArg(item.EstimatedUnitPrice),
		); err != nil {
			return 0, fmt.Errorf("failed to create tender item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit tender: %w", err)
	}
	return tenderID, nil
}

// GetTender возвращает тендер с позициями
func (db *TenderDB) GetTender(id int64) (*Tender, error) {
	var t Tender
	err := db.conn.QueryRow(
		`SELECT id, number, title, status, currency, created_at, updated_at FROM tenders WHERE id = ?`, id,
	).Scan(&t.ID, &t.Number, &t.Title, &t.Status, &t.Currency, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tender: %w", err)
	}

	items, err := db.listTenderItems(db.conn, id)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return &t, nil
}

// ListTenders возвращает все тендеры без позиций
func (db *TenderDB) ListTenders() ([]Tender, error) {
	rows, err := db.conn.Query(
		`SELECT id, number, title, status, currency, created_at, updated_at FROM tenders ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenders: %w", err)
	}
	defer rows.Close()

	var tenders []Tender
	for rows.Next() {
		var t Tender
		if err := rows.Scan(&t.ID, &t.Number, &t.Title, &t.Status, &t.Currency, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tender: %w", err)
		}
		tenders = append(tenders, t)
	}
	return tenders, rows.Err()
}

// UpdateTenderStatus переводит тендер в новый статус
func (db *TenderDB) UpdateTenderStatus(id int64, status string) error {
	result, err := db.conn.Exec(
		`UPDATE tenders SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update tender status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// queryer общий интерфейс *sql.DB и *sql.Tx для выборок внутри снапшота
type queryer interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// listTenderItems возвращает позиции тендера в порядке position
func (db *TenderDB) listTenderItems(q queryer, tenderID int64) ([]TenderItem, error) {
	rows, err := q.Query(
		`SELECT id, tender_id, position, name, unit, quantity, estimated_unit_price
		 FROM tender_items WHERE tender_id = ? ORDER BY position, id`, tenderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tender items: %w", err)
	}
	defer rows.Close()

	var items []TenderItem
	for rows.Next() {
		var item TenderItem
		var estimate sql.NullFloat64
		if err := rows.Scan(&item.ID, &item.TenderID, &item.Position, &item.Name, &item.Unit, &item.Quantity, &estimate); err != nil {
			return nil, fmt.Errorf("failed to scan tender item: %w", err)
		}
		item.EstimatedUnitPrice = nullFloat(estimate)
		items = append(items, item)
	}
	return items, rows.Err()
}
