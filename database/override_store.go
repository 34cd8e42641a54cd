package database

import (
	"fmt"
	"time"
)

// UpsertDeliveryOverride создает или обновляет корректировку доставки для
// пары (позиция, поставщик). Корректировки правятся оператором в любой
// момент до присуждения и перечитываются заново при каждом прогоне оценки.
func (db *TenderDB) UpsertDeliveryOverride(o *DeliveryOverride) error {
	_, err := db.conn.Exec(
		`INSERT INTO delivery_overrides (tender_item_id, supplier_id, amount, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(tender_item_id, supplier_id) DO UPDATE SET amount = excluded.amount, updated_at = excluded.updated_at`,
		o.TenderItemID, o.SupplierID, o.Amount, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert delivery override: %w", err)
	}
	return nil
}

// DeleteDeliveryOverride удаляет корректировку для пары (позиция, поставщик)
func (db *TenderDB) DeleteDeliveryOverride(tenderItemID, supplierID int64) error {
	result, err := db.conn.Exec(
		`DELETE FROM delivery_overrides WHERE tender_item_id = ? AND supplier_id = ?`,
		tenderItemID, supplierID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete delivery override: %w", err)
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

// ListOverridesByTender возвращает корректировки всех позиций тендера
func (db *TenderDB) ListOverridesByTender(tenderID int64) ([]DeliveryOverride, error) {
	return db.listOverridesByTender(db.conn, tenderID)
}

func (db *TenderDB) listOverridesByTender(q queryer, tenderID int64) ([]DeliveryOverride, error) {
	rows, err := q.Query(
		`SELECT o.id, o.tender_item_id, o.supplier_id, o.amount, o.updated_at
		 FROM delivery_overrides o
		 JOIN tender_items ti ON ti.id = o.tender_item_id
		 WHERE ti.tender_id = ? ORDER BY o.id`, tenderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery overrides: %w", err)
	}
	defer rows.Close()

	var overrides []DeliveryOverride
	for rows.Next() {
		var o DeliveryOverride
		if err := rows.Scan(&o.ID, &o.TenderItemID, &o.SupplierID, &o.Amount, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan delivery override: %w", err)
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}
