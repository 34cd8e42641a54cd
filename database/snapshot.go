package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tenderserver/evaluation"
)

// LoadEvaluationSnapshot собирает полностью материализованный снапшот
// тендера для движка оценки.
//
// Весь снапшот читается внутри одной read-транзакции: корректировки и
// предложения, прочитанные в разные моменты, дали бы внутренне
// несогласованный отчет, если оператор правит данные между запросами.
func (db *TenderDB) LoadEvaluationSnapshot(tenderID int64) (*evaluation.Snapshot, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	snap := &evaluation.Snapshot{TakenAt: time.Now().UTC()}

	// Тендер
	var tender evaluation.Tender
	var status string
	err = tx.QueryRow(
		`SELECT id, number, title, status, currency FROM tenders WHERE id = ?`, tenderID,
	).Scan(&tender.ID, &tender.Number, &tender.Title, &status, &tender.Currency)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tender: %w", err)
	}
	tender.Status = evaluation.TenderStatus(status)
	snap.Tender = tender

	// Позиции в порядке position
	items, err := db.listTenderItems(tx, tenderID)
	if err != nil {
		return nil, err
	}
	snap.Items = make([]evaluation.Item, 0, len(items))
	for _, item := range items {
		snap.Items = append(snap.Items, evaluation.Item{
			ID:                 item.ID,
			Position:           item.Position,
			Name:               item.Name,
			Unit:               item.Unit,
			Quantity:           item.Quantity,
			EstimatedUnitPrice: item.EstimatedUnitPrice,
		})
	}

	// Предложения с атрибутами НДС компании-поставщика
	proposals, err := loadSnapshotProposals(tx, tenderID)
	if err != nil {
		return nil, err
	}
	snap.Proposals = proposals

	// Корректировки доставки
	overrides, err := db.listOverridesByTender(tx, tenderID)
	if err != nil {
		return nil, err
	}
	snap.Overrides = make([]evaluation.DeliveryOverride, 0, len(overrides))
	for _, o := range overrides {
		snap.Overrides = append(snap.Overrides, evaluation.DeliveryOverride{
			ItemID:     o.TenderItemID,
			SupplierID: o.SupplierID,
			Amount:     o.Amount,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}
	return snap, nil
}

func loadSnapshotProposals(tx *sql.Tx, tenderID int64) ([]evaluation.Proposal, error) {
	rows, err := tx.Query(
		`SELECT p.id, p.supplier_id, s.name, s.vat_applicable, s.vat_rate,
		        p.status, p.currency, p.submitted_at, p.blanket_delivery_cost, p.delivery_terms
		 FROM proposals p JOIN suppliers s ON s.id = p.supplier_id
		 WHERE p.tender_id = ? ORDER BY p.id`, tenderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load proposals: %w", err)
	}
	defer rows.Close()

	var proposals []evaluation.Proposal
	for rows.Next() {
		var p evaluation.Proposal
		var status string
		var submittedAt sql.NullTime
		var blanket sql.NullFloat64
		var terms sql.NullString
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.SupplierName, &p.VATApplicable, &p.VATRate,
			&status, &p.Currency, &submittedAt, &blanket, &terms); err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		p.Status = evaluation.ProposalStatus(status)
		if submittedAt.Valid {
			p.SubmittedAt = submittedAt.Time.UTC()
		}
		p.BlanketDeliveryCost = nullFloat(blanket)
		p.DeliveryTerms = nullString(terms)
		proposals = append(proposals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range proposals {
		lines, err := loadSnapshotLines(tx, proposals[i].ID)
		if err != nil {
			return nil, err
		}
		proposals[i].Lines = lines
	}
	return proposals, nil
}

func loadSnapshotLines(tx *sql.Tx, proposalID int64) ([]evaluation.BidLine, error) {
	rows, err := tx.Query(
		`SELECT id, tender_item_id, quantity, unit_price, total_price
		 FROM proposal_items WHERE proposal_id = ? ORDER BY id`, proposalID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load proposal items: %w", err)
	}
	defer rows.Close()

	var lines []evaluation.BidLine
	for rows.Next() {
		var line evaluation.BidLine
		var unitPrice, totalPrice sql.NullFloat64
		if err := rows.Scan(&line.ID, &line.ItemID, &line.Quantity, &unitPrice, &totalPrice); err != nil {
			return nil, fmt.Errorf("failed to scan proposal item: %w", err)
		}
		line.UnitPrice = nullFloat(unitPrice)
		line.TotalPrice = nullFloat(totalPrice)
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
