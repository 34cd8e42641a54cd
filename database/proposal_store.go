package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateProposal создает предложение поставщика вместе со строками
// в одной транзакции. Предложение сразу считается поданным: цены после
// подачи не правятся, исправление — только новым предложением.
func (db *TenderDB) CreateProposal(p *Proposal) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	status := p.Status
	if status == "" {
		status = "SUBMITTED"
	}
	currency := p.Currency
	if currency == "" {
		currency = "RUB"
	}
	submittedAt := time.Now().UTC()
	if p.SubmittedAt != nil {
		submittedAt = p.SubmittedAt.UTC()
	}

	result, err := tx.Exec(
		`INSERT INTO proposals (tender_id, supplier_id, status, currency, submitted_at, blanket_delivery_cost, delivery_terms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.TenderID, p.SupplierID, status, currency, submittedAt, floatArg(p.BlanketDeliveryCost), p.DeliveryTerms,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create proposal: %w", err)
	}
	proposalID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get proposal id: %w", err)
	}

	for i := range p.Lines {
		line := &p.Lines[i]
		if _, err := tx.Exec(
			`INSERT INTO proposal_items (proposal_id, tender_item_id, quantity, unit_price, total_price)
			 VALUES (?, ?, ?, ?, ?)`,
			proposalID, line.TenderItemID, line.Quantity, floatArg(line.UnitPrice), floatArg(line.TotalPrice),
		); err != nil {
			return 0, fmt.Errorf("failed to create proposal item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit proposal: %w", err)
	}
	return proposalID, nil
}

// GetProposal возвращает предложение со строками
func (db *TenderDB) GetProposal(id int64) (*Proposal, error) {
	var p Proposal
	var submittedAt sql.NullTime
	var blanket sql.NullFloat64
	var terms sql.NullString
	err := db.conn.QueryRow(
		`SELECT p.id, p.tender_id, p.supplier_id, s.name, p.status, p.currency, p.submitted_at,
		        p.blanket_delivery_cost, p.delivery_terms, p.created_at
		 FROM proposals p JOIN suppliers s ON s.id = p.supplier_id
		 WHERE p.id = ?`, id,
	).Scan(&p.ID, &p.TenderID, &p.SupplierID, &p.SupplierName, &p.Status, &p.Currency,
		&submittedAt, &blanket, &terms, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}
	if submittedAt.Valid {
		t := submittedAt.Time
		p.SubmittedAt = &t
	}
	p.BlanketDeliveryCost = nullFloat(blanket)
	p.DeliveryTerms = nullString(terms)

	lines, err := db.listProposalItems(db.conn, id)
	if err != nil {
		return nil, err
	}
	p.Lines = lines
	return &p, nil
}

// ListProposalsByTender возвращает предложения тендера со строками
func (db *TenderDB) ListProposalsByTender(tenderID int64) ([]Proposal, error) {
	return db.listProposalsByTender(db.conn, tenderID)
}

func (db *TenderDB) listProposalsByTender(q queryer, tenderID int64) ([]Proposal, error) {
	rows, err := q.Query(
		`SELECT p.id, p.tender_id, p.supplier_id, s.name, p.status, p.currency, p.submitted_at,
		        p.blanket_delivery_cost, p.delivery_terms, p.created_at
		 FROM proposals p JOIN suppliers s ON s.id = p.supplier_id
		 WHERE p.tender_id = ? ORDER BY p.id`, tenderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	var proposals []Proposal
	for rows.Next() {
		var p Proposal
		var submittedAt sql.NullTime
		var blanket sql.NullFloat64
		var terms sql.NullString
		if err := rows.Scan(&p.ID, &p.TenderID, &p.SupplierID, &p.SupplierName, &p.Status, &p.Currency,
			&submittedAt, &blanket, &terms, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		if submittedAt.Valid {
			t := submittedAt.Time
			p.SubmittedAt = &t
		}
		p.BlanketDeliveryCost = nullFloat(blanket)
		p.DeliveryTerms = nullString(terms)
		proposals = append(proposals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range proposals {
		lines, err := db.listProposalItems(q, proposals[i].ID)
		if err != nil {
			return nil, err
		}
		proposals[i].Lines = lines
	}
	return proposals, nil
}

func (db *TenderDB) listProposalItems(q queryer, proposalID int64) ([]ProposalItem, error) {
	rows, err := q.Query(
		`SELECT id, proposal_id, tender_item_id, quantity, unit_price, total_price
		 FROM proposal_items WHERE proposal_id = ? ORDER BY id`, proposalID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposal items: %w", err)
	}
	defer rows.Close()

	var lines []ProposalItem
	for rows.Next() {
		var line ProposalItem
		var unitPrice, totalPrice sql.NullFloat64
		if err := rows.Scan(&line.ID, &line.ProposalID, &line.TenderItemID, &line.Quantity, &unitPrice, &totalPrice); err != nil {
			return nil, fmt.Errorf("failed to scan proposal item: %w", err)
		}
		line.UnitPrice = nullFloat(unitPrice)
		line.TotalPrice = nullFloat(totalPrice)
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// UpdateProposalStatus переводит предложение в новый статус
func (db *TenderDB) UpdateProposalStatus(id int64, status string) error {
	result, err := db.conn.Exec(`UPDATE proposals SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update proposal status: %w", err)
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
