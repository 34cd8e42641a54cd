package database

import (
	"fmt"
	"log"
)

// Migrate создает схему базы данных тендеров
func (db *TenderDB) Migrate() error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS suppliers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			inn TEXT,
			vat_applicable INTEGER NOT NULL DEFAULT 0,
			vat_rate REAL NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,

		`CREATE TABLE IF NOT EXISTS tenders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			number TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'DRAFT',
			currency TEXT NOT NULL DEFAULT 'RUB',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,

		`CREATE TABLE IF NOT EXISTS tender_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tender_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			unit TEXT NOT NULL DEFAULT 'шт',
			quantity REAL NOT NULL,
			estimated_unit_price REAL,
			FOREIGN KEY(tender_id) REFERENCES tenders(id) ON DELETE CASCADE
		);`,

		`CREATE TABLE IF NOT EXISTS proposals (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tender_id INTEGER NOT NULL,
			supplier_id INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'DRAFT',
			currency TEXT NOT NULL DEFAULT 'RUB',
			submitted_at TIMESTAMP,
			blanket_delivery_cost REAL,
			delivery_terms TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(tender_id) REFERENCES tenders(id) ON DELETE CASCADE,
			FOREIGN KEY(supplier_id) REFERENCES suppliers(id)
		);`,

		`CREATE TABLE IF NOT EXISTS proposal_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			proposal_id INTEGER NOT NULL,
			tender_item_id INTEGER NOT NULL,
			quantity REAL NOT NULL,
			unit_price REAL,
			total_price REAL,
			FOREIGN KEY(proposal_id) REFERENCES proposals(id) ON DELETE CASCADE,
			FOREIGN KEY(tender_item_id) REFERENCES tender_items(id) ON DELETE CASCADE,
			UNIQUE(proposal_id, tender_item_id)
		);`,

		`CREATE TABLE IF NOT EXISTS delivery_overrides (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tender_item_id INTEGER NOT NULL,
			supplier_id INTEGER NOT NULL,
			amount REAL NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(tender_item_id) REFERENCES tender_items(id) ON DELETE CASCADE,
			FOREIGN KEY(supplier_id) REFERENCES suppliers(id),
			UNIQUE(tender_item_id, supplier_id)
		);`,
	}

	for _, table := range tables {
		if _, err := db.conn.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_tender_items_tender_id ON tender_items(tender_id)`,
		`CREATE INDEX IF NOT EXISTS idx_proposals_tender_id ON proposals(tender_id)`,
		`CREATE INDEX IF NOT EXISTS idx_proposals_supplier_id ON proposals(supplier_id)`,
		`CREATE INDEX IF NOT EXISTS idx_proposal_items_proposal_id ON proposal_items(proposal_id)`,
		`CREATE INDEX IF NOT EXISTS idx_proposal_items_tender_item_id ON proposal_items(tender_item_id)`,
		`CREATE INDEX IF NOT EXISTS idx_delivery_overrides_item_supplier ON delivery_overrides(tender_item_id, supplier_id)`,
	}

	for _, indexSQL := range indexes {
		if _, err := db.conn.Exec(indexSQL); err != nil {
			log.Printf("Warning: failed to create index: %v", err)
		}
	}

	return nil
}
