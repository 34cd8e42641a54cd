package database

import "time"

// Supplier компания-поставщик. Признак и ставка НДС живут здесь:
// они свойства компании, а не отдельного предложения.
type Supplier struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	INN           string    `json:"inn,omitempty"`
	VATApplicable bool      `json:"vat_applicable"`
	VATRate       float64   `json:"vat_rate"`
	CreatedAt     time.Time `json:"created_at"`
}

// Tender тендер с позициями
type Tender struct {
	ID        int64        `json:"id"`
	Number    string       `json:"number"`
	Title     string       `json:"title"`
	Status    string       `json:"status"`
	Currency  string       `json:"currency"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Items     []TenderItem `json:"items,omitempty"`
}

// TenderItem позиция тендера
type TenderItem struct {
	ID                 int64    `json:"id"`
	TenderID           int64    `json:"tender_id"`
	Position           int      `json:"position"`
	Name               string   `json:"name"`
	Unit               string   `json:"unit"`
	Quantity           float64  `json:"quantity"`
	EstimatedUnitPrice *float64 `json:"estimated_unit_price,omitempty"`
}

// Proposal предложение поставщика
type Proposal struct {
	ID                  int64          `json:"id"`
	TenderID            int64          `json:"tender_id"`
	SupplierID          int64          `json:"supplier_id"`
	SupplierName        string         `json:"supplier_name,omitempty"`
	Status              string         `json:"status"`
	Currency            string         `json:"currency"`
	SubmittedAt         *time.Time     `json:"submitted_at,omitempty"`
	BlanketDeliveryCost *float64       `json:"blanket_delivery_cost,omitempty"`
	DeliveryTerms       string         `json:"delivery_terms,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	Lines               []ProposalItem `json:"lines,omitempty"`
}

// ProposalItem строка предложения
type ProposalItem struct {
	ID           int64    `json:"id"`
	ProposalID   int64    `json:"proposal_id"`
	TenderItemID int64    `json:"tender_item_id"`
	Quantity     float64  `json:"quantity"`
	UnitPrice    *float64 `json:"unit_price,omitempty"`
	TotalPrice   *float64 `json:"total_price,omitempty"`
}

// DeliveryOverride операторская корректировка доставки
type DeliveryOverride struct {
	ID           int64     `json:"id"`
	TenderItemID int64     `json:"tender_item_id"`
	SupplierID   int64     `json:"supplier_id"`
	Amount       float64   `json:"amount"`
	UpdatedAt    time.Time `json:"updated_at"`
}
