package evaluation

import (
	"time"
)

// TenderStatus статус тендера в жизненном цикле закупки
type TenderStatus string

const (
	TenderStatusDraft      TenderStatus = "DRAFT"
	TenderStatusPublished  TenderStatus = "PUBLISHED"
	TenderStatusBidding    TenderStatus = "BIDDING"
	TenderStatusEvaluation TenderStatus = "EVALUATION"
	TenderStatusAwarded    TenderStatus = "AWARDED"
	TenderStatusCancelled  TenderStatus = "CANCELLED"
)

// ReadyForEvaluation возвращает true, если по тендеру можно считать итоги.
// Расчет победителей имеет смысл только после окончания приема предложений.
func (s TenderStatus) ReadyForEvaluation() bool {
	return s == TenderStatusEvaluation || s == TenderStatusAwarded
}

// Valid проверяет, что статус входит в закрытый набор значений
func (s TenderStatus) Valid() bool {
	switch s {
	case TenderStatusDraft, TenderStatusPublished, TenderStatusBidding,
		TenderStatusEvaluation, TenderStatusAwarded, TenderStatusCancelled:
		return true
	}
	return false
}

// ProposalStatus статус предложения поставщика
type ProposalStatus string

const (
	ProposalStatusDraft       ProposalStatus = "DRAFT"
	ProposalStatusSubmitted   ProposalStatus = "SUBMITTED"
	ProposalStatusUnderReview ProposalStatus = "UNDER_REVIEW"
	ProposalStatusAccepted    ProposalStatus = "ACCEPTED"
	ProposalStatusRejected    ProposalStatus = "REJECTED"
	ProposalStatusWithdrawn   ProposalStatus = "WITHDRAWN"
)

// Ranks возвращает true, если предложение участвует в ранжировании цен.
// Черновики, отклоненные и отозванные предложения в сравнении не участвуют.
func (s ProposalStatus) Ranks() bool {
	switch s {
	case ProposalStatusSubmitted, ProposalStatusUnderReview, ProposalStatusAccepted:
		return true
	}
	return false
}

// Valid проверяет, что статус входит в закрытый набор значений
func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalStatusDraft, ProposalStatusSubmitted, ProposalStatusUnderReview,
		ProposalStatusAccepted, ProposalStatusRejected, ProposalStatusWithdrawn:
		return true
	}
	return false
}

// Tender заголовок тендера в составе снапшота
type Tender struct {
	ID       int64        `json:"id"`
	Number   string       `json:"number"`
	Title    string       `json:"title"`
	Status   TenderStatus `json:"status"`
	Currency string       `json:"currency"`
}

// Item позиция тендера: один закупаемый материал/работа с количеством.
// EstimatedUnitPrice nil означает "оценка не задана" — это не ноль.
type Item struct {
	ID                 int64    `json:"id"`
	Position           int      `json:"position"`
	Name               string   `json:"name"`
	Unit               string   `json:"unit"`
	Quantity           float64  `json:"quantity"`
	EstimatedUnitPrice *float64 `json:"estimated_unit_price,omitempty"`
}

// EstimatedTotal возвращает плановую стоимость позиции (оценка × количество)
// или nil, когда оценка не задана
func (it Item) EstimatedTotal() *float64 {
	if it.EstimatedUnitPrice == nil {
		return nil
	}
	total := *it.EstimatedUnitPrice * it.Quantity
	return &total
}

// Proposal предложение поставщика со строками-ставками и атрибутами НДС.
// Атрибуты НДС берутся из карточки компании-поставщика на момент снапшота.
type Proposal struct {
	ID                  int64          `json:"id"`
	SupplierID          int64          `json:"supplier_id"`
	SupplierName        string         `json:"supplier_name"`
	Status              ProposalStatus `json:"status"`
	SubmittedAt         time.Time      `json:"submitted_at"`
	Currency            string         `json:"currency"`
	VATApplicable       bool           `json:"vat_applicable"`
	VATRate             float64        `json:"vat_rate"`
	BlanketDeliveryCost *float64       `json:"blanket_delivery_cost,omitempty"`
	DeliveryTerms       string         `json:"delivery_terms,omitempty"`
	Lines               []BidLine      `json:"lines"`
}

// BidLine строка предложения: цена одного поставщика за одну позицию тендера.
// Цены nullable: строка без итоговой цены не является кандидатом на победу.
type BidLine struct {
	ID         int64    `json:"id"`
	ItemID     int64    `json:"item_id"`
	Quantity   float64  `json:"quantity"`
	UnitPrice  *float64 `json:"unit_price,omitempty"`
	TotalPrice *float64 `json:"total_price,omitempty"`
}

// DeliveryOverride операторская корректировка стоимости доставки
// для пары (позиция, поставщик)
type DeliveryOverride struct {
	ItemID     int64   `json:"item_id"`
	SupplierID int64   `json:"supplier_id"`
	Amount     float64 `json:"amount"`
}

// Snapshot полностью материализованный срез данных тендера для одного
// прогона оценки. Движок никогда не дочитывает данные сам: весь прогон
// работает по одному срезу, чтобы отчет был внутренне согласован.
type Snapshot struct {
	Tender    Tender             `json:"tender"`
	Items     []Item             `json:"items"`
	Proposals []Proposal         `json:"proposals"`
	Overrides []DeliveryOverride `json:"overrides"`
	TakenAt   time.Time          `json:"taken_at"`
}
