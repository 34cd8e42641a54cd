package evaluation

import "time"

// NormalizedBid нормализованная ставка: цены приведены к виду "с НДС",
// доставка учтена, ставка готова к сравнению с конкурентами
type NormalizedBid struct {
	LineID       int64     `json:"line_id"`
	ItemID       int64     `json:"item_id"`
	ProposalID   int64     `json:"proposal_id"`
	SupplierID   int64     `json:"supplier_id"`
	SupplierName string    `json:"supplier_name"`
	SubmittedAt  time.Time `json:"submitted_at"`

	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`

	UnitPriceWithVAT  float64 `json:"unit_price_with_vat"`
	TotalPriceWithVAT float64 `json:"total_price_with_vat"`
	VATAmount         float64 `json:"vat_amount"`

	DeliveryCost    float64 `json:"delivery_cost"`
	ComparablePrice float64 `json:"comparable_price"`
}

// NormalizeBid приводит строку предложения к ценам с НДС.
// Признак и ставка НДС берутся из атрибутов компании-поставщика.
// Возвращает ok=false, если итоговая цена отсутствует или не положительна:
// такая строка не кандидат и исключается из сравнения, а не обнуляется.
func NormalizeBid(p *Proposal, line *BidLine) (NormalizedBid, bool) {
	if line.TotalPrice == nil || *line.TotalPrice <= 0 {
		return NormalizedBid{}, false
	}

	bid := NormalizedBid{
		LineID:       line.ID,
		ItemID:       line.ItemID,
		ProposalID:   p.ID,
		SupplierID:   p.SupplierID,
		SupplierName: p.SupplierName,
		SubmittedAt:  p.SubmittedAt,
		Quantity:     line.Quantity,
		TotalPrice:   *line.TotalPrice,
	}
	if line.UnitPrice != nil {
		bid.UnitPrice = *line.UnitPrice
	} else if line.Quantity > 0 {
		bid.UnitPrice = *line.TotalPrice / line.Quantity
	}

	if p.VATApplicable && p.VATRate > 0 {
		factor := 1 + p.VATRate/100
		bid.UnitPriceWithVAT = bid.UnitPrice * factor
		bid.TotalPriceWithVAT = bid.TotalPrice * factor
		bid.VATAmount = bid.TotalPriceWithVAT - bid.TotalPrice
	} else {
		bid.UnitPriceWithVAT = bid.UnitPrice
		bid.TotalPriceWithVAT = bid.TotalPrice
		bid.VATAmount = 0
	}

	return bid, true
}
