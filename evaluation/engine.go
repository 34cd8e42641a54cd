package evaluation

import "fmt"

// Result полный результат одного прогона оценки тендера.
// Для неизменного снапшота результат побайтно воспроизводим: движок не
// подмешивает ни текущее время, ни порядок обхода map.
type Result struct {
	TenderID     int64        `json:"tender_id"`
	TenderNumber string       `json:"tender_number"`
	Status       TenderStatus `json:"status"`
	SnapshotAt   string       `json:"snapshot_at"`

	Items   []ItemResult  `json:"items"`
	Summary TenderSummary `json:"summary"`

	Anomalies       []PriceAnomaly `json:"anomalies"`
	Recommendations []string       `json:"recommendations"`
}

// ItemComparison таблица нормализованных цен по одной позиции для UI,
// без определения победителя
type ItemComparison struct {
	ItemID         int64           `json:"item_id"`
	ItemName       string          `json:"item_name"`
	Unit           string          `json:"unit"`
	Quantity       float64         `json:"quantity"`
	EstimatedTotal *float64        `json:"estimated_total,omitempty"`
	Bids           []NormalizedBid `json:"bids"`
}

// Engine движок оценки цен тендера. Стейтлесс и синхронный: каждый вызов
// работает по переданному снапшоту и ничего не сохраняет между вызовами.
type Engine struct {
	analyzer *Analyzer
}

// NewEngine создает движок с настройками анализатора
func NewEngine(cfg AnalyzerConfig) *Engine {
	return &Engine{analyzer: NewAnalyzer(cfg)}
}

// Evaluate считает полный результат оценки: ранжирование по каждой позиции,
// сводку по тендеру, аномалии и рекомендации.
//
// Тендер должен дойти до стадии оценки (EVALUATION или AWARDED), иначе
// возвращается ErrTenderNotReady: предварительные победители по идущему
// приему предложений вводили бы в заблуждение.
func (e *Engine) Evaluate(snap *Snapshot) (*Result, error) {
	if snap == nil {
		return nil, ErrNilSnapshot
	}
	if !snap.Tender.Status.ReadyForEvaluation() {
		return nil, fmt.Errorf("%w: статус %s", ErrTenderNotReady, snap.Tender.Status)
	}

	overrides := BuildOverrideSet(snap.Overrides)

	items := make([]ItemResult, 0, len(snap.Items))
	for _, item := range snap.Items {
		bids := e.collectBids(snap, item.ID, overrides)
		items = append(items, SelectItemWinner(item, bids))
	}

	summary := AggregateTender(snap.Tender, items)

	return &Result{
		TenderID:        snap.Tender.ID,
		TenderNumber:    snap.Tender.Number,
		Status:          snap.Tender.Status,
		SnapshotAt:      snap.TakenAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Items:           items,
		Summary:         summary,
		Anomalies:       e.analyzer.DetectAnomalies(items),
		Recommendations: e.analyzer.BuildRecommendations(items, summary),
	}, nil
}

// CompareItemPrices возвращает таблицу нормализованных цен по всем позициям.
// Доступно на любой стадии тендера: таблица показывает поданные ставки,
// но не объявляет победителей.
func (e *Engine) CompareItemPrices(snap *Snapshot) ([]ItemComparison, error) {
	if snap == nil {
		return nil, ErrNilSnapshot
	}

	overrides := BuildOverrideSet(snap.Overrides)

	comparisons := make([]ItemComparison, 0, len(snap.Items))
	for _, item := range snap.Items {
		bids := e.collectBids(snap, item.ID, overrides)
		// Сортировка как в селекторе, чтобы таблица совпадала с ранжированием
		sorted := SelectItemWinner(item, bids)
		comparisons = append(comparisons, ItemComparison{
			ItemID:         item.ID,
			ItemName:       item.Name,
			Unit:           item.Unit,
			Quantity:       item.Quantity,
			EstimatedTotal: item.EstimatedTotal(),
			Bids:           sorted.Candidates,
		})
	}

	return comparisons, nil
}

// collectBids собирает действительные нормализованные ставки по позиции.
// Участвуют только предложения в статусах, допускающих ранжирование;
// строки без положительной итоговой цены отбрасываются.
func (e *Engine) collectBids(snap *Snapshot, itemID int64, overrides OverrideSet) []NormalizedBid {
	var bids []NormalizedBid
	for pi := range snap.Proposals {
		proposal := &snap.Proposals[pi]
		if !proposal.Status.Ranks() {
			continue
		}
		for li := range proposal.Lines {
			line := &proposal.Lines[li]
			if line.ItemID != itemID {
				continue
			}
			bid, ok := NormalizeBid(proposal, line)
			if !ok {
				continue
			}
			bid.DeliveryCost = overrides.DeliveryCost(itemID, proposal.SupplierID)
			bid.ComparablePrice = bid.TotalPriceWithVAT + bid.DeliveryCost
			bids = append(bids, bid)
		}
	}
	return bids
}
