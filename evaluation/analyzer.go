package evaluation

import (
	"fmt"
	"sort"
)

// AnalyzerConfig пороги анализатора аномалий и рекомендаций.
// Пороги — настройка, а не бизнес-закон: они задаются в конфигурации
// сервера и могут отличаться между инсталляциями.
type AnalyzerConfig struct {
	// MedianDeviationThreshold относительное отклонение сравнимой цены от
	// медианы по позиции, после которого ставка помечается аномальной (0.5 = 50%)
	MedianDeviationThreshold float64 `json:"median_deviation_threshold"`

	// DominantWinnerShare доля выигранных позиций, после которой повторяющийся
	// победитель попадает в рекомендации (0.6 = 60% позиций)
	DominantWinnerShare float64 `json:"dominant_winner_share"`

	// LowBidGapThreshold отрыв цены победителя от второй цены вниз, после
	// которого рекомендуется перепроверить ставку перед присуждением (0.25 = 25%)
	LowBidGapThreshold float64 `json:"low_bid_gap_threshold"`
}

// DefaultAnalyzerConfig пороги по умолчанию
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		MedianDeviationThreshold: 0.5,
		DominantWinnerShare:      0.6,
		LowBidGapThreshold:       0.25,
	}
}

// AnomalyDirection направление отклонения аномальной ставки от медианы
type AnomalyDirection string

const (
	AnomalyAboveMedian AnomalyDirection = "above_median"
	AnomalyBelowMedian AnomalyDirection = "below_median"
)

// PriceAnomaly статистически необычная ставка. Чисто информационный флаг
// для ловли ошибок ввода, сам по себе ошибкой не является и на выбор
// победителя не влияет.
type PriceAnomaly struct {
	ItemID          int64            `json:"item_id"`
	ItemName        string           `json:"item_name"`
	SupplierID      int64            `json:"supplier_id"`
	SupplierName    string           `json:"supplier_name"`
	ComparablePrice float64          `json:"comparable_price"`
	MedianPrice     float64          `json:"median_price"`
	Deviation       float64          `json:"deviation"`
	Direction       AnomalyDirection `json:"direction"`
}

// Analyzer анализатор аномалий и рекомендаций по итогам оценки
type Analyzer struct {
	cfg AnalyzerConfig
}

// NewAnalyzer создает анализатор с заданными порогами
func NewAnalyzer(cfg AnalyzerConfig) *Analyzer {
	if cfg.MedianDeviationThreshold <= 0 {
		cfg.MedianDeviationThreshold = DefaultAnalyzerConfig().MedianDeviationThreshold
	}
	if cfg.DominantWinnerShare <= 0 {
		cfg.DominantWinnerShare = DefaultAnalyzerConfig().DominantWinnerShare
	}
	if cfg.LowBidGapThreshold <= 0 {
		cfg.LowBidGapThreshold = DefaultAnalyzerConfig().LowBidGapThreshold
	}
	return &Analyzer{cfg: cfg}
}

// DetectAnomalies помечает ставки, отклоняющиеся от медианы своей позиции
// сильнее настроенного порога
func (a *Analyzer) DetectAnomalies(results []ItemResult) []PriceAnomaly {
	anomalies := []PriceAnomaly{}

	for _, r := range results {
		if len(r.Candidates) < 2 {
			// С единственной ставкой медиана равна самой ставке,
			// сравнивать не с чем
			continue
		}

		median := medianComparablePrice(r.Candidates)
		if median == 0 {
			continue
		}

		for _, bid := range r.Candidates {
			deviation := (bid.ComparablePrice - median) / median
			if deviation > a.cfg.MedianDeviationThreshold {
				anomalies = append(anomalies, newAnomaly(r, bid, median, deviation, AnomalyAboveMedian))
			} else if -deviation > a.cfg.MedianDeviationThreshold {
				anomalies = append(anomalies, newAnomaly(r, bid, median, deviation, AnomalyBelowMedian))
			}
		}
	}

	return anomalies
}

func newAnomaly(r ItemResult, bid NormalizedBid, median, deviation float64, dir AnomalyDirection) PriceAnomaly {
	return PriceAnomaly{
		ItemID:          r.ItemID,
		ItemName:        r.ItemName,
		SupplierID:      bid.SupplierID,
		SupplierName:    bid.SupplierName,
		ComparablePrice: bid.ComparablePrice,
		MedianPrice:     median,
		Deviation:       deviation,
		Direction:       dir,
	}
}

// BuildRecommendations формирует текстовые рекомендации по простым правилам:
// доминирующий победитель, подозрительно низкие выигравшие ставки,
// позиции без предложений
func (a *Analyzer) BuildRecommendations(results []ItemResult, summary TenderSummary) []string {
	recommendations := []string{}

	if summary.ItemsWithWinner > 0 {
		wins := make(map[string]int)
		for _, r := range results {
			if r.Winner != nil {
				wins[r.Winner.SupplierName]++
			}
		}
		for _, name := range sortedNameKeys(wins) {
			share := float64(wins[name]) / float64(summary.ItemsWithWinner)
			if share >= a.cfg.DominantWinnerShare && summary.ItemsWithWinner > 1 {
				recommendations = append(recommendations, fmt.Sprintf(
					"Поставщик %q побеждает в %d из %d позиций — рассмотрите заключение единого договора либо проверьте конкурентность закупки",
					name, wins[name], summary.ItemsWithWinner))
			}
		}
	}

	for _, r := range results {
		if r.Winner == nil || r.RunnerUp == nil || r.RunnerUp.ComparablePrice == 0 {
			continue
		}
		gap := (r.RunnerUp.ComparablePrice - r.Winner.ComparablePrice) / r.RunnerUp.ComparablePrice
		if gap > a.cfg.LowBidGapThreshold {
			recommendations = append(recommendations, fmt.Sprintf(
				"По позиции %q ставка победителя (%s) ниже второй цены на %.0f%% — перепроверьте предложение перед присуждением",
				r.ItemName, r.Winner.SupplierName, gap*100))
		}
	}

	if withoutBids := countWithoutBids(results); withoutBids > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"По %d позициям нет действительных предложений — потребуется повторная закупка или прямой договор", withoutBids))
	}

	return recommendations
}

func countWithoutBids(results []ItemResult) int {
	n := 0
	for _, r := range results {
		if r.Winner == nil {
			n++
		}
	}
	return n
}

func sortedNameKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// medianComparablePrice медиана сравнимых цен по ставкам позиции
func medianComparablePrice(bids []NormalizedBid) float64 {
	prices := make([]float64, len(bids))
	for i, b := range bids {
		prices[i] = b.ComparablePrice
	}
	sort.Float64s(prices)

	mid := len(prices) / 2
	if len(prices)%2 == 1 {
		return prices[mid]
	}
	return (prices[mid-1] + prices[mid]) / 2
}
