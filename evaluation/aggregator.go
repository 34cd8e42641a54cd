package evaluation

import "sort"

// TenderSummary сводка по тендеру: свертка итогов всех позиций одного прогона
type TenderSummary struct {
	TenderID int64  `json:"tender_id"`
	Currency string `json:"currency"`

	ItemsTotal       int `json:"items_total"`
	ItemsWithWinner  int `json:"items_with_winner"`
	ItemsWithoutBids int `json:"items_without_bids"`

	TotalEstimatedPrice float64 `json:"total_estimated_price"`
	TotalWinnerPrice    float64 `json:"total_winner_price"`
	TotalSavings        float64 `json:"total_savings"`
	SavingsPercentage   float64 `json:"savings_percentage"`

	UniqueWinners        int      `json:"unique_winners"`
	WinnerSuppliers      []string `json:"winner_suppliers"`
	SecondPriceSuppliers []string `json:"second_price_suppliers"`

	// AveragePriceDeviation среднее относительное отклонение цены победителя
	// от плановой оценки по позициям, где есть и оценка, и победитель.
	// nil, когда таких позиций нет.
	AveragePriceDeviation *float64 `json:"average_price_deviation,omitempty"`

	TotalVATAmount    float64 `json:"total_vat_amount"`
	TotalDeliveryCost float64 `json:"total_delivery_cost"`
}

// AggregateTender сворачивает итоги позиций в сводку по тендеру.
// Все суммы считаются по одному и тому же набору ItemResult — тому же,
// который отдается по позициям, поэтому сумма цен победителей в сводке
// точно равна сумме по отдельным позициям.
//
// Позиция без победителя исключается и из суммы победителей, и из плановой
// суммы: сравнивать ее не с чем, а односторонний учет исказил бы экономию.
func AggregateTender(tender Tender, results []ItemResult) TenderSummary {
	summary := TenderSummary{
		TenderID:             tender.ID,
		Currency:             tender.Currency,
		ItemsTotal:           len(results),
		WinnerSuppliers:      []string{},
		SecondPriceSuppliers: []string{},
	}

	winnerNames := make(map[string]bool)
	winnerIDs := make(map[int64]bool)
	secondNames := make(map[string]bool)

	var deviationSum float64
	var deviationCount int

	for _, r := range results {
		if r.Winner == nil {
			summary.ItemsWithoutBids++
			continue
		}

		summary.ItemsWithWinner++
		summary.TotalWinnerPrice += r.Winner.ComparablePrice
		summary.TotalVATAmount += r.Winner.VATAmount
		summary.TotalDeliveryCost += r.Winner.DeliveryCost

		winnerIDs[r.Winner.SupplierID] = true
		winnerNames[r.Winner.SupplierName] = true
		if r.RunnerUp != nil {
			secondNames[r.RunnerUp.SupplierName] = true
		}

		if r.EstimatedTotal != nil {
			summary.TotalEstimatedPrice += *r.EstimatedTotal
			if *r.EstimatedTotal != 0 {
				deviationSum += (r.Winner.ComparablePrice - *r.EstimatedTotal) / *r.EstimatedTotal
				deviationCount++
			}
		}
	}

	summary.TotalSavings = summary.TotalEstimatedPrice - summary.TotalWinnerPrice
	if summary.TotalEstimatedPrice != 0 {
		summary.SavingsPercentage = summary.TotalSavings / summary.TotalEstimatedPrice * 100
	}

	summary.UniqueWinners = len(winnerIDs)
	summary.WinnerSuppliers = sortedNames(winnerNames)
	summary.SecondPriceSuppliers = sortedNames(secondNames)

	if deviationCount > 0 {
		avg := deviationSum / float64(deviationCount)
		summary.AveragePriceDeviation = &avg
	}

	return summary
}

// sortedNames возвращает отсортированный список имен: порядок в сводке
// не должен зависеть от порядка обхода map
func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
