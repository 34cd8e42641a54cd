package evaluation

import "sort"

// ItemResult итог ранжирования по одной позиции тендера.
// Winner nil — легитимное состояние "ставок нет", а не ошибка.
// Savings/SavingsPercent nil, когда у позиции нет плановой оценки либо победителя.
type ItemResult struct {
	ItemID         int64    `json:"item_id"`
	ItemName       string   `json:"item_name"`
	Unit           string   `json:"unit"`
	Quantity       float64  `json:"quantity"`
	EstimatedTotal *float64 `json:"estimated_total,omitempty"`

	Candidates []NormalizedBid `json:"candidates"`
	Winner     *NormalizedBid  `json:"winner,omitempty"`
	RunnerUp   *NormalizedBid  `json:"runner_up,omitempty"`

	Savings        *float64 `json:"savings,omitempty"`
	SavingsPercent *float64 `json:"savings_percent,omitempty"`
}

// SelectItemWinner ранжирует нормализованные ставки одной позиции и выбирает
// победителя и вторую цену.
//
// Сортировка по возрастанию сравнимой цены (итог с НДС + доставка).
// При равенстве цен побеждает ставка из ранее поданного предложения,
// при равных метках времени — предложение с меньшим ID, чтобы результат
// был воспроизводим от прогона к прогону.
//
// Вторая цена — лучшая ставка другого поставщика: один поставщик не может
// занять оба призовых места своими альтернативными предложениями.
func SelectItemWinner(item Item, bids []NormalizedBid) ItemResult {
	result := ItemResult{
		ItemID:         item.ID,
		ItemName:       item.Name,
		Unit:           item.Unit,
		Quantity:       item.Quantity,
		EstimatedTotal: item.EstimatedTotal(),
		Candidates:     make([]NormalizedBid, len(bids)),
	}
	copy(result.Candidates, bids)

	sort.SliceStable(result.Candidates, func(i, j int) bool {
		a, b := result.Candidates[i], result.Candidates[j]
		if a.ComparablePrice != b.ComparablePrice {
			return a.ComparablePrice < b.ComparablePrice
		}
		if !a.SubmittedAt.Equal(b.SubmittedAt) {
			return a.SubmittedAt.Before(b.SubmittedAt)
		}
		return a.ProposalID < b.ProposalID
	})

	if len(result.Candidates) == 0 {
		return result
	}

	winner := result.Candidates[0]
	result.Winner = &winner

	for i := 1; i < len(result.Candidates); i++ {
		if result.Candidates[i].SupplierID != winner.SupplierID {
			runnerUp := result.Candidates[i]
			result.RunnerUp = &runnerUp
			break
		}
	}

	if result.EstimatedTotal != nil {
		savings := *result.EstimatedTotal - winner.ComparablePrice
		result.Savings = &savings
		if *result.EstimatedTotal != 0 {
			percent := savings / *result.EstimatedTotal * 100
			result.SavingsPercent = &percent
		}
	}

	return result
}
