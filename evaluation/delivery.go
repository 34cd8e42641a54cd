package evaluation

// overrideKey ключ корректировки: пара (позиция, поставщик)
type overrideKey struct {
	itemID     int64
	supplierID int64
}

// OverrideSet индекс операторских корректировок доставки для быстрого
// поиска по паре (позиция, поставщик)
type OverrideSet struct {
	byKey map[overrideKey]float64
}

// BuildOverrideSet строит индекс корректировок из снапшота.
// При дубликатах пар (их не допускает схема БД) побеждает последняя запись.
func BuildOverrideSet(overrides []DeliveryOverride) OverrideSet {
	set := OverrideSet{byKey: make(map[overrideKey]float64, len(overrides))}
	for _, o := range overrides {
		set.byKey[overrideKey{itemID: o.ItemID, supplierID: o.SupplierID}] = o.Amount
	}
	return set
}

// DeliveryCost возвращает стоимость доставки для пары (позиция, поставщик).
// Порядок разрешения:
//  1. явная операторская корректировка для этой пары — она авторитетна;
//  2. иначе ноль: общая стоимость доставки из предложения поставщика
//     не размазывается по позициям, а показывается только в сводке по
//     предложению целиком (иначе двойной учет либо произвольная аллокация).
//
// Отрицательные корректировки в ранжировании не участвуют.
// "Мертвая" корректировка (без ставки поставщика по позиции) просто не
// находит применения — это не ошибка.
func (s OverrideSet) DeliveryCost(itemID, supplierID int64) float64 {
	amount, ok := s.byKey[overrideKey{itemID: itemID, supplierID: supplierID}]
	if !ok || amount < 0 {
		return 0
	}
	return amount
}

// Len возвращает количество корректировок в индексе
func (s OverrideSet) Len() int {
	return len(s.byKey)
}
