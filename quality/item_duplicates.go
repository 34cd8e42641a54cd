package quality

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kljensen/snowball"

	"tenderserver/database"
)

// DuplicatePair пара позиций тендера с подозрительно похожими названиями
type DuplicatePair struct {
	FirstID    int64   `json:"first_id"`
	FirstName  string  `json:"first_name"`
	SecondID   int64   `json:"second_id"`
	SecondName string  `json:"second_name"`
	Similarity float64 `json:"similarity"`
}

// ItemDuplicateDetector ищет дубли среди позиций тендера по стеммированным
// названиям. "Болт оцинкованный М12" и "Болты оцинкованные М12" — почти
// наверняка одна и та же позиция, заведенная дважды.
type ItemDuplicateDetector struct {
	threshold float64
}

// NewItemDuplicateDetector создает детектор с порогом похожести 0..1
func NewItemDuplicateDetector(threshold float64) *ItemDuplicateDetector {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.8
	}
	return &ItemDuplicateDetector{threshold: threshold}
}

// FindDuplicates возвращает пары позиций, похожих сильнее порога
func (d *ItemDuplicateDetector) FindDuplicates(items []database.TenderItem) []DuplicatePair {
	stems := make([][]string, len(items))
	for i, item := range items {
		stems[i] = stemTokens(item.Name)
	}

	pairs := []DuplicatePair{}
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			similarity := jaccard(stems[i], stems[j])
			if similarity >= d.threshold {
				pairs = append(pairs, DuplicatePair{
					FirstID:    items[i].ID,
					FirstName:  items[i].Name,
					SecondID:   items[j].ID,
					SecondName: items[j].Name,
					Similarity: similarity,
				})
			}
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Similarity != pairs[j].Similarity {
			return pairs[i].Similarity > pairs[j].Similarity
		}
		return pairs[i].FirstID < pairs[j].FirstID
	})
	return pairs
}

// Warnings возвращает человекочитаемые предупреждения о дублях
func (d *ItemDuplicateDetector) Warnings(items []database.TenderItem) []string {
	pairs := d.FindDuplicates(items)
	warnings := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		warnings = append(warnings, fmt.Sprintf(
			"Позиции %q и %q похожи на дубль (сходство %.0f%%) — проверьте, не заведена ли позиция дважды",
			pair.FirstName, pair.SecondName, pair.Similarity*100))
	}
	return warnings
}

// stemTokens разбивает название на токены и стеммирует русские слова.
// Артикулы и размеры типа "М12" стеммер не трогает.
func stemTokens(name string) []string {
	fields := strings.Fields(strings.ToLower(name))
	tokens := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, field := range fields {
		field = strings.Trim(field, ".,;:()\"'")
		if field == "" {
			continue
		}
		stemmed, err := snowball.Stem(field, "russian", true)
		if err != nil || stemmed == "" {
			stemmed = field
		}
		if !seen[stemmed] {
			seen[stemmed] = true
			tokens = append(tokens, stemmed)
		}
	}
	return tokens
}

// jaccard похожесть двух наборов токенов: |пересечение| / |объединение|
func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]bool, len(a))
	for _, token := range a {
		setA[token] = true
	}
	intersection := 0
	union := len(setA)
	seenB := make(map[string]bool, len(b))
	for _, token := range b {
		if seenB[token] {
			continue
		}
		seenB[token] = true
		if setA[token] {
			intersection++
		} else {
			union++
		}
	}
	return float64(intersection) / float64(union)
}
