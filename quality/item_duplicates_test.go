package quality

import (
	"strings"
	"testing"

	"tenderserver/database"
)

func TestFindDuplicatesCatchesInflectedForms(t *testing.T) {
	detector := NewItemDuplicateDetector(0.8)
	items := []database.TenderItem{
		{ID: 1, Name: "Болт оцинкованный М12"},
		{ID: 2, Name: "Болты оцинкованные М12"},
		{ID: 3, Name: "Кабель силовой ВВГ 3x2.5"},
	}

	pairs := detector.FindDuplicates(items)
	if len(pairs) != 1 {
		t.Fatalf("ожидалась 1 пара, получено %d: %+v", len(pairs), pairs)
	}
	if pairs[0].FirstID != 1 || pairs[0].SecondID != 2 {
		t.Errorf("неожиданная пара: %+v", pairs[0])
	}
	if pairs[0].Similarity < 0.99 {
		t.Errorf("словоформы должны схлопываться стеммером: сходство %v", pairs[0].Similarity)
	}
}

func TestFindDuplicatesIgnoresDifferentItems(t *testing.T) {
	detector := NewItemDuplicateDetector(0.8)
	items := []database.TenderItem{
		{ID: 1, Name: "Болт М12"},
		{ID: 2, Name: "Гайка М16"},
	}
	if pairs := detector.FindDuplicates(items); len(pairs) != 0 {
		t.Errorf("разные позиции не должны считаться дублями: %+v", pairs)
	}
}

func TestFindDuplicatesEmptyAndSingle(t *testing.T) {
	detector := NewItemDuplicateDetector(0.8)
	if pairs := detector.FindDuplicates(nil); len(pairs) != 0 {
		t.Errorf("пустой список: %+v", pairs)
	}
	if pairs := detector.FindDuplicates([]database.TenderItem{{ID: 1, Name: "Болт"}}); len(pairs) != 0 {
		t.Errorf("одна позиция: %+v", pairs)
	}
}

func TestWarningsMentionBothNames(t *testing.T) {
	detector := NewItemDuplicateDetector(0.8)
	items := []database.TenderItem{
		{ID: 1, Name: "Труба стальная 57мм"},
		{ID: 2, Name: "Трубы стальные 57мм"},
	}
	warnings := detector.Warnings(items)
	if len(warnings) != 1 {
		t.Fatalf("ожидалось 1 предупреждение, получено %d", len(warnings))
	}
	if !strings.Contains(warnings[0], "Труба стальная 57мм") || !strings.Contains(warnings[0], "Трубы стальные 57мм") {
		t.Errorf("предупреждение должно называть обе позиции: %s", warnings[0])
	}
}

func TestDetectorThresholdDefaulting(t *testing.T) {
	detector := NewItemDuplicateDetector(-1)
	if detector.threshold != 0.8 {
		t.Errorf("некорректный порог должен заменяться на 0.8, получен %v", detector.threshold)
	}
}
