// Генератор демонстрационной базы: поставщики, тендер с позициями
// и пачка предложений с разбросом цен. Удобен для ручной проверки API
// и скриншотов Swagger.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"tenderserver/database"
)

func main() {
	dbPath := flag.String("db", "tenders.db", "путь к файлу базы данных")
	suppliers := flag.Int("suppliers", 5, "число поставщиков")
	items := flag.Int("items", 8, "число позиций тендера")
	seed := flag.Int64("seed", 0, "зерно генератора (0 = случайное)")
	flag.Parse()

	gofakeit.Seed(*seed)

	os.Remove(*dbPath)
	db, err := database.NewTenderDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	supplierIDs := make([]int64, 0, *suppliers)
	for i := 0; i < *suppliers; i++ {
		vatApplicable := gofakeit.Bool()
		vatRate := 0.0
		if vatApplicable {
			vatRate = 20
		}
		id, err := db.CreateSupplier(&database.Supplier{
			Name:          generateCompanyName(),
			INN:           generateINN(),
			VATApplicable: vatApplicable,
			VATRate:       vatRate,
		})
		if err != nil {
			log.Fatalf("Failed to create supplier: %v", err)
		}
		supplierIDs = append(supplierIDs, id)
	}
	fmt.Printf("Создано поставщиков: %d\n", len(supplierIDs))

	tenderItems := make([]database.TenderItem, 0, *items)
	for i := 0; i < *items; i++ {
		estimate := gofakeit.Float64Range(100, 100000)
		item := database.TenderItem{
			Name:     generateItemName(),
			Unit:     gofakeit.RandomString([]string{"шт", "кг", "т", "м", "компл"}),
			Quantity: float64(gofakeit.Number(1, 500)),
		}
		// Часть позиций оставляем без плановой оценки
		if gofakeit.Number(1, 10) > 2 {
			item.EstimatedUnitPrice = &estimate
		}
		tenderItems = append(tenderItems, item)
	}

	tenderID, err := db.CreateTender(&database.Tender{
		Number: fmt.Sprintf("T-%d-%03d", time.Now().Year(), gofakeit.Number(1, 999)),
		Title:  "Демонстрационная закупка: " + generateItemName(),
		Status: "EVALUATION",
		Items:  tenderItems,
	})
	if err != nil {
		log.Fatalf("Failed to create tender: %v", err)
	}
	tender, err := db.GetTender(tenderID)
	if err != nil {
		log.Fatalf("Failed to read tender: %v", err)
	}
	fmt.Printf("Создан тендер %s с %d позициями\n", tender.Number, len(tender.Items))

	proposals := 0
	base := time.Now().Add(-72 * time.Hour).UTC()
	for _, supplierID := range supplierIDs {
		lines := make([]database.ProposalItem, 0, len(tender.Items))
		for _, item := range tender.Items {
			// Поставщик ставит цену не на все позиции
			if gofakeit.Number(1, 10) <= 2 {
				continue
			}
			unitPrice := gofakeit.Float64Range(80, 110000)
			if item.EstimatedUnitPrice != nil {
				// Цены кучкуются вокруг плановой оценки
				unitPrice = *item.EstimatedUnitPrice * gofakeit.Float64Range(0.7, 1.3)
			}
			total := unitPrice * item.Quantity
			lines = append(lines, database.ProposalItem{
				TenderItemID: item.ID,
				Quantity:     item.Quantity,
				UnitPrice:    &unitPrice,
				TotalPrice:   &total,
			})
		}
		if len(lines) == 0 {
			continue
		}
		submittedAt := base.Add(time.Duration(gofakeit.Number(0, 48)) * time.Hour)
		proposal := &database.Proposal{
			TenderID:    tenderID,
			SupplierID:  supplierID,
			SubmittedAt: &submittedAt,
			Lines:       lines,
		}
		if gofakeit.Bool() {
			blanket := gofakeit.Float64Range(500, 5000)
			proposal.BlanketDeliveryCost = &blanket
		}
		if _, err := db.CreateProposal(proposal); err != nil {
			log.Fatalf("Failed to create proposal: %v", err)
		}
		proposals++
	}
	fmt.Printf("Создано предложений: %d\n", proposals)
	fmt.Printf("База готова: %s\n", *dbPath)
	fmt.Printf("Отчет: GET /api/tenders/%d/evaluation\n", tenderID)
}

func generateCompanyName() string {
	legalForms := []string{"ООО", "ОАО", "ЗАО", "ИП", "АО"}
	names := []string{"Ромашка", "Вектор", "Глобус", "Мир", "Триумф", "Лидер", "Снабжение", "Металлторг", "Стройкомплект", "Профит"}
	if gofakeit.Bool() {
		return fmt.Sprintf("%s %s %d", gofakeit.RandomString(legalForms), gofakeit.RandomString(names), gofakeit.Number(1, 100))
	}
	return fmt.Sprintf("%s %s", gofakeit.RandomString(legalForms), gofakeit.RandomString(names))
}

// generateINN генерирует российский ИНН (10 или 12 цифр)
func generateINN() string {
	if gofakeit.Bool() {
		return gofakeit.Numerify("##########")
	}
	return gofakeit.Numerify("############")
}

func generateItemName() string {
	kinds := []string{"Болт", "Гайка", "Лист стальной", "Труба", "Кабель", "Краска", "Уголок", "Швеллер", "Электрод", "Подшипник"}
	specs := []string{"М12", "М16", "3мм", "57мм", "ВВГ 3x2.5", "оцинкованный", "нержавеющий", "ГОСТ 7798", "усиленный"}
	return fmt.Sprintf("%s %s", gofakeit.RandomString(kinds), gofakeit.RandomString(specs))
}
