package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"tenderserver/evaluation"
)

// ExportFormat формат экспорта отчета
type ExportFormat string

const (
	FormatJSON  ExportFormat = "json"
	FormatCSV   ExportFormat = "csv"
	FormatExcel ExportFormat = "excel"
)

// ParseFormat разбирает формат из строки запроса
func ParseFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	}
	return "", fmt.Errorf("неизвестный формат экспорта: %s", s)
}

// ContentType возвращает MIME-тип формата
func (f ExportFormat) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json; charset=utf-8"
	}
}

// Extension возвращает расширение файла формата
func (f ExportFormat) Extension() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatExcel:
		return "xlsx"
	default:
		return "json"
	}
}

// ReportExporter экспортер отчета об оценке тендера
type ReportExporter struct{}

// NewReportExporter создает экспортер отчетов
func NewReportExporter() *ReportExporter {
	return &ReportExporter{}
}

// Write пишет отчет в заданном формате
func (e *ReportExporter) Write(w io.Writer, result *evaluation.Result, format ExportFormat) error {
	switch format {
	case FormatCSV:
		return e.WriteCSV(w, result)
	case FormatExcel:
		return e.WriteExcel(w, result)
	default:
		return e.WriteJSON(w, result)
	}
}

// WriteToFile сохраняет отчет в файл внутри каталога экспорта
func (e *ReportExporter) WriteToFile(dir string, result *evaluation.Result, format ExportFormat) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}
	filename := filepath.Join(dir, fmt.Sprintf("tender_%d_evaluation.%s", result.TenderID, format.Extension()))

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := e.Write(file, result, format); err != nil {
		return "", err
	}
	return filename, nil
}

// WriteJSON пишет отчет в JSON
func (e *ReportExporter) WriteJSON(w io.Writer, result *evaluation.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// WriteCSV пишет построчную таблицу победителей в CSV
func (e *ReportExporter) WriteCSV(w io.Writer, result *evaluation.Result) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	headers := []string{
		"Позиция", "Ед.", "Кол-во", "Плановая стоимость",
		"Победитель", "Цена с НДС", "Доставка", "Сравнимая цена",
		"Вторая цена", "Поставщик второй цены", "Экономия", "Экономия, %",
	}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, item := range result.Items {
		record := make([]string, 0, len(headers))
		record = append(record,
			item.ItemName,
			item.Unit,
			fmt.Sprintf("%g", item.Quantity),
			optFloat(item.EstimatedTotal),
		)
		if item.Winner != nil {
			record = append(record,
				item.Winner.SupplierName,
				fmt.Sprintf("%.2f", item.Winner.TotalPriceWithVAT),
				fmt.Sprintf("%.2f", item.Winner.DeliveryCost),
				fmt.Sprintf("%.2f", item.Winner.ComparablePrice),
			)
		} else {
			record = append(record, "нет ставок", "", "", "")
		}
		if item.RunnerUp != nil {
			record = append(record, fmt.Sprintf("%.2f", item.RunnerUp.ComparablePrice), item.RunnerUp.SupplierName)
		} else {
			record = append(record, "", "")
		}
		record = append(record, optFloat(item.Savings), optFloat(item.SavingsPercent))

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteExcel пишет отчет в Excel: лист позиций и лист сводки
func (e *ReportExporter) WriteExcel(w io.Writer, result *evaluation.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	sheetName := "Позиции"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []string{
		"Позиция", "Ед.", "Кол-во", "Плановая стоимость",
		"Победитель", "Цена с НДС", "Доставка", "Сравнимая цена",
		"Вторая цена", "Экономия",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, item := range result.Items {
		row := rowIdx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), item.ItemName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), item.Unit)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), item.Quantity)
		if item.EstimatedTotal != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), *item.EstimatedTotal)
		}
		if item.Winner != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), item.Winner.SupplierName)
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), item.Winner.TotalPriceWithVAT)
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), item.Winner.DeliveryCost)
			f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), item.Winner.ComparablePrice)
		} else {
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), "нет ставок")
		}
		if item.RunnerUp != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), item.RunnerUp.ComparablePrice)
		}
		if item.Savings != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), *item.Savings)
		}
	}
	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	summarySheet := "Сводка"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summary := result.Summary
	summaryRows := [][]interface{}{
		{"Тендер", result.TenderNumber},
		{"Статус", string(result.Status)},
		{"Снапшот", result.SnapshotAt},
		{"Позиций всего", summary.ItemsTotal},
		{"Позиций с победителем", summary.ItemsWithWinner},
		{"Позиций без ставок", summary.ItemsWithoutBids},
		{"Плановая стоимость", summary.TotalEstimatedPrice},
		{"Стоимость по победителям", summary.TotalWinnerPrice},
		{"Экономия", summary.TotalSavings},
		{"Экономия, %", summary.SavingsPercentage},
		{"Сумма НДС", summary.TotalVATAmount},
		{"Стоимость доставки", summary.TotalDeliveryCost},
		{"Поставщики-победители", strings.Join(summary.WinnerSuppliers, ", ")},
	}
	for i, pair := range summaryRows {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+1), pair[0])
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+1), pair[1])
	}
	f.SetColWidth(summarySheet, "A", "A", 28)
	f.SetColWidth(summarySheet, "B", "B", 32)

	if len(result.Recommendations) > 0 {
		recSheet := "Рекомендации"
		if _, err := f.NewSheet(recSheet); err != nil {
			return fmt.Errorf("failed to create recommendations sheet: %w", err)
		}
		for i, rec := range result.Recommendations {
			f.SetCellValue(recSheet, fmt.Sprintf("A%d", i+1), rec)
		}
		f.SetColWidth(recSheet, "A", "A", 80)
	}

	// Удаляем пустой дефолтный лист
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}
