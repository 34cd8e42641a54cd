package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// BidLineRecord строка предложения из CSV файла поставщика.
// Привязка к позиции тендера идет по номеру позиции.
type BidLineRecord struct {
	Position   int
	ItemName   string
	Quantity   float64
	UnitPrice  *float64
	TotalPrice *float64
}

// ErrEmptyFile файл не содержит ни одной строки данных
var ErrEmptyFile = errors.New("файл не содержит строк данных")

// bidColumnIndices индексы колонок в CSV предложения
type bidColumnIndices struct {
	position   int
	itemName   int
	quantity   int
	unitPrice  int
	totalPrice int
}

// ProposalCSVParser парсер CSV файлов с ценами поставщиков.
// Выгрузки из 1С и Excel приходят в Windows-1251 и с разделителем ";",
// парсер распознает и то и другое автоматически.
type ProposalCSVParser struct{}

// NewProposalCSVParser создает парсер предложений
func NewProposalCSVParser() *ProposalCSVParser {
	return &ProposalCSVParser{}
}

// Parse разбирает CSV с ценами поставщика. Возвращает разобранные строки
// и список ошибок по строкам, которые не удалось разобрать: одна кривая
// строка не должна ронять весь файл.
func (p *ProposalCSVParser) Parse(data []byte) ([]BidLineRecord, []error, error) {
	text := decodeToUTF8(data)
	delimiter := detectDelimiter(text)

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, ErrEmptyFile
	}

	indices, err := detectBidColumns(rows[0])
	if err != nil {
		return nil, nil, err
	}

	var records []BidLineRecord
	var rowErrors []error
	for i, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		record, err := parseBidRow(row, indices)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Errorf("строка %d: %w", i+2, err))
			continue
		}
		records = append(records, record)
	}
	if len(records) == 0 && len(rowErrors) == 0 {
		return nil, nil, ErrEmptyFile
	}
	return records, rowErrors, nil
}

// decodeToUTF8 возвращает текст файла в UTF-8. Невалидный UTF-8 пробуем
// декодировать из Windows-1251
func decodeToUTF8(data []byte) string {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM
	if utf8.Valid(data) {
		return string(data)
	}
	decoder := charmap.Windows1251.NewDecoder()
	decoded, err := decoder.Bytes(data)
	if err == nil && len(decoded) > 0 && utf8.Valid(decoded) {
		return string(decoded)
	}
	return string(data)
}

// detectDelimiter выбирает разделитель по первой строке
func detectDelimiter(text string) rune {
	firstLine := text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		firstLine = text[:idx]
	}
	if strings.Count(firstLine, ";") > strings.Count(firstLine, ",") {
		return ';'
	}
	return ','
}

// detectBidColumns находит колонки по заголовкам. Точные названия колонок
// гуляют от выгрузки к выгрузке, ищем по подстрокам.
func detectBidColumns(header []string) (bidColumnIndices, error) {
	indices := bidColumnIndices{position: -1, itemName: -1, quantity: -1, unitPrice: -1, totalPrice: -1}

	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		switch {
		case indices.position < 0 && (name == "№" || strings.Contains(name, "позици") || strings.Contains(name, "номер")):
			indices.position = i
		case indices.itemName < 0 && (strings.Contains(name, "наименован") || strings.Contains(name, "название")):
			indices.itemName = i
		case indices.quantity < 0 && (strings.Contains(name, "кол-во") || strings.Contains(name, "количество")):
			indices.quantity = i
		case indices.unitPrice < 0 && strings.Contains(name, "цена"):
			indices.unitPrice = i
		case indices.totalPrice < 0 && (strings.Contains(name, "сумма") || strings.Contains(name, "итог") || strings.Contains(name, "стоимост")):
			indices.totalPrice = i
		}
	}

	if indices.position < 0 {
		return indices, errors.New("не найдена колонка с номером позиции")
	}
	if indices.totalPrice < 0 && indices.unitPrice < 0 {
		return indices, errors.New("не найдена колонка с ценой или суммой")
	}
	return indices, nil
}

func parseBidRow(row []string, indices bidColumnIndices) (BidLineRecord, error) {
	var record BidLineRecord

	position, err := strconv.Atoi(strings.TrimSpace(cellAt(row, indices.position)))
	if err != nil || position <= 0 {
		return record, fmt.Errorf("неверный номер позиции %q", cellAt(row, indices.position))
	}
	record.Position = position
	record.ItemName = strings.TrimSpace(cellAt(row, indices.itemName))

	if indices.quantity >= 0 {
		qty, err := parseDecimal(cellAt(row, indices.quantity))
		if err != nil {
			return record, fmt.Errorf("неверное количество %q", cellAt(row, indices.quantity))
		}
		record.Quantity = qty
	}
	if indices.unitPrice >= 0 {
		if cell := strings.TrimSpace(cellAt(row, indices.unitPrice)); cell != "" {
			price, err := parseDecimal(cell)
			if err != nil {
				return record, fmt.Errorf("неверная цена %q", cell)
			}
			record.UnitPrice = &price
		}
	}
	if indices.totalPrice >= 0 {
		if cell := strings.TrimSpace(cellAt(row, indices.totalPrice)); cell != "" {
			total, err := parseDecimal(cell)
			if err != nil {
				return record, fmt.Errorf("неверная сумма %q", cell)
			}
			record.TotalPrice = &total
		}
	}
	if record.TotalPrice == nil && record.UnitPrice != nil && record.Quantity > 0 {
		total := *record.UnitPrice * record.Quantity
		record.TotalPrice = &total
	}
	return record, nil
}

// parseDecimal разбирает число в русской записи: запятая как десятичный
// разделитель, пробелы и неразрывные пробелы как разделители разрядов
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
