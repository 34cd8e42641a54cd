package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tenderserver/database"
	"tenderserver/importer"
	apperrors "tenderserver/server/errors"
	"tenderserver/server/services"
)

// maxImportFileSize предел размера CSV файла с ценами
const maxImportFileSize = 10 << 20 // 10 MB

// ImportHandler обработчик загрузки предложений из CSV
type ImportHandler struct {
	tenderService *services.TenderService
	parser        *importer.ProposalCSVParser
}

// NewImportHandler создает обработчик импорта
func NewImportHandler(tenderService *services.TenderService) *ImportHandler {
	return &ImportHandler{
		tenderService: tenderService,
		parser:        importer.NewProposalCSVParser(),
	}
}

// ImportResponse итог импорта предложения из CSV
type ImportResponse struct {
	Proposal *database.Proposal `json:"proposal"`
	Skipped  []string           `json:"skipped,omitempty"`
}

// HandleImportProposal создает предложение из CSV файла поставщика
// @Summary Импортировать предложение из CSV
// @Description Разбирает CSV с ценами поставщика (UTF-8 или Windows-1251) и создает предложение. Строки привязываются к позициям тендера по номеру позиции.
// @Tags proposals
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID тендера"
// @Param supplier_id formData int true "ID поставщика"
// @Param file formData file true "CSV файл с ценами"
// @Success 201 {object} ImportResponse "Созданное предложение и пропущенные строки"
// @Failure 400 {object} ErrorResponse "Файл не разобран"
// @Failure 404 {object} ErrorResponse "Тендер или поставщик не найден"
// @Failure 409 {object} ErrorResponse "Прием предложений закрыт"
// @Router /api/tenders/{id}/proposals/import [post]
func (h *ImportHandler) HandleImportProposal(c *gin.Context) {
	tenderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	supplierID, err := strconv.ParseInt(c.PostForm("supplier_id"), 10, 64)
	if err != nil || supplierID <= 0 {
		appErr := apperrors.NewValidationError("неверный формат supplier_id", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		appErr := apperrors.NewValidationError("файл не передан", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}
	if fileHeader.Size > maxImportFileSize {
		SendJSONError(c, http.StatusBadRequest, "файл слишком большой")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		SendAppError(c, apperrors.NewInternalError("не удалось открыть файл", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportFileSize+1))
	if err != nil {
		SendAppError(c, apperrors.NewInternalError("не удалось прочитать файл", err))
		return
	}

	records, rowErrs, err := h.parser.Parse(data)
	if err != nil {
		appErr := apperrors.NewValidationError("не удалось разобрать CSV: "+err.Error(), err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	tender, err := h.tenderService.GetTender(tenderID)
	if err != nil {
		SendAppError(c, err)
		return
	}

	// Привязка строк к позициям по номеру позиции
	itemsByPosition := make(map[int]*database.TenderItem, len(tender.Items))
	for i := range tender.Items {
		itemsByPosition[tender.Items[i].Position] = &tender.Items[i]
	}

	var skipped []string
	for _, rowErr := range rowErrs {
		skipped = append(skipped, rowErr.Error())
	}

	var lines []database.ProposalItem
	for _, record := range records {
		item, ok := itemsByPosition[record.Position]
		if !ok {
			skipped = append(skipped, "позиция "+strconv.Itoa(record.Position)+" отсутствует в тендере")
			continue
		}
		quantity := record.Quantity
		if quantity == 0 {
			quantity = item.Quantity
		}
		lines = append(lines, database.ProposalItem{
			TenderItemID: item.ID,
			Quantity:     quantity,
			UnitPrice:    record.UnitPrice,
			TotalPrice:   record.TotalPrice,
		})
	}
	if len(lines) == 0 {
		appErr := apperrors.NewValidationError("ни одна строка файла не привязалась к позициям тендера", nil)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	proposal, err := h.tenderService.CreateProposal(&database.Proposal{
		TenderID:   tenderID,
		SupplierID: supplierID,
		Lines:      lines,
	})
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusCreated, ImportResponse{
		Proposal: proposal,
		Skipped:  skipped,
	})
}
