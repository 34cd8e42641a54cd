package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tenderserver/export"
	apperrors "tenderserver/server/errors"
	"tenderserver/server/services"
)

// ExportHandler обработчик выгрузки отчета об оценке
type ExportHandler struct {
	evaluationService *services.EvaluationService
	exporter          *export.ReportExporter
	exportDir         string
}

// NewExportHandler создает обработчик выгрузки. exportDir — каталог для
// серверных копий отчетов
func NewExportHandler(evaluationService *services.EvaluationService, exportDir string) *ExportHandler {
	return &ExportHandler{
		evaluationService: evaluationService,
		exporter:          export.NewReportExporter(),
		exportDir:         exportDir,
	}
}

// HandleExportEvaluation выгружает отчет об оценке в файл
// @Summary Выгрузить отчет об оценке
// @Description Считает отчет и отдает его файлом в формате json, csv или xlsx
// @Tags export
// @Produce json
// @Param id path int true "ID тендера"
// @Param format query string false "Формат: json, csv, xlsx" default(json)
// @Param keep query boolean false "Сохранить копию отчета на сервере" default(false)
// @Success 200 {file} file "Файл отчета"
// @Failure 400 {object} ErrorResponse "Неизвестный формат"
// @Failure 404 {object} ErrorResponse "Тендер не найден"
// @Failure 409 {object} ErrorResponse "Тендер не дошел до стадии оценки"
// @Router /api/tenders/{id}/evaluation/export [get]
func (h *ExportHandler) HandleExportEvaluation(c *gin.Context) {
	tenderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		appErr := apperrors.NewValidationError(err.Error(), err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	result, err := h.evaluationService.EvaluateTender(tenderID)
	if err != nil {
		SendAppError(c, err)
		return
	}

	// Копия на сервере по запросу: пригодится для аудита присуждения
	if c.Query("keep") == "true" {
		saved, err := h.exporter.WriteToFile(h.exportDir, result, format)
		if err != nil {
			slog.Error("не удалось сохранить копию отчета", "error", err, "tender_id", tenderID)
		} else {
			c.Header("X-Export-Saved-To", saved)
		}
	}

	filename := fmt.Sprintf("tender_%d_evaluation.%s", tenderID, format.Extension())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", format.ContentType())
	c.Status(http.StatusOK)

	if err := h.exporter.Write(c.Writer, result, format); err != nil {
		// Заголовки уже ушли, остается только залогировать
		slog.Error("не удалось записать файл отчета", "error", err, "tender_id", tenderID, "format", format)
	}
}
