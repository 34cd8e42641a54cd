package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tenderserver/server/services"
)

// EvaluationHandler обработчики расчета оценки тендера
type EvaluationHandler struct {
	evaluationService *services.EvaluationService
}

// NewEvaluationHandler создает обработчик оценки
func NewEvaluationHandler(evaluationService *services.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService}
}

// HandleEvaluateTender считает полный отчет об оценке тендера
// @Summary Оценить тендер
// @Description Считает победителей по позициям, сводку, аномалии и рекомендации. Доступно в статусах EVALUATION и AWARDED.
// @Tags evaluation
// @Produce json
// @Param id path int true "ID тендера"
// @Success 200 {object} evaluation.Result "Отчет об оценке"
// @Failure 404 {object} ErrorResponse "Тендер не найден"
// @Failure 409 {object} ErrorResponse "Тендер не дошел до стадии оценки"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/tenders/{id}/evaluation [get]
func (h *EvaluationHandler) HandleEvaluateTender(c *gin.Context) {
	tenderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.evaluationService.EvaluateTender(tenderID)
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, result)
}

// HandleCompareItemPrices возвращает таблицу нормализованных цен
// @Summary Сравнение цен по позициям
// @Description Возвращает нормализованные цены всех действительных ставок. Доступно на любой стадии тендера.
// @Tags evaluation
// @Produce json
// @Param id path int true "ID тендера"
// @Success 200 {array} evaluation.ItemComparison "Таблица цен"
// @Failure 404 {object} ErrorResponse "Тендер не найден"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/tenders/{id}/comparison [get]
func (h *EvaluationHandler) HandleCompareItemPrices(c *gin.Context) {
	tenderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comparisons, err := h.evaluationService.CompareItemPrices(tenderID)
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, comparisons)
}
