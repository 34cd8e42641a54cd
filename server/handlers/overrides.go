package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tenderserver/database"
	apperrors "tenderserver/server/errors"
)

// OverrideRequest тело запроса корректировки доставки
type OverrideRequest struct {
	TenderItemID int64   `json:"tender_item_id" binding:"required"`
	SupplierID   int64   `json:"supplier_id" binding:"required"`
	Amount       float64 `json:"amount"`
}

// HandleSetOverride создает или обновляет корректировку доставки
// @Summary Задать корректировку доставки
// @Description Задает операторскую стоимость доставки для пары позиция-поставщик. Повторный вызов обновляет сумму.
// @Tags overrides
// @Accept json
// @Produce json
// @Param id path int true "ID тендера"
// @Param request body OverrideRequest true "Корректировка"
// @Success 200 {array} database.DeliveryOverride "Корректировки тендера"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Failure 404 {object} ErrorResponse "Тендер или поставщик не найден"
// @Router /api/tenders/{id}/overrides [put]
func (h *TenderHandler) HandleSetOverride(c *gin.Context) {
	tenderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("неверный формат тела запроса", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	override := &database.DeliveryOverride{
		TenderItemID: req.TenderItemID,
		SupplierID:   req.SupplierID,
		Amount:       req.Amount,
	}
	if err := h.tenderService.SetDeliveryOverride(tenderID, override); err != nil {
		SendAppError(c, err)
		return
	}

	overrides, err := h.tenderService.ListDeliveryOverrides(tenderID)
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, overrides)
}

// HandleListOverrides возвращает корректировки тендера
// @Summary Корректировки доставки тендера
// @Tags overrides
// @Produce json
// @Param id path int true "ID тендера"
// @Success 200 {array} database.DeliveryOverride "Корректировки"
// @Failure 404 {object} ErrorResponse "Тендер не найден"
// @Router /api/tenders/{id}/overrides [get]
func (h *TenderHandler) HandleListOverrides(c *gin.Context) {
	tenderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	overrides, err := h.tenderService.ListDeliveryOverrides(tenderID)
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, overrides)
}

// HandleDeleteOverride удаляет корректировку доставки
// @Summary Удалить корректировку доставки
// @Tags overrides
// @Accept json
// @Produce json
// @Param id path int true "ID тендера"
// @Param request body OverrideRequest true "Пара позиция-поставщик"
// @Success 204 "Корректировка удалена"
// @Failure 404 {object} ErrorResponse "Корректировка не найдена"
// @Router /api/tenders/{id}/overrides [delete]
func (h *TenderHandler) HandleDeleteOverride(c *gin.Context) {
	if _, ok := parseIDParam(c, "id"); !ok {
		return
	}
	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("неверный формат тела запроса", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	if err := h.tenderService.DeleteDeliveryOverride(req.TenderItemID, req.SupplierID); err != nil {
		SendAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
