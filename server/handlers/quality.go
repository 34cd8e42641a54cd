package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tenderserver/quality"
)

// QualityResponse итог проверки качества позиций тендера
type QualityResponse struct {
	Duplicates []quality.DuplicatePair `json:"duplicates"`
	Warnings   []string                `json:"warnings"`
}

// HandleCheckItemQuality ищет подозрительные дубли среди позиций тендера
// @Summary Проверить позиции на дубли
// @Description Сравнивает названия позиций по стеммированным токенам и возвращает подозрительные пары
// @Tags tenders
// @Produce json
// @Param id path int true "ID тендера"
// @Param threshold query number false "Порог похожести 0..1" default(0.8)
// @Success 200 {object} QualityResponse "Найденные дубли"
// @Failure 404 {object} ErrorResponse "Тендер не найден"
// @Router /api/tenders/{id}/quality [get]
func (h *TenderHandler) HandleCheckItemQuality(c *gin.Context) {
	tenderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tender, err := h.tenderService.GetTender(tenderID)
	if err != nil {
		SendAppError(c, err)
		return
	}

	threshold := 0.8
	if s := c.Query("threshold"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			threshold = v
		}
	}

	detector := quality.NewItemDuplicateDetector(threshold)
	SendJSONResponse(c, http.StatusOK, QualityResponse{
		Duplicates: detector.FindDuplicates(tender.Items),
		Warnings:   detector.Warnings(tender.Items),
	})
}
