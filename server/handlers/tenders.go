package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tenderserver/database"
	apperrors "tenderserver/server/errors"
	"tenderserver/server/services"
)

// TenderHandler обработчики справочника тендеров, поставщиков
// и предложений
type TenderHandler struct {
	tenderService *services.TenderService
}

// NewTenderHandler создает обработчик тендеров
func NewTenderHandler(tenderService *services.TenderService) *TenderHandler {
	return &TenderHandler{tenderService: tenderService}
}

// StatusRequest тело запроса смены статуса
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		appErr := apperrors.NewValidationError("неверный формат "+name, err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return 0, false
	}
	return id, true
}

// HandleCreateSupplier создает поставщика
// @Summary Создать поставщика
// @Description Создает компанию-поставщика с атрибутами НДС
// @Tags suppliers
// @Accept json
// @Produce json
// @Param request body database.Supplier true "Данные поставщика"
// @Success 201 {object} database.Supplier "Созданный поставщик"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/suppliers [post]
func (h *TenderHandler) HandleCreateSupplier(c *gin.Context) {
	var req database.Supplier
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("неверный формат тела запроса", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	created, err := h.tenderService.CreateSupplier(&req)
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusCreated, created)
}

// HandleListSuppliers возвращает всех поставщиков
// @Summary Список поставщиков
// @Tags suppliers
// @Produce json
// @Success 200 {array} database.Supplier "Поставщики"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/suppliers [get]
func (h *TenderHandler) HandleListSuppliers(c *gin.Context) {
	suppliers, err := h.tenderService.ListSuppliers()
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, suppliers)
}

// HandleCreateTender создает тендер с позициями
// @Summary Создать тендер
// @Description Создает тендер вместе с позициями. Номер тендера уникален.
// @Tags tenders
// @Accept json
// @Produce json
// @Param request body database.Tender true "Данные тендера"
// @Success 201 {object} database.Tender "Созданный тендер"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Failure 409 {object} ErrorResponse "Номер тендера уже занят"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/tenders [post]
func (h *TenderHandler) HandleCreateTender(c *gin.Context) {
	var req database.Tender
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("неверный формат тела запроса", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	created, err := h.tenderService.CreateTender(&req)
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusCreated, created)
}

// HandleListTenders возвращает все тендеры
// @Summary Список тендеров
// @Tags tenders
// @Produce json
// @Success 200 {array} database.Tender "Тендеры"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/tenders [get]
func (h *TenderHandler) HandleListTenders(c *gin.Context) {
	tenders, err := h.tenderService.ListTenders()
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, tenders)
}

// HandleGetTender возвращает тендер с позициями
// @Summary Получить тендер
// @Tags tenders
// @Produce json
// @Param id path int true "ID тендера"
// @Success 200 {object} database.Tender "Тендер"
// @Failure 404 {object} ErrorResponse "Тендер не найден"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/tenders/{id} [get]
func (h *TenderHandler) HandleGetTender(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tender, err := h.tenderService.GetTender(id)
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, tender)
}

// HandleChangeTenderStatus переводит тендер в новый статус
// @Summary Сменить статус тендера
// @Description Переводит тендер по жизненному циклу DRAFT -> PUBLISHED -> BIDDING -> EVALUATION -> AWARDED
// @Tags tenders
// @Accept json
// @Produce json
// @Param id path int true "ID тендера"
// @Param request body StatusRequest true "Новый статус"
// @Success 200 {object} database.Tender "Обновленный тендер"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Failure 404 {object} ErrorResponse "Тендер не найден"
// @Failure 409 {object} ErrorResponse "Недопустимый переход"
// @Router /api/tenders/{id}/status [put]
func (h *TenderHandler) HandleChangeTenderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("неверный формат тела запроса", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	tender, err := h.tenderService.ChangeTenderStatus(id, req.Status)
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, tender)
}

// HandleCreateProposal создает предложение поставщика по тендеру
// @Summary Подать предложение
// @Description Создает предложение поставщика со строками-ставками. Принимается только на стадии BIDDING.
// @Tags proposals
// @Accept json
// @Produce json
// @Param id path int true "ID тендера"
// @Param request body database.Proposal true "Данные предложения"
// @Success 201 {object} database.Proposal "Созданное предложение"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Failure 404 {object} ErrorResponse "Тендер или поставщик не найден"
// @Failure 409 {object} ErrorResponse "Прием предложений закрыт"
// @Router /api/tenders/{id}/proposals [post]
func (h *TenderHandler) HandleCreateProposal(c *gin.Context) {
	tenderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req database.Proposal
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("неверный формат тела запроса", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}
	req.TenderID = tenderID

	created, err := h.tenderService.CreateProposal(&req)
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusCreated, created)
}

// HandleListProposals возвращает предложения тендера
// @Summary Предложения тендера
// @Tags proposals
// @Produce json
// @Param id path int true "ID тендера"
// @Success 200 {array} database.Proposal "Предложения"
// @Failure 404 {object} ErrorResponse "Тендер не найден"
// @Router /api/tenders/{id}/proposals [get]
func (h *TenderHandler) HandleListProposals(c *gin.Context) {
	tenderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	proposals, err := h.tenderService.ListProposals(tenderID)
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, proposals)
}

// HandleChangeProposalStatus переводит предложение в новый статус
// @Summary Сменить статус предложения
// @Tags proposals
// @Accept json
// @Produce json
// @Param id path int true "ID предложения"
// @Param request body StatusRequest true "Новый статус"
// @Success 200 {object} database.Proposal "Обновленное предложение"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Failure 404 {object} ErrorResponse "Предложение не найдено"
// @Failure 409 {object} ErrorResponse "Недопустимый переход"
// @Router /api/proposals/{id}/status [put]
func (h *TenderHandler) HandleChangeProposalStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("неверный формат тела запроса", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	proposal, err := h.tenderService.ChangeProposalStatus(id, req.Status)
	if err != nil {
		SendAppError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, proposal)
}
