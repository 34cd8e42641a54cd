package services

import (
	"errors"
	"fmt"
	"strings"

	"tenderserver/database"
	"tenderserver/evaluation"
	apperrors "tenderserver/server/errors"
)

// tenderTransitions допустимые переходы статусов тендера.
// AWARDED и CANCELLED терминальные.
var tenderTransitions = map[evaluation.TenderStatus][]evaluation.TenderStatus{
	evaluation.TenderStatusDraft:      {evaluation.TenderStatusPublished, evaluation.TenderStatusCancelled},
	evaluation.TenderStatusPublished:  {evaluation.TenderStatusBidding, evaluation.TenderStatusCancelled},
	evaluation.TenderStatusBidding:    {evaluation.TenderStatusEvaluation, evaluation.TenderStatusCancelled},
	evaluation.TenderStatusEvaluation: {evaluation.TenderStatusAwarded, evaluation.TenderStatusCancelled},
}

// proposalTransitions допустимые переходы статусов предложения
var proposalTransitions = map[evaluation.ProposalStatus][]evaluation.ProposalStatus{
	evaluation.ProposalStatusDraft:       {evaluation.ProposalStatusSubmitted, evaluation.ProposalStatusWithdrawn},
	evaluation.ProposalStatusSubmitted:   {evaluation.ProposalStatusUnderReview, evaluation.ProposalStatusRejected, evaluation.ProposalStatusWithdrawn},
	evaluation.ProposalStatusUnderReview: {evaluation.ProposalStatusAccepted, evaluation.ProposalStatusRejected, evaluation.ProposalStatusWithdrawn},
}

func transitionAllowed[S comparable](transitions map[S][]S, from, to S) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TenderService сервис для управления тендерами, поставщиками
// и предложениями
type TenderService struct {
	db *database.TenderDB
}

// NewTenderService создает новый сервис тендеров
func NewTenderService(db *database.TenderDB) *TenderService {
	return &TenderService{db: db}
}

// CreateSupplier создает поставщика
func (ts *TenderService) CreateSupplier(s *database.Supplier) (*database.Supplier, error) {
	if strings.TrimSpace(s.Name) == "" {
		return nil, apperrors.NewValidationError("название поставщика не может быть пустым", nil)
	}
	if s.VATRate < 0 || s.VATRate > 100 {
		return nil, apperrors.NewValidationError("ставка НДС должна быть в диапазоне 0-100", nil)
	}

	id, err := ts.db.CreateSupplier(s)
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось создать поставщика", err)
	}
	created, err := ts.db.GetSupplier(id)
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось прочитать созданного поставщика", err)
	}
	return created, nil
}

// ListSuppliers возвращает всех поставщиков
func (ts *TenderService) ListSuppliers() ([]database.Supplier, error) {
	suppliers, err := ts.db.ListSuppliers()
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось получить список поставщиков", err)
	}
	return suppliers, nil
}

// CreateTender создает тендер с позициями
func (ts *TenderService) CreateTender(t *database.Tender) (*database.Tender, error) {
	if strings.TrimSpace(t.Number) == "" {
		return nil, apperrors.NewValidationError("номер тендера не может быть пустым", nil)
	}
	if strings.TrimSpace(t.Title) == "" {
		return nil, apperrors.NewValidationError("название тендера не может быть пустым", nil)
	}
	if len(t.Items) == 0 {
		return nil, apperrors.NewValidationError("тендер должен содержать хотя бы одну позицию", nil)
	}
	for i := range t.Items {
		item := &t.Items[i]
		if strings.TrimSpace(item.Name) == "" {
			return nil, apperrors.NewValidationError(fmt.Sprintf("позиция %d: пустое название", i+1), nil)
		}
		if item.Quantity <= 0 {
			return nil, apperrors.NewValidationError(fmt.Sprintf("позиция %d: количество должно быть положительным", i+1), nil)
		}
		if item.EstimatedUnitPrice != nil && *item.EstimatedUnitPrice < 0 {
			return nil, apperrors.NewValidationError(fmt.Sprintf("позиция %d: плановая цена не может быть отрицательной", i+1), nil)
		}
	}
	if t.Status != "" && !evaluation.TenderStatus(t.Status).Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("неизвестный статус тендера: %s", t.Status), nil)
	}

	id, err := ts.db.CreateTender(t)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, apperrors.NewConflictError(fmt.Sprintf("тендер с номером %s уже существует", t.Number), err)
		}
		return nil, apperrors.NewInternalError("не удалось создать тендер", err)
	}
	return ts.GetTender(id)
}

// GetTender возвращает тендер с позициями
func (ts *TenderService) GetTender(id int64) (*database.Tender, error) {
	t, err := ts.db.GetTender(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("тендер не найден", err)
		}
		return nil, apperrors.NewInternalError("не удалось получить тендер", err)
	}
	return t, nil
}

// ListTenders возвращает все тендеры
func (ts *TenderService) ListTenders() ([]database.Tender, error) {
	tenders, err := ts.db.ListTenders()
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось получить список тендеров", err)
	}
	return tenders, nil
}

// ChangeTenderStatus переводит тендер в новый статус с проверкой
// допустимости перехода
func (ts *TenderService) ChangeTenderStatus(id int64, newStatus string) (*database.Tender, error) {
	target := evaluation.TenderStatus(newStatus)
	if !target.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("неизвестный статус тендера: %s", newStatus), nil)
	}

	current, err := ts.GetTender(id)
	if err != nil {
		return nil, err
	}
	from := evaluation.TenderStatus(current.Status)
	if from == target {
		return current, nil
	}
	if !transitionAllowed(tenderTransitions, from, target) {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("переход тендера из %s в %s недопустим", from, target), nil)
	}

	if err := ts.db.UpdateTenderStatus(id, newStatus); err != nil {
		return nil, apperrors.NewInternalError("не удалось обновить статус тендера", err)
	}
	return ts.GetTender(id)
}

// CreateProposal создает предложение поставщика по тендеру.
// Предложения принимаются только на стадии приема (BIDDING).
func (ts *TenderService) CreateProposal(p *database.Proposal) (*database.Proposal, error) {
	tender, err := ts.GetTender(p.TenderID)
	if err != nil {
		return nil, err
	}
	if evaluation.TenderStatus(tender.Status) != evaluation.TenderStatusBidding {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("прием предложений по тендеру в статусе %s закрыт", tender.Status), nil)
	}
	if _, err := ts.db.GetSupplier(p.SupplierID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("поставщик не найден", err)
		}
		return nil, apperrors.NewInternalError("не удалось проверить поставщика", err)
	}
	if len(p.Lines) == 0 {
		return nil, apperrors.NewValidationError("предложение должно содержать хотя бы одну строку", nil)
	}

	// Строки должны ссылаться на позиции этого тендера
	itemIDs := make(map[int64]bool, len(tender.Items))
	for _, item := range tender.Items {
		itemIDs[item.ID] = true
	}
	for i := range p.Lines {
		line := &p.Lines[i]
		if !itemIDs[line.TenderItemID] {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("строка %d ссылается на позицию %d чужого тендера", i+1, line.TenderItemID), nil)
		}
		if line.TotalPrice != nil && *line.TotalPrice < 0 {
			return nil, apperrors.NewValidationError(fmt.Sprintf("строка %d: отрицательная итоговая цена", i+1), nil)
		}
	}
	if p.Status != "" && !evaluation.ProposalStatus(p.Status).Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("неизвестный статус предложения: %s", p.Status), nil)
	}
	if p.BlanketDeliveryCost != nil && *p.BlanketDeliveryCost < 0 {
		return nil, apperrors.NewValidationError("стоимость доставки не может быть отрицательной", nil)
	}

	id, err := ts.db.CreateProposal(p)
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось создать предложение", err)
	}
	return ts.GetProposal(id)
}

// GetProposal возвращает предложение со строками
func (ts *TenderService) GetProposal(id int64) (*database.Proposal, error) {
	p, err := ts.db.GetProposal(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("предложение не найдено", err)
		}
		return nil, apperrors.NewInternalError("не удалось получить предложение", err)
	}
	return p, nil
}

// ListProposals возвращает предложения тендера
func (ts *TenderService) ListProposals(tenderID int64) ([]database.Proposal, error) {
	if _, err := ts.GetTender(tenderID); err != nil {
		return nil, err
	}
	proposals, err := ts.db.ListProposalsByTender(tenderID)
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось получить предложения", err)
	}
	return proposals, nil
}

// ChangeProposalStatus переводит предложение в новый статус с проверкой
// допустимости перехода
func (ts *TenderService) ChangeProposalStatus(id int64, newStatus string) (*database.Proposal, error) {
	target := evaluation.ProposalStatus(newStatus)
	if !target.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("неизвестный статус предложения: %s", newStatus), nil)
	}

	current, err := ts.GetProposal(id)
	if err != nil {
		return nil, err
	}
	from := evaluation.ProposalStatus(current.Status)
	if from == target {
		return current, nil
	}
	if !transitionAllowed(proposalTransitions, from, target) {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("переход предложения из %s в %s недопустим", from, target), nil)
	}

	if err := ts.db.UpdateProposalStatus(id, newStatus); err != nil {
		return nil, apperrors.NewInternalError("не удалось обновить статус предложения", err)
	}
	return ts.GetProposal(id)
}

// SetDeliveryOverride создает или обновляет корректировку доставки.
// Пара (позиция, поставщик) должна относиться к указанному тендеру.
func (ts *TenderService) SetDeliveryOverride(tenderID int64, o *database.DeliveryOverride) error {
	tender, err := ts.GetTender(tenderID)
	if err != nil {
		return err
	}
	found := false
	for _, item := range tender.Items {
		if item.ID == o.TenderItemID {
			found = true
			break
		}
	}
	if !found {
		return apperrors.NewValidationError(
			fmt.Sprintf("позиция %d не относится к тендеру %d", o.TenderItemID, tenderID), nil)
	}
	if _, err := ts.db.GetSupplier(o.SupplierID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperrors.NewNotFoundError("поставщик не найден", err)
		}
		return apperrors.NewInternalError("не удалось проверить поставщика", err)
	}
	if o.Amount < 0 {
		return apperrors.NewValidationError("сумма корректировки не может быть отрицательной", nil)
	}

	if err := ts.db.UpsertDeliveryOverride(o); err != nil {
		return apperrors.NewInternalError("не удалось сохранить корректировку доставки", err)
	}
	return nil
}

// DeleteDeliveryOverride удаляет корректировку доставки
func (ts *TenderService) DeleteDeliveryOverride(tenderItemID, supplierID int64) error {
	if err := ts.db.DeleteDeliveryOverride(tenderItemID, supplierID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperrors.NewNotFoundError("корректировка не найдена", err)
		}
		return apperrors.NewInternalError("не удалось удалить корректировку доставки", err)
	}
	return nil
}

// ListDeliveryOverrides возвращает корректировки тендера
func (ts *TenderService) ListDeliveryOverrides(tenderID int64) ([]database.DeliveryOverride, error) {
	if _, err := ts.GetTender(tenderID); err != nil {
		return nil, err
	}
	overrides, err := ts.db.ListOverridesByTender(tenderID)
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось получить корректировки", err)
	}
	return overrides, nil
}
