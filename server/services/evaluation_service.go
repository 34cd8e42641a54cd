package services

import (
	"errors"

	"tenderserver/database"
	"tenderserver/evaluation"
	apperrors "tenderserver/server/errors"
)

// EvaluationService сервис оценки цен тендера: загружает снапшот из БД
// и прогоняет его через движок. Сам сервис состояния не хранит —
// каждый вызов пересчитывает отчет с нуля по актуальным данным.
type EvaluationService struct {
	db     *database.TenderDB
	engine *evaluation.Engine
}

// NewEvaluationService создает сервис оценки
func NewEvaluationService(db *database.TenderDB, cfg evaluation.AnalyzerConfig) *EvaluationService {
	return &EvaluationService{
		db:     db,
		engine: evaluation.NewEngine(cfg),
	}
}

// EvaluateTender считает полный отчет об оценке тендера: победителей
// по позициям, сводку, аномалии и рекомендации
func (es *EvaluationService) EvaluateTender(tenderID int64) (*evaluation.Result, error) {
	snap, err := es.loadSnapshot(tenderID)
	if err != nil {
		return nil, err
	}

	result, err := es.engine.Evaluate(snap)
	if err != nil {
		if errors.Is(err, evaluation.ErrTenderNotReady) {
			return nil, apperrors.NewConflictError(err.Error(), err)
		}
		return nil, apperrors.NewInternalError("не удалось рассчитать оценку тендера", err)
	}
	return result, nil
}

// CompareItemPrices возвращает таблицу нормализованных цен по позициям.
// Работает на любой стадии тендера, победителей не объявляет.
func (es *EvaluationService) CompareItemPrices(tenderID int64) ([]evaluation.ItemComparison, error) {
	snap, err := es.loadSnapshot(tenderID)
	if err != nil {
		return nil, err
	}

	comparisons, err := es.engine.CompareItemPrices(snap)
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось построить сравнение цен", err)
	}
	return comparisons, nil
}

func (es *EvaluationService) loadSnapshot(tenderID int64) (*evaluation.Snapshot, error) {
	snap, err := es.db.LoadEvaluationSnapshot(tenderID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("тендер не найден", err)
		}
		return nil, apperrors.NewInternalError("не удалось загрузить данные тендера", err)
	}
	return snap, nil
}
