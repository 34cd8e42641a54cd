package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"tenderserver/database"
	"tenderserver/internal/config"
	"tenderserver/server/handlers"
	"tenderserver/server/middleware"
	"tenderserver/server/services"
)

// Server HTTP сервер оценки тендеров
type Server struct {
	config *config.Config
	db     *database.TenderDB

	tenderService     *services.TenderService
	evaluationService *services.EvaluationService

	httpServer  *http.Server
	httpHandler http.Handler
	handlerOnce sync.Once
}

// NewServer создает сервер с сервисами поверх открытой БД
func NewServer(db *database.TenderDB, cfg *config.Config) *Server {
	return &Server{
		config:            cfg,
		db:                db,
		tenderService:     services.NewTenderService(db),
		evaluationService: services.NewEvaluationService(db, cfg.Evaluation),
	}
}

// Start запускает HTTP сервер и блокируется до его остановки
func (s *Server) Start() error {
	handler := s.ensureHTTPHandler()

	addr := ":" + s.config.Port
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // выгрузка xlsx по большим тендерам небыстрая
		IdleTimeout:  120 * time.Second,
	}

	LogInfo(context.Background(), "Сервер запускается", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("не удалось запустить HTTP сервер на %s: %w", addr, err)
	}
	return nil
}

// Shutdown останавливает HTTP сервер gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	LogInfo(ctx, "Останавливаем сервер")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}
	LogInfo(ctx, "Сервер остановлен")
	return nil
}

// ServeHTTP реализует http.Handler для тестов
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.ensureHTTPHandler().ServeHTTP(w, r)
}

func (s *Server) ensureHTTPHandler() http.Handler {
	s.handlerOnce.Do(func() {
		s.httpHandler = s.buildHTTPHandler()
	})
	return s.httpHandler
}

func (s *Server) buildHTTPHandler() http.Handler {
	// release по умолчанию, переопределяется через GIN_MODE
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinGzipMiddleware())
	router.Use(middleware.GinLoggerMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())

	handlers.RegisterSwaggerRoutes(router, s.config.Port)

	tenderHandler := handlers.NewTenderHandler(s.tenderService)
	evaluationHandler := handlers.NewEvaluationHandler(s.evaluationService)
	exportHandler := handlers.NewExportHandler(s.evaluationService, s.config.ExportDir)
	importHandler := handlers.NewImportHandler(s.tenderService)

	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	{
		api.POST("/suppliers", tenderHandler.HandleCreateSupplier)
		api.GET("/suppliers", tenderHandler.HandleListSuppliers)

		api.POST("/tenders", tenderHandler.HandleCreateTender)
		api.GET("/tenders", tenderHandler.HandleListTenders)
		api.GET("/tenders/:id", tenderHandler.HandleGetTender)
		api.PUT("/tenders/:id/status", tenderHandler.HandleChangeTenderStatus)
		api.GET("/tenders/:id/quality", tenderHandler.HandleCheckItemQuality)

		api.POST("/tenders/:id/proposals", tenderHandler.HandleCreateProposal)
		api.GET("/tenders/:id/proposals", tenderHandler.HandleListProposals)
		api.PUT("/proposals/:id/status", tenderHandler.HandleChangeProposalStatus)

		api.PUT("/tenders/:id/overrides", tenderHandler.HandleSetOverride)
		api.GET("/tenders/:id/overrides", tenderHandler.HandleListOverrides)
		api.DELETE("/tenders/:id/overrides", tenderHandler.HandleDeleteOverride)

		api.GET("/tenders/:id/evaluation", evaluationHandler.HandleEvaluateTender)
		api.GET("/tenders/:id/comparison", evaluationHandler.HandleCompareItemPrices)
		api.GET("/tenders/:id/evaluation/export", exportHandler.HandleExportEvaluation)

		// Разбор файлов дороже обычных запросов, ограничиваем частоту
		importGroup := api.Group("")
		importGroup.Use(middleware.GinRateLimitMiddleware(s.config.ImportRatePerSecond, s.config.ImportRateBurst))
		importGroup.POST("/tenders/:id/proposals/import", importHandler.HandleImportProposal)
	}

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	status := "ok"
	code := http.StatusOK
	if err := s.db.GetDB().Ping(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
