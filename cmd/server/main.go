// @title Tender Price Evaluation API
// @version 1.0
// @description Сервис оценки ценовых предложений по тендерам: нормализация цен с учетом НДС и доставки, выбор победителей, аналитика и рекомендации.

// @contact.name API Support
// @contact.email support@example.com

// @host localhost:9999
// @BasePath /
// @schemes http

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tenderserver/database"
	"tenderserver/internal/config"
	"tenderserver/server"
)

func main() {
	log.Println("Запуск сервера оценки тендеров...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("✗ Ошибка загрузки конфигурации: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("✗ Некорректная конфигурация: %v", err)
	}
	server.ConfigureLogLevel(cfg.LogLevel)
	log.Printf("✓ Конфигурация загружена. Порт: %s", cfg.Port)

	dbConfig := database.DBConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	db, err := database.NewTenderDB(cfg.DatabasePath, dbConfig)
	if err != nil {
		log.Fatalf("✗ Не удалось инициализировать базу данных %s: %v", cfg.DatabasePath, err)
	}
	defer db.Close()
	log.Printf("✓ БД инициализирована: %s", cfg.DatabasePath)

	srv := server.NewServer(db, cfg)

	// Graceful shutdown по SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		log.Printf("Получен сигнал %s, останавливаемся...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("✗ Ошибка остановки сервера: %v", err)
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("✗ %v", err)
	}
}
