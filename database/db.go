package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound запись не найдена
var ErrNotFound = errors.New("запись не найдена")

// DBConfig конфигурация подключения к БД
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultDBConfig настройки пула по умолчанию
func DefaultDBConfig() DBConfig {
	return DBConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// TenderDB обертка для работы с базой данных тендеров
type TenderDB struct {
	conn *sql.DB
}

// NewTenderDB открывает базу данных тендеров и применяет миграции
func NewTenderDB(path string, configs ...DBConfig) (*TenderDB, error) {
	cfg := DefaultDBConfig()
	if len(configs) > 0 {
		cfg = configs[0]
	}

	// _foreign_keys включает контроль ссылочной целостности в sqlite
	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &TenderDB{conn: conn}
	if err := db.Migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// GetDB возвращает низкоуровневое подключение
func (db *TenderDB) GetDB() *sql.DB {
	return db.conn
}

// Close закрывает подключение к БД
func (db *TenderDB) Close() error {
	return db.conn.Close()
}

// nullFloat преобразует sql.NullFloat64 в указатель: NULL в БД означает
// "значение не задано", а не ноль
func nullFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}

// floatArg преобразует указатель в аргумент запроса
func floatArg(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// nullString преобразует sql.NullString в строку
func nullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
