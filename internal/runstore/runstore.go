// Package runstore persists extraction runs for audit/history
// (SPEC_FULL.md §4.15, C14): the language, source path, fingerprint and
// index digests, timing, warning count, and diagnostics summary of each
// call to one of the C8 extractors. It connects to either a local SQLite
// file or a remote libsql/Turso URL, selecting the dialector the same way
// the teacher's db/sqlite.go does.
package runstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	libsql "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oxhq/apiindex/internal/config"
)

// Run is one persisted extraction run.
type Run struct {
	ID                string `gorm:"primaryKey;type:varchar(36)"`
	Language          string `gorm:"type:varchar(20);index;not null"`
	PackageName       string `gorm:"type:varchar(255)"`
	SourcePath        string `gorm:"type:text"`
	FingerprintDigest string `gorm:"type:varchar(64);index"`
	IndexDigest       string `gorm:"type:varchar(64)"`
	WarningCount      int
	Warnings          string `gorm:"type:text"` // newline-joined
	DiagnosticsCount  int
	Success           bool      `gorm:"index"`
	ErrorMessage      string    `gorm:"type:text"`
	StartedAt         time.Time `gorm:"autoCreateTime"`
	DurationMs        int64
}

// TableName keeps the table name stable regardless of Go type renames.
func (Run) TableName() string { return "runs" }

// Store wraps a connected Run Store database.
type Store struct {
	db *gorm.DB
}

// Open connects using cfg, selecting a local SQLite file or a remote
// libsql/Turso dialector depending on whether cfg.DSN is a URL, then runs
// AutoMigrate for Run.
func Open(cfg config.RunStore) (*Store, error) {
	if !isURL(cfg.DSN) {
		dir := filepath.Dir(cfg.DSN)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating run store directory: %w", err)
			}
		}
	}

	gormCfg := &gorm.Config{}
	if cfg.Debug {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var (
		dialector gorm.Dialector
		conn      *sql.DB
	)
	if isURL(cfg.DSN) {
		var (
			connector driver.Connector
			err       error
		)
		if token := os.Getenv("SDK_CHAT_RUNSTORE_AUTH_TOKEN"); token != "" {
			connector, err = libsql.NewConnector(cfg.DSN, libsql.WithAuthToken(token))
		} else {
			connector, err = libsql.NewConnector(cfg.DSN)
		}
		if err != nil {
			return nil, fmt.Errorf("creating libsql connector: %w", err)
		}
		conn = sql.OpenDB(connector)
		dialector = sqlite.New(sqlite.Config{DriverName: "libsql", Conn: conn, DSN: cfg.DSN})
	} else {
		dialector = sqlite.Open(cfg.DSN)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("opening run store: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Exec("PRAGMA foreign_keys = ON")
	}

	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("migrating run store: %w", err)
	}

	return &Store{db: db}, nil
}

func isURL(dsn string) bool {
	return strings.HasPrefix(dsn, "http://") || strings.HasPrefix(dsn, "https://") || strings.HasPrefix(dsn, "libsql://")
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RunInput is the caller-supplied half of a Run; Store assigns ID and
// StartedAt.
type RunInput struct {
	Language          string
	PackageName       string
	SourcePath        string
	FingerprintDigest string
	IndexDigest       string
	Warnings          []string
	DiagnosticsCount  int
	Success           bool
	ErrorMessage      string
	Duration          time.Duration
}

// Record persists one extraction run and returns its assigned ID.
func (s *Store) Record(ctx context.Context, in RunInput) (string, error) {
	run := Run{
		ID:                uuid.NewString(),
		Language:          in.Language,
		PackageName:       in.PackageName,
		SourcePath:        in.SourcePath,
		FingerprintDigest: in.FingerprintDigest,
		IndexDigest:       in.IndexDigest,
		WarningCount:      len(in.Warnings),
		Warnings:          strings.Join(in.Warnings, "\n"),
		DiagnosticsCount:  in.DiagnosticsCount,
		Success:           in.Success,
		ErrorMessage:      in.ErrorMessage,
		DurationMs:        in.Duration.Milliseconds(),
	}
	if err := s.db.WithContext(ctx).Create(&run).Error; err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}
	return run.ID, nil
}

// Get fetches a single run by ID.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	var run Run
	if err := s.db.WithContext(ctx).First(&run, "id = ?", id).Error; err != nil {
		return Run{}, fmt.Errorf("fetching run %s: %w", id, err)
	}
	return run, nil
}

// ListForPackage returns the most recent runs for a language/package pair,
// newest first, bounded by limit.
func (s *Store) ListForPackage(ctx context.Context, language, packageName string, limit int) ([]Run, error) {
	var runs []Run
	q := s.db.WithContext(ctx).Where("language = ? AND package_name = ?", language, packageName).Order("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}
