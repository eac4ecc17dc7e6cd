package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/reloadkit/cartgeo/internal/config"
	"github.com/reloadkit/cartgeo/internal/model"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryPath opens a private in-memory SQLite database.
const MemoryPath = ":memory:"

// Manager handles database connections and schema setup.
type Manager struct {
	DB             *gorm.DB
	SqlDB          *sql.DB
	Dialect        string
	SqliteFilePath string
	Logger         zerolog.Logger
}

// NewManager creates a new database manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{Logger: log}
}

// Connect opens the database selected by cfg. A Postgres connection that
// cannot be opened or pinged falls back to the configured SQLite file.
func (m *Manager) Connect(cfg config.StorageConfig, db config.DBConfig) error {
	switch cfg.Type {
	case config.StoragePostgres:
		err := m.OpenPostgres(db)
		if err == nil {
			return nil
		}
		m.Logger.Error().Err(err).Msg("Failed to connect to Postgres DB, trying SQLite")
		return m.OpenSQLite(cfg.SQLite.Path)
	case config.StorageSQLite:
		return m.OpenSQLite(cfg.SQLite.Path)
	default:
		return fmt.Errorf("storage type %q has no database", cfg.Type)
	}
}

// OpenPostgres connects to Postgres and verifies the connection.
func (m *Manager) OpenPostgres(cfg config.DBConfig) error {
	dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database)

	m.Logger.Debug().Str("host", cfg.Host).Str("port", cfg.Port).Str("database", cfg.Database).Msg("Connecting to Postgres DB")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        1000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := m.attach(db, "postgres"); err != nil {
		return err
	}
	m.SqlDB.SetMaxOpenConns(10)
	m.Logger.Info().Msg("Connected to database")
	return nil
}

// OpenSQLite opens the SQLite database at path. MemoryPath or an empty path
// opens an in-memory database limited to one connection so that every query
// sees the same data.
func (m *Manager) OpenSQLite(path string) error {
	memory := path == "" || path == MemoryPath
	dsn := path
	if memory {
		dsn = MemoryPath
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		CreateBatchSize:        500,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open sqlite %s: %w", dsn, err)
	}
	if err := m.attach(db, "sqlite"); err != nil {
		return err
	}
	if memory {
		m.SqlDB.SetMaxOpenConns(1)
		m.Logger.Info().Msg("Using SQLite DB in memory")
	} else {
		m.SqliteFilePath = path
		m.Logger.Info().Str("path", path).Msg("Using local SQLite DB")
	}

	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA synchronous = OFF;",
		"PRAGMA cache_size = -32000;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, pragma := range pragmas {
		if err := m.DB.Exec(pragma).Error; err != nil {
			return fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}
	return nil
}

func (m *Manager) attach(db *gorm.DB, dialect string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("failed to validate connection: %w", err)
	}
	m.DB, m.SqlDB, m.Dialect = db, sqlDB, dialect
	return nil
}

// Setup migrates the catalog schema.
func (m *Manager) Setup() error {
	if m.DB == nil {
		return errors.New("database not connected")
	}
	m.Logger.Info().Msg("Migrating schema")
	if err := m.DB.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	m.Logger.Info().Msg("Database setup complete")
	return nil
}

// DumpToFile vacuums the SQLite database into path, replacing any file there.
func (m *Manager) DumpToFile(path string) error {
	if m.Dialect != "sqlite" {
		return fmt.Errorf("dump needs sqlite, connected to %q", m.Dialect)
	}
	if path == "" {
		return errors.New("sqlite file path not set")
	}
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("error removing existing DB file: %w", err)
		}
	}

	start := time.Now()
	if err := m.DB.Exec("VACUUM INTO ?", path).Error; err != nil {
		return fmt.Errorf("error dumping DB to disk: %w", err)
	}
	m.Logger.Debug().Dur("duration", time.Since(start)).Str("path", path).Msg("Dumped DB to disk")
	return nil
}

// Close closes the underlying connection pool.
func (m *Manager) Close() error {
	if m.SqlDB == nil {
		return nil
	}
	err := m.SqlDB.Close()
	m.DB, m.SqlDB = nil, nil
	return err
}
