package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FileName is the configuration file looked up in the config directory.
const FileName = "cartgeo.cfg.json"

// Storage backend types
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// MemoryConfig holds in-memory storage backend settings
type MemoryConfig struct {
	SeedFile       string `json:"seedFile" mapstructure:"seedFile"`
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SQLiteConfig holds SQLite storage backend settings
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// StorageConfig selects and configures the catalog storage backend
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	Memory MemoryConfig `json:"memory" mapstructure:"memory"`
	SQLite SQLiteConfig `json:"sqlite" mapstructure:"sqlite"`
}

// DBConfig holds Postgres connection settings
type DBConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// InfluxConfig holds InfluxDB settings for catalog run statistics
type InfluxConfig struct {
	Enabled    bool   `json:"enabled" mapstructure:"enabled"`
	Host       string `json:"host" mapstructure:"host"`
	Port       string `json:"port" mapstructure:"port"`
	Protocol   string `json:"protocol" mapstructure:"protocol"`
	Token      string `json:"token" mapstructure:"token"`
	Org        string `json:"org" mapstructure:"org"`
	Bucket     string `json:"bucket" mapstructure:"bucket"`
	BackupPath string `json:"backupPath" mapstructure:"backupPath"`
}

// GraylogConfig holds GELF log shipping settings
type GraylogConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Address string `json:"address" mapstructure:"address"`
}

// MeshConfig holds tessellation settings
type MeshConfig struct {
	Segments        int     `json:"segments" mapstructure:"segments"`
	WallThicknessMM float64 `json:"wallThicknessMM" mapstructure:"wallThicknessMM"`
	MinRadiusMM     float64 `json:"minRadiusMM" mapstructure:"minRadiusMM"`
}

// LayoutConfig holds dimension stagger settings, in drawing units
type LayoutConfig struct {
	BaseOffset  float64 `json:"baseOffset" mapstructure:"baseOffset"`
	TierSpacing float64 `json:"tierSpacing" mapstructure:"tierSpacing"`
	Clearance   float64 `json:"clearance" mapstructure:"clearance"`
}

// StressConfig holds pressure ratio thresholds
type StressConfig struct {
	CautionRatio float64 `json:"cautionRatio" mapstructure:"cautionRatio"`
	DangerRatio  float64 `json:"dangerRatio" mapstructure:"dangerRatio"`
}

// EngineConfig groups the geometry engine settings
type EngineConfig struct {
	Mesh   MeshConfig   `json:"mesh" mapstructure:"mesh"`
	Layout LayoutConfig `json:"layout" mapstructure:"layout"`
	Stress StressConfig `json:"stress" mapstructure:"stress"`
}

// CatalogConfig holds batch rendering settings
type CatalogConfig struct {
	Workers int           `json:"workers" mapstructure:"workers"`
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// SetDefaults registers every default value. Load calls it; callers that run
// without a config file call it directly.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "cartgeo")

	viper.SetDefault("storage.type", StorageMemory)
	viper.SetDefault("storage.memory.seedFile", "")
	viper.SetDefault("storage.memory.outputDir", "./snapshots")
	viper.SetDefault("storage.memory.compressOutput", true)
	viper.SetDefault("storage.sqlite.path", "./cartgeo.db")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "reloadkit")
	viper.SetDefault("influx.bucket", "cartgeo")
	viper.SetDefault("influx.backupPath", "./influx-backup.lp.gz")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("engine.mesh.segments", 48)
	viper.SetDefault("engine.mesh.wallThicknessMM", 0.3)
	viper.SetDefault("engine.mesh.minRadiusMM", 0.05)
	viper.SetDefault("engine.layout.baseOffset", 12.0)
	viper.SetDefault("engine.layout.tierSpacing", 8.0)
	viper.SetDefault("engine.layout.clearance", 1.0)
	viper.SetDefault("engine.stress.cautionRatio", 0.85)
	viper.SetDefault("engine.stress.dangerRatio", 1.0)

	viper.SetDefault("catalog.workers", 4)
	viper.SetDefault("catalog.timeout", "2m")
}

// IsNotFound reports whether err means no config file was found.
func IsNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetStorageConfig returns the storage backend settings.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			SeedFile:       viper.GetString("storage.memory.seedFile"),
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		SQLite: SQLiteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
	}
}

// GetDBConfig returns the Postgres connection settings.
func GetDBConfig() DBConfig {
	return DBConfig{
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: viper.GetString("db.password"),
		Database: viper.GetString("db.database"),
	}
}

// GetInfluxConfig returns the InfluxDB settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:    viper.GetBool("influx.enabled"),
		Host:       viper.GetString("influx.host"),
		Port:       viper.GetString("influx.port"),
		Protocol:   viper.GetString("influx.protocol"),
		Token:      viper.GetString("influx.token"),
		Org:        viper.GetString("influx.org"),
		Bucket:     viper.GetString("influx.bucket"),
		BackupPath: viper.GetString("influx.backupPath"),
	}
}

// GetGraylogConfig returns the GELF settings.
func GetGraylogConfig() GraylogConfig {
	return GraylogConfig{
		Enabled: viper.GetBool("graylog.enabled"),
		Address: viper.GetString("graylog.address"),
	}
}

// GetEngineConfig returns the geometry engine settings.
func GetEngineConfig() EngineConfig {
	return EngineConfig{
		Mesh: MeshConfig{
			Segments:        viper.GetInt("engine.mesh.segments"),
			WallThicknessMM: viper.GetFloat64("engine.mesh.wallThicknessMM"),
			MinRadiusMM:     viper.GetFloat64("engine.mesh.minRadiusMM"),
		},
		Layout: LayoutConfig{
			BaseOffset:  viper.GetFloat64("engine.layout.baseOffset"),
			TierSpacing: viper.GetFloat64("engine.layout.tierSpacing"),
			Clearance:   viper.GetFloat64("engine.layout.clearance"),
		},
		Stress: StressConfig{
			CautionRatio: viper.GetFloat64("engine.stress.cautionRatio"),
			DangerRatio:  viper.GetFloat64("engine.stress.dangerRatio"),
		},
	}
}

// GetCatalogConfig returns the batch rendering settings.
func GetCatalogConfig() CatalogConfig {
	return CatalogConfig{
		Workers: viper.GetInt("catalog.workers"),
		Timeout: viper.GetDuration("catalog.timeout"),
	}
}
