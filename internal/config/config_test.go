package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
	return dir
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"db": { "host": "10.0.0.1", "port": "5433" }
	}`)

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, "10.0.0.1", viper.GetString("db.host"))
	assert.Equal(t, "5433", viper.GetString("db.port"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{}`)))

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./logs", viper.GetString("logsDir"))
	assert.Equal(t, "localhost", viper.GetString("db.host"))
	assert.Equal(t, "5432", viper.GetString("db.port"))
	assert.Equal(t, "postgres", viper.GetString("db.username"))
	assert.Equal(t, "postgres", viper.GetString("db.password"))
	assert.Equal(t, "cartgeo", viper.GetString("db.database"))
	assert.Equal(t, false, viper.GetBool("graylog.enabled"))
	assert.Equal(t, "localhost:12201", viper.GetString("graylog.address"))
	assert.Equal(t, false, viper.GetBool("influx.enabled"))
	assert.Equal(t, "memory", viper.GetString("storage.type"))
	assert.Equal(t, "./snapshots", viper.GetString("storage.memory.outputDir"))
	assert.Equal(t, true, viper.GetBool("storage.memory.compressOutput"))
	assert.Equal(t, 4, viper.GetInt("catalog.workers"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
	assert.True(t, IsNotFound(err))
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load(writeConfig(t, `{ not json`))
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestGetString(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	assert.Equal(t, "testValue", GetString("testKey"))
}

func TestGetInt(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testInt", 42)
	assert.Equal(t, 42, GetInt("testInt"))
}

func TestGetBool(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testBool", true)
	assert.Equal(t, true, GetBool("testBool"))
}

func TestGetStorageConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{}`)))

	cfg := GetStorageConfig()
	assert.Equal(t, StorageMemory, cfg.Type)
	assert.Equal(t, "", cfg.Memory.SeedFile)
	assert.Equal(t, "./snapshots", cfg.Memory.OutputDir)
	assert.Equal(t, true, cfg.Memory.CompressOutput)
	assert.Equal(t, "./cartgeo.db", cfg.SQLite.Path)
}

func TestGetStorageConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{
		"storage": {
			"type": "sqlite",
			"memory": { "outputDir": "/tmp/out", "compressOutput": false, "seedFile": "catalog.yaml" },
			"sqlite": { "path": "/var/lib/cartgeo.db" }
		}
	}`)))

	sc := GetStorageConfig()
	assert.Equal(t, StorageSQLite, sc.Type)
	assert.Equal(t, "/tmp/out", sc.Memory.OutputDir)
	assert.Equal(t, false, sc.Memory.CompressOutput)
	assert.Equal(t, "catalog.yaml", sc.Memory.SeedFile)
	assert.Equal(t, "/var/lib/cartgeo.db", sc.SQLite.Path)
}

func TestGetEngineConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	SetDefaults()

	ec := GetEngineConfig()
	assert.Equal(t, 48, ec.Mesh.Segments)
	assert.Equal(t, 0.3, ec.Mesh.WallThicknessMM)
	assert.Equal(t, 0.05, ec.Mesh.MinRadiusMM)
	assert.Equal(t, 12.0, ec.Layout.BaseOffset)
	assert.Equal(t, 8.0, ec.Layout.TierSpacing)
	assert.Equal(t, 1.0, ec.Layout.Clearance)
	assert.Equal(t, 0.85, ec.Stress.CautionRatio)
	assert.Equal(t, 1.0, ec.Stress.DangerRatio)
}

func TestGetEngineConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{
		"engine": {
			"mesh": { "segments": 96 },
			"stress": { "cautionRatio": 0.9, "dangerRatio": 0.97 }
		}
	}`)))

	ec := GetEngineConfig()
	assert.Equal(t, 96, ec.Mesh.Segments)
	assert.Equal(t, 0.3, ec.Mesh.WallThicknessMM, "unset keys keep their default")
	assert.Equal(t, 0.9, ec.Stress.CautionRatio)
	assert.Equal(t, 0.97, ec.Stress.DangerRatio)
}

func TestGetInfluxConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{
		"influx": { "enabled": true, "host": "influx.local", "token": "abc", "bucket": "runs" }
	}`)))

	ic := GetInfluxConfig()
	assert.True(t, ic.Enabled)
	assert.Equal(t, "influx.local", ic.Host)
	assert.Equal(t, "8086", ic.Port)
	assert.Equal(t, "http", ic.Protocol)
	assert.Equal(t, "abc", ic.Token)
	assert.Equal(t, "reloadkit", ic.Org)
	assert.Equal(t, "runs", ic.Bucket)
}

func TestGetGraylogConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("graylog.enabled", true)

	gc := GetGraylogConfig()
	assert.True(t, gc.Enabled)
	assert.Equal(t, "localhost:12201", gc.Address)
}

func TestGetDBConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	SetDefaults()

	dc := GetDBConfig()
	assert.Equal(t, "localhost", dc.Host)
	assert.Equal(t, "cartgeo", dc.Database)
}

func TestGetCatalogConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{ "catalog": { "workers": 8, "timeout": "30s" } }`)))

	cc := GetCatalogConfig()
	assert.Equal(t, 8, cc.Workers)
	assert.Equal(t, 30*time.Second, cc.Timeout)
}
