package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeConfig(t, `
work_dir: /srv/protocols
log_level: debug
scan_workers: 8
company:
  name: ООО "Пожтест"
weather:
  city: Казань
  timeout: 3s
email:
  enabled: true
  to: boss@example.com
server:
  port: 9090
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/srv/protocols", cfg.WorkDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.ScanWorkers)
	assert.Equal(t, `ООО "Пожтест"`, cfg.Company.Name)
	assert.Equal(t, "Казань", cfg.Weather.City)
	assert.Equal(t, 3*time.Second, cfg.Weather.Timeout)
	assert.True(t, cfg.Email.Enabled)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "work_dir: [unclosed"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "negative workers", mutate: func(c *Config) { c.ScanWorkers = -1 }, wantErr: "scan_workers"},
		{name: "unknown level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "log_level"},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "server.port"},
		{name: "bad latitude", mutate: func(c *Config) { c.Weather.Latitude = 91 }, wantErr: "weather.lat"},
		{
			name:    "email without server",
			mutate:  func(c *Config) { c.Email.Enabled = true; c.Email.SMTPServer = "" },
			wantErr: "email.smtp_server",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{
		ReportsDir: "/tmp/out",
		Server:     Server{Port: 9000},
	}

	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, "/tmp/out", merged.ReportsDir)
	assert.Equal(t, 9000, merged.Server.Port)
	assert.Equal(t, Default().ContractsDir, merged.ContractsDir)
	assert.Equal(t, "ИП ГАТАУЛЛИН АЗАМАТ ШАМИЛОВИЧ", merged.Company.Name)
	assert.Equal(t, DefaultEquipment, merged.Equipment)
	assert.Equal(t, 5*time.Second, merged.Weather.Timeout)
	assert.Equal(t, 587, merged.Email.Port)
}

func TestMergeWithDefaults_WorkDirMovesDerivedPaths(t *testing.T) {
	cfg := Config{WorkDir: "/data"}
	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, filepath.Join("/data", "договоры"), merged.ContractsDir)
	assert.Equal(t, filepath.Join("/data", "history.json"), merged.HistoryFile)
	assert.Equal(t, filepath.Join("/data", "logs", "app.log"), merged.LogFile)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PRODUCTION":     "true",
		"EMAIL_PASSWORD": "secret",
	}
	cfg := Default()
	cfg.ContractsDir = `D:\договора 2025`
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, filepath.Join(cfg.WorkDir, "договоры"), cfg.ContractsDir)
	assert.Equal(t, "secret", cfg.Email.Password)

	env["CONTRACTS_DIR"] = "/mnt/contracts"
	cfg.ApplyEnv(func(k string) string { return env[k] })
	assert.Equal(t, "/mnt/contracts", cfg.ContractsDir)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	t.Setenv("PRODUCTION", "")
	t.Setenv("CONTRACTS_DIR", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().ReportsDir, cfg.ReportsDir)
}

func TestEnsureDirectories(t *testing.T) {
	cfg := Config{WorkDir: filepath.Join(t.TempDir(), "work")}
	cfg = cfg.MergeWithDefaults(Default())

	require.NoError(t, cfg.EnsureDirectories())
	for _, dir := range []string{cfg.ContractsDir, cfg.ReportsDir, filepath.Dir(cfg.LogFile)} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestCompanyLines(t *testing.T) {
	c := Company{Name: "ИП Иванов", Phone: "тел: 1", Website: " "}
	assert.Equal(t, []string{"ИП Иванов", "тел: 1"}, c.Lines())
}
