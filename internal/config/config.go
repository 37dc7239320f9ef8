// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration that can be loaded from a
// YAML file. Missing values are filled from Default().
type Config struct {
	// Paths
	WorkDir         string `yaml:"work_dir,omitempty" json:"work_dir,omitempty"`
	ContractsDir    string `yaml:"contracts_dir,omitempty" json:"contracts_dir,omitempty"`
	ReportsDir      string `yaml:"reports_dir,omitempty" json:"reports_dir,omitempty"`
	HistoryFile     string `yaml:"history_file,omitempty" json:"history_file,omitempty"`
	ContractsDBFile string `yaml:"contracts_db_file,omitempty" json:"contracts_db_file,omitempty"`
	LogFile         string `yaml:"log_file,omitempty" json:"log_file,omitempty"`

	// Behavior
	LogLevel    string `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	ScanWorkers int    `yaml:"scan_workers,omitempty" json:"scan_workers,omitempty"`

	// Document content
	Company   Company `yaml:"company,omitempty" json:"company,omitempty"`
	Equipment string  `yaml:"equipment,omitempty" json:"equipment,omitempty"`
	Standard  string  `yaml:"standard,omitempty" json:"standard,omitempty"`

	Weather Weather `yaml:"weather,omitempty" json:"weather,omitempty"`
	Email   Email   `yaml:"email,omitempty" json:"email,omitempty"`
	Server  Server  `yaml:"server,omitempty" json:"server,omitempty"`
}

// Company holds the contractor requisites printed in every document header.
type Company struct {
	Name         string `yaml:"name,omitempty" json:"name,omitempty"`
	AddressLine1 string `yaml:"address_line1,omitempty" json:"address_line1,omitempty"`
	AddressLine2 string `yaml:"address_line2,omitempty" json:"address_line2,omitempty"`
	Phone        string `yaml:"phone,omitempty" json:"phone,omitempty"`
	Email        string `yaml:"email,omitempty" json:"email,omitempty"`
	Website      string `yaml:"website,omitempty" json:"website,omitempty"`
}

// Lines returns the non-empty header lines in print order.
func (c Company) Lines() []string {
	var lines []string
	for _, s := range []string{c.Name, c.AddressLine1, c.AddressLine2, c.Phone, c.Email, c.Website} {
		if strings.TrimSpace(s) != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

// Weather configures the current-conditions lookup.
type Weather struct {
	Enabled   bool          `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	City      string        `yaml:"city,omitempty" json:"city,omitempty"`
	Latitude  float64       `yaml:"lat,omitempty" json:"lat,omitempty"`
	Longitude float64       `yaml:"lon,omitempty" json:"lon,omitempty"`
	Timeout   time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// Email configures delivery of generated reports. The password is never read
// from the file, only from EMAIL_PASSWORD.
type Email struct {
	Enabled    bool   `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	SMTPServer string `yaml:"smtp_server,omitempty" json:"smtp_server,omitempty"`
	Port       int    `yaml:"port,omitempty" json:"port,omitempty"`
	SSLPort    int    `yaml:"ssl_port,omitempty" json:"ssl_port,omitempty"`
	From       string `yaml:"from,omitempty" json:"from,omitempty"`
	To         string `yaml:"to,omitempty" json:"to,omitempty"`
	Password   string `yaml:"-" json:"-"`
}

// Server configures the HTTP API.
type Server struct {
	Port int `yaml:"port,omitempty" json:"port,omitempty"`
}

// DefaultEquipment lists the instruments used for the load tests.
const DefaultEquipment = "Динамометр ДПУ 0.5-2 заводской №1860 (свидетельство о поверке № С-ВЮМ/23-07-2025/453474803), " +
	"рулетка измерительная металлическая RGK R-5 заводской № Е5М1270 (свидетельство о поверке № С-ЕВЕ/16-07-2025/448133521)."

// DefaultStandard is the normative reference quoted in calculations and conclusions.
const DefaultStandard = "ГОСТ Р 53254-2009 «Техника пожарная. Лестницы пожарные наружные стационарные. " +
	"Ограждения кровли. Общие технические требования. Методы испытаний»"

// Default returns the built-in configuration rooted at ./work_data.
func Default() Config {
	work := "work_data"
	return Config{
		WorkDir:         work,
		ContractsDir:    filepath.Join(work, "договоры"),
		ReportsDir:      filepath.Join(work, "отчёты"),
		HistoryFile:     filepath.Join(work, "history.json"),
		ContractsDBFile: filepath.Join(work, "contracts_db.json"),
		LogFile:         filepath.Join(work, "logs", "app.log"),
		LogLevel:        "info",
		ScanWorkers:     4,
		Company: Company{
			Name:         "ИП ГАТАУЛЛИН АЗАМАТ ШАМИЛОВИЧ",
			AddressLine1: "Свердловская область, г. Березовский,",
			AddressLine2: "ул. Кирова, д. 63, оф. 314",
			Phone:        "тел: 8 912 623 35 23; 8 912 60 888 06",
			Email:        "эл. почта: 2728941@list.ru",
			Website:      "сайт: region-ekb.ru",
		},
		Equipment: DefaultEquipment,
		Standard:  DefaultStandard,
		Weather: Weather{
			Enabled:   true,
			City:      "Екатеринбург",
			Latitude:  56.8389,
			Longitude: 60.6057,
			Timeout:   5 * time.Second,
		},
		Email: Email{
			SMTPServer: "smtp.list.ru",
			Port:       587,
			SSLPort:    465,
			From:       "2728941@list.ru",
			To:         "2728941@list.ru",
		},
		Server: Server{Port: 8080},
	}
}

// LoadConfig loads configuration from a YAML file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &cfg, nil
}

// Load reads path when it is non-empty, then fills defaults and applies the
// environment. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = *loaded
	}
	cfg = cfg.MergeWithDefaults(Default())
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.ScanWorkers < 0 {
		return fmt.Errorf("config error: 'scan_workers' must be non-negative")
	}
	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
		}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 0 and 65535")
	}
	if c.Weather.Timeout < 0 {
		return fmt.Errorf("config error: 'weather.timeout' must be non-negative")
	}
	if c.Weather.Latitude < -90 || c.Weather.Latitude > 90 {
		return fmt.Errorf("config error: 'weather.lat' must be between -90 and 90")
	}
	if c.Weather.Longitude < -180 || c.Weather.Longitude > 180 {
		return fmt.Errorf("config error: 'weather.lon' must be between -180 and 180")
	}
	if c.Email.Enabled {
		if c.Email.SMTPServer == "" {
			return fmt.Errorf("config error: 'email.smtp_server' is required when e-mail is enabled")
		}
		if c.Email.From == "" || c.Email.To == "" {
			return fmt.Errorf("config error: 'email.from' and 'email.to' are required when e-mail is enabled")
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// Paths derive from the work dir when only it is overridden.
	if result.WorkDir == "" {
		result.WorkDir = defaults.WorkDir
	}
	if result.WorkDir != defaults.WorkDir {
		defaults.ContractsDir = filepath.Join(result.WorkDir, "договоры")
		defaults.ReportsDir = filepath.Join(result.WorkDir, "отчёты")
		defaults.HistoryFile = filepath.Join(result.WorkDir, "history.json")
		defaults.ContractsDBFile = filepath.Join(result.WorkDir, "contracts_db.json")
		defaults.LogFile = filepath.Join(result.WorkDir, "logs", "app.log")
	}
	setString(&result.ContractsDir, defaults.ContractsDir)
	setString(&result.ReportsDir, defaults.ReportsDir)
	setString(&result.HistoryFile, defaults.HistoryFile)
	setString(&result.ContractsDBFile, defaults.ContractsDBFile)
	setString(&result.LogFile, defaults.LogFile)
	setString(&result.LogLevel, defaults.LogLevel)
	if result.ScanWorkers == 0 {
		result.ScanWorkers = defaults.ScanWorkers
	}

	if len(result.Company.Lines()) == 0 {
		result.Company = defaults.Company
	}
	setString(&result.Equipment, defaults.Equipment)
	setString(&result.Standard, defaults.Standard)

	setString(&result.Weather.City, defaults.Weather.City)
	if result.Weather.Latitude == 0 && result.Weather.Longitude == 0 {
		result.Weather.Latitude = defaults.Weather.Latitude
		result.Weather.Longitude = defaults.Weather.Longitude
	}
	if result.Weather.Timeout == 0 {
		result.Weather.Timeout = defaults.Weather.Timeout
	}

	setString(&result.Email.SMTPServer, defaults.Email.SMTPServer)
	setString(&result.Email.From, defaults.Email.From)
	setString(&result.Email.To, defaults.Email.To)
	if result.Email.Port == 0 {
		result.Email.Port = defaults.Email.Port
	}
	if result.Email.SSLPort == 0 {
		result.Email.SSLPort = defaults.Email.SSLPort
	}

	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv overrides settings from the environment. With PRODUCTION=true the
// contracts are read from the local work dir.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv("PRODUCTION") == "true" {
		c.ContractsDir = filepath.Join(c.WorkDir, "договоры")
	}
	if dir := getenv("CONTRACTS_DIR"); dir != "" {
		c.ContractsDir = dir
	}
	if pw := getenv("EMAIL_PASSWORD"); pw != "" {
		c.Email.Password = pw
	}
	if level := getenv("LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

// EnsureDirectories creates the working directories if they do not exist.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.WorkDir,
		c.ContractsDir,
		c.ReportsDir,
		filepath.Dir(c.HistoryFile),
		filepath.Dir(c.ContractsDBFile),
		filepath.Dir(c.LogFile),
	}
	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func setString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}
