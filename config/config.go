package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

type DBConfig struct {
	Type   string `yaml:"type" json:"type"`
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Name   string `yaml:"name" json:"name"`
	User   string `yaml:"user" json:"user"`
	Passwd string `yaml:"passwd" json:"passwd"`
	Debug  bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

// UploadDir returns the directory where image assets are stored.
func (c *AppConfig) UploadDir() string {
	return filepath.Join(c.System.Workdir, "uploads")
}

var DefaultAppConfig = AppConfig{
	System: SysConfig{
		Appid:    "Catalog",
		Location: "Asia/Kolkata",
		Workdir:  "/var/catalog",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   5001,
		Secret: "9b6de5cc-catalog-1ee6-bf5d-secret",
	},
	Database: DBConfig{
		Type:   "postgres",
		Host:   "127.0.0.1",
		Port:   5432,
		Name:   "daks_ndt",
		User:   "postgres",
		Passwd: "",
		Debug:  false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/catalog/catalog.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	if v, ok := os.LookupEnv(name); ok {
		f(v)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	if v, ok := os.LookupEnv(name); ok {
		b, err := strconv.ParseBool(v)
		if err == nil {
			f(b)
		}
	}
}

func setEnvIntValue(name string, f func(v int)) {
	if v, ok := os.LookupEnv(name); ok {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			f(int(i))
		}
	}
}

// LoadConfig loads configuration from the given YAML file, falling back to
// defaults, and applies CATALOG_* environment overrides last.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("CATALOG_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("CATALOG_SYSTEM_LOCATION", func(v string) { cfg.System.Location = v })
	setEnvBoolValue("CATALOG_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })

	setEnvValue("CATALOG_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvIntValue("CATALOG_WEB_PORT", func(v int) { cfg.Web.Port = v })
	setEnvValue("CATALOG_WEB_SECRET", func(v string) { cfg.Web.Secret = v })

	setEnvValue("CATALOG_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("CATALOG_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvIntValue("CATALOG_DB_PORT", func(v int) { cfg.Database.Port = v })
	setEnvValue("CATALOG_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("CATALOG_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("CATALOG_DB_PASSWD", func(v string) { cfg.Database.Passwd = v })
	setEnvBoolValue("CATALOG_DB_DEBUG", func(v bool) { cfg.Database.Debug = v })

	setEnvValue("CATALOG_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvBoolValue("CATALOG_LOGGER_FILE_ENABLE", func(v bool) { cfg.Logger.FileEnable = v })
	setEnvValue("CATALOG_LOGGER_FILENAME", func(v string) { cfg.Logger.Filename = v })

	return cfg
}
