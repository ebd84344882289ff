package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host       string `yaml:"host" json:"host"`
	Port       int    `yaml:"port" json:"port"`
	JwtSecret  string `yaml:"jwt_secret" json:"jwt_secret"`
	ImageDir   string `yaml:"image_dir" json:"image_dir"`
	CorsOrigin string `yaml:"cors_origin" json:"cors_origin"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type RateLimitConfig struct {
	MaxRequests   int `yaml:"max_requests" json:"max_requests"`
	WindowMinutes int `yaml:"window_minutes" json:"window_minutes"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System    SysConfig       `yaml:"system" json:"system"`
	Web       WebConfig       `yaml:"web" json:"web"`
	Database  DBConfig        `yaml:"database" json:"database"`
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`
	Logger    LoggerConfig    `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "Orinoco",
		Location: "Europe/Paris",
		Workdir:  "/var/orinoco",
		Debug:    true,
	},
	Web: WebConfig{
		Host:       "0.0.0.0",
		Port:       3000,
		JwtSecret:  "9b6d2b72-orinoco-secret",
		ImageDir:   "images",
		CorsOrigin: "http://localhost:3000",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "orinoco",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	RateLimit: RateLimitConfig{
		MaxRequests:   100,
		WindowMinutes: 15,
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/orinoco/orinoco.log",
	},
}

func setEnvValue(name string, val *string) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvIntValue(name string, val *int) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = cast.ToInt(evalue)
	}
}

func setEnvBoolValue(name string, val *bool) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

// LoadConfig reads the YAML configuration file and applies ORINOCO_*
// environment overrides on top. A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	conf := *DefaultAppConfig
	cfg := &conf
	if cfile != "" {
		if _, err := os.Stat(cfile); err == nil {
			data, err := os.ReadFile(filepath.Clean(cfile))
			if err == nil {
				_ = yaml.Unmarshal(data, cfg)
			}
		}
	}

	setEnvValue("ORINOCO_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("ORINOCO_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("ORINOCO_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("ORINOCO_WEB_PORT", &cfg.Web.Port)
	setEnvValue("ORINOCO_WEB_JWT_SECRET", &cfg.Web.JwtSecret)
	setEnvValue("ORINOCO_WEB_IMAGE_DIR", &cfg.Web.ImageDir)
	setEnvValue("ORINOCO_WEB_CORS_ORIGIN", &cfg.Web.CorsOrigin)

	setEnvValue("ORINOCO_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("ORINOCO_DB_PORT", &cfg.Database.Port)
	setEnvValue("ORINOCO_DB_NAME", &cfg.Database.Name)
	setEnvValue("ORINOCO_DB_USER", &cfg.Database.User)
	setEnvValue("ORINOCO_DB_PWD", &cfg.Database.Passwd)
	setEnvBoolValue("ORINOCO_DB_DEBUG", &cfg.Database.Debug)

	setEnvIntValue("ORINOCO_RATELIMIT_MAX_REQUESTS", &cfg.RateLimit.MaxRequests)
	setEnvIntValue("ORINOCO_RATELIMIT_WINDOW_MINUTES", &cfg.RateLimit.WindowMinutes)

	setEnvValue("ORINOCO_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("ORINOCO_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("ORINOCO_LOGGER_FILENAME", &cfg.Logger.Filename)

	return cfg
}
