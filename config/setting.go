package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type serverConfig struct {
	Port        int    `koanf:"port" validate:"required"`
	Mode        string `koanf:"mode" validate:"required"`
	Concurrency int    `koanf:"concurrency" validate:"required"`
	BodyLimit   int    `koanf:"body_limit" validate:"required"`
	AppName     string `koanf:"app_name" validate:"required"`
}

type logLevel string

const (
	Debug logLevel = "debug"
	Info  logLevel = "info"
	Warn  logLevel = "warn"
	Error logLevel = "error"
	Fatal logLevel = "fatal"
	Panic logLevel = "panic"
)

// Module names used as prefixes in logs and error envelopes.
type Module string

const (
	ModuleSetting   Module = "setting"
	ModuleServer    Module = "server"
	ModuleDatabase  Module = "database"
	ModuleGemini    Module = "gemini"
	ModuleAssistant Module = "assistant"
	ModuleExtract   Module = "extract"
	ModuleChat      Module = "chat"
	ModuleQuiz      Module = "quiz"
	ModuleDocument  Module = "document"
	ModuleSummary   Module = "summary"
	ModuleUsage     Module = "usage"
	ModuleS3        Module = "s3"
	ModuleHealth    Module = "health"
)

type databaseConfig struct {
	Host         string `koanf:"host" validate:"required"`
	Port         int    `koanf:"port" validate:"required"`
	User         string `koanf:"user" validate:"required"`
	Password     string `koanf:"password"`
	Name         string `koanf:"name" validate:"required"`
	MaxIdleConns int    `koanf:"max_idle_conns" validate:"required"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"required"`
	MaxLifetime  int    `koanf:"max_lifetime" validate:"required"`
}

type geminiConfig struct {
	Key     string `koanf:"key"`
	Model   string `koanf:"model" validate:"required"`
	BaseURL string `koanf:"base_url" validate:"required"`
}

type s3Config struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Region    string `koanf:"region"`
	UseSSL    bool   `koanf:"use_ssl"`
	Bucket    string `koanf:"bucket"`
}

type uploadConfig struct {
	// MaxBytes caps uploaded document size; requests above it fail validation.
	MaxBytes int64 `koanf:"max_bytes" validate:"required"`
}

type config struct {
	Server   serverConfig   `koanf:"server"`
	Database databaseConfig `koanf:"database"`
	Gemini   geminiConfig   `koanf:"gemini"`
	LogLevel logLevel       `koanf:"log_level"`
	Dns      string         `koanf:"dns"`
	S3       s3Config       `koanf:"s3"`
	Upload   uploadConfig   `koanf:"upload"`
}

func buildMySQLDSN(cfg databaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
	)
}

var defaultConfig = config{
	Server: serverConfig{
		Port:        8080,
		Mode:        "release",
		Concurrency: 256,
		BodyLimit:   8 * 1024 * 1024,
		AppName:     "ai-study-buddy",
	},
	Database: databaseConfig{
		Host:         "127.0.0.1",
		Port:         3306,
		User:         "root",
		Password:     "",
		Name:         "studybuddy",
		MaxIdleConns: 4,
		MaxOpenConns: 16,
		MaxLifetime:  30,
	},
	Gemini: geminiConfig{
		Key:     "",
		Model:   "gemini-2.0-flash",
		BaseURL: "https://generativelanguage.googleapis.com",
	},
	LogLevel: Info,
	S3: s3Config{
		Region: "us-east-1",
	},
	Upload: uploadConfig{
		MaxBytes: 5 * 1024 * 1024,
	},
}

var (
	Cfg  = defaultConfig
	once sync.Once
)

func init() {
	path := "config.yaml"

	once.Do(func() {
		k := koanf.New(".")

		validate := validator.New()
		// defaults
		Cfg = defaultConfig

		// file
		if e := k.Load(file.Provider(path), yaml.Parser()); e != nil && !os.IsNotExist(e) {
			return
		}

		// env APP_GEMINI_KEY, APP_SERVER_PORT, ...
		if e := k.Load(env.Provider("APP_", ".", func(s string) string {
			return strings.ToLower(strings.TrimPrefix(s, "APP_"))
		}), nil); e != nil {
			return
		}

		// bind
		if e := k.Unmarshal("", &Cfg); e != nil {
			log.Errorf("failed to unmarshal config: %v", e)
		}

		if Cfg.Dns == "" {
			Cfg.Dns = buildMySQLDSN(Cfg.Database)
		}

		// validate config
		if err := validate.Struct(Cfg); err != nil {
			if errs, ok := err.(validator.ValidationErrors); ok {
				var sb strings.Builder
				sb.WriteString(fmt.Sprintf("%v config validation failed:\n", ModuleSetting))

				for _, e := range errs {
					sb.WriteString(
						fmt.Sprintf("  - %s: failed '%s' (value: %v)\n", e.Field(), e.Tag(), e.Value()),
					)
				}

				log.Error(sb.String())
			} else {
				log.Errorf("config validation failed: %v", err)
			}
		}
	})
}
