package config

import (
	"flag"
	"net/url"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// ClickMode способ записи переходов.
type ClickMode string

const (
	ClickModeInline ClickMode = "inline"
	ClickModeWorker ClickMode = "worker"
	ClickModeNATS   ClickMode = "nats"
)

type Config struct {
	// Адрес, на котором запустится сервер
	ServerAddress string `env:"SERVER_ADDRESS"`
	// Внешний адрес сервера. Из него строятся адреса OAuth callback
	PublicURL *url.URL `env:"PUBLIC_URL"`
	// Адрес клиентского приложения, которому передается токен после входа
	ClientURL string `env:"CLIENT_URL"`

	// Хранилище выбирается по первому заданному: DATABASE_DSN, SQLITE_PATH, иначе память
	DatabaseDSN string `env:"DATABASE_DSN"`
	SQLitePath  string `env:"SQLITE_PATH"`

	// Если задан, реестр кодов хранится в Redis
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`

	NatsURL string `env:"NATS_URL"`

	JWTSecret string `env:"JWT_SECRET"`

	FacebookClientID     string `env:"FB_CLIENT_ID"`
	FacebookClientSecret string `env:"FB_CLIENT_SECRET"`
	GoogleClientID       string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret   string `env:"GOOGLE_CLIENT_SECRET"`

	LogLevel string `env:"LOG_LEVEL"`
	// Файл логов с ротацией. Пусто - только stdout
	LogFile string `env:"LOG_FILE"`

	// HTTPS с сертификатом из TLS_CERT_FILE/TLS_KEY_FILE. Если файлов нет, выпускается самоподписанный
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`

	ClickMode    ClickMode `env:"CLICK_MODE"`
	ClickWorkers int       `env:"CLICK_WORKERS" envDefault:"4"`
	ClickQueue   int       `env:"CLICK_QUEUE" envDefault:"1024"`
}

// LoadConfig читает .env (если есть), переменные окружения и флаги.
// Переменные окружения приоритетнее флагов.
func LoadConfig(args []string) (*Config, error) {
	var flagsConfig, envConfig Config

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env file")
	}

	if err := env.Parse(&envConfig); err != nil {
		return nil, errors.Wrap(err, "parse ENV config error")
	}

	if err := loadFlags(&flagsConfig, args); err != nil {
		return nil, err
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.JWTSecret == "" {
		return nil, errors.New("jwt secret is required (JWT_SECRET or -j)")
	}
	return conf, nil
}

// MustLoadConfig вызывает панику если конфигурацию загрузить не удалось.
func MustLoadConfig() *Config {
	conf, err := LoadConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return conf
}

// loadFlags парсит флаги командной строки.
func loadFlags(flagsConfig *Config, args []string) error {
	fs := flag.NewFlagSet("shortener", flag.ContinueOnError)

	fs.StringVar(&flagsConfig.ServerAddress, "a", "localhost:8080", "Адрес сервера")
	fs.StringVar(&flagsConfig.DatabaseDSN, "d", "", "DSN PostgreSQL")
	fs.StringVar(&flagsConfig.SQLitePath, "s", "", "Путь к файлу SQLite")
	fs.StringVar(&flagsConfig.RedisAddr, "r", "", "Адрес Redis для реестра кодов")
	fs.StringVar(&flagsConfig.NatsURL, "n", "", "Адрес NATS для передачи переходов")
	fs.StringVar(&flagsConfig.JWTSecret, "j", "", "Ключ подписи JWT")
	fs.StringVar(&flagsConfig.LogLevel, "l", "", "Уровень логирования")
	fs.BoolVar(&flagsConfig.EnableHTTPS, "tls", false, "Включить HTTPS")
	fs.Func("c", "Способ записи переходов: inline, worker, nats", func(v string) error {
		mode := ClickMode(v)
		switch mode {
		case ClickModeInline, ClickModeWorker, ClickModeNATS:
			flagsConfig.ClickMode = mode
			return nil
		default:
			return errors.Errorf("unknown click mode %q", v)
		}
	})

	pDesc := "Внешний адрес сервера (по умолчанию http://SERVER_ADDRESS)"
	fs.Func("p", pDesc, func(rawURL string) error {
		parsedURL, err := url.ParseRequestURI(rawURL)
		if err != nil {
			return errors.Wrap(err, "failed to parse public url")
		}

		// отсекаем Path и Query, если они заданы.
		flagsConfig.PublicURL = &url.URL{
			Scheme: parsedURL.Scheme,
			Host:   parsedURL.Host,
		}
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse flags")
	}
	return nil
}

// mergeConfig сливает структуры для env и флагов.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	conf := *envConfig
	conf.ServerAddress = defaultIfBlank(envConfig.ServerAddress, flagsConfig.ServerAddress)
	conf.PublicURL = defaultIfBlank(envConfig.PublicURL, flagsConfig.PublicURL)
	conf.DatabaseDSN = defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	conf.SQLitePath = defaultIfBlank(envConfig.SQLitePath, flagsConfig.SQLitePath)
	conf.RedisAddr = defaultIfBlank(envConfig.RedisAddr, flagsConfig.RedisAddr)
	conf.NatsURL = defaultIfBlank(envConfig.NatsURL, flagsConfig.NatsURL)
	conf.JWTSecret = defaultIfBlank(envConfig.JWTSecret, flagsConfig.JWTSecret)
	conf.LogLevel = defaultIfBlank(envConfig.LogLevel, flagsConfig.LogLevel)
	conf.ClickMode = defaultIfBlank(envConfig.ClickMode, flagsConfig.ClickMode)
	conf.EnableHTTPS = envConfig.EnableHTTPS || flagsConfig.EnableHTTPS

	if conf.ClickMode == "" {
		conf.ClickMode = ClickModeWorker
		if conf.NatsURL != "" {
			conf.ClickMode = ClickModeNATS
		}
	}
	if conf.PublicURL == nil {
		scheme := "http"
		if conf.EnableHTTPS {
			scheme = "https"
		}
		conf.PublicURL = &url.URL{Scheme: scheme, Host: conf.ServerAddress}
	}
	return &conf
}

func defaultIfBlank[T any](value T, defaultValue T) T {
	if v, ok := any(value).(string); ok && v == "" {
		return defaultValue
	}
	if v, ok := any(value).(ClickMode); ok && v == "" {
		return defaultValue
	}
	if v, ok := any(value).(*url.URL); ok && v == nil {
		return defaultValue
	}
	return value
}
