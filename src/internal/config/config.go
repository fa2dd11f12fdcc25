package config

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Configuration struct {
	Logs     LogsSettings    `mapstructure:"logs"`
	App      Application     `mapstructure:"app"`
	Server   ServerSettings  `mapstructure:"server"`
	Session  SessionSettings `mapstructure:"session"`
	Auth     AuthSettings    `mapstructure:"auth"`
	Redis    Redis           `mapstructure:"redis"`
	Database Database        `mapstructure:"database"`
	Queue    QueueConfig     `mapstructure:"queue"`
}

type LogsSettings struct {
	Level            string `mapstructure:"level"`
	EnableJSONOutput bool   `mapstructure:"enable-json-output"`
}

type Application struct {
	Name     string `mapstructure:"name"`
	Timeout  int    `mapstructure:"timeout"`
	Version  string `mapstructure:"version"`
	HostLink string `mapstructure:"host-link"`
}

type ServerSettings struct {
	Port           string   `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	ReadTimeout    int      `mapstructure:"read-timeout"`
	WriteTimeout   int      `mapstructure:"write-timeout"`
	IdleTimeout    int      `mapstructure:"idle-timeout"`
	AllowedOrigins []string `mapstructure:"allowed-origins"`
}

type SessionSettings struct {
	Store              string `mapstructure:"store"`
	CookieName         string `mapstructure:"cookie-name"`
	TTLHours           int    `mapstructure:"ttl-hours"`
	SweepMinutes       int    `mapstructure:"sweep-minutes"`
	SecureCookie       bool   `mapstructure:"secure-cookie"`
	RedisKeyPrefix     string `mapstructure:"redis-key-prefix"`
	MaxRecordsPerSweep int    `mapstructure:"max-records-per-sweep"`
}

type AuthSettings struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type Redis struct {
	Url      string `mapstructure:"url"`
	Password string `mapstructure:"password"`
	Db       int    `mapstructure:"db"`
}

type Database struct {
	Url            string `mapstructure:"url"`
	DbName         string `mapstructure:"dbname"`
	UserCollection string `mapstructure:"user-collection"`
	Timeout        int    `mapstructure:"timeout"`
}

type QueueConfig struct {
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
}

type RabbitMQConfig struct {
	Url          string `mapstructure:"url"`
	Exchange     string `mapstructure:"exchange"`
	ExchangeType string `mapstructure:"exchange-type"`
	RoutingKey   string `mapstructure:"routing-key"`
	Timeout      int    `mapstructure:"timeout"`
	Durable      bool   `mapstructure:"durable"`
	AutoDelete   bool   `mapstructure:"auto-delete"`
	Internal     bool   `mapstructure:"internal"`
	NoWait       bool   `mapstructure:"no-wait"`
}

func Load() *Configuration {
	cfg := read()
	logrus.Info("Configuration loaded")

	// Override with environment variables
	port := os.Getenv("PORT")
	if port != "" {
		cfg.Server.Port = port
	}

	redisUrl := os.Getenv("REDIS_URL")
	if redisUrl != "" {
		cfg.Redis.Url = redisUrl
	}

	redisDB := os.Getenv("REDIS_DB")
	if redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			cfg.Redis.Db = db
		}
	}

	mongoUri := os.Getenv("MONGODB_URL")
	if mongoUri != "" {
		cfg.Database.Url = mongoUri
	}

	dbName := os.Getenv("DB_NAME")
	if dbName != "" {
		cfg.Database.DbName = dbName
	}

	rabbitmqUrl := os.Getenv("RABBITMQ_URL")
	if rabbitmqUrl != "" {
		cfg.Queue.RabbitMQ.Url = rabbitmqUrl
	}

	username := os.Getenv("APP_USERNAME")
	if username != "" {
		cfg.Auth.Username = username
	}

	password := os.Getenv("APP_PASSWORD")
	if password != "" {
		cfg.Auth.Password = password
	}

	ttlHours := os.Getenv("SESSION_TTL_HOURS")
	if ttlHours != "" {
		if ttl, err := strconv.Atoi(ttlHours); err == nil {
			cfg.Session.TTLHours = ttl
		}
	}

	return cfg
}

func read() *Configuration {
	viper.SetConfigFile("src/internal/config/cfg.yml")
	viper.AutomaticEnv()
	viper.SetConfigType("yml")

	var config Configuration

	err := viper.ReadInConfig()
	if err != nil {
		logrus.Panicf("Error reading config file, %s", err)
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		logrus.Panicf("Error unmarshalling config file, %s", err)
	}

	return &config
}
