package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const DefaultExercisesURL = "https://raw.githubusercontent.com/yuhonas/free-exercise-db/main/dist/exercises.json"

type Config struct {
	ServerPort int           `toml:"server_port"`
	JWTSecret  string        `toml:"jwt_secret"`
	TokenTTL   time.Duration `toml:"-"`
	BcryptCost int           `toml:"bcrypt_cost"`

	// StoreBackend is one of file, memory, postgres, redis, minio, gcs.
	StoreBackend string `toml:"store_backend"`
	DataDir      string `toml:"data_dir"`

	// ExerciseSource is remote or builtin.
	ExerciseSource string `toml:"exercise_source"`
	ExercisesURL   string `toml:"exercises_url"`

	LoginRatePerMin int  `toml:"login_rate_per_min"`
	MetricsEnabled  bool `toml:"metrics_enabled"`

	Log      LogConfig      `toml:"log"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Storage  StorageConfig  `toml:"storage"`
	MQ       MQConfig       `toml:"mq"`
}

type LogConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	ToStdout  bool   `toml:"to_stdout"`
	JSON      bool   `toml:"json"`
	SentryDSN string `toml:"sentry_dsn"`
}

type DatabaseConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"db_name"`
	UseSSL   bool   `toml:"use_ssl"`
}

type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

type StorageConfig struct {
	// Backend is minio or gcs. Empty disables object storage.
	Backend string      `toml:"backend"`
	Prefix  string      `toml:"prefix"`
	Minio   MinioConfig `toml:"minio"`
	GCS     GCSConfig   `toml:"gcs"`
}

type MinioConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	UseSSL    bool   `toml:"use_ssl"`
}

type GCSConfig struct {
	Bucket          string `toml:"bucket"`
	ProjectID       string `toml:"project_id"`
	CredentialsFile string `toml:"credentials_file"`
}

type MQConfig struct {
	// Backend is rabbitmq or pubsub. Empty disables event publishing.
	Backend  string         `toml:"backend"`
	Channel  string         `toml:"channel"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	PubSub   PubSubConfig   `toml:"pubsub"`
}

type RabbitMQConfig struct {
	URL             string `toml:"url"`
	QueueDurable    bool   `toml:"queue_durable"`
	QueueAutoDelete bool   `toml:"queue_auto_delete"`
	PrefetchCount   int    `toml:"prefetch_count"`
}

type PubSubConfig struct {
	ProjectID          string `toml:"project_id"`
	CredentialsFile    string `toml:"credentials_file"`
	SubscriptionSuffix string `toml:"subscription_suffix"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		ServerPort:      8080,
		TokenTTL:        7 * 24 * time.Hour,
		BcryptCost:      10,
		StoreBackend:    "file",
		DataDir:         "data",
		ExerciseSource:  "remote",
		ExercisesURL:    DefaultExercisesURL,
		LoginRatePerMin: 10,
		MetricsEnabled:  true,
		Log: LogConfig{
			Level:    "info",
			ToStdout: true,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "workoutapp",
			Password: "password",
			DBName:   "workoutapp_db",
		},
		Redis: RedisConfig{
			KeyPrefix: "workoutapp",
		},
		Storage: StorageConfig{
			Prefix: "workoutapp",
		},
		MQ: MQConfig{
			Channel: "workout-events",
		},
	}
}

// LoadConfig builds the configuration from defaults, an optional TOML file,
// and environment variables, in that order of precedence.
func LoadConfig(path string) (Config, error) {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	cfg := Default()
	if strings.TrimSpace(path) != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	cfg.ServerPort = getEnvInt("SERVER_PORT", cfg.ServerPort)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", cfg.JWTSecret))
	cfg.TokenTTL = getEnvDuration("TOKEN_TTL", cfg.TokenTTL)
	cfg.BcryptCost = getEnvInt("BCRYPT_COST", cfg.BcryptCost)
	cfg.StoreBackend = strings.ToLower(getEnv("STORE_BACKEND", cfg.StoreBackend))
	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)
	cfg.ExerciseSource = strings.ToLower(getEnv("EXERCISE_SOURCE", cfg.ExerciseSource))
	cfg.ExercisesURL = getEnv("EXERCISES_URL", cfg.ExercisesURL)
	cfg.LoginRatePerMin = getEnvInt("LOGIN_RATE_PER_MIN", cfg.LoginRatePerMin)
	cfg.MetricsEnabled = getEnvBool("METRICS_ENABLED", cfg.MetricsEnabled)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)
	cfg.Log.ToStdout = getEnvBool("LOG_TO_STDOUT", cfg.Log.ToStdout)
	cfg.Log.JSON = getEnvBool("LOG_JSON", cfg.Log.JSON)
	cfg.Log.SentryDSN = getEnv("SENTRY_DSN", cfg.Log.SentryDSN)

	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnvInt("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.DBName = getEnv("DB_NAME", cfg.Database.DBName)
	cfg.Database.UseSSL = getEnvBool("DB_USE_SSL", cfg.Database.UseSSL)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.KeyPrefix = getEnv("REDIS_KEY_PREFIX", cfg.Redis.KeyPrefix)

	cfg.Storage.Backend = strings.ToLower(getEnv("STORAGE_BACKEND", cfg.Storage.Backend))
	cfg.Storage.Prefix = getEnv("STORAGE_PREFIX", cfg.Storage.Prefix)
	cfg.Storage.Minio.Endpoint = getEnv("MINIO_ENDPOINT", cfg.Storage.Minio.Endpoint)
	cfg.Storage.Minio.AccessKey = getEnv("MINIO_ACCESS_KEY", cfg.Storage.Minio.AccessKey)
	cfg.Storage.Minio.SecretKey = getEnv("MINIO_SECRET_KEY", cfg.Storage.Minio.SecretKey)
	cfg.Storage.Minio.Bucket = getEnv("MINIO_BUCKET", cfg.Storage.Minio.Bucket)
	cfg.Storage.Minio.UseSSL = getEnvBool("MINIO_USE_SSL", cfg.Storage.Minio.UseSSL)
	cfg.Storage.GCS.Bucket = getEnv("GCS_BUCKET", cfg.Storage.GCS.Bucket)
	cfg.Storage.GCS.ProjectID = getEnv("GCS_PROJECT_ID", cfg.Storage.GCS.ProjectID)
	cfg.Storage.GCS.CredentialsFile = getEnv("GCS_CREDENTIALS_FILE", cfg.Storage.GCS.CredentialsFile)

	cfg.MQ.Backend = strings.ToLower(getEnv("MQ_BACKEND", cfg.MQ.Backend))
	cfg.MQ.Channel = getEnv("MQ_CHANNEL", cfg.MQ.Channel)
	cfg.MQ.RabbitMQ.URL = getEnv("RABBITMQ_URL", cfg.MQ.RabbitMQ.URL)
	cfg.MQ.RabbitMQ.QueueDurable = getEnvBool("RABBITMQ_QUEUE_DURABLE", cfg.MQ.RabbitMQ.QueueDurable)
	cfg.MQ.RabbitMQ.QueueAutoDelete = getEnvBool("RABBITMQ_QUEUE_AUTO_DELETE", cfg.MQ.RabbitMQ.QueueAutoDelete)
	cfg.MQ.RabbitMQ.PrefetchCount = getEnvInt("RABBITMQ_PREFETCH_COUNT", cfg.MQ.RabbitMQ.PrefetchCount)
	cfg.MQ.PubSub.ProjectID = getEnv("PUBSUB_PROJECT_ID", cfg.MQ.PubSub.ProjectID)
	cfg.MQ.PubSub.CredentialsFile = getEnv("PUBSUB_CREDENTIALS_FILE", cfg.MQ.PubSub.CredentialsFile)
	cfg.MQ.PubSub.SubscriptionSuffix = getEnv("PUBSUB_SUBSCRIPTION_SUFFIX", cfg.MQ.PubSub.SubscriptionSuffix)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
			return defaultValue
		}
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(strings.TrimSpace(valueStr)) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(key); exists {
		value, err := time.ParseDuration(strings.TrimSpace(valueStr))
		if err != nil || value <= 0 {
			return defaultValue
		}
		return value
	}
	return defaultValue
}
