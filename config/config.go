package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// 10MB
const defaultMaxUploadBytes = int64(10 << 20)

const (
	StorageDriverS3    = "s3"
	StorageDriverMinio = "minio"

	ActivityStorePostgres = "postgres"
	ActivityStoreMongo    = "mongo"

	EventsDriverRabbitMQ = "rabbitmq"
	EventsDriverKafka    = "kafka"
	EventsDriverNone     = "none"
)

type (
	APP struct {
		Name      string
		Host      string
		Port      string
		Env       string
		JWTSecret string
		// requests per minute per client ip on the upload route
		UploadRateLimit int
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
		SSLMode  string
		Migrate  bool
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Storage struct {
		Driver          string
		Region          string
		Endpoint        string
		AccessKeyID     string
		SecretAccessKey string
		BucketUploads   string
		UseSSL          bool
		PublicBaseURL   string

		BreakerMaxFailures uint32
		BreakerTimeout     time.Duration
	}
	Upload struct {
		MaxSizeBytes       int64
		PartitionAvatars   string
		PartitionImages    string
		PartitionDocuments string
		PartitionOther     string
	}
	Mongo struct {
		URI        string
		Database   string
		Collection string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}
	Kafka struct {
		Brokers []string
		Topic   string
	}

	Config struct {
		App           APP
		DB            DB
		Redis         Redis
		Storage       Storage
		Upload        Upload
		ActivityStore string
		Mongo         Mongo
		EventsDriver  string
		MQ            MQ
		Kafka         Kafka
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getEnvInt64(key string, def int64) int64 {
	v, err := strconv.ParseInt(getEnv(key, ""), 10, 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getEnvList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Load() Config {
	app := APP{
		Name:            getEnv("SERVICE_NAME", "projectmanager"),
		Host:            getEnv("SERVICE_HOST", ""),
		Port:            getEnv("SERVICE_PORT", "8080"),
		Env:             getEnv("SERVICE_ENV", ""),
		JWTSecret:       getEnv("SERVICE_JWT_SECRET", ""),
		UploadRateLimit: getEnvInt("SERVICE_UPLOAD_RATE_PER_MINUTE", 60),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
		SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		Migrate:  getEnvBool("POSTGRES_MIGRATE", true),
	}
	rds := Redis{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}
	storage := Storage{
		Driver:             getEnv("STORAGE_DRIVER", StorageDriverS3),
		Region:             getEnv("S3_REGION", "us-east-1"),
		Endpoint:           getEnv("S3_ENDPOINT", ""),
		AccessKeyID:        getEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey:    getEnv("S3_SECRET_ACCESS_KEY", ""),
		BucketUploads:      getEnv("S3_BUCKET_UPLOADS", ""),
		UseSSL:             getEnvBool("S3_USE_SSL", true),
		PublicBaseURL:      getEnv("S3_PUBLIC_BASE_URL", ""),
		BreakerMaxFailures: uint32(getEnvInt("S3_BREAKER_MAX_FAILURES", 5)),
		BreakerTimeout:     getEnvDuration("S3_BREAKER_TIMEOUT", 30*time.Second),
	}
	upload := Upload{
		MaxSizeBytes:       getEnvInt64("UPLOAD_MAX_SIZE_BYTES", defaultMaxUploadBytes),
		PartitionAvatars:   getEnv("UPLOAD_PARTITION_AVATARS", "avatars"),
		PartitionImages:    getEnv("UPLOAD_PARTITION_IMAGES", "images"),
		PartitionDocuments: getEnv("UPLOAD_PARTITION_DOCUMENTS", "documents"),
		PartitionOther:     getEnv("UPLOAD_PARTITION_OTHER", "other"),
	}
	mongo := Mongo{
		URI:        getEnv("MONGO_URI", ""),
		Database:   getEnv("MONGO_DB", "projectmanager"),
		Collection: getEnv("MONGO_ACTIVITY_COLLECTION", "activities"),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", ""),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", ""),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", ""),
	}
	kafka := Kafka{
		Brokers: getEnvList("KAFKA_BROKERS"),
		Topic:   getEnv("KAFKA_ACTIVITY_TOPIC", "activity-events"),
	}

	return Config{
		App:           app,
		DB:            db,
		Redis:         rds,
		Storage:       storage,
		Upload:        upload,
		ActivityStore: getEnv("ACTIVITY_STORE", ActivityStorePostgres),
		Mongo:         mongo,
		EventsDriver:  getEnv("EVENTS_DRIVER", EventsDriverRabbitMQ),
		MQ:            mq,
		Kafka:         kafka,
	}
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
		c.DB.SSLMode,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

func (c Config) Validate() error {
	if c.App.JWTSecret == "" {
		return fmt.Errorf("SERVICE_JWT_SECRET is required")
	}
	if c.Storage.BucketUploads == "" {
		return fmt.Errorf("S3_BUCKET_UPLOADS is required")
	}
	switch c.Storage.Driver {
	case StorageDriverS3, StorageDriverMinio:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Storage.Driver == StorageDriverMinio && c.Storage.Endpoint == "" {
		return fmt.Errorf("S3_ENDPOINT is required for the minio driver")
	}
	switch c.ActivityStore {
	case ActivityStorePostgres:
	case ActivityStoreMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required for the mongo activity store")
		}
	default:
		return fmt.Errorf("unknown ACTIVITY_STORE %q", c.ActivityStore)
	}
	switch c.EventsDriver {
	case EventsDriverRabbitMQ, EventsDriverNone:
	case EventsDriverKafka:
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required for the kafka events driver")
		}
	default:
		return fmt.Errorf("unknown EVENTS_DRIVER %q", c.EventsDriver)
	}

	return nil
}
