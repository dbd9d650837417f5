package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

func MustInitPostgres() *sql.DB {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")

	connStr := "host=" + dbHost + " port=" + dbPort + " user=" + dbUser +
		" password=" + dbPassword + " dbname=" + dbName + " sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_HOST") + ":" + os.Getenv("REDIS_PORT"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{os.Getenv("KAFKA_BROKER")},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(os.Getenv("KAFKA_BROKER")),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}

// BaseDomain is the domain gift sites are served under, e.g. "inanhxink.com".
// A site named "abc123" becomes reachable at abc123.<BaseDomain>.
func BaseDomain() string {
	if d := os.Getenv("BASE_DOMAIN"); d != "" {
		return d
	}
	return "inanhxink.com"
}

// ResolverMode selects how site-svc extracts the site name from a request:
// "host" reads the first label of the Host header, "query" reads the
// preview/sub query parameter (local development without wildcard DNS).
func ResolverMode() string {
	if m := os.Getenv("RESOLVER_MODE"); m != "" {
		return m
	}
	return "host"
}

func TemplatesDir() string {
	if d := os.Getenv("TEMPLATES_DIR"); d != "" {
		return d
	}
	return "./templates"
}

type PayOSCredentials struct {
	Endpoint    string
	ClientID    string
	APIKey      string
	ChecksumKey string
}

func PayOS() PayOSCredentials {
	return PayOSCredentials{
		Endpoint:    getenv("PAYOS_ENDPOINT", "https://api-merchant.payos.vn"),
		ClientID:    os.Getenv("PAYOS_CLIENT_ID"),
		APIKey:      os.Getenv("PAYOS_API_KEY"),
		ChecksumKey: os.Getenv("PAYOS_CHECKSUM_KEY"),
	}
}

type PayPalCredentials struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
}

func PayPal() PayPalCredentials {
	return PayPalCredentials{
		Endpoint:     getenv("PAYPAL_ENDPOINT", "https://api-m.paypal.com"),
		ClientID:     os.Getenv("PAYPAL_CLIENT_ID"),
		ClientSecret: os.Getenv("PAYPAL_CLIENT_SECRET"),
	}
}

func WebhookSecret() string {
	return os.Getenv("PAYMENT_WEBHOOK_SECRET")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
