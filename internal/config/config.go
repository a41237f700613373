package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ServerAddr string
	LogLevel   string

	DatabaseURL string

	JWTSecret []byte

	RedisAddr     string
	RedisPassword string

	KafkaBrokers []string
	OrderTopic   string

	ESURL      string
	ESUser     string
	ESPassword string

	NominatimURL string

	FCMEndpoint  string
	FCMServerKey string

	MediaDir string
}

func Load() Config {
	return Config{
		ServerAddr: EnvDefault("SERVER_ADDR", ":8080"),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),

		RedisAddr:     EnvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		OrderTopic:   EnvDefault("ORDER_EVENTS_TOPIC", "order_events"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),

		NominatimURL: os.Getenv("NOMINATIM_URL"),

		FCMEndpoint:  os.Getenv("FCM_ENDPOINT"),
		FCMServerKey: os.Getenv("FCM_SERVER_KEY"),

		MediaDir: EnvDefault("MEDIA_DIR", "media"),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}
