package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	strutil "trustvault/pkg/platform/strings"
)

// RedisConfig captures connection settings for the optional Redis-backed
// access code store. An empty URL disables Redis and the in-memory store is
// used instead.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AuditConfig captures settings for the optional Kafka audit sink. An empty
// broker list keeps audit events in the in-memory store only.
type AuditConfig struct {
	Brokers []string
	Topic   string
}

// Server captures process-level configuration for the vault gate.
type Server struct {
	Addr          string
	DatabaseURL   string
	AccessCodeTTL time.Duration
	AccessCodeLen int
	Redis         RedisConfig
	Audit         AuditConfig
}

// FromEnv builds a Server config from environment variables so main stays
// lean. Defaults reproduce the reference behavior: 16-digit codes valid for
// 30 seconds.
func FromEnv() Server {
	addr := os.Getenv("TRUSTVAULT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	ttl := 30 * time.Second
	if raw := os.Getenv("TRUSTVAULT_CODE_TTL_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	codeLen := 16
	if raw := os.Getenv("TRUSTVAULT_CODE_LENGTH"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			codeLen = n
		}
	}

	var brokers []string
	if raw := os.Getenv("TRUSTVAULT_AUDIT_BROKERS"); raw != "" {
		brokers = strutil.DedupeAndTrim(strings.Split(raw, ","))
	}
	topic := os.Getenv("TRUSTVAULT_AUDIT_TOPIC")
	if topic == "" {
		topic = "trustvault.audit"
	}

	return Server{
		Addr:          addr,
		DatabaseURL:   os.Getenv("TRUSTVAULT_DATABASE_URL"),
		AccessCodeTTL: ttl,
		AccessCodeLen: codeLen,
		Redis: RedisConfig{
			URL:          os.Getenv("TRUSTVAULT_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Audit: AuditConfig{
			Brokers: brokers,
			Topic:   topic,
		},
	}
}
