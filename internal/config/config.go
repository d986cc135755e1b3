package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// RetireMode selects how a delivered record leaves the pending set.
type RetireMode string

const (
	// RetireMark sets delivered=true and lets the store's TTL policy clean up.
	RetireMark RetireMode = "mark"
	// RetireDelete removes the document right away.
	RetireDelete RetireMode = "delete"
)

type Config struct {
	ProjectID    string
	Collection   string
	BatchSize    int
	PollInterval time.Duration
	Once         bool
	RetireMode   RetireMode
	TTL          time.Duration
	StatusAddr   string
	LogLevel     string
}

func Load() Config {
	// PROJECT_ID, FIREBASE_PROJECT_ID または GOOGLE_CLOUD_PROJECT を読む
	projectID := getenv("PROJECT_ID", "")
	if projectID == "" {
		projectID = getenv("FIREBASE_PROJECT_ID", "")
	}
	if projectID == "" {
		projectID = getenv("GOOGLE_CLOUD_PROJECT", "")
	}

	batchSize := getint("LINKDROP_BATCH_SIZE", 20)
	if batchSize <= 0 || batchSize > 100 {
		batchSize = 20
	}

	pollInterval := getduration("LINKDROP_POLL_INTERVAL", 30*time.Second)
	if pollInterval < time.Second {
		pollInterval = time.Second
	}

	retireMode := RetireMode(strings.ToLower(getenv("LINKDROP_RETIRE_MODE", string(RetireMark))))
	if retireMode != RetireMark && retireMode != RetireDelete {
		retireMode = RetireMark
	}

	return Config{
		ProjectID:    projectID,
		Collection:   getenv("LINKDROP_COLLECTION", "shared_urls"),
		BatchSize:    batchSize,
		PollInterval: pollInterval,
		Once:         getbool("LINKDROP_ONCE", false),
		RetireMode:   retireMode,
		TTL:          getduration("LINKDROP_TTL", 24*time.Hour),
		StatusAddr:   getenv("LINKDROP_STATUS_ADDR", ""),
		LogLevel:     getenv("LINKDROP_LOG_LEVEL", "info"),
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getint(key string, def int) int {
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

func getbool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getduration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
