package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the env-driven runtime configuration. Only DB_DSN is required;
// everything else has defaults matching the upstream contract.
type Config struct {
	Port  string
	DBDSN string

	SyncInterval     time.Duration // scheduled sync cadence
	InitialSyncDelay time.Duration // first sync after process start
	SyncTimeout      time.Duration // deadline for one scheduled run
	MinRequestGap    time.Duration // pacing between upstream calls
	HTTPTimeout      time.Duration // per upstream request

	ListingLimit int // listings fetched per category
	SocialLimit  int // tokens backfilled per run

	CoinGeckoBaseURL string
}

var ErrMissingDSN = errors.New("missing env: DB_DSN")

func Load() (Config, error) {
	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		return Config{}, ErrMissingDSN
	}
	return Config{
		Port:             getenv("PORT", "8000"),
		DBDSN:            dsn,
		SyncInterval:     parseDur("SYNC_INTERVAL", 15*time.Minute),
		InitialSyncDelay: parseDur("SYNC_INITIAL_DELAY", 3*time.Second),
		SyncTimeout:      parseDur("SYNC_TIMEOUT", 10*time.Minute),
		MinRequestGap:    parseDur("SYNC_REQUEST_GAP", 1500*time.Millisecond),
		HTTPTimeout:      parseDur("HTTP_TIMEOUT", 30*time.Second),
		ListingLimit:     parseInt("SYNC_LISTING_LIMIT", 100),
		SocialLimit:      parseInt("SYNC_SOCIAL_LIMIT", 30),
		CoinGeckoBaseURL: getenv("COINGECKO_BASE_URL", ""),
	}, nil
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func parseDur(k string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if x, err := time.ParseDuration(v); err == nil {
			return x
		}
	}
	return def
}

func parseInt(k string, def int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if x, err := strconv.Atoi(v); err == nil {
			return x
		}
	}
	return def
}
