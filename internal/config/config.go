package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string

	// значения по умолчанию для /match и matchcli
	DefaultThreshold int
	DefaultLimit     int
	HeaderRow        int
	Scorer           string // token_sort | token_sort_levenshtein
	PairScorer       string // jaro_winkler | jaro
}

func Load() Config {
	return Config{
		Host:             getenv("HOST", "127.0.0.1"),
		Port:             getint("PORT", 8082),
		AllowOrigins:     splitList(getenv("ALLOW_ORIGINS", "*")),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		MaxUploadMB:      getint("MAX_UPLOAD_MB", 256),
		LogFile:          getenv("LOG_FILE", "logs/match-service.log"),
		DefaultThreshold: getint("DEFAULT_THRESHOLD", 50),
		DefaultLimit:     getint("DEFAULT_LIMIT", 1),
		HeaderRow:        getint("HEADER_ROW", 1),
		Scorer:           getenv("SCORER", "token_sort"),
		PairScorer:       getenv("PAIR_SCORER", "jaro_winkler"),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// MaxUploadBytes: лимит тела запроса.
func (c Config) MaxUploadBytes() int64 { return int64(c.MaxUploadMB) * 1024 * 1024 }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getint: мусор в переменной == значение по умолчанию
func getint(k string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(getenv(k, "")))
	if err != nil {
		return def
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
