package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"

	ExpenseProgressive = "progressive"
	ExpenseFlat        = "flat"
)

type APIConfig struct {
	Addr          string
	LedgerBaseURL string
	LedgerAPIKey  string
	OpenAIAPIKey  string
	OpenAIModel   string
	ExpensePolicy string
	FlatExpense   int64
	SessionStore  string
	DatabaseURL   string
}

type CLIConfig struct {
	APIBaseURL string
}

func LoadAPIFromEnv() (APIConfig, error) {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("FINLIFE_API_ADDR", ":8080")
	}

	cfg := APIConfig{
		Addr:          addr,
		LedgerBaseURL: strings.TrimRight(envDefault("NESSIE_API_URL", "http://api.nessieisreal.com"), "/"),
		LedgerAPIKey:  strings.TrimSpace(os.Getenv("NESSIE_API_KEY")),
		OpenAIAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:   envDefault("FINLIFE_OPENAI_MODEL", ""),
		ExpensePolicy: envExpensePolicyDefault(),
		FlatExpense:   envInt64Default("FINLIFE_FLAT_EXPENSE", 25_000),
		SessionStore:  envStoreDefault(),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
	}
	if cfg.LedgerAPIKey == "" {
		return cfg, fmt.Errorf("NESSIE_API_KEY is required")
	}
	if cfg.OpenAIAPIKey == "" {
		return cfg, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.SessionStore == StorePostgres && cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required when FINLIFE_SESSION_STORE=postgres")
	}
	return cfg, nil
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("FIN_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envInt64Default(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envExpensePolicyDefault() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("FINLIFE_EXPENSE_POLICY"))) {
	case ExpenseFlat:
		return ExpenseFlat
	default:
		return ExpenseProgressive
	}
}

func envStoreDefault() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("FINLIFE_SESSION_STORE"))) {
	case StorePostgres:
		return StorePostgres
	default:
		return StoreMemory
	}
}
