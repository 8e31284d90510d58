package config

import "testing"

func TestLoadAPIFromEnvDefaults(t *testing.T) {
	t.Setenv("NESSIE_API_KEY", "bank-key")
	t.Setenv("OPENAI_API_KEY", "ai-key")
	t.Setenv("PORT", "")
	t.Setenv("FINLIFE_API_ADDR", "")
	t.Setenv("NESSIE_API_URL", "")
	t.Setenv("FINLIFE_EXPENSE_POLICY", "")
	t.Setenv("FINLIFE_SESSION_STORE", "")
	t.Setenv("FINLIFE_FLAT_EXPENSE", "")

	cfg, err := LoadAPIFromEnv()
	if err != nil {
		t.Fatalf("LoadAPIFromEnv: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.LedgerBaseURL != "http://api.nessieisreal.com" {
		t.Errorf("ledger url = %q", cfg.LedgerBaseURL)
	}
	if cfg.ExpensePolicy != ExpenseProgressive {
		t.Errorf("expense policy = %q", cfg.ExpensePolicy)
	}
	if cfg.SessionStore != StoreMemory {
		t.Errorf("session store = %q", cfg.SessionStore)
	}
	if cfg.FlatExpense != 25_000 {
		t.Errorf("flat expense = %d", cfg.FlatExpense)
	}
}

func TestLoadAPIFromEnvPortOverridesAddr(t *testing.T) {
	t.Setenv("NESSIE_API_KEY", "bank-key")
	t.Setenv("OPENAI_API_KEY", "ai-key")
	t.Setenv("PORT", "9000")

	cfg, err := LoadAPIFromEnv()
	if err != nil {
		t.Fatalf("LoadAPIFromEnv: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("addr = %q, want :9000", cfg.Addr)
	}
}

func TestLoadAPIFromEnvRequiredKeys(t *testing.T) {
	t.Setenv("NESSIE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "ai-key")
	if _, err := LoadAPIFromEnv(); err == nil {
		t.Error("expected error without NESSIE_API_KEY")
	}

	t.Setenv("NESSIE_API_KEY", "bank-key")
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := LoadAPIFromEnv(); err == nil {
		t.Error("expected error without OPENAI_API_KEY")
	}
}

func TestLoadAPIFromEnvPostgresNeedsDatabaseURL(t *testing.T) {
	t.Setenv("NESSIE_API_KEY", "bank-key")
	t.Setenv("OPENAI_API_KEY", "ai-key")
	t.Setenv("FINLIFE_SESSION_STORE", "postgres")
	t.Setenv("DATABASE_URL", "")
	if _, err := LoadAPIFromEnv(); err == nil {
		t.Error("expected error for postgres store without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/finlife")
	cfg, err := LoadAPIFromEnv()
	if err != nil {
		t.Fatalf("LoadAPIFromEnv: %v", err)
	}
	if cfg.SessionStore != StorePostgres {
		t.Errorf("session store = %q", cfg.SessionStore)
	}
}
