package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-key"), server
}

func TestCreateCustomerAndAccount(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key = %q, want test-key", got)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		switch r.URL.Path {
		case "/customers":
			if payload["first_name"] != "Ada" || payload["last_name"] != "Lovelace" {
				t.Errorf("customer payload = %v", payload)
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"objectCreated": map[string]string{"_id": "cust-9"}})
		case "/customers/cust-9/accounts":
			if payload["type"] != "Checking" || payload["balance"] != float64(10_000) {
				t.Errorf("account payload = %v", payload)
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"objectCreated": map[string]string{"_id": "acct-9"}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	ctx := context.Background()
	customerID, err := client.CreateCustomer(ctx, "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if customerID != "cust-9" {
		t.Errorf("customerID = %q", customerID)
	}
	accountID, err := client.CreateAccount(ctx, customerID, 10_000)
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if accountID != "acct-9" {
		t.Errorf("accountID = %q", accountID)
	}
}

func TestDepositPayload(t *testing.T) {
	var got map[string]any
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts/acct-1/deposits" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	})

	date := time.Date(2040, time.June, 2, 0, 0, 0, 0, time.UTC)
	if err := client.Deposit(context.Background(), "acct-1", date, 50_000, "Engineer Annual Salary"); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if got["medium"] != "balance" || got["transaction_date"] != "2040-06-02" ||
		got["amount"] != float64(50_000) || got["description"] != "Engineer Annual Salary" {
		t.Errorf("payload = %v", got)
	}
}

func TestPayLoanPayload(t *testing.T) {
	var got map[string]any
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/loans/loan-7/payments" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	})

	date := time.Date(2040, time.June, 2, 0, 0, 0, 0, time.UTC)
	if err := client.PayLoan(context.Background(), "loan-7", "acct-1", date, 2_500); err != nil {
		t.Fatalf("PayLoan: %v", err)
	}
	if got["payer_id"] != "acct-1" || got["amount"] != float64(2_500) {
		t.Errorf("payload = %v", got)
	}
}

func TestLoansRemainingAmountFallback(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"_id":"loan-1","description":"Student loan","amount":40000,"remaining_amount":15000},
			{"_id":"loan-2","description":"Car loan","amount":8000}
		]`))
	})

	loans, err := client.Loans(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("Loans: %v", err)
	}
	if len(loans) != 2 {
		t.Fatalf("loans = %d, want 2", len(loans))
	}
	if loans[0].RemainingAmount != 15_000 {
		t.Errorf("loan-1 remaining = %v, want 15000", loans[0].RemainingAmount)
	}
	if loans[1].RemainingAmount != 8_000 {
		t.Errorf("loan-2 remaining = %v, want fallback to amount", loans[1].RemainingAmount)
	}
}

func TestTransactionsMergeAndSort(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/deposits"):
			_, _ = w.Write([]byte(`[
				{"_id":"d1","transaction_date":"2030-01-01","amount":50000,"description":"Salary"},
				{"_id":"d2","amount":10,"description":"No date, dropped"}
			]`))
		case strings.HasSuffix(r.URL.Path, "/withdrawals"):
			_, _ = w.Write([]byte(`[
				{"_id":"w1","transaction_date":"2031-01-01","amount":40000,"description":"Expenses"}
			]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	txs, err := client.Transactions(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("transactions = %d, want 2 (undated entry dropped)", len(txs))
	}
	if txs[0].ID != "w1" || txs[0].Type != "withdrawal" {
		t.Errorf("txs[0] = %+v, want the newest first", txs[0])
	}
	if txs[1].ID != "d1" || txs[1].Type != "deposit" {
		t.Errorf("txs[1] = %+v", txs[1])
	}
}

func TestErrorStatusSurfacesBody(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such account", http.StatusNotFound)
	})

	_, err := client.Balance(context.Background(), "acct-missing")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "ledger status 404") || !strings.Contains(err.Error(), "no such account") {
		t.Errorf("err = %v", err)
	}
}
