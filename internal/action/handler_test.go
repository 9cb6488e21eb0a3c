package action

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/patron-pay/patron_pay/internal/account"
	"github.com/patron-pay/patron_pay/internal/ledger"
	"github.com/patron-pay/patron_pay/internal/logging"
)

func newPayApp(t *testing.T) (*fiber.App, account.Repository) {
	t.Helper()
	repo := account.NewMemoryRepository()
	store := ledger.NewInMemory()
	svc := NewBulkPayService(repo, store, nil, logging.Discard())
	h := NewHandler(svc, NewCheckService(Pay, repo, store))

	app := fiber.New()
	app.Post("/accounts-bulk/pay", h.Bulk)
	app.Post("/accounts/:id/pay", h.Single)
	app.Post("/accounts/:id/check-pay", h.Check)
	return app, repo
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var decoded map[string]any
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &decoded); err != nil {
			t.Fatalf("decode %s: %v", payload, err)
		}
	}
	return resp.StatusCode, decoded
}

func TestBulkEndpointCreatesActions(t *testing.T) {
	app, repo := newPayApp(t)
	acc := seedAccount(t, repo, "4.55")

	status, body := postJSON(t, app, "/accounts-bulk/pay",
		`{"accountIds":["`+acc.ID+`"],"amount":"1.23"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d (%v)", status, body)
	}
	if body["amount"] != "1.23" {
		t.Fatalf("response amount = %v, want 1.23", body["amount"])
	}
	actions, ok := body["feeFineActions"].([]any)
	if !ok || len(actions) != 1 {
		t.Fatalf("expected one fee/fine action, got %v", body["feeFineActions"])
	}
}

func TestBulkEndpointValidationFailure(t *testing.T) {
	app, repo := newPayApp(t)
	acc := seedAccount(t, repo, "4.55")

	status, body := postJSON(t, app, "/accounts-bulk/pay",
		`{"accountIds":["`+acc.ID+`"],"amount":"4.56"}`)
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", status)
	}
	if body["errorMessage"] != "Requested amount exceeds remaining amount" {
		t.Fatalf("unexpected error message %v", body["errorMessage"])
	}
	// The response echoes the caller's amount text unchanged.
	if body["amount"] != "4.56" {
		t.Fatalf("response amount = %v, want the original 4.56", body["amount"])
	}
}

func TestBulkEndpointMissingAccount(t *testing.T) {
	app, _ := newPayApp(t)

	status, _ := postJSON(t, app, "/accounts-bulk/pay",
		`{"accountIds":["`+uuid.NewString()+`"],"amount":"1.00"}`)
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestSingleEndpointUsesPathID(t *testing.T) {
	app, repo := newPayApp(t)
	acc := seedAccount(t, repo, "4.55")

	status, _ := postJSON(t, app, "/accounts/"+acc.ID+"/pay", `{"amount":"4.55"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}

	persisted, err := repo.GetByID(context.Background(), acc.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if persisted.Status != account.StatusClosed {
		t.Fatalf("expected closed account, got %s", persisted.Status)
	}
}

func TestCheckEndpointReportsOutcome(t *testing.T) {
	app, repo := newPayApp(t)
	acc := seedAccount(t, repo, "4.55")

	status, body := postJSON(t, app, "/accounts/"+acc.ID+"/check-pay", `{"amount":"1.23"}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["allowed"] != true {
		t.Fatalf("expected allowed, got %v", body)
	}
	if body["remainingAmount"] != "3.32" {
		t.Fatalf("remaining = %v, want 3.32", body["remainingAmount"])
	}

	status, body = postJSON(t, app, "/accounts/"+acc.ID+"/check-pay", `{"amount":"9.99"}`)
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", status)
	}
	if body["errorMessage"] != "Requested amount exceeds remaining amount" {
		t.Fatalf("unexpected message %v", body["errorMessage"])
	}
}
