package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"stargate/internal/audit"
	"stargate/internal/person/service"
	"stargate/internal/person/store"
)

func TestCreateAndFetchPerson(t *testing.T) {
	router := newPersonRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/person", map[string]string{"name": "Jane Smith"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating person, got %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("expected id in response")
	}
	if created.Name != "Jane Smith" {
		t.Fatalf("expected name Jane Smith, got %q", created.Name)
	}

	getRec := doJSON(t, router, http.MethodGet, "/person/Jane%20Smith", nil)
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching person, got %d", getRec.Code)
	}
}

func TestCreatePersonRejectsDuplicate(t *testing.T) {
	router := newPersonRouter(t)

	if rec := doJSON(t, router, http.MethodPost, "/person", map[string]string{"name": "Bob Johnson"}); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on first create, got %d", rec.Code)
	}
	rec := doJSON(t, router, http.MethodPost, "/person", map[string]string{"name": "Bob Johnson"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate name, got %d", rec.Code)
	}
}

func TestCreatePersonRejectsBlankName(t *testing.T) {
	router := newPersonRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/person", map[string]string{"name": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on blank name, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "person name cannot be null or empty") {
		t.Fatalf("expected validation message in body, got %s", rec.Body.String())
	}
}

func TestGetUnknownPerson(t *testing.T) {
	router := newPersonRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/person/Nobody", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown person, got %d", rec.Code)
	}
}

func TestRenamePerson(t *testing.T) {
	router := newPersonRouter(t)

	if rec := doJSON(t, router, http.MethodPost, "/person", map[string]string{"name": "Jane Smith"}); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating person, got %d", rec.Code)
	}

	rec := doJSON(t, router, http.MethodPut, "/person/Jane%20Smith", map[string]string{"name": "Jane Doe"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 renaming person, got %d: %s", rec.Code, rec.Body.String())
	}

	if rec := doJSON(t, router, http.MethodGet, "/person/Jane%20Doe", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching renamed person, got %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodGet, "/person/Jane%20Smith", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 fetching old name, got %d", rec.Code)
	}
}

func TestListPeopleEmptyIsArray(t *testing.T) {
	router := newPersonRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/person", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing people, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty array body, got %s", body)
	}
}

func TestCreatePersonRejectsMalformedBody(t *testing.T) {
	router := newPersonRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/person", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on malformed body, got %d", rec.Code)
	}
}

func newPersonRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	auditor := audit.NewService(audit.NewInMemoryStore(), logger)
	svc := service.New(store.NewInMemory(), auditor, nil)

	h := New(svc, logger)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
