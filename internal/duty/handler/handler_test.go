package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"stargate/internal/audit"
	dutyservice "stargate/internal/duty/service"
	dutystore "stargate/internal/duty/store"
	personmodels "stargate/internal/person/models"
	personstore "stargate/internal/person/store"
)

func TestCreateDutyAndFetchHistory(t *testing.T) {
	router := newDutyRouter(t, "Jane Smith")

	rec := postDuty(t, router, map[string]string{
		"name":            "Jane Smith",
		"rank":            "1LT",
		"duty_title":      "Commander",
		"duty_start_date": "2024-01-01",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating duty, got %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("expected duty id in response")
	}

	histRec := httptest.NewRecorder()
	router.ServeHTTP(histRec, httptest.NewRequest(http.MethodGet, "/astronaut-duty/Jane%20Smith", nil))
	if histRec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching history, got %d", histRec.Code)
	}

	var history struct {
		Person struct {
			Name string `json:"name"`
		} `json:"person"`
		Status struct {
			CurrentRank  string `json:"current_rank"`
			CurrentTitle string `json:"current_title"`
		} `json:"current_status"`
		Duties []struct {
			Title     string     `json:"title"`
			StartDate time.Time  `json:"start_date"`
			EndDate   *time.Time `json:"end_date"`
		} `json:"duties"`
	}
	if err := json.NewDecoder(histRec.Body).Decode(&history); err != nil {
		t.Fatalf("failed to decode history response: %v", err)
	}
	if history.Person.Name != "Jane Smith" {
		t.Fatalf("expected person name in history, got %q", history.Person.Name)
	}
	if history.Status.CurrentTitle != "Commander" || history.Status.CurrentRank != "1LT" {
		t.Fatalf("unexpected status: %+v", history.Status)
	}
	if len(history.Duties) != 1 || history.Duties[0].EndDate != nil {
		t.Fatalf("expected one open duty, got %+v", history.Duties)
	}
}

func TestCreateDutyAcceptsRFC3339StartDate(t *testing.T) {
	router := newDutyRouter(t, "Jane Smith")

	rec := postDuty(t, router, map[string]string{
		"name":            "Jane Smith",
		"rank":            "1LT",
		"duty_title":      "Commander",
		"duty_start_date": "2024-01-01T15:04:05Z",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 with RFC 3339 start date, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateDutyRejectsBadStartDate(t *testing.T) {
	router := newDutyRouter(t, "Jane Smith")

	rec := postDuty(t, router, map[string]string{
		"name":            "Jane Smith",
		"rank":            "1LT",
		"duty_title":      "Commander",
		"duty_start_date": "January 1st",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on unparseable date, got %d", rec.Code)
	}
}

func TestCreateDutyRejectsMissingFields(t *testing.T) {
	router := newDutyRouter(t, "Jane Smith")

	rec := postDuty(t, router, map[string]string{
		"name":            "Jane Smith",
		"rank":            "",
		"duty_title":      "Commander",
		"duty_start_date": "2024-01-01",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on missing rank, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "rank cannot be null or empty") {
		t.Fatalf("expected validation message in body, got %s", rec.Body.String())
	}
}

func TestCreateDutyRejectsUnknownPerson(t *testing.T) {
	router := newDutyRouter(t, "Jane Smith")

	rec := postDuty(t, router, map[string]string{
		"name":            "Nobody",
		"rank":            "1LT",
		"duty_title":      "Commander",
		"duty_start_date": "2024-01-01",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown person, got %d", rec.Code)
	}
}

func TestCreateDutyRejectsDuplicate(t *testing.T) {
	router := newDutyRouter(t, "Jane Smith")

	payload := map[string]string{
		"name":            "Jane Smith",
		"rank":            "1LT",
		"duty_title":      "Commander",
		"duty_start_date": "2024-01-01",
	}
	if rec := postDuty(t, router, payload); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on first submission, got %d", rec.Code)
	}
	rec := postDuty(t, router, payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate submission, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "already exists") {
		t.Fatalf("expected duplicate message in body, got %s", rec.Body.String())
	}
}

func TestStatusEndpoint(t *testing.T) {
	router := newDutyRouter(t, "Jane Smith")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/astronaut-status/Jane%20Smith", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for person without duties, got %d", rec.Code)
	}
	var resp struct {
		Person struct {
			Name string `json:"name"`
		} `json:"person"`
		Status *json.RawMessage `json:"current_status"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode status response: %v", err)
	}
	if resp.Person.Name != "Jane Smith" {
		t.Fatalf("expected person in response, got %q", resp.Person.Name)
	}
	if resp.Status != nil && string(*resp.Status) != "null" {
		t.Fatalf("expected null status before any duty, got %s", *resp.Status)
	}

	if rec := postDuty(t, router, map[string]string{
		"name":            "Jane Smith",
		"rank":            "1LT",
		"duty_title":      "Commander",
		"duty_start_date": "2024-01-01",
	}); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating duty, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/astronaut-status/Jane%20Smith", nil))
	var after struct {
		Status struct {
			CurrentTitle string `json:"current_title"`
		} `json:"current_status"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&after); err != nil {
		t.Fatalf("failed to decode status response: %v", err)
	}
	if after.Status.CurrentTitle != "Commander" {
		t.Fatalf("expected current title Commander, got %q", after.Status.CurrentTitle)
	}
}

func TestStatusUnknownPerson(t *testing.T) {
	router := newDutyRouter(t, "Jane Smith")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/astronaut-status/Nobody", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown person, got %d", rec.Code)
	}
}

func TestHistoryUnknownPerson(t *testing.T) {
	router := newDutyRouter(t, "Jane Smith")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/astronaut-duty/Nobody", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown person, got %d", rec.Code)
	}
}

func TestHistoryPersonWithoutDuties(t *testing.T) {
	router := newDutyRouter(t, "Jane Smith")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/astronaut-duty/Jane%20Smith", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for person without duties, got %d", rec.Code)
	}

	var history struct {
		Duties []json.RawMessage `json:"duties"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&history); err != nil {
		t.Fatalf("failed to decode history response: %v", err)
	}
	if history.Duties == nil || len(history.Duties) != 0 {
		t.Fatalf("expected empty duties array, got %v", history.Duties)
	}
}

func newDutyRouter(t *testing.T, seedNames ...string) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	people := personstore.NewInMemory()
	for _, name := range seedNames {
		p, err := personmodels.NewPerson(name, time.Now())
		if err != nil {
			t.Fatalf("failed to build person %q: %v", name, err)
		}
		if err := people.CreateIfNameAvailable(context.Background(), p); err != nil {
			t.Fatalf("failed to seed person %q: %v", name, err)
		}
	}

	auditor := audit.NewService(audit.NewInMemoryStore(), logger)
	svc := dutyservice.New(people, dutystore.NewInMemory(), dutyservice.NewShardedTx(), auditor, nil)

	h := New(svc, logger)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func postDuty(t *testing.T, router http.Handler, payload map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/astronaut-duty", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
