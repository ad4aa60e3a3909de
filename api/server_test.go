// Package api - HTTP surface tests
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/DaniloReis10/TarifadorTest-sub000/internal/errors"
	"github.com/DaniloReis10/TarifadorTest-sub000/store/sqlite"
)

func testServer(t *testing.T, seed []string) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "billing.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	schema := []string{
		`CREATE TABLE organizations (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`,
		`CREATE TABLE companies (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`,
		`CREATE TABLE call_records (id INTEGER PRIMARY KEY, calltype TEXT, direction TEXT,
			duration_seconds INTEGER, company_id INTEGER, organization_id INTEGER,
			price_table_id INTEGER, started_at TEXT)`,
		`CREATE TABLE equipment (id INTEGER PRIMARY KEY, organization_id INTEGER, company_id INTEGER,
			service_kind TEXT, contract_id INTEGER, install_date TEXT)`,
		`CREATE TABLE contracts (id INTEGER PRIMARY KEY, organization_id INTEGER, company_id INTEGER,
			legacy_service_id TEXT DEFAULT '', contract_number TEXT DEFAULT '',
			item_number TEXT DEFAULT '', description TEXT DEFAULT '',
			version TEXT, price_table_id INTEGER, is_subcontract INTEGER DEFAULT 0)`,
		`CREATE TABLE prices (table_id INTEGER, calltype TEXT, service_kind TEXT, value TEXT, active INTEGER)`,
	}
	for _, stmt := range append(schema, seed...) {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("%s: %v", stmt, err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	store, err := sqlite.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return NewServer("test", store)
}

func ratedSeed() []string {
	return []string{
		`INSERT INTO organizations VALUES (1, 'SEFAZ')`,
		`INSERT INTO companies VALUES (10, 'Filial Centro')`,
		`INSERT INTO call_records VALUES (1, 'LOCAL', 'OUT', 120, 10, 1, 7, '2024-06-05T10:00:00Z')`,
		`INSERT INTO contracts (id, organization_id, company_id, version, price_table_id)
			VALUES (1, 1, 10, 'NEW', 7)`,
		`INSERT INTO prices VALUES (7, 'LOCAL', NULL, '0.08', 1)`,
	}
}

func postReport(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body %q: %v", rec.Body.String(), err)
	}
	return body.Error.Code
}

func TestHealthEndpoint(t *testing.T) {
	server := testServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"healthy"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestVersionEndpoint(t *testing.T) {
	server := testServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["version"] != "test" {
		t.Errorf("version = %q", body["version"])
	}
}

func TestReportHappyPath(t *testing.T) {
	server := testServer(t, ratedSeed())

	rec := postReport(t, server, `{"month":"2024-06","organization_id":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp ReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Report == nil || len(resp.Report.Organizations) != 1 {
		t.Fatalf("report = %+v", resp.Report)
	}
	if resp.Report.GrandTotal.Cost.String() != "0.16" {
		t.Errorf("grand total = %s, want 0.16", resp.Report.GrandTotal.Cost)
	}
	if resp.Metadata == nil || resp.Metadata.InputHash == "" {
		t.Error("metadata input hash missing")
	}
}

func TestReportBadJSON(t *testing.T) {
	server := testServer(t, nil)

	rec := postReport(t, server, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestReportBadMonth(t *testing.T) {
	server := testServer(t, nil)

	rec := postReport(t, server, `{"month":"junho"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if code := errorCode(t, rec); code != string(errors.TypeInput) {
		t.Errorf("code = %q", code)
	}
}

func TestReportInvertedPeriod(t *testing.T) {
	server := testServer(t, nil)

	rec := postReport(t, server, `{"period_start":"2024-06-30","period_end":"2024-06-01"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if code := errorCode(t, rec); code != string(errors.TypeInvalidPeriod) {
		t.Errorf("code = %q", code)
	}
}

func TestReportMissingPriceIs422(t *testing.T) {
	seed := []string{
		`INSERT INTO organizations VALUES (1, 'SEFAZ')`,
		`INSERT INTO companies VALUES (10, 'Filial Centro')`,
		`INSERT INTO call_records VALUES (1, 'LDI', 'OUT', 60, 10, 1, 7, '2024-06-05T10:00:00Z')`,
		`INSERT INTO contracts (id, organization_id, company_id, version, price_table_id)
			VALUES (1, 1, 10, 'OLD', 7)`,
	}
	server := testServer(t, seed)

	rec := postReport(t, server, `{"month":"2024-06","organization_id":1}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422, body = %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != string(errors.TypePriceNotConfigured) {
		t.Errorf("code = %q", code)
	}
}

func TestReportUstView(t *testing.T) {
	server := testServer(t, ratedSeed())

	rec := postReport(t, server,
		`{"month":"2024-06","organization_id":1,"with_ust":true,"policy":{"ust_value":"4.00"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp ReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Report.GrandTotal.CostUst.String() != "0.04" {
		t.Errorf("grand total UST = %s, want 0.04", resp.Report.GrandTotal.CostUst)
	}
}
