package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ledgerlink/internal/domain/reports"
	"ledgerlink/internal/session"
)

// MockReportService implements ReportService for testing.
type MockReportService struct {
	AssetReportFunc    func(ctx context.Context, accessToken string) (*reports.Report, error)
	BaseReportFunc     func(ctx context.Context, userToken string) (*reports.Report, error)
	IncomeInsightsFunc func(ctx context.Context, userToken string) (*reports.Report, error)
}

func (m *MockReportService) AssetReport(ctx context.Context, accessToken string) (*reports.Report, error) {
	if m.AssetReportFunc != nil {
		return m.AssetReportFunc(ctx, accessToken)
	}
	return &reports.Report{Report: []byte(`{"items":[]}`), PDF: []byte("%PDF-1.4 fake")}, nil
}

func (m *MockReportService) BaseReport(ctx context.Context, userToken string) (*reports.Report, error) {
	if m.BaseReportFunc != nil {
		return m.BaseReportFunc(ctx, userToken)
	}
	return &reports.Report{Report: []byte(`{}`), PDF: []byte("pdf")}, nil
}

func (m *MockReportService) IncomeInsights(ctx context.Context, userToken string) (*reports.Report, error) {
	if m.IncomeInsightsFunc != nil {
		return m.IncomeInsightsFunc(ctx, userToken)
	}
	return &reports.Report{Report: []byte(`{}`), PDF: []byte("pdf")}, nil
}

func TestHandleAssetReport_PDFBase64Encoded(t *testing.T) {
	handler := NewReportsHandler(&MockReportService{}, linkedStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/reports/assets", nil)
	req.Header.Set(SessionHeader, "s1")
	rec := httptest.NewRecorder()

	handler.HandleAssetReport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Report json.RawMessage `json:"report"`
		PDF    string          `json:"pdf"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(body.PDF)
	if err != nil {
		t.Fatalf("pdf field is not base64: %v", err)
	}
	if string(decoded) != "%PDF-1.4 fake" {
		t.Errorf("pdf = %q", decoded)
	}
}

func TestHandleAssetReport_TimeoutIs500(t *testing.T) {
	service := &MockReportService{
		AssetReportFunc: func(ctx context.Context, accessToken string) (*reports.Report, error) {
			return nil, fmt.Errorf("%w: retry budget exhausted", reports.ErrGenerationTimedOut)
		},
	}
	handler := NewReportsHandler(service, linkedStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/reports/assets", nil)
	req.Header.Set(SessionHeader, "s1")
	rec := httptest.NewRecorder()

	handler.HandleAssetReport(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.ErrorCode != "REPORT_TIMED_OUT" {
		t.Errorf("error_code = %q, want REPORT_TIMED_OUT", body.ErrorCode)
	}
}

func TestHandleBaseReport_RequiresUserToken(t *testing.T) {
	store := session.NewStore()
	store.Set("s1", session.Credentials{AccessToken: "access-token"}) // no user token
	handler := NewReportsHandler(&MockReportService{}, store)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/credit/base", nil)
	req.Header.Set(SessionHeader, "s1")
	rec := httptest.NewRecorder()

	handler.HandleBaseReport(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 for missing user token", rec.Code)
	}
}

func TestHandleIncomeInsights_UsesUserToken(t *testing.T) {
	store := session.NewStore()
	store.Set("s1", session.Credentials{UserToken: "user-token"})

	var gotToken string
	service := &MockReportService{
		IncomeInsightsFunc: func(ctx context.Context, userToken string) (*reports.Report, error) {
			gotToken = userToken
			return &reports.Report{Report: []byte(`{}`), PDF: []byte("pdf")}, nil
		},
	}
	handler := NewReportsHandler(service, store)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/credit/income", nil)
	req.Header.Set(SessionHeader, "s1")
	rec := httptest.NewRecorder()

	handler.HandleIncomeInsights(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotToken != "user-token" {
		t.Errorf("user token = %q", gotToken)
	}
}
