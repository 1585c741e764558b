package reports

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"ledgerlink/internal/infrastructure/aggclient"
	"ledgerlink/internal/poll"
)

// MockReportClient implements Client for testing.
type MockReportClient struct {
	CreateAssetReportFunc func(ctx context.Context, accessTokens []string, daysRequested int) (*aggclient.AssetReportCreateResponse, error)
	GetAssetReportFunc    func(ctx context.Context, assetReportToken string) (*aggclient.AssetReportGetResponse, error)
	GetAssetReportPDFFunc func(ctx context.Context, assetReportToken string) ([]byte, error)
	GetBaseReportFunc     func(ctx context.Context, userToken string) (*aggclient.CheckReportResponse, error)
	GetIncomeInsightsFunc func(ctx context.Context, userToken string) (*aggclient.CheckReportResponse, error)
	GetCheckReportPDFFunc func(ctx context.Context, userToken string) ([]byte, error)
}

func (m *MockReportClient) CreateAssetReport(ctx context.Context, accessTokens []string, daysRequested int) (*aggclient.AssetReportCreateResponse, error) {
	if m.CreateAssetReportFunc != nil {
		return m.CreateAssetReportFunc(ctx, accessTokens, daysRequested)
	}
	return &aggclient.AssetReportCreateResponse{AssetReportToken: "assets-token", AssetReportID: "assets-id"}, nil
}

func (m *MockReportClient) GetAssetReport(ctx context.Context, assetReportToken string) (*aggclient.AssetReportGetResponse, error) {
	if m.GetAssetReportFunc != nil {
		return m.GetAssetReportFunc(ctx, assetReportToken)
	}
	return nil, nil
}

func (m *MockReportClient) GetAssetReportPDF(ctx context.Context, assetReportToken string) ([]byte, error) {
	if m.GetAssetReportPDFFunc != nil {
		return m.GetAssetReportPDFFunc(ctx, assetReportToken)
	}
	return []byte("%PDF-assets"), nil
}

func (m *MockReportClient) GetBaseReport(ctx context.Context, userToken string) (*aggclient.CheckReportResponse, error) {
	if m.GetBaseReportFunc != nil {
		return m.GetBaseReportFunc(ctx, userToken)
	}
	return nil, nil
}

func (m *MockReportClient) GetIncomeInsights(ctx context.Context, userToken string) (*aggclient.CheckReportResponse, error) {
	if m.GetIncomeInsightsFunc != nil {
		return m.GetIncomeInsightsFunc(ctx, userToken)
	}
	return nil, nil
}

func (m *MockReportClient) GetCheckReportPDF(ctx context.Context, userToken string) ([]byte, error) {
	if m.GetCheckReportPDFFunc != nil {
		return m.GetCheckReportPDFFunc(ctx, userToken)
	}
	return []byte("%PDF-check"), nil
}

func notReadyErr() error {
	return &aggclient.APIError{
		StatusCode:   400,
		ErrorType:    "ASSET_REPORT_ERROR",
		ErrorCode:    aggclient.CodeProductNotReady,
		ErrorMessage: "the requested report is not ready yet",
	}
}

func fastPoll(attempts int) poll.Config {
	return poll.Config{MaxAttempts: attempts, Delay: time.Millisecond}
}

func TestAssetReport_PollsUntilReadyThenFetchesPDF(t *testing.T) {
	ctx := context.Background()
	getCalls := 0
	client := &MockReportClient{
		GetAssetReportFunc: func(ctx context.Context, token string) (*aggclient.AssetReportGetResponse, error) {
			getCalls++
			if getCalls < 3 {
				return nil, notReadyErr()
			}
			return &aggclient.AssetReportGetResponse{Report: []byte(`{"items":[]}`)}, nil
		},
	}

	svc := NewService(client, fastPoll(20))
	report, err := svc.AssetReport(ctx, "access-token")
	if err != nil {
		t.Fatalf("AssetReport() failed: %v", err)
	}

	if getCalls != 3 {
		t.Errorf("report fetches = %d, want 3", getCalls)
	}
	if string(report.Report) != `{"items":[]}` {
		t.Errorf("report body = %s", report.Report)
	}
	if !bytes.Equal(report.PDF, []byte("%PDF-assets")) {
		t.Errorf("pdf = %q", report.PDF)
	}
}

func TestAssetReport_TimesOutWhenNeverReady(t *testing.T) {
	ctx := context.Background()
	client := &MockReportClient{
		GetAssetReportFunc: func(ctx context.Context, token string) (*aggclient.AssetReportGetResponse, error) {
			return nil, notReadyErr()
		},
	}

	svc := NewService(client, fastPoll(4))
	_, err := svc.AssetReport(ctx, "access-token")

	if !errors.Is(err, ErrGenerationTimedOut) {
		t.Errorf("error = %v, want ErrGenerationTimedOut", err)
	}
}

func TestAssetReport_CreateFailureDoesNotPoll(t *testing.T) {
	ctx := context.Background()
	polled := false
	client := &MockReportClient{
		CreateAssetReportFunc: func(ctx context.Context, tokens []string, days int) (*aggclient.AssetReportCreateResponse, error) {
			return nil, errors.New("create failed")
		},
		GetAssetReportFunc: func(ctx context.Context, token string) (*aggclient.AssetReportGetResponse, error) {
			polled = true
			return nil, nil
		},
	}

	svc := NewService(client, fastPoll(20))
	if _, err := svc.AssetReport(ctx, "access-token"); err == nil {
		t.Fatal("AssetReport() expected error, got nil")
	}
	if polled {
		t.Error("polling should not start when the creation request fails")
	}
}

func TestBaseReport_EventualSuccess(t *testing.T) {
	ctx := context.Background()
	calls := 0
	client := &MockReportClient{
		GetBaseReportFunc: func(ctx context.Context, userToken string) (*aggclient.CheckReportResponse, error) {
			calls++
			if calls == 1 {
				return nil, notReadyErr()
			}
			return &aggclient.CheckReportResponse{Report: []byte(`{"accounts":[]}`)}, nil
		},
	}

	svc := NewService(client, fastPoll(20))
	report, err := svc.BaseReport(ctx, "user-token")
	if err != nil {
		t.Fatalf("BaseReport() failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("report fetches = %d, want 2", calls)
	}
	if !bytes.Equal(report.PDF, []byte("%PDF-check")) {
		t.Errorf("pdf = %q", report.PDF)
	}
}

func TestIncomeInsights_PDFFailurePropagates(t *testing.T) {
	ctx := context.Background()
	client := &MockReportClient{
		GetIncomeInsightsFunc: func(ctx context.Context, userToken string) (*aggclient.CheckReportResponse, error) {
			return &aggclient.CheckReportResponse{Report: []byte(`{}`)}, nil
		},
		GetCheckReportPDFFunc: func(ctx context.Context, userToken string) ([]byte, error) {
			return nil, errors.New("pdf render failed")
		},
	}

	svc := NewService(client, fastPoll(20))
	if _, err := svc.IncomeInsights(ctx, "user-token"); err == nil {
		t.Fatal("IncomeInsights() expected error, got nil")
	}
}
