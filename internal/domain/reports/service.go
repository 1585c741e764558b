// Package reports orchestrates asynchronously generated report
// products: request generation, poll until ready, then fetch the
// rendered document.
package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"ledgerlink/internal/infrastructure/aggclient"
	"ledgerlink/internal/poll"
)

// DefaultDaysRequested is the history window for asset reports.
const DefaultDaysRequested = 60

// ErrGenerationTimedOut is returned when the polling budget runs out
// before the report becomes ready.
var ErrGenerationTimedOut = errors.New("report generation timed out")

// Client is the slice of the aggregation API the orchestrators need.
type Client interface {
	CreateAssetReport(ctx context.Context, accessTokens []string, daysRequested int) (*aggclient.AssetReportCreateResponse, error)
	GetAssetReport(ctx context.Context, assetReportToken string) (*aggclient.AssetReportGetResponse, error)
	GetAssetReportPDF(ctx context.Context, assetReportToken string) ([]byte, error)
	GetBaseReport(ctx context.Context, userToken string) (*aggclient.CheckReportResponse, error)
	GetIncomeInsights(ctx context.Context, userToken string) (*aggclient.CheckReportResponse, error)
	GetCheckReportPDF(ctx context.Context, userToken string) ([]byte, error)
}

// Report pairs the structured report data with its rendered PDF. PDF is
// a byte slice so JSON marshaling base64-encodes it for transport.
type Report struct {
	Report json.RawMessage `json:"report"`
	PDF    []byte          `json:"pdf"`
}

// Service runs the report orchestrations.
type Service struct {
	client  Client
	pollCfg poll.Config
}

// NewService creates a report service polling with the given budget.
func NewService(client Client, pollCfg poll.Config) *Service {
	return &Service{client: client, pollCfg: pollCfg}
}

// AssetReport requests asset report generation for the access token,
// polls until the report is ready, then fetches its PDF rendering.
func (s *Service) AssetReport(ctx context.Context, accessToken string) (*Report, error) {
	created, err := s.client.CreateAssetReport(ctx, []string{accessToken}, DefaultDaysRequested)
	if err != nil {
		return nil, fmt.Errorf("failed to request asset report: %w", err)
	}
	log.Printf("Asset report requested (id=%s), polling until ready", created.AssetReportID)

	body, err := poll.Do(ctx, s.pollCfg, func(ctx context.Context) (*aggclient.AssetReportGetResponse, error) {
		return s.client.GetAssetReport(ctx, created.AssetReportToken)
	})
	if err != nil {
		return nil, timedOut(err)
	}

	pdf, err := s.client.GetAssetReportPDF(ctx, created.AssetReportToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset report PDF: %w", err)
	}

	return &Report{Report: body.Report, PDF: pdf}, nil
}

// BaseReport polls the base credit report keyed by user token, then
// fetches the check-report PDF.
func (s *Service) BaseReport(ctx context.Context, userToken string) (*Report, error) {
	body, err := poll.Do(ctx, s.pollCfg, func(ctx context.Context) (*aggclient.CheckReportResponse, error) {
		return s.client.GetBaseReport(ctx, userToken)
	})
	if err != nil {
		return nil, timedOut(err)
	}

	pdf, err := s.client.GetCheckReportPDF(ctx, userToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch credit report PDF: %w", err)
	}

	return &Report{Report: body.Report, PDF: pdf}, nil
}

// IncomeInsights polls the income-insights report keyed by user token,
// then fetches the check-report PDF.
func (s *Service) IncomeInsights(ctx context.Context, userToken string) (*Report, error) {
	body, err := poll.Do(ctx, s.pollCfg, func(ctx context.Context) (*aggclient.CheckReportResponse, error) {
		return s.client.GetIncomeInsights(ctx, userToken)
	})
	if err != nil {
		return nil, timedOut(err)
	}

	pdf, err := s.client.GetCheckReportPDF(ctx, userToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch income insights PDF: %w", err)
	}

	return &Report{Report: body.Report, PDF: pdf}, nil
}

// timedOut converts poll exhaustion into the report-level timeout error
// while leaving other failures (permanent errors, cancellation) as-is.
func timedOut(err error) error {
	if errors.Is(err, poll.ErrExhausted) {
		return fmt.Errorf("%w: %w", ErrGenerationTimedOut, err)
	}
	return err
}
