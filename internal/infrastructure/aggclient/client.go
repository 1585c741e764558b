package aggclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout = 30 * time.Second

	linkTokenPath      = "/link/token/create"
	exchangePath       = "/item/public_token/exchange"
	userCreatePath     = "/user/create"
	accountsPath       = "/accounts/get"
	balancesPath       = "/accounts/balance/get"
	identityPath       = "/identity/get"
	liabilitiesPath    = "/liabilities/get"
	holdingsPath       = "/investments/holdings/get"
	syncPath           = "/transactions/sync"
	assetCreatePath    = "/asset_report/create"
	assetGetPath       = "/asset_report/get"
	assetPDFPath       = "/asset_report/pdf/get"
	baseReportPath     = "/cra/check_report/base_report/get"
	incomeInsightsPath = "/cra/check_report/income_insights/get"
	checkReportPDFPath = "/cra/check_report/pdf/get"
)

var environmentURLs = map[string]string{
	EnvSandbox:     "https://sandbox.plaid.com",
	EnvDevelopment: "https://development.plaid.com",
	EnvProduction:  "https://production.plaid.com",
}

// Config holds credentials and request defaults for the aggregation API.
type Config struct {
	ClientID     string
	Secret       string
	Environment  string
	BaseURL      string // overrides Environment when set
	Products     []string
	CountryCodes []string
	RedirectURI  string
}

// BaseURLFor maps an environment name to its API base URL. Unknown
// environments fall back to the sandbox.
func BaseURLFor(env string) string {
	if url, ok := environmentURLs[env]; ok {
		return url
	}
	return environmentURLs[EnvSandbox]
}

// Client handles communication with the financial-data aggregation API.
// All endpoints are JSON POST; client credentials are injected into
// every request body server-side so they never reach the browser.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cfg        Config
}

// NewClient creates a new aggregation API client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseURLFor(cfg.Environment)
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: baseURL,
		cfg:     cfg,
	}
}

// post sends a JSON request with credentials injected and decodes the
// response into out. Non-2xx responses are returned as *APIError when
// the body carries the structured error payload.
func (c *Client) post(ctx context.Context, path string, body map[string]any, out any) error {
	if body == nil {
		body = map[string]any{}
	}
	body["client_id"] = c.cfg.ClientID
	body["secret"] = c.cfg.Secret

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err != nil {
			return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// postRaw sends a JSON request and returns the raw response bytes.
// Used for binary document endpoints (PDF renderings).
func (c *Client) postRaw(ctx context.Context, path string, body map[string]any) ([]byte, error) {
	if body == nil {
		body = map[string]any{}
	}
	body["client_id"] = c.cfg.ClientID
	body["secret"] = c.cfg.Secret

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err != nil {
			return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
		}
		return nil, apiErr
	}

	return respBody, nil
}

// CreateLinkToken generates a short-lived token that initializes the
// browser link flow for the given end user.
func (c *Client) CreateLinkToken(ctx context.Context, clientUserID string) (*LinkTokenResponse, error) {
	body := map[string]any{
		"client_name":   "ledgerlink",
		"language":      "en",
		"country_codes": c.cfg.CountryCodes,
		"products":      c.cfg.Products,
		"user": map[string]any{
			"client_user_id": clientUserID,
		},
	}
	if c.cfg.RedirectURI != "" {
		body["redirect_uri"] = c.cfg.RedirectURI
	}
	var out LinkTokenResponse
	if err := c.post(ctx, linkTokenPath, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExchangePublicToken trades the public token produced by the link flow
// for a long-lived access token and its item ID.
func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (*ExchangeResponse, error) {
	var out ExchangeResponse
	if err := c.post(ctx, exchangePath, map[string]any{"public_token": publicToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser creates an API-side user and returns the user token that
// keys the report products.
func (c *Client) CreateUser(ctx context.Context, clientUserID string) (*UserResponse, error) {
	var out UserResponse
	if err := c.post(ctx, userCreatePath, map[string]any{"client_user_id": clientUserID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAccounts retrieves the accounts under an access token.
func (c *Client) GetAccounts(ctx context.Context, accessToken string) (*AccountsResponse, error) {
	var out AccountsResponse
	if err := c.post(ctx, accountsPath, map[string]any{"access_token": accessToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBalances retrieves real-time balances for the accounts under an
// access token.
func (c *Client) GetBalances(ctx context.Context, accessToken string) (*AccountsResponse, error) {
	var out AccountsResponse
	if err := c.post(ctx, balancesPath, map[string]any{"access_token": accessToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetIdentity retrieves account-holder identity data.
func (c *Client) GetIdentity(ctx context.Context, accessToken string) (*IdentityResponse, error) {
	var out IdentityResponse
	if err := c.post(ctx, identityPath, map[string]any{"access_token": accessToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLiabilities retrieves liability data for credit and loan accounts.
func (c *Client) GetLiabilities(ctx context.Context, accessToken string) (*LiabilitiesResponse, error) {
	var out LiabilitiesResponse
	if err := c.post(ctx, liabilitiesPath, map[string]any{"access_token": accessToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInvestmentHoldings retrieves investment holdings and securities.
func (c *Client) GetInvestmentHoldings(ctx context.Context, accessToken string) (*HoldingsResponse, error) {
	var out HoldingsResponse
	if err := c.post(ctx, holdingsPath, map[string]any{"access_token": accessToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SyncTransactions fetches one page of the incremental transaction
// change feed. Pass an empty cursor for the initial page.
func (c *Client) SyncTransactions(ctx context.Context, accessToken, cursor string) (*TransactionsSyncResponse, error) {
	body := map[string]any{"access_token": accessToken}
	if cursor != "" {
		body["cursor"] = cursor
	}
	var out TransactionsSyncResponse
	if err := c.post(ctx, syncPath, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAssetReport requests asynchronous generation of an asset report
// covering the given days of history. The returned token is the handle
// for polling the report.
func (c *Client) CreateAssetReport(ctx context.Context, accessTokens []string, daysRequested int) (*AssetReportCreateResponse, error) {
	body := map[string]any{
		"access_tokens":  accessTokens,
		"days_requested": daysRequested,
	}
	var out AssetReportCreateResponse
	if err := c.post(ctx, assetCreatePath, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAssetReport retrieves a generated asset report. Fails with a
// PRODUCT_NOT_READY APIError while generation is still in progress.
func (c *Client) GetAssetReport(ctx context.Context, assetReportToken string) (*AssetReportGetResponse, error) {
	var out AssetReportGetResponse
	if err := c.post(ctx, assetGetPath, map[string]any{"asset_report_token": assetReportToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAssetReportPDF retrieves the rendered PDF of a ready asset report.
func (c *Client) GetAssetReportPDF(ctx context.Context, assetReportToken string) ([]byte, error) {
	return c.postRaw(ctx, assetPDFPath, map[string]any{"asset_report_token": assetReportToken})
}

// GetBaseReport retrieves the base credit report for a user token.
// Fails with a PRODUCT_NOT_READY APIError until the report is ready.
func (c *Client) GetBaseReport(ctx context.Context, userToken string) (*CheckReportResponse, error) {
	var out CheckReportResponse
	if err := c.post(ctx, baseReportPath, map[string]any{"user_token": userToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetIncomeInsights retrieves the income-insights report for a user
// token. Fails with a PRODUCT_NOT_READY APIError until ready.
func (c *Client) GetIncomeInsights(ctx context.Context, userToken string) (*CheckReportResponse, error) {
	var out CheckReportResponse
	if err := c.post(ctx, incomeInsightsPath, map[string]any{"user_token": userToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCheckReportPDF retrieves the rendered PDF for the check-report
// products keyed by a user token.
func (c *Client) GetCheckReportPDF(ctx context.Context, userToken string) ([]byte, error) {
	return c.postRaw(ctx, checkReportPDFPath, map[string]any{"user_token": userToken})
}
