package aggclient

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Environment names accepted by the aggregation API.
const (
	EnvSandbox     = "sandbox"
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// LinkTokenResponse is returned by the link-token creation endpoint.
type LinkTokenResponse struct {
	LinkToken  string `json:"link_token"`
	Expiration string `json:"expiration"`
	RequestID  string `json:"request_id"`
}

// ExchangeResponse is returned when a public token is exchanged for a
// long-lived access token.
type ExchangeResponse struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
	RequestID   string `json:"request_id"`
}

// UserResponse is returned by the user creation endpoint. The user token
// keys report products that are not tied to a single item.
type UserResponse struct {
	UserToken string `json:"user_token"`
	UserID    string `json:"user_id"`
	RequestID string `json:"request_id"`
}

// Account is one account under a linked item.
type Account struct {
	AccountID    string   `json:"account_id"`
	Name         string   `json:"name"`
	OfficialName *string  `json:"official_name"`
	Mask         *string  `json:"mask"`
	Type         string   `json:"type"`
	Subtype      *string  `json:"subtype"`
	Balances     Balances `json:"balances"`
}

// Balances holds the balance set for one account. The API returns nulls
// for balances it cannot compute, so the fields are pointers.
type Balances struct {
	Available              *decimal.Decimal `json:"available"`
	Current                *decimal.Decimal `json:"current"`
	Limit                  *decimal.Decimal `json:"limit"`
	ISOCurrencyCode        *string          `json:"iso_currency_code"`
	UnofficialCurrencyCode *string          `json:"unofficial_currency_code"`
}

// AccountsResponse is shared by the accounts and balances endpoints.
type AccountsResponse struct {
	Accounts  []Account       `json:"accounts"`
	Item      json.RawMessage `json:"item"`
	RequestID string          `json:"request_id"`
}

// IdentityResponse carries account-holder identity data. The owner
// payload is passed through untouched.
type IdentityResponse struct {
	Accounts  json.RawMessage `json:"accounts"`
	Item      json.RawMessage `json:"item"`
	RequestID string          `json:"request_id"`
}

// LiabilitiesResponse carries credit/student/mortgage liability data.
type LiabilitiesResponse struct {
	Accounts    []Account       `json:"accounts"`
	Liabilities json.RawMessage `json:"liabilities"`
	Item        json.RawMessage `json:"item"`
	RequestID   string          `json:"request_id"`
}

// HoldingsResponse carries investment holdings and their securities.
type HoldingsResponse struct {
	Accounts   []Account       `json:"accounts"`
	Holdings   json.RawMessage `json:"holdings"`
	Securities json.RawMessage `json:"securities"`
	RequestID  string          `json:"request_id"`
}

// Transaction is one transaction record from the change feed. Amount
// follows the source convention: negative values are inflows.
type Transaction struct {
	TransactionID string          `json:"transaction_id"`
	AccountID     string          `json:"account_id"`
	Name          string          `json:"name"`
	MerchantName  *string         `json:"merchant_name"`
	Amount        decimal.Decimal `json:"amount"`
	ISOCurrency   *string         `json:"iso_currency_code"`
	Date          string          `json:"date"`
	Pending       bool            `json:"pending"`
	Category      []string        `json:"category"`
}

// RemovedTransaction identifies a transaction deleted upstream.
type RemovedTransaction struct {
	TransactionID string `json:"transaction_id"`
}

// TransactionsSyncResponse is one page of the incremental change feed.
// NextCursor is empty while the feed is still being prepared.
type TransactionsSyncResponse struct {
	Added      []Transaction        `json:"added"`
	Modified   []Transaction        `json:"modified"`
	Removed    []RemovedTransaction `json:"removed"`
	NextCursor string               `json:"next_cursor"`
	HasMore    bool                 `json:"has_more"`
	RequestID  string               `json:"request_id"`
}

// AssetReportCreateResponse is returned when asset report generation is
// requested. The report itself is produced asynchronously.
type AssetReportCreateResponse struct {
	AssetReportToken string `json:"asset_report_token"`
	AssetReportID    string `json:"asset_report_id"`
	RequestID        string `json:"request_id"`
}

// AssetReportGetResponse is the structured asset report, available once
// generation has finished.
type AssetReportGetResponse struct {
	Report    json.RawMessage `json:"report"`
	Warnings  json.RawMessage `json:"warnings"`
	RequestID string          `json:"request_id"`
}

// CheckReportResponse is shared by the base credit report and income
// insights endpoints; both are keyed by user token.
type CheckReportResponse struct {
	Report    json.RawMessage `json:"report"`
	RequestID string          `json:"request_id"`
}
