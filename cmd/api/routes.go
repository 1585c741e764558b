package main

import (
	"net/http"

	httphandlers "ledgerlink/internal/interfaces/http"
	"ledgerlink/internal/shared/config"
	"ledgerlink/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Link flow
	mux.HandleFunc("/api/link/token", deps.LinkHandler.HandleCreateLinkToken)
	mux.HandleFunc("/api/item/public_token/exchange", deps.LinkHandler.HandleExchangeToken)
	mux.HandleFunc("/api/user", deps.LinkHandler.HandleCreateUser)

	// Item pass-through endpoints
	mux.HandleFunc("/api/accounts", deps.ItemHandler.HandleAccounts)
	mux.HandleFunc("/api/balances", deps.ItemHandler.HandleBalances)
	mux.HandleFunc("/api/identity", deps.ItemHandler.HandleIdentity)
	mux.HandleFunc("/api/liabilities", deps.ItemHandler.HandleLiabilities)
	mux.HandleFunc("/api/investments/holdings", deps.ItemHandler.HandleInvestmentHoldings)

	// Sync and report orchestrations
	mux.HandleFunc("/api/transactions", deps.TransactionsHandler.HandleTransactions)
	mux.HandleFunc("/api/summary", deps.SummaryHandler.HandleSummary)
	mux.HandleFunc("/api/reports/assets", deps.ReportsHandler.HandleAssetReport)
	mux.HandleFunc("/api/reports/credit/base", deps.ReportsHandler.HandleBaseReport)
	mux.HandleFunc("/api/reports/credit/income", deps.ReportsHandler.HandleIncomeInsights)

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(mux))
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(middleware.Tracing(handler))
	}

	return handler
}
