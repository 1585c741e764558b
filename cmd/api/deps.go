package main

import (
	"ledgerlink/internal/domain/reports"
	"ledgerlink/internal/domain/summary"
	"ledgerlink/internal/domain/transactions"
	"ledgerlink/internal/infrastructure/aggclient"
	httphandlers "ledgerlink/internal/interfaces/http"
	"ledgerlink/internal/poll"
	"ledgerlink/internal/session"
	"ledgerlink/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	Sessions *session.Store

	// Handlers
	LinkHandler         *httphandlers.LinkHandler
	ItemHandler         *httphandlers.ItemHandler
	TransactionsHandler *httphandlers.TransactionsHandler
	ReportsHandler      *httphandlers.ReportsHandler
	SummaryHandler      *httphandlers.SummaryHandler
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) *Dependencies {
	client := aggclient.NewClient(aggclient.Config{
		ClientID:     cfg.Aggregator.ClientID,
		Secret:       cfg.Aggregator.Secret,
		Environment:  cfg.Aggregator.Environment,
		BaseURL:      cfg.Aggregator.BaseURL,
		Products:     cfg.Aggregator.Products,
		CountryCodes: cfg.Aggregator.CountryCodes,
		RedirectURI:  cfg.Aggregator.RedirectURI,
	})

	sessions := session.NewStore()

	pollCfg := poll.Config{
		MaxAttempts: cfg.Poll.MaxAttempts,
		Delay:       cfg.Poll.Delay,
	}

	// The full sync backs the transactions endpoint; the capped variant
	// backs the summary snapshot.
	fullSync := transactions.NewService(client, transactions.Config{
		NotReadyDelay: cfg.Sync.NotReadyDelay,
		MaxPages:      cfg.Sync.MaxPages,
	})
	cappedSync := transactions.NewService(client, transactions.Config{
		NotReadyDelay: cfg.Sync.CappedNotReadyDelay,
		MaxPages:      cfg.Sync.MaxPages,
		RecordCap:     cfg.Sync.RecordCap,
	})

	reportService := reports.NewService(client, pollCfg)
	summaryService := summary.NewService(client, cappedSync, cfg.Sync.RecentCount)

	return &Dependencies{
		Sessions:            sessions,
		LinkHandler:         httphandlers.NewLinkHandler(client, sessions),
		ItemHandler:         httphandlers.NewItemHandler(client, sessions),
		TransactionsHandler: httphandlers.NewTransactionsHandler(fullSync, sessions, cfg.Sync.RecentCount),
		ReportsHandler:      httphandlers.NewReportsHandler(reportService, sessions),
		SummaryHandler:      httphandlers.NewSummaryHandler(summaryService, sessions),
	}
}
