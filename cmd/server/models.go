package main

import "github.com/kisansetu/schemematch/catalog"

// API response models. The match request/response shapes live in the
// match package; these cover the catalog and operational endpoints.

// SchemeSummary is the catalog metadata exposed for one scheme.
type SchemeSummary struct {
	SchemeID          string            `json:"scheme_id"`
	Name              string            `json:"name"`
	Names             map[string]string `json:"name_i18n,omitempty"`
	Category          string            `json:"category,omitempty"`
	Department        string            `json:"department,omitempty"`
	State             *string           `json:"state,omitempty"`
	PriorityWeight    float64           `json:"priority_weight"`
	RuleCount         int               `json:"rule_count"`
	RequiredDocuments []string          `json:"required_documents,omitempty"`
}

func summarize(sc *catalog.Scheme) SchemeSummary {
	return SchemeSummary{
		SchemeID:          sc.ID,
		Name:              sc.Name,
		Names:             sc.Names,
		Category:          sc.Category,
		Department:        sc.Department,
		State:             sc.State,
		PriorityWeight:    sc.PriorityWeight,
		RuleCount:         len(sc.Rules),
		RequiredDocuments: sc.RequiredDocuments,
	}
}

// SchemesListResponse lists the active catalog.
type SchemesListResponse struct {
	CatalogVersion string          `json:"catalog_version"`
	Schemes        []SchemeSummary `json:"schemes"`
}

// ReloadResponse reports the outcome of a catalog reload.
type ReloadResponse struct {
	CatalogVersion string `json:"catalog_version"`
	SchemesLoaded  int    `json:"schemes_loaded"`
	SchemesSkipped int    `json:"schemes_skipped"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status         string `json:"status"`
	CatalogVersion string `json:"catalog_version,omitempty"`
	SchemesLoaded  int    `json:"schemes_loaded,omitempty"`
	Error          string `json:"error,omitempty"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
