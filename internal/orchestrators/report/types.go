package report

import (
	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
)

// AnalyzeReportInput defines the input for analyzing one uploaded log
type AnalyzeReportInput struct {
	// LogCode is the report code from the esologs report URL
	LogCode string

	// TopAbilities is the highlight depth per player; zero means the
	// default of five
	TopAbilities int

	// SkipCache forces a fresh fetch even when a cached summary exists
	SkipCache bool
}

// AnalyzeReportOutput defines the output for analyzing one uploaded log
type AnalyzeReportOutput struct {
	Summary *eso.ReportSummary

	// FromCache reports whether the summary was served from the cache
	FromCache bool
}
