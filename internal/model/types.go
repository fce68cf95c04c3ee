// Package model defines shared data structures.
package model

import "time"

// Config defines analysis settings after merging flags and the config file.
type Config struct {
	DistributionPath string
	IncludeIdentity  bool
	TextFile         string
	History          bool
}

// Source labels for recorded analyses.
const (
	SourceKeyboard = "keyboard"
	SourceStdin    = "stdin"
	SourceText     = "text"
	SourceFile     = "file:"
)

// AnalysisRecord is a stored decryption.
type AnalysisRecord struct {
	ID         int64
	CreatedAt  time.Time
	Source     string
	Length     int
	Letters    int
	Shift      int
	ChiSquared float64
	Perfect    bool
	Preview    string
}

// HistoryFilter selects stored analyses.
type HistoryFilter struct {
	Since  *time.Time
	Source string
	Last   int
}
