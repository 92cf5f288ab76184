package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/irsum/internal/analyzer"
	"github.com/yildizm/irsum/internal/parser"
)

// Common message types shared across UI models
type analysisCompleteMsg struct {
	analysis *analyzer.Analysis
}

type analysisErrorMsg struct {
	err error
}

// CreateAnalysisCommand creates a tea command that analyzes the buttons
func CreateAnalysisCommand(ctx context.Context, engine analyzer.Analyzer, buttons []parser.Button) tea.Cmd {
	return func() tea.Msg {
		analysis, err := engine.Analyze(ctx, buttons)
		if err != nil {
			return analysisErrorMsg{err: err}
		}
		return analysisCompleteMsg{analysis: analysis}
	}
}
