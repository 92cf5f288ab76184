package components

import (
	"strings"
	"testing"

	"github.com/yildizm/irsum/internal/analyzer"
)

func TestCreateSignalStats(t *testing.T) {
	analysis := &analyzer.Analysis{
		Modulation:    analyzer.ModulationPDM,
		TotalButtons:  3,
		RawButtons:    2,
		ParsedButtons: 1,
		BitCount:      32,
		RepeatMarker:  &analyzer.RepeatMarker{Index: 16, Space: 40000},
	}

	cards := CreateSignalStats(analysis).Cards()
	if len(cards) != 4 {
		t.Fatalf("got %d cards, want 4", len(cards))
	}
	if cards[0].Value != "PDM" {
		t.Errorf("modulation card = %q, want PDM", cards[0].Value)
	}
	if cards[1].Description != "2 raw, 1 parsed" {
		t.Errorf("buttons card description = %q", cards[1].Description)
	}
	if cards[2].Status != "success" {
		t.Errorf("bits card status = %q, want success", cards[2].Status)
	}
	if cards[3].Value != "@16" {
		t.Errorf("repeat card = %q, want @16", cards[3].Value)
	}
}

func TestCreateSignalStatsWarnings(t *testing.T) {
	analysis := &analyzer.Analysis{
		Modulation: analyzer.ModulationPWM,
		Warnings:   []string{"bit region is empty, no bits decoded"},
	}

	cards := CreateSignalStats(analysis).Cards()
	if len(cards) != 5 {
		t.Fatalf("got %d cards, want 5 with the warnings card", len(cards))
	}
	if cards[2].Status != "warning" {
		t.Errorf("bits card status = %q, want warning", cards[2].Status)
	}
	if cards[3].Value != "none" {
		t.Errorf("repeat card = %q, want none", cards[3].Value)
	}
}

func TestSummaryBoxRender(t *testing.T) {
	box := NewSummaryBox("Signal", 40)
	box.AddKeyValue("Preamble", "9000/4500 µs")
	box.AddLine("extra line")

	out := box.Render()
	for _, want := range []string{"Signal", "Preamble", "9000/4500 µs", "extra line"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}
