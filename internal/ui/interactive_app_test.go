package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/irsum/internal/analyzer"
	"github.com/yildizm/irsum/internal/common"
	"github.com/yildizm/irsum/internal/parser"
)

func rawButton(name string, values ...uint32) parser.Button {
	body := &parser.RawButton{Frequency: 38000, DutyCycle: 0.33}
	for i := 0; i+1 < len(values); i += 2 {
		body.Data = append(body.Data, parser.Pulse{Mark: values[i], Space: values[i+1]})
	}
	return parser.Button{Name: name, Body: body}
}

func testButtons() []parser.Button {
	return []parser.Button{
		{Name: "Power", Body: &parser.ParsedButton{Protocol: "NEC", Address: "04 00 00 00", Command: "08 00 00 00"}},
		rawButton("Vol_up", 100, 100, 500, 200, 500, 200, 100, 600, 100, 600),
		rawButton("Vol_down", 100, 100, 100, 600, 100, 600, 500, 200, 500, 200),
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// analyzedModel returns a model that has received its analysis
func analyzedModel(t *testing.T) *InteractiveModel {
	t.Helper()

	buttons := testButtons()
	engine := analyzer.NewEngine()
	m := NewInteractiveModel(context.Background(), engine, "remote.ir", buttons)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	msg := CreateAnalysisCommand(context.Background(), engine, buttons)()
	if _, ok := msg.(analysisCompleteMsg); !ok {
		t.Fatalf("Expected analysisCompleteMsg, got %T", msg)
	}
	m.Update(msg)
	return m
}

func TestInteractiveModelShowsButtons(t *testing.T) {
	m := analyzedModel(t)

	if m.currentView != InteractiveViewButtons {
		t.Fatalf("Expected buttons view, got %v", m.currentView)
	}
	if len(m.filtered) != 3 {
		t.Errorf("Expected 3 visible buttons, got %d", len(m.filtered))
	}

	view := m.View()
	for _, want := range []string{"remote.ir", "Power", "Vol_up", "Vol_down", "parsed, not analyzed", "4 bits"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}

func TestInteractiveModelNavigation(t *testing.T) {
	m := analyzedModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("Expected cursor to stay at 0, got %d", m.cursor)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(runes("j"))
	m.Update(runes("j"))
	if m.cursor != 2 {
		t.Errorf("Expected cursor clamped at 2, got %d", m.cursor)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.currentView != InteractiveViewDetail {
		t.Fatalf("Expected detail view, got %v", m.currentView)
	}

	button, ok := m.Selected()
	if !ok || button.Name != "Vol_down" {
		t.Fatalf("Expected Vol_down selected, got %+v", button)
	}
	if view := m.View(); !strings.Contains(view, "Dividers") || !strings.Contains(view, button.Bits) {
		t.Errorf("Detail view missing signal summary or bits:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.currentView != InteractiveViewButtons {
		t.Errorf("Expected Esc to return to buttons, got %v", m.currentView)
	}
}

func TestInteractiveModelFilter(t *testing.T) {
	m := analyzedModel(t)

	m.Update(runes("/"))
	if !m.filtering {
		t.Fatal("Expected filter input to be focused")
	}

	m.Update(runes("VOL"))
	if len(m.filtered) != 2 {
		t.Errorf("Expected 2 buttons matching vol, got %d", len(m.filtered))
	}

	m.Update(runes("_d"))
	if len(m.filtered) != 1 {
		t.Fatalf("Expected 1 button matching vol_d, got %d", len(m.filtered))
	}
	if button, _ := m.Selected(); button.Name != "Vol_down" {
		t.Errorf("Expected Vol_down selected, got %s", button.Name)
	}

	// q is typed into the filter, not treated as quit
	m.Update(runes("q"))
	if m.quitting {
		t.Error("Expected q to be captured by the filter")
	}
	if len(m.filtered) != 0 {
		t.Errorf("Expected no matches, got %d", len(m.filtered))
	}
	if !strings.Contains(m.View(), "no buttons match") {
		t.Error("Expected empty filter message")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.filtering || len(m.filtered) != 3 {
		t.Errorf("Expected Esc to clear the filter, filtering=%v visible=%d", m.filtering, len(m.filtered))
	}
}

func TestInteractiveModelAnalysisError(t *testing.T) {
	engine := analyzer.NewEngine()
	m := NewInteractiveModel(context.Background(), engine, "empty.ir", nil)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	msg := CreateAnalysisCommand(context.Background(), engine, nil)()
	errMsg, ok := msg.(analysisErrorMsg)
	if !ok {
		t.Fatalf("Expected analysisErrorMsg, got %T", msg)
	}
	if !errors.Is(errMsg.err, common.ErrEmptyFile) {
		t.Errorf("Expected empty file error, got %v", errMsg.err)
	}

	m.Update(msg)
	if m.currentView != InteractiveViewError {
		t.Errorf("Expected error view, got %v", m.currentView)
	}
	if m.Err() == nil {
		t.Error("Expected Err() to return the analysis error")
	}
	if !strings.Contains(m.View(), "Analysis failed") {
		t.Error("Expected error view to be rendered")
	}
}

func TestInteractiveModelQuit(t *testing.T) {
	m := analyzedModel(t)

	_, cmd := m.Update(runes("q"))
	if !m.quitting || cmd == nil {
		t.Fatal("Expected q to quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected quit command")
	}
	if m.View() != "" {
		t.Error("Expected empty view after quitting")
	}
}

func TestSetThemeByName(t *testing.T) {
	defer SetThemeByName("default")

	for _, name := range GetAvailableThemes() {
		if !SetThemeByName(name) {
			t.Errorf("SetThemeByName(%q) = false", name)
		}
		if GetTheme().Name != name {
			t.Errorf("Expected theme %s, got %s", name, GetTheme().Name)
		}
	}

	if SetThemeByName("neon") {
		t.Error("Expected unknown theme to be rejected")
	}
}
