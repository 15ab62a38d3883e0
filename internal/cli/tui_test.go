package cli

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/levelgen/pkg/blueprint"
	apperrors "github.com/matzehuels/levelgen/pkg/errors"
)

func testEntries(t *testing.T) []blueprintEntry {
	t.Helper()
	bp, err := blueprint.Parse([]byte(roomTOML), blueprint.FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	broken := apperrors.Wrap(apperrors.ErrCodeInvalidGenerator, errors.New(`unknown type "spiral"`), "broken.json")
	return []blueprintEntry{
		{Path: "room.toml", Blueprint: bp},
		{Path: "broken.json", Err: broken},
		{Path: "hall.toml", Blueprint: bp},
	}
}

func press(m BlueprintListModel, keys ...tea.KeyType) BlueprintListModel {
	for _, k := range keys {
		next, _ := m.Update(tea.KeyMsg{Type: k})
		m = next.(BlueprintListModel)
	}
	return m
}

func TestBlueprintListSelect(t *testing.T) {
	m := press(NewBlueprintListModel(testEntries(t)), tea.KeyDown, tea.KeyDown, tea.KeyEnter)
	if m.Selected == nil || m.Selected.Path != "hall.toml" {
		t.Fatalf("selected = %+v, want hall.toml", m.Selected)
	}
}

func TestBlueprintListSkipsInvalid(t *testing.T) {
	m := press(NewBlueprintListModel(testEntries(t)), tea.KeyDown, tea.KeyEnter)
	if m.Selected != nil {
		t.Errorf("selected invalid entry %q", m.Selected.Path)
	}
	if !strings.Contains(m.View(), "spiral") {
		t.Error("view should show the error of the invalid entry under the cursor")
	}
}

func TestBlueprintListCursorBounds(t *testing.T) {
	m := press(NewBlueprintListModel(testEntries(t)), tea.KeyUp, tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyDown)
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}
}

func TestBlueprintListScrolls(t *testing.T) {
	m := NewBlueprintListModel(testEntries(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	m = next.(BlueprintListModel)
	if m.Height != 5 {
		t.Fatalf("height = %d, want 5", m.Height)
	}
	m.Height = 2
	m = press(m, tea.KeyDown, tea.KeyDown)
	if m.Offset != 1 {
		t.Errorf("offset = %d, want 1", m.Offset)
	}
}

func TestBlueprintListView(t *testing.T) {
	view := NewBlueprintListModel(testEntries(t)).View()
	for _, want := range []string{"Select Blueprint", "room.toml", "10x6", "margins", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
