package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/aurum/pkg/aur"
)

func testPackages() []aur.Package {
	return []aur.Package{
		{Name: "yay", Version: "12.0.0-1", Votes: 2000, Popularity: 40.1, Description: "Yet another yogurt"},
		{Name: "paru", Version: "2.0.1-1", Votes: 1200, Popularity: 30.5, Description: "AUR helper in rust"},
		{Name: "pikaur", Version: "1.15-1", Votes: 400, Popularity: 5.2},
	}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func TestPackageListModelNavigation(t *testing.T) {
	m := NewPackageListModel(testPackages())

	next, _ := m.Update(keyMsg("j"))
	m = next.(PackageListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor after j = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(PackageListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor after k = %d, want 0", m.Cursor)
	}

	// Moving above the first entry stays put
	next, _ = m.Update(keyMsg("k"))
	m = next.(PackageListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor should not go negative, got %d", m.Cursor)
	}
}

func TestPackageListModelSelection(t *testing.T) {
	m := NewPackageListModel(testPackages())

	next, _ := m.Update(keyMsg("j"))
	m = next.(PackageListModel)
	next, _ = m.Update(keyMsg("enter"))
	m = next.(PackageListModel)

	if m.Selected == nil {
		t.Fatal("enter should select the package under the cursor")
	}
	if m.Selected.Name != "paru" {
		t.Errorf("selected %q, want paru", m.Selected.Name)
	}
}

func TestPackageListModelQuitWithoutSelection(t *testing.T) {
	m := NewPackageListModel(testPackages())

	next, _ := m.Update(keyMsg("esc"))
	m = next.(PackageListModel)

	if m.Selected != nil {
		t.Errorf("esc should not select, got %v", m.Selected)
	}
}

func TestPackageListModelView(t *testing.T) {
	m := NewPackageListModel(testPackages())
	view := m.View()

	for _, name := range []string{"yay", "paru", "pikaur"} {
		if !strings.Contains(view, name) {
			t.Errorf("view should list %s", name)
		}
	}
	if !strings.Contains(view, "Yet another yogurt") {
		t.Error("view should show the highlighted package's description")
	}
}

func TestPackageListModelScrollOffset(t *testing.T) {
	pkgs := make([]aur.Package, 30)
	for i := range pkgs {
		pkgs[i] = aur.Package{Name: strings.Repeat("x", i+1)}
	}
	m := NewPackageListModel(pkgs)
	m.Height = 5

	for i := 0; i < 10; i++ {
		next, _ := m.Update(keyMsg("j"))
		m = next.(PackageListModel)
	}

	if m.Cursor != 10 {
		t.Fatalf("cursor = %d, want 10", m.Cursor)
	}
	if m.Offset != m.Cursor-m.Height+1 {
		t.Errorf("offset = %d, want %d", m.Offset, m.Cursor-m.Height+1)
	}
}
