package storyglyph

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseThemePartial(t *testing.T) {
	st, err := ParseTheme([]byte(`
[panel]
x = 0.5
padding = 32.0

[colors]
choice = "#ff0000"
`))
	if err != nil {
		t.Fatalf("ParseTheme: %v", err)
	}

	if st.PanelX != 0.5 {
		t.Errorf("PanelX = %g, want 0.5", st.PanelX)
	}
	if st.Padding != 32 {
		t.Errorf("Padding = %g, want 32", st.Padding)
	}
	if st.Choice != (Color{R: 1, A: 1}) {
		t.Errorf("Choice = %+v, want red", st.Choice)
	}

	// Unset fields keep their defaults.
	def := DefaultStyle()
	if st.PanelWidth != def.PanelWidth {
		t.Errorf("PanelWidth = %g, want default %g", st.PanelWidth, def.PanelWidth)
	}
	if st.Text != def.Text {
		t.Errorf("Text = %+v, want default %+v", st.Text, def.Text)
	}
}

func TestParseThemeEmpty(t *testing.T) {
	st, err := ParseTheme(nil)
	if err != nil {
		t.Fatalf("ParseTheme(nil): %v", err)
	}
	if st != DefaultStyle() {
		t.Errorf("empty theme = %+v, want defaults", st)
	}
}

func TestParseThemeInvalid(t *testing.T) {
	if _, err := ParseTheme([]byte("[panel\nbroken")); err == nil {
		t.Error("want error for invalid TOML")
	}
}

func TestLoadTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.toml")
	if err := os.WriteFile(path, []byte("[panel]\nwidth = 0.4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	st, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if st.PanelWidth != 0.4 {
		t.Errorf("PanelWidth = %g, want 0.4", st.PanelWidth)
	}

	if _, err := LoadTheme(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("want error for missing file")
	}
}
