package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/digits
tick_rate = 15

[notify]
save = false
copy = true

[theme.my_custom_theme]
Background = #111111
Cell = #FFCC00
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/digits" {
		t.Errorf("Expected save_dir '/tmp/digits', got '%s'", cfg.SaveDir)
	}
	if cfg.TickRate != 15 {
		t.Errorf("Expected tick_rate 15, got %d", cfg.TickRate)
	}
	if cfg.Notify.Save {
		t.Error("Expected notify.save to be false")
	}
	if !cfg.Notify.Copy {
		t.Error("Expected notify.copy to be true")
	}
	if cfg.Notify.Title != "" || cfg.Notify.SaveText != "" {
		t.Errorf("Expected blank notification text, got %+v", cfg.Notify)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background.R != 0x11 || th.Background.G != 0x11 || th.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
	if th.Cell.R != 0xFF || th.Cell.G != 0xCC || th.Cell.B != 0 {
		t.Errorf("Unexpected Cell color: %+v", th.Cell)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"tick rate":   "tick_rate = fast\n",
		"zero tick":   "tick_rate = 0\n",
		"notify bool": "[notify]\nsave = maybe\n",
		"theme color": "[theme.x]\nBackground = #12\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(input)); err == nil {
				t.Fatalf("expected error for %q", input)
			}
		})
	}
}

func TestCircular(t *testing.T) {
	input := `theme = light
save_dir = /home/user/digits
tick_rate = 20

[notify]
save = true
copy = false
title = Digits
save_text = "Wrote {{.Path}} = {{.Label}}"

[theme.custom]
Name = custom
Background = #000000
GridLine = #FFFFFF7D
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.TickRate != cfg2.TickRate {
		t.Errorf("TickRate mismatch: %d vs %d", cfg.TickRate, cfg2.TickRate)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg2.Notify.SaveText != "Wrote {{.Path}} = {{.Label}}" {
		t.Errorf("save_text = %q", cfg2.Notify.SaveText)
	}
	if cfg2.Notify.Title != "Digits" {
		t.Errorf("title = %q", cfg2.Notify.Title)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderOverrideAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.rc")

	cfg := New()
	cfg.Theme = "chalkboard"
	cfg.TickRate = 10
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	l := NewLoader("v1.0.0", path)
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("GetConfigPath = %q, want %q", got, path)
	}
	loaded, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Theme != "chalkboard" || loaded.TickRate != 10 {
		t.Errorf("unexpected loaded config %+v", loaded)
	}
}

func TestLoaderDevMode(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if err := os.WriteFile(".digitpadrc", []byte("theme = light\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader("dev", "").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("dev mode should read .digitpadrc, got theme %q", cfg.Theme)
	}

	cfg, err = NewLoader("v1.0.0", "").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "" || cfg.TickRate != DefaultTickRate {
		t.Errorf("release build without config should use defaults, got %+v", cfg)
	}
}
