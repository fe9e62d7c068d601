package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nickkipshidze/digitpad/internal/theme"
)

// DefaultTickRate is how often, in Hz, the drawing is classified.
const DefaultTickRate = 30

// Notify holds notification settings. Blank text fields keep the built-in
// title and body templates.
type Notify struct {
	Save     bool
	Copy     bool
	Title    string
	SaveText string
	CopyText string
}

// Config holds the application configuration.
type Config struct {
	Theme    string
	SaveDir  string
	TickRate int
	Notify   Notify
	Themes   map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:    "", // Empty lets the environment or the default theme win
		TickRate: DefaultTickRate,
		Themes:   make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "tick_rate = %d\n", c.TickRate)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	for _, kv := range [][2]string{
		{"title", c.Notify.Title},
		{"save_text", c.Notify.SaveText},
		{"copy_text", c.Notify.CopyText},
	} {
		if kv[1] != "" {
			fmt.Fprintf(&sb, "%s = \"%s\"\n", kv[0], kv[1])
		}
	}

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := c.Themes[name]
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name = %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s = %s\n", f.Name, theme.Hex(f.Color))
		}
	}

	return sb.String()
}

// TickRateOrDefault returns the configured tick rate, falling back to
// DefaultTickRate when unset or invalid.
func (c *Config) TickRateOrDefault() int {
	if c == nil || c.TickRate <= 0 {
		return DefaultTickRate
	}
	return c.TickRate
}
