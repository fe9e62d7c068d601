package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nickkipshidze/digitpad/internal/classify"
	"github.com/nickkipshidze/digitpad/internal/session"
)

type drawCmd struct {
	*root
	fs     *flag.FlagSet
	output string
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func (d *drawCmd) Program() string {
	return d.root.program + " draw"
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	defaultOutput := ""
	if r != nil && r.config != nil {
		defaultOutput = r.config.SaveDir
	}
	fs.StringVar(&d.output, "output", defaultOutput, "directory, or .png file, that Ctrl+S saves the drawing to")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: d}
		}
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: d}
	}
	return d, nil
}

func (d *drawCmd) Run() error {
	c, err := newClassifier()
	if err != nil {
		return fmt.Errorf("failed to build classifier: %w", err)
	}
	out := expandHome(d.output)
	themeName := ""
	if d.activeTheme != nil {
		themeName = d.activeTheme.Name
	}
	var st *session.Session
	st = session.New(
		session.WithOnClose(func() { d.printFinal(st.Predictions()) }),
		session.WithClassifier(c),
		session.WithTheme(d.activeTheme),
		session.WithOutput(out),
		session.WithTickRate(d.tickRate),
		session.WithNotifier(d.notifier),
		session.WithTitle(windowTitle(titleOptions{File: out, Theme: themeName})),
	)
	st.Run()
	return nil
}

// printFinal reports the last prediction shown when the window closed.
func (d *drawCmd) printFinal(preds []classify.Prediction) {
	if len(preds) == 0 {
		return
	}
	fmt.Fprintf(d.stdout, "Final prediction: %s (%.2f%%)\n", preds[0].Label, preds[0].Probability*100)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
