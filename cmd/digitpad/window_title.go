package main

import (
	"fmt"
	"strings"

	"github.com/nickkipshidze/digitpad/internal/session"
)

type titleOptions struct {
	File   string
	Theme  string
	Extras []string
}

func windowTitle(opts titleOptions) string {
	parts := []string{session.ProgramTitle}

	if file := strings.TrimSpace(opts.File); file != "" {
		parts = append(parts, file)
	}

	extras := make([]string, 0, len(opts.Extras)+3)

	if t := strings.TrimSpace(opts.Theme); t != "" && !strings.EqualFold(t, "default") {
		extras = append(extras, fmt.Sprintf("theme %s", t))
	}

	if strings.TrimSpace(version) != "" {
		extras = append(extras, fmt.Sprintf("v%s", strings.TrimSpace(version)))
	}

	if strings.TrimSpace(commit) != "" {
		extras = append(extras, fmt.Sprintf("commit %s", strings.TrimSpace(commit)))
	}

	extras = append(extras, opts.Extras...)

	return strings.Join(append(parts, extras...), " - ")
}
