package main

import (
	"fmt"
	"strings"
)

type versionCmd struct{ r *root }

func (v *versionCmd) Run() error {
	line := fmt.Sprintf("%s version %s", v.r.program, version)
	if c := strings.TrimSpace(commit); c != "" {
		line += fmt.Sprintf(" (commit %s)", c)
	}
	if d := strings.TrimSpace(date); d != "" {
		line += " built " + d
	}
	_, err := fmt.Fprintln(v.r.stdout, line)
	return err
}
