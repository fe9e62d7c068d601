package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/nickkipshidze/digitpad/internal/classify"
	"github.com/nickkipshidze/digitpad/internal/grid"
	"github.com/nickkipshidze/digitpad/internal/overlay"
)

type classifyCmd struct {
	*root
	fs     *flag.FlagSet
	file   string
	top    int
	invert bool
}

func (c *classifyCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *classifyCmd) Program() string {
	return c.root.program + " classify"
}

func parseClassifyCmd(args []string, r *root) (*classifyCmd, error) {
	fs := flag.NewFlagSet("classify", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c := &classifyCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "image file to classify (png, jpeg, gif, bmp, tiff or webp)")
	fs.IntVar(&c.top, "top", len(classify.Labels), "number of predictions to print")
	fs.BoolVar(&c.invert, "invert", false, "treat dark strokes on a light background as ink")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: c}
		}
		return nil, err
	}
	if c.file == "" && fs.NArg() == 1 {
		c.file = fs.Arg(0)
	}
	if c.file == "" {
		return nil, &UsageError{of: c}
	}
	if c.top <= 0 {
		return nil, fmt.Errorf("-top must be positive, got %d", c.top)
	}
	return c, nil
}

func (c *classifyCmd) Run() error {
	f, err := os.Open(c.file)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	img, _, err := image.Decode(f)
	closeErr := f.Close()
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", c.file, err)
	}
	if closeErr != nil {
		return closeErr
	}

	cl, err := newClassifier()
	if err != nil {
		return fmt.Errorf("failed to build classifier: %w", err)
	}
	preds, err := cl.Classify(grid.FromImage(img, c.invert))
	if err != nil {
		return fmt.Errorf("failed to classify %s: %w", c.file, err)
	}
	preds = classify.Ranked(preds, c.top)

	layout := overlay.Build(classify.Entries(preds), overlay.DefaultOrigin)
	for _, line := range layout.Lines() {
		if _, err := fmt.Fprintln(c.stdout, line); err != nil {
			return err
		}
	}
	return nil
}
