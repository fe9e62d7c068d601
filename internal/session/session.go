// Package session owns one drawing session: the grid being drawn on, the
// classifier that reads it and the prediction panel it feeds. Handlers are
// plain methods so they can be driven without a window; window.go wires them
// to a shiny event loop.
package session

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/nickkipshidze/digitpad/internal/classify"
	"github.com/nickkipshidze/digitpad/internal/clipboard"
	"github.com/nickkipshidze/digitpad/internal/grid"
	"github.com/nickkipshidze/digitpad/internal/notify"
	"github.com/nickkipshidze/digitpad/internal/overlay"
	"github.com/nickkipshidze/digitpad/internal/render"
	"github.com/nickkipshidze/digitpad/internal/theme"
)

const (
	WindowWidth  = 1024
	WindowHeight = 600

	// DefaultTickRate is how many times per second the grid is classified.
	DefaultTickRate = 30

	messageDuration = 2 * time.Second
)

// ProgramTitle is the base window title.
const ProgramTitle = "digitpad"

var errNoPrediction = errors.New("no prediction yet")

// Session holds the state of the drawing window. It is not safe for
// concurrent use; the event loop is its only caller.
type Session struct {
	// Output is either a .png file path or a directory saves go into.
	Output string
	Title  string

	grid       *grid.Grid
	geom       grid.Geometry
	classifier classify.Classifier
	theme      *theme.Theme
	tickRate   int
	notifier   *notify.Notifier
	keys       keymap

	preds  []classify.Prediction
	layout overlay.Layout
	// dirty is set when the grid changed since the last classification.
	dirty    bool
	painting bool

	message      string
	messageUntil time.Time

	now        func() time.Time
	writeImage func(image.Image) error
	writeText  func(string) error

	onClose   func()
	closeOnce sync.Once
}

// Option modifies a Session during creation.
type Option func(*Session)

// WithClassifier sets the classifier run on every tick.
func WithClassifier(c classify.Classifier) Option { return func(s *Session) { s.classifier = c } }

// WithTheme sets the colours used to draw the window.
func WithTheme(t *theme.Theme) Option { return func(s *Session) { s.theme = t } }

// WithOutput sets where Ctrl+S writes: a .png file, or a directory in which
// a timestamped file is created.
func WithOutput(out string) Option { return func(s *Session) { s.Output = out } }

// WithTickRate sets the classification rate in Hz.
func WithTickRate(hz int) Option { return func(s *Session) { s.tickRate = hz } }

// WithNotifier sets the desktop notifier used after saving and copying.
func WithNotifier(n *notify.Notifier) Option { return func(s *Session) { s.notifier = n } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(s *Session) { s.Title = title } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(s *Session) { s.onClose = fn } }

// New creates a Session with a cleared grid.
func New(opts ...Option) *Session {
	s := &Session{
		Title:      ProgramTitle,
		grid:       grid.New(),
		geom:       grid.DefaultGeometry(),
		theme:      theme.Default(),
		tickRate:   DefaultTickRate,
		keys:       defaultKeymap(),
		layout:     overlay.Layout{Best: -1},
		dirty:      true,
		now:        time.Now,
		writeImage: clipboard.WriteImage,
		writeText:  clipboard.WriteText,
	}
	for _, o := range opts {
		o(s)
	}
	if s.tickRate <= 0 {
		s.tickRate = DefaultTickRate
	}
	if s.theme == nil {
		s.theme = theme.Default()
	}
	return s
}

// Grid exposes the grid for inspection.
func (s *Session) Grid() *grid.Grid { return s.grid }

// Layout returns the prediction panel from the last successful tick.
func (s *Session) Layout() overlay.Layout { return s.layout }

// Predictions returns the ranked predictions from the last successful tick.
func (s *Session) Predictions() []classify.Prediction { return s.preds }

// TickInterval is the period between classifications.
func (s *Session) TickInterval() time.Duration {
	return time.Second / time.Duration(s.tickRate)
}

// Drag applies a brush stroke at window position (x, y). It reports whether
// the position hit the grid.
func (s *Session) Drag(x, y float64) bool {
	col, row, ok := s.geom.CellAt(x, y)
	if !ok {
		return false
	}
	s.grid.ApplyStroke(col, row)
	s.dirty = true
	return true
}

// Mouse handles a pointer event and reports whether a repaint is needed.
// Pressing the left button starts painting, moving while it is held keeps
// painting and releasing stops.
func (s *Session) Mouse(e mouse.Event) bool {
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		repaint := s.dismissMessage()
		s.painting = true
		return s.Drag(float64(e.X), float64(e.Y)) || repaint
	case mouse.DirRelease:
		if e.Button == mouse.ButtonLeft {
			s.painting = false
		}
		return false
	case mouse.DirNone:
		if !s.painting {
			return false
		}
		return s.Drag(float64(e.X), float64(e.Y))
	}
	return false
}

// Key performs the action bound to a key press and returns it. Errors are
// logged and shown as a message; the action is still returned.
func (s *Session) Key(e key.Event) Action {
	if e.Direction != key.DirPress {
		return ActionNone
	}
	a := s.keys.lookup(e)
	var err error
	switch a {
	case ActionClear:
		s.Clear()
	case ActionSave:
		_, err = s.Save()
	case ActionCopyImage:
		err = s.CopyImage()
	case ActionCopyLabel:
		err = s.CopyLabel()
	}
	if err != nil {
		log.Printf("%s: %v", a, err)
		s.flash(fmt.Sprintf("%s failed: %v", a, err))
	}
	return a
}

// Clear resets every cell to zero.
func (s *Session) Clear() {
	s.grid.Clear()
	s.dirty = true
}

// Tick classifies the grid and rebuilds the prediction panel. When the
// classifier fails the previous panel stays on screen. Without a classifier
// there is nothing to do.
func (s *Session) Tick() error {
	if !s.dirty || s.classifier == nil {
		return nil
	}
	preds, err := s.classifier.Classify(s.grid)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	s.preds = preds
	s.layout = overlay.Build(classify.Entries(preds), overlay.DefaultOrigin)
	s.dirty = false
	return nil
}

// Save writes the grid as a 28x28 grayscale PNG and returns its path.
func (s *Session) Save() (string, error) {
	path := s.savePath()
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(out, s.grid.Image()); err != nil {
		if cerr := out.Close(); cerr != nil {
			log.Printf("save: closing file: %v", cerr)
		}
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}
	s.flash(fmt.Sprintf("saved %s", path))
	s.notifier.Save(s.detail(notify.Detail{Path: path}))
	return path, nil
}

// detail fills in the top prediction, if any.
func (s *Session) detail(d notify.Detail) notify.Detail {
	if len(s.preds) > 0 {
		d.Label = s.preds[0].Label
		d.Certainty = s.preds[0].Probability
	}
	return d
}

func (s *Session) savePath() string {
	if strings.EqualFold(filepath.Ext(s.Output), ".png") {
		return s.Output
	}
	name := fmt.Sprintf("digit-%s.png", s.now().Format("20060102-150405.000"))
	return filepath.Join(s.Output, name)
}

// CopyImage puts the grid image on the clipboard.
func (s *Session) CopyImage() error {
	img := s.grid.Image()
	if err := s.writeImage(img); err != nil {
		return err
	}
	s.flash("image copied to clipboard")
	s.notifier.Copy(s.detail(notify.Detail{Subject: "drawing", Image: img}))
	return nil
}

// CopyLabel puts the top prediction's label on the clipboard.
func (s *Session) CopyLabel() error {
	if len(s.preds) == 0 {
		return errNoPrediction
	}
	label := s.preds[0].Label
	if err := s.writeText(label); err != nil {
		return err
	}
	s.flash(fmt.Sprintf("copied %q", label))
	s.notifier.Copy(s.detail(notify.Detail{Subject: label}))
	return nil
}

func (s *Session) flash(msg string) {
	s.message = msg
	s.messageUntil = s.now().Add(messageDuration)
	log.Print(msg)
}

func (s *Session) dismissMessage() bool {
	if s.message == "" || !s.now().Before(s.messageUntil) {
		return false
	}
	s.messageUntil = time.Time{}
	return true
}

// Scene captures everything the renderer needs for the next frame.
func (s *Session) Scene() render.Scene {
	sc := render.Scene{
		Theme:    s.theme,
		Geometry: s.geom,
		Cells:    s.grid.Snapshot(),
		Overlay:  s.layout,
		Notes:    notes(s.geom),
	}
	if s.message != "" && s.now().Before(s.messageUntil) {
		sc.Message = s.message
	}
	return sc
}

// notes are the footer lines drawn under the grid.
func notes(g grid.Geometry) []overlay.Text {
	y := g.Bounds().Max.Y + 20
	return []overlay.Text{
		{Pos: image.Pt(g.Origin.X, y), Content: "Press C to clear the grid"},
		{Pos: image.Pt(g.Origin.X, y+30), Content: "Ctrl+S save  Ctrl+C copy image  Y copy label  Q quit"},
	}
}

func (s *Session) notifyClose() {
	s.closeOnce.Do(func() {
		if s.onClose != nil {
			s.onClose()
		}
	})
}
