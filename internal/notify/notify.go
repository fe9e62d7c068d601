// Package notify turns saves and clipboard copies into desktop notifications.
// Bodies are text/template strings rendered against a Detail, so a save
// notification can name the digit that was recognised when it was written.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/nickkipshidze/digitpad/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires after the drawing is written to disk.
	EventSave Event = "save"
	// EventCopy fires after the drawing or a label is put on the clipboard.
	EventCopy Event = "copy"
)

const (
	DefaultTitle        = "digitpad"
	DefaultSaveTemplate = `Saved {{.Path}}{{if .Label}} ({{.Label}}, {{percent .Certainty}}){{end}}`
	DefaultCopyTemplate = `Copied {{.Subject}} to clipboard`
)

// Detail is the data a body template is rendered with.
type Detail struct {
	// Path is the saved file. Save resolves it to an absolute path.
	Path string
	// Subject names what was copied, "drawing" when empty.
	Subject string
	// Label and Certainty describe the top prediction, if there is one.
	Label     string
	Certainty float64
	// Image is shown as the notification icon when set.
	Image image.Image
}

// Preferences holds the notification title and one body template per event.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the built-in title and templates.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: DefaultTitle,
		Templates: map[Event]string{
			EventSave: DefaultSaveTemplate,
			EventCopy: DefaultCopyTemplate,
		},
	}
}

// Override returns a copy of p with every non-blank argument replacing the
// matching setting.
func (p Preferences) Override(title, saveText, copyText string) Preferences {
	out := Preferences{Title: p.Title, Templates: make(map[Event]string, len(p.Templates))}
	for k, v := range p.Templates {
		out.Templates[k] = v
	}
	if v := strings.TrimSpace(title); v != "" {
		out.Title = v
	}
	if v := strings.TrimSpace(saveText); v != "" {
		out.Templates[EventSave] = v
	}
	if v := strings.TrimSpace(copyText); v != "" {
		out.Templates[EventCopy] = v
	}
	return out
}

// LoadPreferences applies the DIGITPAD_NOTIFY_* environment variables on top
// of base.
func LoadPreferences(base Preferences) Preferences {
	return base.Override(
		os.Getenv("DIGITPAD_NOTIFY_TITLE"),
		os.Getenv("DIGITPAD_NOTIFY_SAVE_TEXT"),
		os.Getenv("DIGITPAD_NOTIFY_COPY_TEXT"),
	)
}

var funcs = template.FuncMap{
	"percent": func(p float64) string { return fmt.Sprintf("%.2f%%", p*100) },
}

// Notifier sends desktop notifications for the events that are enabled.
// A nil Notifier is valid and never sends anything.
type Notifier struct {
	title     string
	templates map[Event]*template.Template
	enabled   map[Event]bool
	send      func(title, body string, opts platform.Options) error
}

// New compiles the templates in prefs. A template that does not parse is
// logged and replaced by the default for its event.
func New(prefs Preferences) *Notifier {
	n := &Notifier{
		title:     prefs.Title,
		templates: make(map[Event]*template.Template),
		enabled:   make(map[Event]bool),
		send:      platform.Notify,
	}
	if strings.TrimSpace(n.title) == "" {
		n.title = DefaultTitle
	}
	defaults := DefaultPreferences().Templates
	for _, ev := range []Event{EventSave, EventCopy} {
		text, ok := prefs.Templates[ev]
		if !ok {
			text = defaults[ev]
		}
		t, err := template.New(string(ev)).Funcs(funcs).Parse(text)
		if err != nil {
			log.Printf("notification template %s: %v", ev, err)
			t = template.Must(template.New(string(ev)).Funcs(funcs).Parse(defaults[ev]))
		}
		n.templates[ev] = t
	}
	return n
}

// Enable toggles notifications for event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Enabled reports whether notifications are on for event.
func (n *Notifier) Enabled(event Event) bool {
	return n != nil && n.enabled[event]
}

// Save announces a written file. When the file exists it doubles as the icon.
func (n *Notifier) Save(d Detail) {
	if !n.Enabled(EventSave) {
		return
	}
	opts := platform.Options{}
	if abs, err := filepath.Abs(d.Path); err == nil {
		d.Path = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, d, opts)
}

// Copy announces a clipboard write. A copied image is shown through a
// temporary PNG that is removed once the notification has been sent.
func (n *Notifier) Copy(d Detail) {
	if !n.Enabled(EventCopy) {
		return
	}
	if strings.TrimSpace(d.Subject) == "" {
		d.Subject = "drawing"
	}
	opts := platform.Options{}
	if d.Image != nil {
		path, cleanup, err := writePreview(d.Image)
		if err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCopy, d, opts)
}

// Body renders the body for event without sending anything.
func (n *Notifier) Body(event Event, d Detail) (string, error) {
	t, ok := n.templates[event]
	if !ok {
		return "", fmt.Errorf("no template for %s", event)
	}
	var sb strings.Builder
	if err := t.Execute(&sb, d); err != nil {
		return "", err
	}
	return strings.TrimSpace(sb.String()), nil
}

func (n *Notifier) dispatch(event Event, d Detail, opts platform.Options) {
	body, err := n.Body(event, d)
	if err != nil {
		log.Printf("notification %s: %v", event, err)
		return
	}
	if body == "" {
		return
	}
	if err := n.send(n.title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func writePreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "digitpad-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	return path, func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}, nil
}
