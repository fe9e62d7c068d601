package session

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/nickkipshidze/digitpad/internal/render"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// tickEvent asks the event loop to classify the grid.
type tickEvent struct{}

type paintState struct {
	width, height int
	scene         render.Scene
}

// Run executes the UI loop using shiny's driver.
func (s *Session) Run() { driver.Main(s.Main) }

// Main opens the window and runs the event loop until the window closes or
// the user quits.
func (s *Session) Main(scr screen.Screen) {
	width, height := WindowWidth, WindowHeight
	w, err := scr.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: s.Title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer s.notifyClose()

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(s.TickInterval())
		defer t.Stop()
		for {
			select {
			case <-t.C:
				w.Send(tickEvent{})
			case <-done:
				return
			}
		}
	}()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, scr, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	stopPainting := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	var lastTickErr string
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPainting()
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			w.Send(paint.Event{})
		case tickEvent:
			lastTickErr = logTickErr(lastTickErr, s.Tick())
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := paintState{width: width, height: height, scene: s.Scene()}
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			if s.Mouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			switch s.Key(e) {
			case ActionQuit:
				stopPainting()
				return
			case ActionNone:
			default:
				w.Send(paint.Event{})
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

// logTickErr logs err unless it repeats the previous tick's error and
// returns the text to compare the next one against.
func logTickErr(last string, err error) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != last {
		log.Printf("tick: %v", err)
		return msg
	}
	return last
}

func drawFrame(ctx context.Context, scr screen.Screen, w screen.Window, st paintState) {
	if st.width <= 0 || st.height <= 0 {
		return
	}
	b, err := scr.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	render.Frame(b.RGBA(), st.scene)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
