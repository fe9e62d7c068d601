//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"image"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	ownerOnce sync.Once
	ownerErr  error
	owner     *selectionOwner
)

func getOwner() (*selectionOwner, error) {
	ownerOnce.Do(func() {
		if !hasDisplay() {
			ownerErr = errNoDisplay
			return
		}
		owner, ownerErr = newSelectionOwner()
	})
	return owner, ownerErr
}

// WriteImage publishes img as image/png and image/bmp.
func WriteImage(img image.Image) error {
	o, err := getOwner()
	if err != nil {
		return err
	}
	pngData, err := encodePNG(img)
	if err != nil {
		return err
	}
	bmpData, err := encodeBMP(img)
	if err != nil {
		return err
	}
	offers := map[string][]byte{"image/png": pngData, "image/bmp": bmpData}
	return o.publish(offers, nil)
}

// WriteText publishes text under the usual X11 text targets.
func WriteText(text string) error {
	o, err := getOwner()
	if err != nil {
		return err
	}
	data := []byte(text)
	offers := map[string][]byte{"UTF8_STRING": data, "text/plain;charset=utf-8": data}
	return o.publish(offers, data)
}

// offer is one conversion the owner can answer.
type offer struct {
	typ  xproto.Atom
	data []byte
}

// selectionOwner holds the CLIPBOARD selection from an unmapped window and
// answers SelectionRequest events until another client takes it over.
type selectionOwner struct {
	conn      *xgb.Conn
	window    xproto.Window
	clipboard xproto.Atom
	targets   xproto.Atom

	mu     sync.Mutex
	atoms  map[string]xproto.Atom
	offers map[xproto.Atom]offer
}

func newSelectionOwner() (*selectionOwner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	err = xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, 0, nil).Check()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create selection window: %w", err)
	}
	o := &selectionOwner{conn: conn, window: window, atoms: map[string]xproto.Atom{}}
	if o.clipboard, err = o.atom("CLIPBOARD"); err == nil {
		o.targets, err = o.atom("TARGETS")
	}
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return nil, err
	}
	go o.serve()
	return o, nil
}

// atom interns name, caching the result.
func (o *selectionOwner) atom(name string) (xproto.Atom, error) {
	o.mu.Lock()
	a, ok := o.atoms[name]
	o.mu.Unlock()
	if ok {
		return a, nil
	}
	reply, err := xproto.InternAtom(o.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return xproto.AtomNone, fmt.Errorf("intern %s: %w", name, err)
	}
	o.mu.Lock()
	o.atoms[name] = reply.Atom
	o.mu.Unlock()
	return reply.Atom, nil
}

// publish replaces the offered conversions and claims the selection. Text,
// when given, is also offered as STRING.
func (o *selectionOwner) publish(byName map[string][]byte, text []byte) error {
	offers := make(map[xproto.Atom]offer, len(byName)+1)
	for name, data := range byName {
		a, err := o.atom(name)
		if err != nil {
			return err
		}
		typ := a
		if text != nil {
			typ, err = o.atom("UTF8_STRING")
			if err != nil {
				return err
			}
		}
		offers[a] = offer{typ: typ, data: append([]byte(nil), data...)}
	}
	if text != nil {
		offers[xproto.AtomString] = offer{typ: xproto.AtomString, data: append([]byte(nil), text...)}
	}
	o.mu.Lock()
	o.offers = offers
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *selectionOwner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.offers = nil
			o.mu.Unlock()
		}
	}
}

// answer converts the selection for a requestor, or refuses with a None
// property when the target is not on offer.
func (o *selectionOwner) answer(e xproto.SelectionRequestEvent) {
	prop := e.Property
	if prop == xproto.AtomNone {
		prop = e.Target
	}

	o.mu.Lock()
	var reply offer
	var format byte = 8
	found := false
	if e.Target == o.targets {
		list := []xproto.Atom{o.targets}
		for a := range o.offers {
			list = append(list, a)
		}
		reply = offer{typ: xproto.AtomAtom, data: make([]byte, 4*len(list))}
		for i, a := range list {
			xgb.Put32(reply.data[4*i:], uint32(a))
		}
		format, found = 32, true
	} else {
		reply, found = o.offers[e.Target]
	}
	o.mu.Unlock()

	if found {
		n := uint32(len(reply.data)) / uint32(format/8)
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, prop, reply.typ, format, n, reply.data)
	} else {
		prop = xproto.AtomNone
	}

	ev := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  prop,
	}
	xproto.SendEvent(o.conn, false, e.Requestor, 0, string(ev.Bytes()))
}
