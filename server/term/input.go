package term

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/mo-shahab/go-pong/server/game"
	"github.com/mo-shahab/go-pong/server/input"
	"github.com/mo-shahab/go-pong/server/session"
)

// TapTicks is how long a terminal key press holds the key down. Terminals
// send repeats while a key is held but never a release.
const TapTicks = 8

var errQuit = errors.New("quit")

var runeKeys = map[rune]input.Key{
	'w': input.KeyW,
	'W': input.KeyW,
	's': input.KeyS,
	'S': input.KeyS,
	' ': input.Space,
	'p': input.KeyP,
	'P': input.KeyP,
}

var menuKeys = map[rune]game.SelectMode{
	'1': {Mode: session.Auto, Difficulty: session.Low},
	'2': {Mode: session.Auto, Difficulty: session.Middle},
	'3': {Mode: session.Auto, Difficulty: session.Hard},
	'4': {Mode: session.Auto, Difficulty: session.VeryHard},
	'5': {Mode: session.Player},
}

// KeyEvents maps one key press. quit is set for Escape, Ctrl-C and q.
func KeyEvents(key tcell.Key, r rune) (events []game.Event, quit bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return nil, true
	case tcell.KeyEnter:
		return []game.Event{game.Play{}}, false
	case tcell.KeyUp:
		return tap(input.ArrowUp), false
	case tcell.KeyDown:
		return tap(input.ArrowDown), false
	case tcell.KeyRune:
		if r == 'q' {
			return nil, true
		}
		if k, ok := runeKeys[r]; ok {
			return tap(k), false
		}
		if sel, ok := menuKeys[r]; ok {
			return []game.Event{sel}, false
		}
	}
	return nil, false
}

func tap(k input.Key) []game.Event {
	return []game.Event{game.KeyTap{Key: k, Ticks: TapTicks}}
}

// PointerEvent maps a mouse cell to normalised device coordinates.
func PointerEvent(x, y, w, h int) game.Event {
	if w < 2 || h < 2 {
		return game.Pointer{}
	}
	return game.Pointer{
		X: float64(x)/float64(w-1)*2 - 1,
		Y: 1 - float64(y)/float64(h-1)*2,
	}
}

// ResizeEvent reports a terminal size as a window size. Cells are about
// twice as tall as they are wide.
func ResizeEvent(w, h int) game.Event {
	return game.Resize{Width: w, Height: 2 * h}
}

// Translate maps a tcell event.
func Translate(ev tcell.Event, w, h int) (events []game.Event, quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return KeyEvents(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		return []game.Event{PointerEvent(x, y, w, h)}, false
	case *tcell.EventResize:
		w, h := ev.Size()
		return []game.Event{ResizeEvent(w, h)}, false
	case *tcell.EventInterrupt:
		return nil, true
	}
	return nil, false
}

// Poster is what input is delivered to.
type Poster interface {
	Post(ev game.Event) bool
}

// Pump reads screen events until quit or the screen is finalised.
func Pump(screen tcell.Screen, p Poster) error {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return errQuit
		}
		w, h := screen.Size()
		events, quit := Translate(ev, w, h)
		if quit {
			return errQuit
		}
		for _, e := range events {
			p.Post(e)
		}
	}
}

// Run plays one game in the terminal until the player quits or ctx ends.
// The screen is finalised once the engine and the input pump have stopped.
func Run(ctx context.Context, screen tcell.Screen, e *game.Engine) error {
	screen.EnableMouse()
	w, h := screen.Size()
	e.Post(ResizeEvent(w, h))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.Run(ctx) })
	g.Go(func() error { return Pump(screen, e) })
	g.Go(func() error {
		<-ctx.Done()
		// wakes Pump; an interrupt is read as quit
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		return nil
	})

	err := g.Wait()
	screen.Fini()
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
