package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/plus3/fryer/game"
)

// Loop owns a tcell screen and drives a host at a fixed interval.
type Loop struct {
	Screen   tcell.Screen
	Host     *game.Host
	Renderer *Renderer
	Keyboard *Keyboard
	Interval time.Duration
	Logger   *zap.Logger

	tracker game.MotionTracker
}

// Run pumps terminal events on one goroutine and runs frames on another until
// the session stops, ctrl-c is pressed or ctx is done. The screen is
// finalised on return.
func (l *Loop) Run(ctx context.Context) error {
	if l.Logger == nil {
		l.Logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 64)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(events)
		for {
			ev := l.Screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-gctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer func() {
			cancel()
			l.Screen.Fini()
		}()
		return l.frames(gctx, events)
	})

	return g.Wait()
}

func (l *Loop) frames(ctx context.Context, events <-chan tcell.Event) error {
	interval := l.Interval
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for l.Host.Running() {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if quit := l.handle(ev); quit {
				return nil
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			controls := l.tracker.Update(l.Keyboard.Read(now))
			if err := l.Host.Frame(dt, controls); err != nil {
				return err
			}
			l.Renderer.Draw()
		}
	}
	l.Logger.Info("session stopped", zap.Uint64("frames", l.Host.Frames()))
	return nil
}

func (l *Loop) handle(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return true
		}
		l.Keyboard.Press(ev, ev.When())
	case *tcell.EventResize:
		l.Screen.Sync()
	}
	return false
}
