package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dshills/blotsync/internal/blot"
	"github.com/dshills/blotsync/internal/config"
	"github.com/dshills/blotsync/internal/event"
	"github.com/dshills/blotsync/internal/inspect"
	"github.com/dshills/blotsync/internal/logging"
	"github.com/dshills/blotsync/internal/mirror"
	"github.com/dshills/blotsync/internal/script"
	"github.com/dshills/blotsync/internal/surface"
)

// session wires a surface document, its scroll and the mirror together.
type session struct {
	cfg    *config.Config
	logger *logging.Logger

	doc    *surface.Document
	root   *surface.Node
	scroll *blot.Scroll
	mirror *mirror.Mirror
	bus    *event.Bus

	out         io.Writer
	color       bool
	showSurface bool
}

func newSession(cfg *config.Config, logger *logging.Logger) (*session, error) {
	s := &session{
		cfg:    cfg,
		logger: logger,
		doc:    surface.NewDocument(),
		out:    io.Discard,
	}

	s.bus = event.NewBus(event.WithPanicHandler(func(evt event.Event, _ *event.Subscription, recovered any) {
		logger.Error("event handler for %s panicked: %v", evt.Topic, recovered)
	}))
	if _, err := s.bus.Subscribe("scroll.*", s.logEvent); err != nil {
		return nil, err
	}

	s.root = s.doc.CreateElement("div")
	scroll, err := blot.NewScroll(blot.DefaultRegistry(), s.root, blot.ObserverChannel(s.doc),
		blot.WithMaxOptimizeIterations(cfg.Sync.MaxOptimizeIterations),
		blot.WithObserveOptions(cfg.Sync.Observe.Options()),
		blot.WithLogger(logger),
		blot.WithPublisher(s.bus),
	)
	if err != nil {
		return nil, fmt.Errorf("creating scroll: %w", err)
	}
	s.scroll = scroll

	m, err := mirror.New(s.root, mirror.WithBlockTag(cfg.Mirror.BlockTag), mirror.WithLogger(logger))
	if err != nil {
		scroll.Detach()
		return nil, err
	}
	s.mirror = m
	return s, nil
}

func (s *session) logEvent(_ context.Context, evt event.Event) error {
	switch p := evt.Payload.(type) {
	case blot.UpdateEvent:
		s.logger.Debug("update: %d records, %d dispatched, %d dropped", len(p.Records), p.Dispatched, p.Dropped)
	case blot.OptimizeEvent:
		s.logger.Debug("optimize: %d records in %d iterations", len(p.Records), p.Iterations)
	default:
		s.logger.Debug("%s", evt.Topic)
	}
	return nil
}

// LoadFile mirrors the file's content and delivers the resulting records.
func (s *session) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return s.apply(string(data))
}

func (s *session) apply(content string) error {
	stats, err := s.mirror.Apply(content)
	if err != nil {
		return err
	}
	if err := s.deliver(); err != nil {
		return err
	}
	s.logger.Info("synchronized: %s, length %d", stats, s.scroll.Length())
	return nil
}

// deliver hands queued records to the scroll. A divergent normalization
// surfaces as a panic from the observer callback.
func (s *session) deliver() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	s.doc.Deliver()
	return nil
}

// RunScript runs a Lua file against the session.
func (s *session) RunScript(path string) error {
	state := script.NewState(script.WithTimeout(s.cfg.Script.Timeout()), script.WithOutput(os.Stderr))
	defer state.Close()

	env := script.Env{Doc: s.doc, Root: s.root, Scroll: s.scroll, BlockTag: s.cfg.Mirror.BlockTag}
	if err := script.Bind(state, env); err != nil {
		return err
	}
	if err := state.DoFile(path); err != nil {
		return err
	}
	return s.deliver()
}

// Dump writes the blot tree, and the surface tree when requested.
func (s *session) Dump() error {
	opts := inspect.Options{Indent: true, Color: s.color}
	data, err := inspect.JSON(inspect.Blot(s.scroll), opts)
	if err != nil {
		return err
	}
	if _, err := s.out.Write(data); err != nil {
		return err
	}
	if !s.showSurface {
		return nil
	}
	data, err = inspect.JSON(inspect.Surface(s.root), opts)
	if err != nil {
		return err
	}
	_, err = s.out.Write(data)
	return err
}

// Watch applies every settled change of path until stop fires.
func (s *session) Watch(path string, stop <-chan os.Signal) error {
	w, err := mirror.NewWatcher(path,
		mirror.WithDebounce(s.cfg.Mirror.Debounce()),
		mirror.WithWatcherLogger(s.logger),
	)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	defer w.Close()

	s.logger.Info("watching %s", w.Path())
	for {
		select {
		case <-stop:
			return nil
		case content, ok := <-w.Content():
			if !ok {
				return nil
			}
			if err := s.apply(content); err != nil {
				return err
			}
			if err := s.Dump(); err != nil {
				return err
			}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			s.logger.Warn("watch: %v", err)
		}
	}
}

// Close detaches the scroll.
func (s *session) Close() {
	s.scroll.Detach()
}
