package blot

import (
	"context"
	"testing"

	"github.com/dshills/blotsync/internal/surface"
)

// fakeChannel records subscriptions and hands out records fed by tests.
type fakeChannel struct {
	pending      []surface.Record
	fn           surface.Callback
	opts         surface.ObserveOptions
	unsubscribed bool
}

func (f *fakeChannel) Subscribe(_ *surface.Node, opts surface.ObserveOptions, fn surface.Callback) (Subscription, error) {
	f.fn = fn
	f.opts = opts
	return f, nil
}

func (f *fakeChannel) TakeRecords() []surface.Record {
	records := f.pending
	f.pending = nil
	return records
}

func (f *fakeChannel) Unsubscribe() { f.unsubscribed = true }

// paragraph appends a <p> holding one text node per text to parent.
func paragraph(t *testing.T, parent *surface.Node, texts ...string) *surface.Node {
	t.Helper()
	doc := parent.Document()
	p := doc.CreateElement("p")
	for _, text := range texts {
		if err := p.AppendChild(doc.CreateText(text)); err != nil {
			t.Fatalf("AppendChild() error = %v", err)
		}
	}
	if err := parent.AppendChild(p); err != nil {
		t.Fatalf("AppendChild() error = %v", err)
	}
	return p
}

func newRoot() (*surface.Document, *surface.Node) {
	doc := surface.NewDocument()
	return doc, doc.CreateElement("div")
}

func newScroll(t *testing.T, root *surface.Node, opts ...Option) *Scroll {
	t.Helper()
	s, err := NewScroll(DefaultRegistry(), root, nil, opts...)
	if err != nil {
		t.Fatalf("NewScroll() error = %v", err)
	}
	return s
}

func syncScroll(t *testing.T, s *Scroll) {
	t.Helper()
	if err := s.Sync(context.Background(), nil, nil); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
}

// leaves returns the text leaves of b in document order.
func leaves(b Blot) []*TextBlot {
	var out []*TextBlot
	Walk(b, func(b Blot, _ int) bool {
		if t, ok := b.(*TextBlot); ok {
			out = append(out, t)
		}
		return true
	})
	return out
}

func countKind(b Blot, name string) int {
	n := 0
	Walk(b, func(b Blot, _ int) bool {
		if b.Name() == name {
			n++
		}
		return true
	})
	return n
}

// registryWith returns a registry of the default kinds with overrides
// replacing the kinds of the same name.
func registryWith(t *testing.T, overrides ...*Definition) *Registry {
	t.Helper()
	reg := NewRegistry()
	if err := reg.Register(DefaultDefinitions()...); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := reg.Register(overrides...); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return reg
}
