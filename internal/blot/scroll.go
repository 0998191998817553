package blot

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dshills/blotsync/internal/logging"
	"github.com/dshills/blotsync/internal/surface"
)

var scrollDefinition = &Definition{
	Name:  "scroll",
	Tag:   "div",
	Scope: ScopeBlockBlot,
	New: func(Root, *surface.Node, *Definition) Blot {
		panic("scroll blots are created with NewScroll")
	},
}

// Scroll is the root of a blot tree. It owns the subscription to the
// surface's change channel and is the single authority that turns change
// batches into blot updates and normalization passes.
type Scroll struct {
	ParentBlot

	registry      *Registry
	sub           Subscription
	observe       surface.ObserveOptions
	maxIterations int
	logger        *logging.Logger
	publisher     Publisher
}

// NewScroll builds a blot tree over node's existing content, subscribes to
// ch and attaches. A nil ch observes node's document directly.
func NewScroll(reg *Registry, node *surface.Node, ch Channel, opts ...Option) (*Scroll, error) {
	if node == nil {
		return nil, surface.ErrNilNode
	}
	if reg == nil {
		reg = DefaultRegistry()
	}
	if ch == nil {
		ch = ObserverChannel(node.Document())
	}

	s := &Scroll{
		registry:      reg,
		observe:       DefaultObserveOptions(),
		maxIterations: DefaultMaxOptimizeIterations,
		logger:        logging.Null,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.initParent(s, s, node, scrollDefinition)
	s.allowed = isBlockContainer
	s.Build()

	sub, err := ch.Subscribe(node, s.observe, func(records []surface.Record) {
		s.Update(records, NewContext())
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	s.sub = sub
	s.Attach()
	return s, nil
}

func isBlockContainer(b Blot) bool {
	_, ok := b.(Parent)
	return ok && b.Scope() == ScopeBlockBlot
}

// Registry returns the registry the scroll creates blots with.
func (s *Scroll) Registry() *Registry { return s.registry }

// Create creates the blot for an existing node.
func (s *Scroll) Create(node *surface.Node) (Blot, error) {
	return s.registry.Create(s, node)
}

// CreateNamed creates a blot of kind name over a new node.
func (s *Scroll) CreateNamed(name string, value any) (Blot, error) {
	return s.registry.CreateNamed(s, name, value)
}

// Query returns the definition registered as name if it matches scope.
func (s *Scroll) Query(name string, scope Scope) *Definition {
	return s.registry.Query(name, scope)
}

// Find returns the blot of this scroll that owns node. A blot owned by
// another scroll sharing the registry is skipped; with bubble, the search
// resumes above that scroll's node.
func (s *Scroll) Find(node *surface.Node, bubble bool) Blot {
	b := s.registry.Find(node, bubble)
	if b == nil {
		return nil
	}
	if b.Scroll() == Root(s) {
		return b
	}
	if bubble {
		return s.Find(b.Scroll().Node().Parent(), true)
	}
	return nil
}

// Detach unsubscribes from the change channel, then detaches the tree.
func (s *Scroll) Detach() {
	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}
	s.ParentBlot.Detach()
	s.logger.Debug("detached")
	s.publish(context.Background(), TopicDetach, DetachEvent{Node: s.node.ID()})
}

// DeleteAt synchronizes, then removes [index, index+length). Deleting the
// whole content removes every child individually.
func (s *Scroll) DeleteAt(index, length int) {
	s.Update(nil, NewContext())
	if index == 0 && length == s.Length() {
		for _, child := range s.children.Slice() {
			child.Remove()
		}
		return
	}
	s.ParentBlot.DeleteAt(index, length)
}

// FormatAt synchronizes, then formats [index, index+length).
func (s *Scroll) FormatAt(index, length int, name string, value any) {
	s.Update(nil, NewContext())
	s.ParentBlot.FormatAt(index, length, name, value)
}

// InsertAt synchronizes, then inserts at index.
func (s *Scroll) InsertAt(index int, value string, def any) {
	s.Update(nil, NewContext())
	s.ParentBlot.InsertAt(index, value, def)
}

// Update is Sync for callers holding a Blot. A normalization that does not
// converge panics with the *OptimizeError.
func (s *Scroll) Update(records []surface.Record, c *Context) {
	if err := s.Sync(context.Background(), records, c); err != nil {
		panic(err)
	}
}

// Optimize is Normalize for callers holding a Blot. A normalization that
// does not converge panics with the *OptimizeError.
func (s *Scroll) Optimize(c *Context) {
	if err := s.Normalize(context.Background(), nil, c); err != nil {
		panic(err)
	}
}

// Sync applies a batch of change records. A nil batch drains the records
// pending on the subscription. Records are grouped by the blot that owns
// their target; each group goes to that blot's Update in arrival order and
// groups targeting the scroll itself go to the structural update. Records
// whose target has no blot are dropped. Sync then normalizes the tree.
func (s *Scroll) Sync(ctx context.Context, records []surface.Record, c *Context) error {
	ctx, span := tracer.Start(ctx, "blot.Scroll.Sync")
	defer span.End()
	start := time.Now()
	defer func() { scrollSyncDuration.Observe(time.Since(start).Seconds()) }()

	if c == nil {
		c = NewContext()
	}
	if records == nil {
		records = s.takeRecords()
	}

	groups := make(map[surface.NodeID][]surface.Record)
	var order []Blot
	dropped := 0
	for _, r := range records {
		b := s.Find(r.Target, true)
		if b == nil {
			dropped++
			continue
		}
		id := b.Node().ID()
		if _, ok := groups[id]; !ok {
			order = append(order, b)
		}
		groups[id] = append(groups[id], r)
	}
	for _, b := range order {
		if b == Blot(s) {
			continue
		}
		b.Update(groups[b.Node().ID()], c)
	}
	c.marks = groups
	if group, ok := groups[s.node.ID()]; ok {
		s.ParentBlot.Update(group, c)
	}

	dispatched := len(records) - dropped
	scrollRecordsTotal.WithLabelValues(outcomeDispatched).Add(float64(dispatched))
	scrollRecordsTotal.WithLabelValues(outcomeDropped).Add(float64(dropped))
	if dropped > 0 {
		s.logger.Debug("dropped %d records without a blot", dropped)
	}
	span.SetAttributes(
		attribute.Int("record_count", len(records)),
		attribute.Int("dropped", dropped),
	)
	s.publish(ctx, TopicUpdate, UpdateEvent{Records: records, Dispatched: dispatched, Dropped: dropped})

	if err := s.Normalize(ctx, records, c); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "normalize failed")
		return err
	}
	return nil
}

// Normalize runs the idempotent normalization of every blot, then marks
// the blots implicated by records, optimizes them in one post-order
// traversal and repeats with whatever the traversal itself changed, until
// nothing is pending. It fails with an *OptimizeError when the tree has not
// settled after the iteration bound.
func (s *Scroll) Normalize(ctx context.Context, records []surface.Record, c *Context) error {
	_, span := tracer.Start(ctx, "blot.Scroll.Normalize", trace.WithAttributes(
		attribute.Int("record_count", len(records)),
	))
	defer span.End()

	if c == nil {
		c = NewContext()
	}
	if c.marks == nil {
		c.marks = make(map[surface.NodeID][]surface.Record)
	}
	defer func() { c.marks = nil }()

	s.optimizeAll(s, c)
	s.enforceAllowedChildren()

	batch := append([]surface.Record(nil), records...)
	batch = append(batch, s.takeRecords()...)

	remaining := batch
	iterations := 0
	for ; len(remaining) > 0; iterations++ {
		if iterations >= s.maxIterations {
			err := &OptimizeError{Iterations: iterations, Pending: len(remaining)}
			scrollDivergenceTotal.Inc()
			s.logger.Error("%v", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "optimize diverged")
			return err
		}
		for _, r := range remaining {
			s.markRecord(r, c)
		}
		for _, child := range s.children.Slice() {
			s.optimizeMarked(child, c)
		}
		remaining = s.takeRecords()
		scrollRecordsTotal.WithLabelValues(outcomeSelfInduced).Add(float64(len(remaining)))
		batch = append(batch, remaining...)
	}

	scrollOptimizeIterations.Observe(float64(iterations))
	span.SetAttributes(attribute.Int("iterations", iterations))
	if iterations > 0 {
		s.logger.Debug("settled %d records in %d iterations", len(batch), iterations)
	}
	s.publish(ctx, TopicOptimize, OptimizeEvent{Records: batch, Iterations: iterations})
	return nil
}

func (s *Scroll) takeRecords() []surface.Record {
	if s.sub == nil {
		return nil
	}
	return s.sub.TakeRecords()
}

// markRecord marks the blots a record implicates: the owner of the target
// and its ancestors, plus for child-list records the previous sibling and
// the added nodes with their children, and for attribute records the
// target's previous sibling.
func (s *Scroll) markRecord(r surface.Record, c *Context) {
	b := s.Find(r.Target, true)
	if b == nil {
		return
	}
	if b.Node() == r.Target {
		switch r.Type {
		case surface.ChildList:
			s.mark(s.Find(r.PreviousSibling, false), true, c)
			for _, node := range r.Added {
				child := s.Find(node, false)
				s.mark(child, false, c)
				if p, ok := child.(Parent); ok {
					p.Children().ForEach(func(grandchild Blot) {
						s.mark(grandchild, false, c)
					})
				}
			}
		case surface.Attributes:
			s.mark(b.Prev(), true, c)
		}
	}
	s.mark(b, true, c)
}

func (s *Scroll) mark(b Blot, markParent bool, c *Context) {
	if b == nil || b == Blot(s) {
		return
	}
	if b.Node().Parent() == nil {
		return
	}
	c.mark(b)
	if markParent {
		if p := b.Parent(); p != nil {
			s.mark(p, true, c)
		}
	}
}

// optimizeMarked visits b post-order, optimizing marked blots.
func (s *Scroll) optimizeMarked(b Blot, c *Context) {
	if !c.Marked(b) {
		return
	}
	if p, ok := b.(Parent); ok {
		for _, child := range p.Children().Slice() {
			if child.Parent() == p {
				s.optimizeMarked(child, c)
			}
		}
	}
	c.unmark(b)
	b.Optimize(c)
}

// optimizeAll optimizes every descendant of p post-order.
func (s *Scroll) optimizeAll(p Parent, c *Context) {
	for _, child := range p.Children().Slice() {
		if child.Parent() != p {
			continue
		}
		if cp, ok := child.(Parent); ok {
			s.optimizeAll(cp, c)
		}
		if child.Parent() == p {
			child.Optimize(c)
		}
	}
}

// enforceAllowedChildren wraps runs of children that cannot live at the
// root, such as bare text, in default blocks.
func (s *Scroll) enforceAllowedChildren() {
	var wrapper Parent
	for _, child := range s.children.Slice() {
		if child.Parent() != Parent(s) {
			continue
		}
		if s.allowed(child) {
			wrapper = nil
			continue
		}
		if wrapper != nil && child.Prev() == Blot(wrapper) {
			wrapper.AppendChild(child)
			continue
		}
		b, err := s.registry.CreateScope(s, ScopeBlock, nil)
		if err != nil {
			s.logger.Warn("remove %s at root: %v", child.Name(), err)
			child.Remove()
			continue
		}
		p, ok := b.(Parent)
		if !ok {
			child.Remove()
			continue
		}
		wrapper = child.Wrap(p)
	}
}
