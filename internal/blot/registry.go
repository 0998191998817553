package blot

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dshills/blotsync/internal/surface"
)

// Names of the kinds the core relies on.
const (
	textName         = "text"
	inlineName       = "inline"
	defaultBlockName = "block"
)

// Constructor creates a blot of kind def over node.
type Constructor func(scroll Root, node *surface.Node, def *Definition) Blot

// NodeFactory creates the surface node for a new blot of kind def.
type NodeFactory func(doc *surface.Document, def *Definition, value any) *surface.Node

// Definition describes one blot kind.
type Definition struct {
	// Name identifies the kind, as in CreateNamed("bold", true).
	Name string

	// Tag is the element tag the kind represents. Empty for text kinds.
	Tag string

	// Text marks the kind that represents surface text nodes.
	Text bool

	// Scope classifies the kind.
	Scope Scope

	// New constructs the blot.
	New Constructor

	// Create builds the surface node for CreateNamed. When nil, text kinds
	// get a text node holding the value and other kinds an empty element.
	Create NodeFactory
}

func (d *Definition) validate() error {
	switch {
	case d == nil:
		return fmt.Errorf("%w: nil", ErrInvalidDefinition)
	case d.Name == "":
		return fmt.Errorf("%w: missing name", ErrInvalidDefinition)
	case d.New == nil:
		return fmt.Errorf("%w: %s has no constructor", ErrInvalidDefinition, d.Name)
	case !d.Text && d.Tag == "":
		return fmt.Errorf("%w: %s has no tag", ErrInvalidDefinition, d.Name)
	case d.Scope&ScopeType == 0 || d.Scope&ScopeLevel == 0:
		return fmt.Errorf("%w: %s has scope %s", ErrInvalidDefinition, d.Name, d.Scope)
	}
	return nil
}

func (d *Definition) node(doc *surface.Document, value any) *surface.Node {
	if d.Create != nil {
		return d.Create(doc, d, value)
	}
	if d.Text {
		s, _ := value.(string)
		return doc.CreateText(s)
	}
	return doc.CreateElement(d.Tag)
}

// Registry maps surface nodes to blot kinds and indexes live blots by the
// id of the node they own. One registry may serve several scrolls.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Definition
	byTag  map[string]*Definition
	text   *Definition
	blots  map[surface.NodeID]Blot
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Definition),
		byTag:  make(map[string]*Definition),
		blots:  make(map[surface.NodeID]Blot),
	}
}

// DefaultRegistry creates a registry with the built-in kinds.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	if err := r.Register(DefaultDefinitions()...); err != nil {
		panic(err)
	}
	return r
}

// DefaultDefinitions returns fresh copies of the built-in kinds.
func DefaultDefinitions() []*Definition {
	return []*Definition{
		{Name: defaultBlockName, Tag: "p", Scope: ScopeBlockBlot, New: NewBlockBlot},
		{Name: "header", Tag: "h1", Scope: ScopeBlockBlot, New: NewBlockBlot},
		{Name: inlineName, Tag: "span", Scope: ScopeInlineBlot, New: NewInlineBlot},
		{Name: "bold", Tag: "strong", Scope: ScopeInlineBlot, New: NewInlineBlot},
		{Name: "italic", Tag: "em", Scope: ScopeInlineBlot, New: NewInlineBlot},
		{Name: textName, Text: true, Scope: ScopeInlineBlot, New: NewTextBlot},
		{Name: "image", Tag: "img", Scope: ScopeInlineBlot, New: NewEmbedBlot, Create: createImage},
	}
}

func createImage(doc *surface.Document, def *Definition, value any) *surface.Node {
	n := doc.CreateElement(def.Tag)
	if src, ok := value.(string); ok && src != "" {
		_ = n.SetAttribute("src", src)
	}
	return n
}

// Register adds definitions, replacing any with the same name or tag.
func (r *Registry) Register(defs ...*Definition) error {
	for _, d := range defs {
		if err := d.validate(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range defs {
		r.byName[d.Name] = d
		if d.Text {
			r.text = d
		} else {
			r.byTag[strings.ToLower(d.Tag)] = d
		}
	}
	return nil
}

// Names returns the registered kind names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Query returns the definition registered as name if it matches scope.
func (r *Registry) Query(name string, scope Scope) *Definition {
	r.mu.RLock()
	d := r.byName[name]
	r.mu.RUnlock()
	return matching(d, scope)
}

// QueryNode returns the definition that represents node if it matches scope.
func (r *Registry) QueryNode(node *surface.Node, scope Scope) *Definition {
	if node == nil {
		return nil
	}
	r.mu.RLock()
	var d *Definition
	if node.IsText() {
		d = r.text
	} else {
		d = r.byTag[node.Tag()]
	}
	r.mu.RUnlock()
	return matching(d, scope)
}

// QueryScope returns the generic block or inline kind for the level in
// scope.
func (r *Registry) QueryScope(scope Scope) *Definition {
	switch {
	case scope&ScopeLevel&ScopeBlock != 0:
		return r.Query(defaultBlockName, ScopeAny)
	case scope&ScopeLevel&ScopeInline != 0:
		return r.Query(inlineName, ScopeAny)
	}
	return nil
}

func matching(d *Definition, scope Scope) *Definition {
	if d == nil || !d.Scope.Matches(scope) {
		return nil
	}
	return d
}

// Create creates the blot that represents an existing node.
func (r *Registry) Create(scroll Root, node *surface.Node) (Blot, error) {
	if node == nil {
		return nil, surface.ErrNilNode
	}
	d := r.QueryNode(node, ScopeAny)
	if d == nil {
		if node.IsText() {
			return nil, fmt.Errorf("%w: text node", ErrUnknownKind)
		}
		return nil, fmt.Errorf("%w: <%s>", ErrUnknownKind, node.Tag())
	}
	return r.construct(scroll, node, d), nil
}

// CreateNamed creates a blot of kind name over a new node built from value.
func (r *Registry) CreateNamed(scroll Root, name string, value any) (Blot, error) {
	d := r.Query(name, ScopeAny)
	if d == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return r.construct(scroll, d.node(scroll.Node().Document(), value), d), nil
}

// CreateScope creates a blot of the generic kind for scope's level.
func (r *Registry) CreateScope(scroll Root, scope Scope, value any) (Blot, error) {
	d := r.QueryScope(scope)
	if d == nil {
		return nil, fmt.Errorf("%w: scope %s", ErrUnknownKind, scope)
	}
	return r.construct(scroll, d.node(scroll.Node().Document(), value), d), nil
}

func (r *Registry) construct(scroll Root, node *surface.Node, d *Definition) Blot {
	b := d.New(scroll, node, d)
	r.index(b)
	return b
}

// Find returns the blot that owns node. With bubble, the search continues
// through node's ancestors.
func (r *Registry) Find(node *surface.Node, bubble bool) Blot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for n := node; n != nil; n = n.Parent() {
		if b, ok := r.blots[n.ID()]; ok {
			return b
		}
		if !bubble {
			return nil
		}
	}
	return nil
}

// Size returns the number of live blots.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.blots)
}

func (r *Registry) index(b Blot) {
	r.mu.Lock()
	r.blots[b.Node().ID()] = b
	r.mu.Unlock()
}

func (r *Registry) unindex(b Blot) {
	r.mu.Lock()
	if r.blots[b.Node().ID()] == b {
		delete(r.blots, b.Node().ID())
	}
	r.mu.Unlock()
}
