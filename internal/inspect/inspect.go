package inspect

import (
	"encoding/json"
	"maps"

	"github.com/tidwall/pretty"

	"github.com/dshills/blotsync/internal/blot"
	"github.com/dshills/blotsync/internal/surface"
)

// BlotView is the JSON shape of one blot.
type BlotView struct {
	ID       string         `json:"id"`
	Kind     string         `json:"kind"`
	Scope    string         `json:"scope"`
	Length   int            `json:"length"`
	Offset   int            `json:"offset"`
	Text     *string        `json:"text,omitempty"`
	Value    any            `json:"value,omitempty"`
	Formats  map[string]any `json:"formats,omitempty"`
	Children []BlotView     `json:"children,omitempty"`
}

// SurfaceView is the JSON shape of one surface node.
type SurfaceView struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Tag        string            `json:"tag,omitempty"`
	Data       *string           `json:"data,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Children   []SurfaceView     `json:"children,omitempty"`
}

// Blot returns the view of b and its descendants. Offsets are relative to
// the parent.
func Blot(b blot.Blot) BlotView {
	v := BlotView{
		ID:     b.Node().ID().String(),
		Kind:   b.Name(),
		Scope:  b.Scope().String(),
		Length: b.Length(),
		Offset: b.Offset(nil),
	}
	if f, ok := b.(interface{ Formats() map[string]any }); ok {
		if formats := f.Formats(); len(formats) > 0 {
			v.Formats = formats
		}
	}
	switch leaf := b.(type) {
	case blot.Parent:
		for _, child := range leaf.Children().Slice() {
			v.Children = append(v.Children, Blot(child))
		}
	case interface{ Text() string }:
		text := leaf.Text()
		v.Text = &text
	case blot.Leaf:
		v.Value = leaf.Value()
	}
	return v
}

// Surface returns the view of n and its descendants.
func Surface(n *surface.Node) SurfaceView {
	v := SurfaceView{
		ID:   n.ID().String(),
		Type: n.Kind().String(),
		Tag:  n.Tag(),
	}
	if n.IsText() {
		data := n.Data()
		v.Data = &data
		return v
	}
	if attrs := n.Attributes(); len(attrs) > 0 {
		v.Attributes = maps.Clone(attrs)
	}
	for _, child := range n.Children() {
		v.Children = append(v.Children, Surface(child))
	}
	return v
}

// Options controls JSON output.
type Options struct {
	// Indent pretty-prints the output.
	Indent bool
	// Color adds terminal colors. Implies Indent.
	Color bool
}

// JSON encodes v.
func JSON(v any, opts Options) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return Format(data, opts), nil
}

// Format reformats JSON data according to opts.
func Format(data []byte, opts Options) []byte {
	if opts.Indent || opts.Color {
		data = pretty.PrettyOptions(data, &pretty.Options{
			Width:    80,
			Prefix:   "",
			Indent:   "  ",
			SortKeys: false,
		})
	} else {
		data = pretty.Ugly(data)
	}
	if opts.Color {
		data = pretty.Color(data, pretty.TerminalStyle)
	}
	return data
}

// Dump returns the compact JSON of the blot tree rooted at b.
func Dump(b blot.Blot) string {
	data, err := JSON(Blot(b), Options{})
	if err != nil {
		// Views hold only strings, numbers, maps and slices.
		panic(err)
	}
	return string(data)
}
