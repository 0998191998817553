package blot

import "strings"

// ObjectReplacement stands in for embeds in Text.
const ObjectReplacement = '￼'

// Walk calls fn for b and its descendants in document order. Returning
// false from fn skips the blot's children.
func Walk(b Blot, fn func(b Blot, depth int) bool) {
	walk(b, 0, fn)
}

func walk(b Blot, depth int, fn func(Blot, int) bool) {
	if !fn(b, depth) {
		return
	}
	if p, ok := b.(Parent); ok {
		for _, child := range p.Children().Slice() {
			walk(child, depth+1, fn)
		}
	}
}

// Text returns the content of b with one rune per unit of length: text
// leaves contribute their text and other leaves ObjectReplacement.
func Text(b Blot) string {
	var sb strings.Builder
	Walk(b, func(b Blot, _ int) bool {
		switch leaf := b.(type) {
		case Parent:
		case interface{ Text() string }:
			sb.WriteString(leaf.Text())
		default:
			for i := 0; i < leaf.Length(); i++ {
				sb.WriteRune(ObjectReplacement)
			}
		}
		return true
	})
	return sb.String()
}
