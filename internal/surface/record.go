package surface

// RecordType categorizes a mutation record.
type RecordType uint8

const (
	// ChildList indicates children were added to or removed from the target.
	ChildList RecordType = iota + 1

	// Attributes indicates an attribute of the target changed.
	Attributes

	// CharacterData indicates the data of a text target changed.
	CharacterData
)

// String returns a human-readable representation of the record type.
func (t RecordType) String() string {
	switch t {
	case ChildList:
		return "childList"
	case Attributes:
		return "attributes"
	case CharacterData:
		return "characterData"
	default:
		return "unknown"
	}
}

// Record describes one observed change to the surface tree.
// Records are values; once queued they are never modified.
type Record struct {
	// Type is the kind of change.
	Type RecordType

	// Target is the node whose children, attributes or data changed.
	Target *Node

	// Added lists nodes inserted into Target (ChildList only).
	Added []*Node

	// Removed lists nodes removed from Target (ChildList only).
	Removed []*Node

	// PreviousSibling is the sibling before the added or removed nodes.
	PreviousSibling *Node

	// NextSibling is the sibling after the added or removed nodes.
	NextSibling *Node

	// AttributeName is the changed attribute (Attributes only).
	AttributeName string

	// OldValue is the previous attribute value or character data, present
	// only when the observer asked for old values.
	OldValue string
}
