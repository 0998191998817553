package surface

import (
	"strings"

	"github.com/google/uuid"
)

// Document creates nodes and fans mutation records out to observers.
type Document struct {
	observers []*Observer
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// CreateElement creates a detached element with the given tag.
func (d *Document) CreateElement(tag string) *Node {
	return d.newNode(ElementNode, strings.ToLower(tag))
}

// CreateText creates a detached text node.
func (d *Document) CreateText(data string) *Node {
	n := d.newNode(TextNode, "")
	n.data = data
	return n
}

func (d *Document) newNode(kind Kind, tag string) *Node {
	return &Node{
		id:   NodeID(uuid.New()),
		kind: kind,
		tag:  tag,
		doc:  d,
	}
}

// NewObserver creates an observer that receives delivered batches on fn.
// The observer records nothing until Observe is called.
func (d *Document) NewObserver(fn Callback) *Observer {
	return &Observer{doc: d, callback: fn}
}

// Pending returns the number of records queued across all observers.
func (d *Document) Pending() int {
	total := 0
	for _, o := range d.observers {
		total += len(o.records)
	}
	return total
}

// Deliver hands every observer its queued records through its callback.
// Records queued by the callbacks themselves stay queued for the next
// Deliver (or an explicit TakeRecords). It returns the number of records
// delivered.
func (d *Document) Deliver() int {
	observers := make([]*Observer, len(d.observers))
	copy(observers, d.observers)

	delivered := 0
	for _, o := range observers {
		records := o.TakeRecords()
		if len(records) == 0 || o.callback == nil {
			continue
		}
		delivered += len(records)
		o.callback(records)
	}
	return delivered
}

func (d *Document) queue(r Record) {
	for _, o := range d.observers {
		if rec, ok := o.accept(r); ok {
			o.records = append(o.records, rec)
		}
	}
}

func (d *Document) addObserver(o *Observer) {
	for _, existing := range d.observers {
		if existing == o {
			return
		}
	}
	d.observers = append(d.observers, o)
}

func (d *Document) removeObserver(o *Observer) {
	for i, existing := range d.observers {
		if existing == o {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}
