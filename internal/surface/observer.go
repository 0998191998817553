package surface

// Callback receives a batch of records in arrival order.
type Callback func(records []Record)

// ObserveOptions selects which changes an observer records.
type ObserveOptions struct {
	// ChildList records insertions and removals of children.
	ChildList bool

	// Attributes records attribute changes.
	Attributes bool

	// AttributeOldValue keeps the previous attribute value. Implies Attributes.
	AttributeOldValue bool

	// CharacterData records text changes.
	CharacterData bool

	// CharacterDataOldValue keeps the previous text. Implies CharacterData.
	CharacterDataOldValue bool

	// Subtree extends observation to all descendants of the target.
	Subtree bool
}

type registration struct {
	target *Node
	opts   ObserveOptions
}

// Observer collects records for the nodes it observes.
type Observer struct {
	doc           *Document
	callback      Callback
	registrations []registration
	records       []Record
}

// Observe starts recording changes on target. Observing the same target
// again replaces its options.
func (o *Observer) Observe(target *Node, opts ObserveOptions) error {
	if target == nil {
		return ErrNilNode
	}
	if opts.AttributeOldValue {
		opts.Attributes = true
	}
	if opts.CharacterDataOldValue {
		opts.CharacterData = true
	}
	if !opts.ChildList && !opts.Attributes && !opts.CharacterData {
		return ErrInvalidOptions
	}

	for i, reg := range o.registrations {
		if reg.target == target {
			o.registrations[i].opts = opts
			return nil
		}
	}
	o.registrations = append(o.registrations, registration{target: target, opts: opts})
	o.doc.addObserver(o)
	return nil
}

// TakeRecords returns and clears the queued records.
func (o *Observer) TakeRecords() []Record {
	records := o.records
	o.records = nil
	return records
}

// Disconnect stops all observation and discards queued records.
func (o *Observer) Disconnect() {
	o.registrations = nil
	o.records = nil
	o.doc.removeObserver(o)
}

// accept filters r through the registrations and strips old values the
// observer did not ask for.
func (o *Observer) accept(r Record) (Record, bool) {
	for _, reg := range o.registrations {
		if r.Target != reg.target && !(reg.opts.Subtree && reg.target.Contains(r.Target)) {
			continue
		}
		switch r.Type {
		case ChildList:
			if !reg.opts.ChildList {
				continue
			}
		case Attributes:
			if !reg.opts.Attributes {
				continue
			}
			if !reg.opts.AttributeOldValue {
				r.OldValue = ""
			}
		case CharacterData:
			if !reg.opts.CharacterData {
				continue
			}
			if !reg.opts.CharacterDataOldValue {
				r.OldValue = ""
			}
		}
		return r, true
	}
	return Record{}, false
}
