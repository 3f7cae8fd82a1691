package visitor

// TypeTracker follows the walk to answer type questions about the current node.
// typeinfo.TypeInfo is the implementation used by validation.
type TypeTracker interface {
	Enter(c *Cursor)
	Leave(c *Cursor)
}

// WithTypeInfo keeps tracker in step with the walk around v. The tracker enters a node
// before v does and leaves it after v does, so v always sees the current node's types.
func WithTypeInfo(tracker TypeTracker, v Visitor) Visitor {
	return &withTypeInfo{tracker: tracker, v: v}
}

type withTypeInfo struct {
	tracker TypeTracker
	v       Visitor
}

func (w *withTypeInfo) Enter(c *Cursor) Action {
	w.tracker.Enter(c)
	action := w.v.Enter(c)

	if c.Replaced() {
		w.tracker.Leave(c.original())
		if action == Continue {
			w.tracker.Enter(c)
		}
		return action
	}
	if action != Continue {
		// Leave is not called for skipped nodes.
		w.tracker.Leave(c)
	}
	return action
}

func (w *withTypeInfo) Leave(c *Cursor) Action {
	action := w.v.Leave(c)
	w.tracker.Leave(c)
	return action
}
