// Package visitor walks GraphQL documents built from gqlparser nodes.
//
// A Visitor receives Enter and Leave callbacks for every node, in document order.
// Enter may skip the subtree or stop the walk, Leave may stop the walk, and either may
// replace the current node through the Cursor. Several visitors can share one walk with
// Multiple, and WithTypeInfo keeps a type tracker in step with the traversal.
package visitor

// Action tells the walker how to continue after a callback.
type Action int

const (
	// Continue walks on normally.
	Continue Action = iota
	// Skip does not descend into the node's children. Leave is not called for it.
	Skip
	// Break stops the walk. No further callbacks are made.
	Break
)

func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case Skip:
		return "Skip"
	case Break:
		return "Break"
	default:
		return "Unknown"
	}
}

// Visitor is called on entering and leaving every node.
type Visitor interface {
	Enter(c *Cursor) Action
	Leave(c *Cursor) Action
}

// Base is a no-op Visitor meant to be embedded.
type Base struct{}

func (Base) Enter(*Cursor) Action { return Continue }
func (Base) Leave(*Cursor) Action { return Continue }

// KindFuncs holds the callbacks for one node kind. Either may be nil.
type KindFuncs struct {
	Enter func(c *Cursor) Action
	Leave func(c *Cursor) Action
}

// Funcs dispatches callbacks by node kind. Kinds without an entry are walked through.
type Funcs map[Kind]KindFuncs

func (f Funcs) Enter(c *Cursor) Action {
	if fn := f[c.Kind].Enter; fn != nil {
		return fn(c)
	}
	return Continue
}

func (f Funcs) Leave(c *Cursor) Action {
	if fn := f[c.Kind].Leave; fn != nil {
		return fn(c)
	}
	return Continue
}
