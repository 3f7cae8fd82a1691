package visitor

// Cursor describes the node being visited and where it sits.
// A Cursor is only valid during the callback it was passed to, except for
// the Enter/Leave pair of the same node which share one Cursor.
type Cursor struct {
	// Node is the current node, one of the gqlparser AST types (or *language.Document).
	Node any
	// Kind is the node's kind in this position.
	Kind Kind
	// Key is the name of the parent's field holding Node, "" for the root.
	Key string
	// Index is the position of Node in the parent's list, or -1.
	Index int
	// Parent is the parent node, nil for the root.
	Parent any

	w            *walker
	set          func(any)
	replaced     bool
	originalNode any
	originalKind Kind
}

// Path returns the keys and indexes leading from the root to the current node.
func (c *Cursor) Path() []any {
	path := make([]any, len(c.w.path))
	copy(path, c.w.path)
	return path
}

// Ancestors returns the nodes from the root down to the parent of the current node.
func (c *Cursor) Ancestors() []any {
	ancestors := make([]any, len(c.w.ancestors))
	copy(ancestors, c.w.ancestors)
	return ancestors
}

// Replace swaps the current node for n in its parent. When called from Enter,
// the walk continues into n's children.
func (c *Cursor) Replace(n any) {
	if c.set == nil {
		panic("visitor: node cannot be replaced")
	}
	if !c.replaced {
		c.originalNode = c.Node
		c.originalKind = c.Kind
	}
	c.set(n)
	c.Node = n
	c.Kind = replacementKind(n, c.Kind)
	c.replaced = true
}

// Replaced reports whether Replace was called on this cursor.
func (c *Cursor) Replaced() bool {
	return c.replaced
}

// original returns a cursor describing the node as it was before any replacement.
func (c *Cursor) original() *Cursor {
	return &Cursor{
		Node:   c.originalNode,
		Kind:   c.originalKind,
		Key:    c.Key,
		Index:  c.Index,
		Parent: c.Parent,
		w:      c.w,
	}
}

// replacementKind keeps positional kinds (extensions, input fields) when the new node
// has the same shape as the old one.
func replacementKind(n any, previous Kind) Kind {
	k := KindOf(n)
	switch {
	case previous.IsTypeExtension() && k.IsTypeDefinition():
		return k + ScalarTypeExtension - ScalarTypeDefinition
	case previous == InputFieldDefinition && k == FieldDefinition:
		return InputFieldDefinition
	case previous == SchemaExtension && k == SchemaDefinition:
		return SchemaExtension
	}
	return k
}
