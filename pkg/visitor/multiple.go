package visitor

type stopped struct{}

// Multiple runs several visitors in one walk. Each visitor keeps its own control flow:
// a Skip only hides the subtree from the visitor that asked for it and a Break only
// silences that visitor, the others keep receiving callbacks.
func Multiple(visitors ...Visitor) Visitor {
	return &multiple{
		visitors: visitors,
		skipping: make([]any, len(visitors)),
	}
}

type multiple struct {
	visitors []Visitor
	// skipping holds, per visitor, the cursor of the subtree it skipped or stopped{}.
	skipping []any
}

func (m *multiple) Enter(c *Cursor) Action {
	for i, v := range m.visitors {
		if m.skipping[i] != nil {
			continue
		}
		switch v.Enter(c) {
		case Skip:
			m.skipping[i] = c
		case Break:
			m.skipping[i] = stopped{}
		}
	}
	if m.allStopped() {
		return Break
	}
	return Continue
}

func (m *multiple) Leave(c *Cursor) Action {
	for i, v := range m.visitors {
		switch m.skipping[i] {
		case nil:
			if v.Leave(c) == Break {
				m.skipping[i] = stopped{}
			}
		case c:
			m.skipping[i] = nil
		}
	}
	if m.allStopped() {
		return Break
	}
	return Continue
}

func (m *multiple) allStopped() bool {
	if len(m.visitors) == 0 {
		return false
	}
	for _, s := range m.skipping {
		if _, ok := s.(stopped); !ok {
			return false
		}
	}
	return true
}
