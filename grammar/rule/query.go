package rule

// CompletionStatus reports whether a rule residual denotes a fully matched
// token at the current position and, if so, at which precedence.
// PrecedenceSet distinguishes a declared precedence of zero from the default
// level; an enclosing wrapper only applies its precedence when the content
// declared none.
type CompletionStatus struct {
	Done          bool
	Precedence    int
	PrecedenceSet bool
}

// PrecedenceRange is the interval of declared precedences observed within a
// rule subtree or across an item set. The zero value is the empty interval.
type PrecedenceRange struct {
	Min int
	Max int
	Set bool
}

func (r PrecedenceRange) Add(v int) PrecedenceRange {
	if !r.Set {
		return PrecedenceRange{Min: v, Max: v, Set: true}
	}
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}

func (r PrecedenceRange) Merge(o PrecedenceRange) PrecedenceRange {
	if !o.Set {
		return r
	}
	return r.Add(o.Min).Add(o.Max)
}

// Nullable reports whether the rule matches the empty string.
func (a *Arena) Nullable(id ID) bool {
	n := a.node(id)
	switch n.kind {
	case nodeKindBlank, nodeKindRepeat:
		return true
	case nodeKindCharSet:
		return false
	case nodeKindSeq:
		for _, m := range n.members {
			if !a.Nullable(m) {
				return false
			}
		}
		return true
	case nodeKindChoice:
		for _, m := range n.members {
			if a.Nullable(m) {
				return true
			}
		}
		return false
	case nodeKindMetadata:
		return a.Nullable(n.content)
	}
	return false
}

// CompletionStatus computes the completion status of a rule residual.
//
// A sequence is complete when all of its members are, and reports the
// precedence of its last member; the synthesized `separator, token` items
// thereby report the token's precedence, not the separator sentinel. A choice
// reports its first complete alternative. A metadata node applies its own
// precedence only when the content declared none, so an inner wrapper always
// shadows an outer one.
func (a *Arena) CompletionStatus(id ID) CompletionStatus {
	n := a.node(id)
	switch n.kind {
	case nodeKindBlank, nodeKindRepeat:
		return CompletionStatus{Done: true}
	case nodeKindCharSet:
		return CompletionStatus{}
	case nodeKindSeq:
		var last CompletionStatus
		for _, m := range n.members {
			last = a.CompletionStatus(m)
			if !last.Done {
				return CompletionStatus{}
			}
		}
		return last
	case nodeKindChoice:
		for _, m := range n.members {
			if st := a.CompletionStatus(m); st.Done {
				return st
			}
		}
		return CompletionStatus{}
	case nodeKindMetadata:
		st := a.CompletionStatus(n.content)
		if st.Done && n.params.PrecedenceSet && !st.PrecedenceSet {
			st.Precedence = n.params.Precedence
			st.PrecedenceSet = true
		}
		return st
	}
	return CompletionStatus{}
}

// PrecedenceRange folds the declared precedences of every metadata node
// reachable within the subtree.
func (a *Arena) PrecedenceRange(id ID) PrecedenceRange {
	var r PrecedenceRange
	n := a.node(id)
	switch n.kind {
	case nodeKindSeq, nodeKindChoice:
		for _, m := range n.members {
			r = r.Merge(a.PrecedenceRange(m))
		}
	case nodeKindRepeat:
		r = r.Merge(a.PrecedenceRange(n.content))
	case nodeKindMetadata:
		if n.params.PrecedenceSet {
			r = r.Add(n.params.Precedence)
		}
		r = r.Merge(a.PrecedenceRange(n.content))
	}
	return r
}

// HasTokenStart reports whether the subtree still carries an unconsumed
// token-start marker. Since the derivative clears the marker on the first
// consumed character, a residual carrying one sits at the start of a fresh
// token attempt.
func (a *Arena) HasTokenStart(id ID) bool {
	n := a.node(id)
	switch n.kind {
	case nodeKindSeq, nodeKindChoice:
		for _, m := range n.members {
			if a.HasTokenStart(m) {
				return true
			}
		}
	case nodeKindRepeat:
		return a.HasTokenStart(n.content)
	case nodeKindMetadata:
		if n.params.TokenStart {
			return true
		}
		return a.HasTokenStart(n.content)
	}
	return false
}
