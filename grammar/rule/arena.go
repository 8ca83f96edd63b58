// Package rule implements the rule tree model of a lexical grammar: immutable,
// structurally shared nodes held in a write-once arena, along with the queries
// the lex table builder performs over rule residuals.
package rule

import (
	"encoding/binary"
	"fmt"
)

// ID addresses a node of an Arena. Two IDs of the same arena are equal iff
// the trees they address are structurally equal.
type ID int32

const IDNil = ID(0)

func (id ID) Int() int {
	return int(id)
}

type nodeKind int8

const (
	nodeKindBlank = nodeKind(iota + 1)
	nodeKindCharSet
	nodeKindSeq
	nodeKindChoice
	nodeKindRepeat
	nodeKindMetadata
)

// MetadataParams are the properties a metadata node attaches to its subtree.
type MetadataParams struct {
	// TokenStart marks the position before a fresh token attempt. The
	// derivative operation clears it as soon as a character is consumed.
	TokenStart bool

	Precedence    int
	PrecedenceSet bool
}

type node struct {
	kind    nodeKind
	chars   CharacterSet
	members []ID
	content ID
	params  MetadataParams
}

// Arena is a write-once store of rule nodes. Nodes are hash-consed: building
// the same tree twice yields the same ID, so structural equality of residuals
// reduces to ID comparison and interned item sets can be fingerprinted over
// IDs alone.
type Arena struct {
	nodes []node
	ids   map[string]ID
}

func NewArena() *Arena {
	return &Arena{
		// The slot 0 is reserved so that IDNil never addresses a node.
		nodes: make([]node, 1),
		ids:   map[string]ID{},
	}
}

func (a *Arena) intern(n node) ID {
	k := internKey(n)
	if id, ok := a.ids[k]; ok {
		return id
	}
	id := ID(len(a.nodes))
	a.nodes = append(a.nodes, n)
	a.ids[k] = id
	return id
}

func internKey(n node) string {
	b := []byte{byte(n.kind)}
	for _, r := range n.chars.ranges {
		b = append(b, r.From, r.To)
	}
	for _, m := range n.members {
		b = binary.LittleEndian.AppendUint32(b, uint32(m))
	}
	b = binary.LittleEndian.AppendUint32(b, uint32(n.content))
	if n.params.TokenStart {
		b = append(b, 1)
	} else {
		b = append(b, 0)
	}
	if n.params.PrecedenceSet {
		b = append(b, 1)
		b = binary.LittleEndian.AppendUint64(b, uint64(n.params.Precedence))
	} else {
		b = append(b, 0)
	}
	return string(b)
}

func (a *Arena) node(id ID) *node {
	return &a.nodes[id]
}

// Blank returns the rule matching the empty string.
func (a *Arena) Blank() ID {
	return a.intern(node{
		kind: nodeKindBlank,
	})
}

// CharSet returns the rule matching one byte drawn from cs.
func (a *Arena) CharSet(cs CharacterSet) ID {
	return a.intern(node{
		kind:  nodeKindCharSet,
		chars: cs,
	})
}

// Seq returns the rule matching its members in order. Blank members are
// dropped, nested sequences are flattened, and the degenerate shapes collapse
// to their simpler equivalents.
func (a *Arena) Seq(members ...ID) ID {
	var ms []ID
	for _, m := range members {
		n := a.node(m)
		switch n.kind {
		case nodeKindBlank:
			continue
		case nodeKindSeq:
			ms = append(ms, n.members...)
		default:
			ms = append(ms, m)
		}
	}
	if len(ms) == 0 {
		return a.Blank()
	}
	if len(ms) == 1 {
		return ms[0]
	}
	return a.intern(node{
		kind:    nodeKindSeq,
		members: ms,
	})
}

// Choice returns the rule matching any one of its members. Nested choices are
// flattened and duplicated members are dropped, keeping the first occurrence
// so that the order of alternatives stays stable.
func (a *Arena) Choice(members ...ID) ID {
	var ms []ID
	seen := map[ID]struct{}{}
	for _, m := range members {
		n := a.node(m)
		var flat []ID
		if n.kind == nodeKindChoice {
			flat = n.members
		} else {
			flat = []ID{m}
		}
		for _, f := range flat {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			ms = append(ms, f)
		}
	}
	if len(ms) == 0 {
		return a.Blank()
	}
	if len(ms) == 1 {
		return ms[0]
	}
	return a.intern(node{
		kind:    nodeKindChoice,
		members: ms,
	})
}

// Repeat returns the rule matching its content zero or more times.
func (a *Arena) Repeat(content ID) ID {
	return a.intern(node{
		kind:    nodeKindRepeat,
		content: content,
	})
}

// Metadata wraps content with params. The wrapper survives the derivative
// operation, so properties like a declared precedence remain visible on a
// residual after characters have been consumed.
func (a *Arena) Metadata(content ID, params MetadataParams) ID {
	if params == (MetadataParams{}) {
		return content
	}
	return a.intern(node{
		kind:    nodeKindMetadata,
		content: content,
		params:  params,
	})
}

// TopAlternatives splits a rule into its top-level alternatives: the members
// when the rule is a choice, otherwise the rule itself.
func (a *Arena) TopAlternatives(id ID) []ID {
	n := a.node(id)
	if n.kind != nodeKindChoice {
		return []ID{id}
	}
	ms := make([]ID, len(n.members))
	copy(ms, n.members)
	return ms
}

func (a *Arena) String(id ID) string {
	n := a.node(id)
	switch n.kind {
	case nodeKindBlank:
		return "blank"
	case nodeKindCharSet:
		return n.chars.String()
	case nodeKindSeq:
		s := "seq("
		for i, m := range n.members {
			if i > 0 {
				s += ", "
			}
			s += a.String(m)
		}
		return s + ")"
	case nodeKindChoice:
		s := "choice("
		for i, m := range n.members {
			if i > 0 {
				s += ", "
			}
			s += a.String(m)
		}
		return s + ")"
	case nodeKindRepeat:
		return "repeat(" + a.String(n.content) + ")"
	case nodeKindMetadata:
		return "metadata(" + a.String(n.content) + ")"
	}
	return fmt.Sprintf("unknown(%v)", id)
}
