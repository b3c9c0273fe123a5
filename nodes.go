package zetacalc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Each node owns
// its children exclusively, and nodes are never modified after parsing.
type node struct {
	kind nodeKind

	val  Complex // nodeConst
	name string  // nodeVar
	deg  int     // nodeRoot

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeConst // val
	nodeVar   // lookup(name)

	nodeAdd // left + right
	nodeSub // left - right
	nodeMul // left * right
	nodeDiv // left / right
	nodePow // left ^ int(real(right))

	nodeConj // conj(left)
	nodeRoot // principal deg-th root of left
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=nodeKind -trimprefix=node
//go:generate go mod tidy

// binary reports whether nodes of kind k have both children.
func (k nodeKind) binary() bool {
	return nodeAdd <= k && k <= nodePow
}

// children returns the node's subtrees in order.
func (n *node) children() []*node {
	switch {
	case n.kind.binary():
		return []*node{n.left, n.right}
	case n.kind == nodeConj, n.kind == nodeRoot:
		return []*node{n.left}
	default:
		return nil
	}
}

// equal reports whether two trees are structurally equal, comparing
// constants with Complex.Equal.
func (n *node) equal(m *node) bool {
	if n == nil || m == nil {
		return n == m
	}
	if n.kind != m.kind {
		return false
	}
	switch n.kind {
	case nodeConst:
		return n.val.Equal(m.val)
	case nodeVar:
		return n.name == m.name
	case nodeRoot:
		if n.deg != m.deg {
			return false
		}
	}
	return n.left.equal(m.left) && n.right.equal(m.right)
}

// hasvars reports whether any variable appears in the tree.
func (n *node) hasvars() bool {
	if n == nil {
		return false
	}
	if n.kind == nodeVar {
		return true
	}
	return n.left.hasvars() || n.right.hasvars()
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the infix form of the tree with every term parenthesized.
func (n *node) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeConst:
		b.WriteString(n.val.String())
	case nodeVar:
		b.WriteString(n.name)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(opsym(n.kind))
		b.WriteByte(' ')
		n.right.fmt(b)
	case nodeConj:
		b.WriteString("conj")
		n.left.fmt(b)
	case nodeRoot:
		b.WriteString("raiz(")
		n.left.fmt(b)
		b.WriteString(", ")
		b.WriteString(strconv.Itoa(n.deg))
		b.WriteByte(')')
	default:
		panic("zetacalc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// opsym gets the operator symbol for a binary node kind.
func opsym(k nodeKind) string {
	switch k {
	case nodeAdd:
		return "+"
	case nodeSub:
		return "-"
	case nodeMul:
		return "*"
	case nodeDiv:
		return "/"
	case nodePow:
		return "^"
	default:
		panic("zetacalc: no operator symbol for " + k.String())
	}
}
