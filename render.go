package zetacalc

import (
	"io"
	"strconv"
	"strings"
)

// Box-drawing pieces for Tree. Each is four columns wide.
const (
	treeBranch = "├── "
	treeLast   = "└── "
	treePipe   = "│   "
	treeBlank  = "    "
)

// Tree renders the expression as lines of a box-drawing tree, root first.
// Operators are labeled ADD, SUB, MUL, DIV, POW, CONJ, and ROOT(n); variables
// as Var(name); constants by their value.
//
//	ADD
//	├── 2.00
//	└── Var(z)
func (e *Expr) Tree() []string {
	var lines []string
	e.n.tree(func(s string) { lines = append(lines, s) }, "", "")
	return lines
}

// WriteTree writes the lines of Tree to w, each followed by a newline.
func (e *Expr) WriteTree(w io.Writer) error {
	var err error
	e.n.tree(func(s string) {
		if err == nil {
			_, err = io.WriteString(w, s+"\n")
		}
	}, "", "")
	return err
}

// tree emits the node's line with the given lead, then its children indented
// by indent.
func (n *node) tree(emit func(string), lead, indent string) {
	emit(lead + n.label())
	kids := n.children()
	for i, k := range kids {
		if i == len(kids)-1 {
			k.tree(emit, indent+treeLast, indent+treeBlank)
		} else {
			k.tree(emit, indent+treeBranch, indent+treePipe)
		}
	}
}

func (n *node) label() string {
	switch n.kind {
	case nodeConst:
		return n.val.String()
	case nodeVar:
		return "Var(" + n.name + ")"
	case nodeAdd:
		return "ADD"
	case nodeSub:
		return "SUB"
	case nodeMul:
		return "MUL"
	case nodeDiv:
		return "DIV"
	case nodePow:
		return "POW"
	case nodeConj:
		return "CONJ"
	case nodeRoot:
		return "ROOT(" + strconv.Itoa(n.deg) + ")"
	default:
		panic("zetacalc: invalid node kind " + n.kind.String())
	}
}

// Prefix serializes the expression in fully parenthesized prefix notation:
// "(+ a b)" for binary operators, "(conj a)", and "(root n a)" with the
// degree before the operand. Constants are written as by Complex.String.
func (e *Expr) Prefix() string {
	var b strings.Builder
	e.n.prefix(&b)
	return b.String()
}

func (n *node) prefix(b *strings.Builder) {
	switch n.kind {
	case nodeConst:
		b.WriteString(n.val.String())
	case nodeVar:
		b.WriteString(n.name)
	case nodeConj:
		b.WriteString("(conj ")
		n.left.prefix(b)
		b.WriteByte(')')
	case nodeRoot:
		b.WriteString("(root ")
		b.WriteString(strconv.Itoa(n.deg))
		b.WriteByte(' ')
		n.left.prefix(b)
		b.WriteByte(')')
	default:
		b.WriteByte('(')
		b.WriteString(opsym(n.kind))
		b.WriteByte(' ')
		n.left.prefix(b)
		b.WriteByte(' ')
		n.right.prefix(b)
		b.WriteByte(')')
	}
}
