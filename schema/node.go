package schema

import (
	"fmt"
	"slices"
)

// Node describes one object type of a configuration format: its fields,
// in declared order, and the cross-field rules checked on each instance.
//
// Nodes are built once with [NewNode] and never modified afterwards, so a
// node tree can be shared by concurrent validations.
type Node struct {
	index  map[string]int
	name   string
	fields []Field
	rules  []Rule
}

// NewNode returns a [*Node] named name. It panics if a field name repeats or
// a rule refers to a field that is not declared, since both are mistakes in
// a static schema definition.
func NewNode(name string, fields []Field, rules ...Rule) *Node {
	n := &Node{
		name:   name,
		fields: slices.Clone(fields),
		rules:  slices.Clone(rules),
		index:  make(map[string]int, len(fields)),
	}

	for i, f := range n.fields {
		if _, dup := n.index[f.Name]; dup {
			panic(fmt.Sprintf("schema: node %s declares field %q twice", name, f.Name))
		}

		n.index[f.Name] = i
	}

	for _, r := range n.rules {
		for _, name := range r.Fields() {
			if _, ok := n.index[name]; !ok {
				panic(fmt.Sprintf("schema: rule %q on node %s refers to unknown field %q", r, n.name, name))
			}
		}
	}

	return n
}

// Name returns the type name of the node.
func (n *Node) Name() string {
	return n.name
}

// Fields returns the declared fields in order.
func (n *Node) Fields() []Field {
	return slices.Clone(n.fields)
}

// Field returns the field declared under name.
func (n *Node) Field(name string) (Field, bool) {
	i, ok := n.index[name]
	if !ok {
		return Field{}, false
	}

	return n.fields[i], true
}

// Rules returns the cross-field rules in evaluation order.
func (n *Node) Rules() []Rule {
	return slices.Clone(n.rules)
}
