package commandparser

import (
	"sort"
	"strings"
)

// Namespace maps argument names to the tokens bound to them. Optional arguments that
// were not supplied are absent.
type Namespace struct {
	args map[string][]string
}

// Lookup returns the tokens bound to name and whether name was bound at all.
func (n *Namespace) Lookup(name string) ([]string, bool) {
	v, ok := n.args[name]
	return v, ok
}

// Has reports whether name was bound, possibly to no tokens.
func (n *Namespace) Has(name string) bool {
	_, ok := n.args[name]
	return ok
}

// String returns the tokens bound to name joined with a space.
func (n *Namespace) String(name string) string {
	return strings.Join(n.args[name], " ")
}

// Names returns the bound argument names in sorted order.
func (n *Namespace) Names() []string {
	var names []string
	for k := range n.args {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bound arguments.
func (n *Namespace) Len() int {
	return len(n.args)
}
