package core

import "sort"

// NodeSet is an unordered set of nodes.
type NodeSet map[*Node]struct{}

// NewNodeSet creates a set holding nodes.
func NewNodeSet(nodes ...*Node) NodeSet {
	s := make(NodeSet, len(nodes))
	for _, n := range nodes {
		s.Add(n)
	}
	return s
}

func (s NodeSet) Add(n *Node)           { s[n] = struct{}{} }
func (s NodeSet) Contains(n *Node) bool { _, ok := s[n]; return ok }
func (s NodeSet) Len() int              { return len(s) }

// IsSubsetOf reports whether every node of s is in other.
func (s NodeSet) IsSubsetOf(other NodeSet) bool {
	for n := range s {
		if !other.Contains(n) {
			return false
		}
	}
	return true
}

// Sorted returns the nodes in row-major order.
func (s NodeSet) Sorted() []*Node {
	out := make([]*Node, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Position, out[j].Position
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return out
}

// Coordinates returns the positions of the nodes in row-major order.
func (s NodeSet) Coordinates() []Coordinate {
	nodes := s.Sorted()
	out := make([]Coordinate, len(nodes))
	for i, n := range nodes {
		out[i] = n.Position
	}
	return out
}
