// Short-term path memory — a bounded FIFO of recently visited nodes used to
// bias exploration away from immediate backtracking.
package ants

import "github.com/talgya/anthive/internal/graph"

// Memory remembers the last cap visited node ids, oldest first.
type Memory struct {
	nodes []graph.NodeID
	cap   int
}

// NewMemory creates a memory holding at most cap entries.
func NewMemory(cap int) Memory {
	if cap < 1 {
		cap = 1
	}
	return Memory{cap: cap}
}

// Push records a visited node, evicting the oldest entry when full.
// A node already at the tail is not duplicated.
func (m *Memory) Push(id graph.NodeID) {
	if n := len(m.nodes); n > 0 && m.nodes[n-1] == id {
		return
	}
	m.nodes = append(m.nodes, id)
	if len(m.nodes) > m.cap {
		m.nodes = m.nodes[1:]
	}
}

// Contains reports whether a node is remembered.
func (m *Memory) Contains(id graph.NodeID) bool {
	for _, n := range m.nodes {
		if n == id {
			return true
		}
	}
	return false
}

// Reset clears the memory down to a single entry.
func (m *Memory) Reset(id graph.NodeID) {
	m.nodes = m.nodes[:0]
	m.nodes = append(m.nodes, id)
}

// Len returns the number of remembered nodes.
func (m *Memory) Len() int {
	return len(m.nodes)
}
