package graph

// FindPath runs an A*-style search from start to end over the unit-cost
// graph, using Euclidean 3D distance between node positions as the
// heuristic. Disrupted nodes are impassable and excluded from expansion.
// Returns the node sequence from start to end, or an empty slice when no
// path exists.
//
// Physical node spacing can exceed 1 unit while every edge costs exactly 1,
// so the heuristic is not guaranteed admissible and paths can be suboptimal.
// That matches the behavior agents were tuned against and is kept as is.
func (g *Graph) FindPath(start, end NodeID) []NodeID {
	startNode, ok := g.nodes[start]
	if !ok {
		return nil
	}
	endNode, ok := g.nodes[end]
	if !ok {
		return nil
	}
	if start == end {
		return []NodeID{start}
	}

	endPos := endNode.Position

	open := []NodeID{start}
	inOpen := map[NodeID]bool{start: true}
	cameFrom := make(map[NodeID]NodeID)
	costFromStart := map[NodeID]float64{start: 0}
	estimatedTotal := map[NodeID]float64{start: startNode.Position.DistanceTo(endPos)}

	for len(open) > 0 {
		// Lowest estimated total cost wins; scanning in slice order keeps
		// ties resolved by first-encountered order.
		best := 0
		for i := 1; i < len(open); i++ {
			if estimatedTotal[open[i]] < estimatedTotal[open[best]] {
				best = i
			}
		}
		current := open[best]
		open = append(open[:best], open[best+1:]...)
		inOpen[current] = false

		if current == end {
			return reconstructPath(cameFrom, current)
		}

		for _, nb := range g.adj[current] {
			if g.nodes[nb].Disrupted {
				continue
			}
			tentative := costFromStart[current] + 1
			known, seen := costFromStart[nb]
			if seen && tentative >= known {
				continue
			}
			cameFrom[nb] = current
			costFromStart[nb] = tentative
			estimatedTotal[nb] = tentative + g.nodes[nb].Position.DistanceTo(endPos)
			if !inOpen[nb] {
				open = append(open, nb)
				inOpen[nb] = true
			}
		}
	}

	return nil
}

func reconstructPath(cameFrom map[NodeID]NodeID, current NodeID) []NodeID {
	path := []NodeID{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		current = prev
		path = append(path, current)
	}
	// Reverse in place: cameFrom walks end → start.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
