package graph

// Components returns the number of weakly connected components in sg.
// Relationships are treated as undirected; isolated nodes form components
// of size one. An extracted document normally yields exactly one component
// (everything hangs off the root element), so a higher count in a summary
// points at merge or collection rules detaching parts of the tree.
func Components(sg *Subgraph) int {
	if sg == nil || len(sg.Nodes) == 0 {
		return 0
	}

	adj := make([][]int, len(sg.Nodes))
	for _, r := range sg.Relationships {
		adj[r.Source] = append(adj[r.Source], r.Target)
		adj[r.Target] = append(adj[r.Target], r.Source)
	}

	visited := make([]bool, len(sg.Nodes))
	count := 0
	for i := range sg.Nodes {
		if visited[i] {
			continue
		}
		count++
		// BFS over the undirected adjacency.
		queue := []int{i}
		visited[i] = true
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			for _, nb := range adj[n] {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
	}
	return count
}
