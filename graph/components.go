package graph

import "github.com/DDugDDag/find-route/structs"

//*******************************************
// connected components
//*******************************************

type union_find struct {
	parent []int32
	size   []int32
}

func new_union_find(count int) *union_find {
	parent := make([]int32, count)
	size := make([]int32, count)
	for i := range parent {
		parent[i] = int32(i)
		size[i] = 1
	}
	return &union_find{parent: parent, size: size}
}

func (self *union_find) find(node int32) int32 {
	root := node
	for self.parent[root] != root {
		root = self.parent[root]
	}
	// path compression
	for self.parent[node] != root {
		next := self.parent[node]
		self.parent[node] = root
		node = next
	}
	return root
}

func (self *union_find) union(a, b int32) {
	root_a := self.find(a)
	root_b := self.find(b)
	if root_a == root_b {
		return
	}
	if self.size[root_a] < self.size[root_b] {
		root_a, root_b = root_b, root_a
	}
	self.parent[root_b] = root_a
	self.size[root_a] += self.size[root_b]
}

// ConnectedComponents groups the vertex ids of the graph into weakly
// connected components. Components are ordered by the smallest arena slot
// they contain, members by arena slot.
func ConnectedComponents(g *Graph) [][]int32 {
	count := g.VertexCount()
	uf := new_union_find(count)
	for slot := 0; slot < count; slot++ {
		vertex := g.VertexAt(int32(slot))
		g.ForOutgoingArcs(vertex.ID, func(arc structs.Arc, _ int32) {
			other, _ := g.Slot(arc.Target)
			uf.union(int32(slot), other)
		})
	}

	groups := make(map[int32][]int32)
	roots := make([]int32, 0)
	for slot := 0; slot < count; slot++ {
		root := uf.find(int32(slot))
		if _, ok := groups[root]; !ok {
			roots = append(roots, root)
		}
		groups[root] = append(groups[root], g.VertexAt(int32(slot)).ID)
	}

	components := make([][]int32, 0, len(roots))
	for _, root := range roots {
		components = append(components, groups[root])
	}
	return components
}
