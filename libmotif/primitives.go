package libmotif

import (
	"sort"

	"github.com/2x3systems/gomotif/gomotif"
)

// PowerSet returns every subset of items (including the empty and the full set).
// Subset i holds items[j] for each bit j set in i, so items keep their relative order.
func PowerSet[T any](items []T) [][]T {
	N := len(items)
	subsets := make([][]T, 0, 1<<N)
	for mask := 0; mask < 1<<N; mask++ {
		var subset []T
		for j := 0; j < N; j++ {
			if mask&(1<<j) != 0 {
				subset = append(subset, items[j])
			}
		}
		subsets = append(subsets, subset)
	}
	return subsets
}

// ForEachCombination calls fn with every k-combination of 0..n-1 in lexicographic order.
// idx is reused between calls and must not be retained.
func ForEachCombination(n, k int, fn func(idx []int)) {
	if k < 0 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		fn(idx)

		// Advance the rightmost index that still has room
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// Combinations returns every k-subset of items, each preserving the order of items.
func Combinations[T any](items []T, k int) [][]T {
	var out [][]T
	ForEachCombination(len(items), k, func(idx []int) {
		sub := make([]T, k)
		for i, j := range idx {
			sub[i] = items[j]
		}
		out = append(out, sub)
	})
	return out
}

// IsConnected reports if the given entries, taken as a covering family, join exactly N distinct nodes into a single component.
//
// Two nodes are linked when some entry contains both; entries that share a node are therefore linked.
// An empty family, or one that covers more or fewer than N nodes, is not connected.
func IsConnected(entries [][]gomotif.NodeID, N int) bool {
	parent := make(map[gomotif.NodeID]gomotif.NodeID)

	var find func(v gomotif.NodeID) gomotif.NodeID
	find = func(v gomotif.NodeID) gomotif.NodeID {
		p := parent[v]
		if p == v {
			return v
		}
		root := find(p)
		parent[v] = root
		return root
	}

	for _, e := range entries {
		for _, v := range e {
			if _, exists := parent[v]; !exists {
				parent[v] = v
			}
		}
		for i := 1; i < len(e); i++ {
			ra, rb := find(e[0]), find(e[i])
			if ra != rb {
				parent[rb] = ra
			}
		}
	}

	if len(parent) != N || N == 0 {
		return false
	}

	var root gomotif.NodeID
	first := true
	for v := range parent {
		if first {
			root, first = find(v), false
		} else if find(v) != root {
			return false
		}
	}
	return true
}

// sortedNodeIDs returns the distinct node IDs of the given hyperedges in ascending order.
func sortedNodeIDs(edges []gomotif.Hyperedge) []gomotif.NodeID {
	seen := make(map[gomotif.NodeID]struct{})
	for _, e := range edges {
		for _, v := range e {
			seen[v] = struct{}{}
		}
	}
	ids := make([]gomotif.NodeID, 0, len(seen))
	for v := range seen {
		ids = append(ids, v)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
