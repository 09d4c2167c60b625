package libmotif

// Occurrence is a connected node set discovered by Enumerate.
type Occurrence struct {
	Root  int32   // the index the set was grown from (always its least member)
	Nodes NodeSet // the node set, ascending
}

// Enumerate calls emit exactly once for every node set of size n that is connected in the projection graph.
//
// Each root v, in ascending order, grows sets only through neighbors greater than v, so every set is emitted
// from its least member alone.  Within a root, a branch excludes every node already adjacent to its set; these
// were either offered to an earlier sibling or are still queued, so no set is reached by two extension orders.
//
// The frontier and exclusion slices of a branch are never written once formed, so sibling branches share them freely.
// n must be in 2..MaxOrder.
func (p *Projection) Enumerate(n int, emit func(occ Occurrence)) {
	if n < 2 || n > len(NodeSet{}) {
		return
	}
	for v := range p.Adj {
		root := int32(v)
		adj := p.Adj[v]
		ext := adj[upperBound(adj, root):]

		sub := EmptyNodeSet
		sub[0] = root
		p.extend(sub, 1, n, ext, adj, emit)
	}
}

func (p *Projection) extend(sub NodeSet, k, n int, ext, excl []int32, emit func(occ Occurrence)) {
	if k == n {
		emit(Occurrence{
			Root:  sub[0],
			Nodes: MakeNodeSet(sub[:n]...),
		})
		return
	}

	root := sub[0]
	for len(ext) > 0 {
		w := ext[len(ext)-1]
		ext = ext[:len(ext)-1]

		// The next frontier is what remains plus w's neighbors that are new to this branch
		var fresh []int32
		adjW := p.Adj[w]
		for _, u := range adjW[upperBound(adjW, root):] {
			if !containsSorted(excl, u) && !containsNode(sub[:k], u) {
				fresh = append(fresh, u)
			}
		}

		next := sub
		next[k] = w
		p.extend(next, k+1, n, mergeSorted(ext, fresh), mergeSorted(excl, adjW), emit)
	}
}

// upperBound returns the index of the first value in sorted that is greater than v.
func upperBound(sorted []int32, v int32) int {
	lo, hi := 0, len(sorted)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if sorted[mid] <= v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func containsSorted(sorted []int32, v int32) bool {
	i := upperBound(sorted, v)
	return i > 0 && sorted[i-1] == v
}

func containsNode(nodes []int32, v int32) bool {
	for _, u := range nodes {
		if u == v {
			return true
		}
	}
	return false
}

// mergeSorted returns the ascending union of two ascending slices as a new slice (or one of the inputs when the other is empty).
func mergeSorted(a, b []int32) []int32 {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return b
	}
	out := make([]int32, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
