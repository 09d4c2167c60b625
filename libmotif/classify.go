package libmotif

import (
	"github.com/2x3systems/gomotif/gomotif"
)

// InducedPattern returns the labeled pattern induced on the given node set: every hyperedge that is a subset
// of the set (with two or more nodes), written over ranks assigned by ascending node ID.
//
// The set must have exactly T.Order members.
func (p *Projection) InducedPattern(T *MotifTable, set NodeSet) Pattern {
	var pat Pattern
	for si, mask := range T.Slots {
		entry := EmptyNodeSet
		n := 0
		for r := 0; r < int(T.Order); r++ {
			if mask&(1<<r) != 0 {
				entry[n] = set[r]
				n++
			}
		}
		if p.Exists(entry) {
			pat |= 1 << si
		}
	}
	return pat
}

// Classify returns the class of the node set's induced pattern.
// If the induced hyperedges do not connect all of the set's nodes, false is returned.
func (p *Projection) Classify(T *MotifTable, set NodeSet) (gomotif.ClassID, bool) {
	class := T.ClassOf(p.InducedPattern(T, set))
	return class, class != 0
}

// counter accumulates a single census invocation.
type counter struct {
	proj   *Projection
	motifs *MotifTable
	acc    Accumulator
	hits   int64 // number of connected sets counted
}

func newCounter(proj *Projection, motifs *MotifTable) *counter {
	return &counter{
		proj:   proj,
		motifs: motifs,
		acc:    motifs.NewAccumulator(),
	}
}

// count classifies the given node set and tallies it if connected.
func (c *counter) count(set NodeSet) bool {
	pat := c.proj.InducedPattern(c.motifs, set)
	if c.motifs.ClassOf(pat) == 0 {
		return false
	}
	c.acc[pat]++
	c.hits++
	return true
}

func (c *counter) census() gomotif.Census {
	return c.motifs.Census(c.acc)
}
