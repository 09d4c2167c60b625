package libmotif

import (
	"math/bits"
	"sort"
	"strings"
	"sync"

	"github.com/2x3systems/gomotif/gomotif"
)

// Pattern is a labeled hypergraph pattern over ranks 1..N.
//
// Bit i of a Pattern is set when the rank subset MotifTable.Slots[i] is an entry of the pattern.
// A slot is a bitmask over ranks (bit r denotes rank r+1) with at least two ranks.
type Pattern uint16

// MotifClass is a single isomorphism class of connected patterns.
type MotifClass struct {
	ID        gomotif.ClassID
	Repr      Pattern   // lexicographically least labeling of this class
	Labelings []Pattern // every labeling reachable by a permutation of 1..N, ascending
}

// MotifTable holds every isomorphism class of connected patterns for one order along with the lookup from a labeled pattern to its class.
//
// The lookup is complete over all permutations of 1..N, which is what allows occurrences to be labeled by
// ascending node ID (a fixed and non-minimal rule) and still classify correctly.
// A MotifTable is immutable and shared; see GenerateMotifs().
type MotifTable struct {
	Order   gomotif.Order
	Slots   []uint8 // slot index => rank mask
	Classes []MotifClass

	fullMask byte
	slotOf   [1 << gomotif.MaxOrder]int8 // rank mask => slot index (or -1)
	classOf  []gomotif.ClassID           // Pattern => ClassID (0 if not connected)
}

// Accumulator counts occurrences per labeled Pattern.
type Accumulator []int64

var gMotifTables [gomotif.MaxOrder + 1]struct {
	once  sync.Once
	table *MotifTable
}

// GenerateMotifs returns the MotifTable for order N.
//
// Tables are computed once per order on first use and shared thereafter.
func GenerateMotifs(N gomotif.Order) (*MotifTable, error) {
	if err := N.Validate(); err != nil {
		return nil, err
	}
	entry := &gMotifTables[N]
	entry.once.Do(func() {
		entry.table = buildMotifTable(N)
	})
	return entry.table, nil
}

func buildMotifTable(N gomotif.Order) *MotifTable {
	T := &MotifTable{
		Order:    N,
		fullMask: byte(1<<N - 1),
	}
	for i := range T.slotOf {
		T.slotOf[i] = -1
	}
	for mask := uint8(1); mask <= T.fullMask; mask++ {
		if bits.OnesCount8(mask) >= 2 {
			T.slotOf[mask] = int8(len(T.Slots))
			T.Slots = append(T.Slots, mask)
		}
	}

	numPatterns := 1 << len(T.Slots)
	T.classOf = make([]gomotif.ClassID, numPatterns)
	perms := permutations(int(N))

	// Discover each orbit once; classOf temporarily marks orbit members with a nonzero placeholder.
	var classes []MotifClass
	for p := 0; p < numPatterns; p++ {
		pat := Pattern(p)
		if T.classOf[pat] != 0 || !T.isConnected(pat) {
			continue
		}
		orbit := make(map[Pattern]struct{}, len(perms))
		for _, perm := range perms {
			orbit[T.relabel(pat, perm)] = struct{}{}
		}
		class := MotifClass{
			Labelings: make([]Pattern, 0, len(orbit)),
		}
		for labeling := range orbit {
			class.Labelings = append(class.Labelings, labeling)
			T.classOf[labeling] = -1
		}
		sort.Slice(class.Labelings, func(i, j int) bool { return class.Labelings[i] < class.Labelings[j] })
		class.Repr = class.Labelings[0]
		for _, labeling := range class.Labelings[1:] {
			if T.ComparePatterns(labeling, class.Repr) < 0 {
				class.Repr = labeling
			}
		}
		classes = append(classes, class)
	}

	sort.Slice(classes, func(i, j int) bool {
		return T.ComparePatterns(classes[i].Repr, classes[j].Repr) < 0
	})
	for i := range classes {
		classes[i].ID = gomotif.ClassID(i + 1)
		for _, labeling := range classes[i].Labelings {
			T.classOf[labeling] = classes[i].ID
		}
	}
	T.Classes = classes
	return T
}

// NumClasses returns the number of isomorphism classes of this order.
func (T *MotifTable) NumClasses() int {
	return len(T.Classes)
}

// ClassOf returns the class of the given labeled pattern, or 0 if the pattern is not connected.
func (T *MotifTable) ClassOf(pat Pattern) gomotif.ClassID {
	if int(pat) >= len(T.classOf) {
		return 0
	}
	return T.classOf[pat]
}

// Class returns the MotifClass with the given ID, or nil if there is none.
func (T *MotifTable) Class(ID gomotif.ClassID) *MotifClass {
	if ID < 1 || int(ID) > len(T.Classes) {
		return nil
	}
	return &T.Classes[ID-1]
}

// NewAccumulator returns a zeroed count for every labeled pattern of this order.
func (T *MotifTable) NewAccumulator() Accumulator {
	return make(Accumulator, len(T.classOf))
}

// Census sums the given per-labeling counts into one count per class.
func (T *MotifTable) Census(acc Accumulator) gomotif.Census {
	out := make(gomotif.Census, len(T.Classes))
	for i := range T.Classes {
		class := &T.Classes[i]
		count := int64(0)
		for _, labeling := range class.Labelings {
			count += acc[labeling]
		}
		out[i] = gomotif.ClassCount{
			Class: class.ID,
			Count: count,
		}
	}
	return out
}

// ZeroCensus returns a census of this order with every count set to 0.
func (T *MotifTable) ZeroCensus() gomotif.Census {
	out := make(gomotif.Census, len(T.Classes))
	for i := range T.Classes {
		out[i].Class = T.Classes[i].ID
	}
	return out
}

// PatternFromEntries forms the labeled pattern with the given entries, each a list of ranks 1..N.
// Entries with fewer than two distinct ranks or with a rank out of range are ignored.
func (T *MotifTable) PatternFromEntries(entries [][]int) Pattern {
	var pat Pattern
	for _, e := range entries {
		mask := uint8(0)
		valid := true
		for _, r := range e {
			if r < 1 || r > int(T.Order) {
				valid = false
				break
			}
			mask |= 1 << (r - 1)
		}
		if valid && T.slotOf[mask] >= 0 {
			pat |= 1 << T.slotOf[mask]
		}
	}
	return pat
}

// Entries returns the rank masks of the given pattern sorted by rank tuple.
func (T *MotifTable) Entries(pat Pattern) []uint8 {
	entries := make([]uint8, 0, bits.OnesCount16(uint16(pat)))
	for i, mask := range T.Slots {
		if pat&(1<<i) != 0 {
			entries = append(entries, mask)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return compareEntries(entries[i], entries[j]) < 0 })
	return entries
}

// PatternString renders the given pattern such as "{12,123}".
func (T *MotifTable) PatternString(pat Pattern) string {
	b := strings.Builder{}
	b.WriteByte('{')
	for i, mask := range T.Entries(pat) {
		if i > 0 {
			b.WriteByte(',')
		}
		for r := 0; r < int(T.Order); r++ {
			if mask&(1<<r) != 0 {
				b.WriteByte(byte('1' + r))
			}
		}
	}
	b.WriteByte('}')
	return b.String()
}

// ComparePatterns orders patterns by their sorted entry tuples, with a proper prefix ordering first.
func (T *MotifTable) ComparePatterns(a, b Pattern) int {
	ea, eb := T.Entries(a), T.Entries(b)
	for i := 0; i < len(ea) && i < len(eb); i++ {
		if d := compareEntries(ea[i], eb[i]); d != 0 {
			return d
		}
	}
	return len(ea) - len(eb)
}

// compareEntries orders two rank masks as ascending rank tuples, e.g. (1,2) < (1,2,3) < (1,3).
func compareEntries(a, b uint8) int {
	for a != 0 && b != 0 {
		ra, rb := bits.TrailingZeros8(a), bits.TrailingZeros8(b)
		if ra != rb {
			return ra - rb
		}
		a &= a - 1
		b &= b - 1
	}
	return int(bits.OnesCount8(a)) - int(bits.OnesCount8(b))
}

// isConnected reports if the entries of pat link all N ranks into one component.
func (T *MotifTable) isConnected(pat Pattern) bool {
	var entries [16]uint8
	n := 0
	for i, mask := range T.Slots {
		if pat&(1<<i) != 0 {
			entries[n] = mask
			n++
		}
	}
	return spansRanks(entries[:n], T.fullMask)
}

// spansRanks reports if the given rank masks, joined wherever they overlap, cover exactly full.
func spansRanks(entries []uint8, full uint8) bool {
	if len(entries) == 0 {
		return false
	}
	comp := entries[0]
	used := uint32(1)
	for grew := true; grew; {
		grew = false
		for i, e := range entries {
			if used&(1<<i) == 0 && e&comp != 0 {
				comp |= e
				used |= 1 << i
				grew = true
			}
		}
	}
	return comp == full
}

// relabel maps each rank r of pat to rank perm[r] (zero-based).
func (T *MotifTable) relabel(pat Pattern, perm []int) Pattern {
	var out Pattern
	for i, mask := range T.Slots {
		if pat&(1<<i) == 0 {
			continue
		}
		permuted := uint8(0)
		for r := range perm {
			if mask&(1<<r) != 0 {
				permuted |= 1 << perm[r]
			}
		}
		out |= 1 << T.slotOf[permuted]
	}
	return out
}

// permutations returns every permutation of 0..n-1.
func permutations(n int) [][]int {
	var out [][]int
	perm := make([]int, n)
	used := make([]bool, n)
	var visit func(pos int)
	visit = func(pos int) {
		if pos == n {
			out = append(out, append([]int(nil), perm...))
			return
		}
		for v := 0; v < n; v++ {
			if !used[v] {
				used[v] = true
				perm[pos] = v
				visit(pos + 1)
				used[v] = false
			}
		}
	}
	visit(0)
	return out
}
