package gomotif

import (
	"fmt"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// Validate returns ErrUnsupportedOrder unless N is in MinOrder..MaxOrder.
func (N Order) Validate() error {
	if N < MinOrder || N > MaxOrder {
		return errors.Wrapf(ErrUnsupportedOrder, "order %d (want %d..%d)", N, MinOrder, MaxOrder)
	}
	return nil
}

var kMethodNames = [...]string{
	MethodHybrid:     "hybrid",
	MethodExhaustive: "exhaustive",
}

var kMergeNames = [...]string{
	MergeMax: "max",
	MergeSum: "sum",
}

func (m Method) String() string {
	if m >= 0 && int(m) < len(kMethodNames) {
		return kMethodNames[m]
	}
	return fmt.Sprintf("Method(%d)", int32(m))
}

// ParseMethod returns the Method named by str ("hybrid" or "exhaustive").
func ParseMethod(str string) (Method, error) {
	for i, name := range kMethodNames {
		if name == str {
			return Method(i), nil
		}
	}
	return 0, errors.Wrapf(ErrBadMethod, "%q", str)
}

func (m MergeMode) String() string {
	if m >= 0 && int(m) < len(kMergeNames) {
		return kMergeNames[m]
	}
	return fmt.Sprintf("MergeMode(%d)", int32(m))
}

// ParseMergeMode returns the MergeMode named by str ("max" or "sum").
func ParseMergeMode(str string) (MergeMode, error) {
	for i, name := range kMergeNames {
		if name == str {
			return MergeMode(i), nil
		}
	}
	return 0, errors.Wrapf(ErrBadMergeMode, "%q", str)
}

// Count returns the count of the given class, or 0 if the class is not in this Census.
func (C Census) Count(class ClassID) int64 {
	// Censuses are dense and one-based so the fast path almost always hits
	if i := int(class) - 1; i >= 0 && i < len(C) && C[i].Class == class {
		return C[i].Count
	}
	for _, ci := range C {
		if ci.Class == class {
			return ci.Count
		}
	}
	return 0
}

// Total returns the sum of all class counts.
func (C Census) Total() int64 {
	total := int64(0)
	for _, ci := range C {
		total += ci.Count
	}
	return total
}

// IsEqual returns true if C and other list the same classes with the same counts.
func (C Census) IsEqual(other Census) bool {
	if len(C) != len(other) {
		return false
	}
	for i := range C {
		if C[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of this Census.
func (C Census) Clone() Census {
	return append(Census(nil), C...)
}

// WriteTSV writes one "class<TAB>count" line per class.
func (C Census) WriteTSV(out io.Writer) error {
	for _, ci := range C {
		if _, err := fmt.Fprintf(out, "%d\t%d\n", ci.Class, ci.Count); err != nil {
			return err
		}
	}
	return nil
}

// MergeCensus reconciles censuses that list the same classes in the same order.
//
// MergeMax takes the per-class maximum: the hybrid passes are not assumed to partition the occurrences,
// so this never exceeds the exhaustive count.  MergeSum adds the passes.
func MergeCensus(mode MergeMode, passes ...Census) (Census, error) {
	if len(passes) == 0 {
		return nil, nil
	}

	out := passes[0].Clone()
	for _, pass := range passes[1:] {
		if len(pass) != len(out) {
			return nil, errors.Wrapf(ErrCensusMismatch, "%d vs %d classes", len(pass), len(out))
		}
		for i, ci := range pass {
			if ci.Class != out[i].Class {
				return nil, errors.Wrapf(ErrCensusMismatch, "class %d vs %d at %d", ci.Class, out[i].Class, i)
			}
			switch mode {
			case MergeMax:
				out[i].Count = max(out[i].Count, ci.Count)
			case MergeSum:
				out[i].Count += ci.Count
			default:
				return nil, errors.Wrapf(ErrBadMergeMode, "%v", mode)
			}
		}
	}
	return out, nil
}

func NewCatalogContext() CatalogContext {
	ctx := &catalogContext{
		openCatalogs: make(map[Catalog]struct{}),
		closing:      make(chan struct{}),
		closed:       make(chan struct{}),
	}
	ctx.openCount.Add(1)
	go func() {
		<-ctx.closing
		ctx.openCount.Done()
		ctx.openCount.Wait()
		close(ctx.closed)
	}()
	return ctx
}

type catalogContext struct {
	mu           sync.Mutex
	closeOnce    sync.Once
	openCount    sync.WaitGroup
	openCatalogs map[Catalog]struct{}
	closing      chan struct{}
	closed       chan struct{}
}

func (ctx *catalogContext) AttachCatalog(cat Catalog) {
	ctx.openCount.Add(1)
	ctx.mu.Lock()
	ctx.openCatalogs[cat] = struct{}{}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) DetachCatalog(cat Catalog) {
	ctx.mu.Lock()
	if _, exists := ctx.openCatalogs[cat]; exists {
		delete(ctx.openCatalogs, cat)
		ctx.openCount.Done()
	}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) Done() <-chan struct{} {
	return ctx.closed
}

func (ctx *catalogContext) Close() {
	ctx.closeOnce.Do(func() {
		ctx.mu.Lock()
		open := make([]Catalog, 0, len(ctx.openCatalogs))
		for cat := range ctx.openCatalogs {
			open = append(open, cat)
		}
		ctx.mu.Unlock()

		// Catalog.Close() detaches itself, so it must be called outside the lock
		for _, cat := range open {
			go cat.Close()
		}
		close(ctx.closing)
	})
}
