package gomotif

const (

	// MinOrder is the smallest motif order (node count) a census can be run for.
	MinOrder Order = 3

	// MaxOrder is the largest supported motif order.  It bounds the recursion depth of the
	// enumerator and the width of a node tuple.
	MaxOrder Order = 4
)

// NodeID is an opaque, totally ordered node identifier.
type NodeID int64

// Hyperedge is an unordered collection of node identifiers.
//
// A Hyperedge with fewer than two nodes, or with a node listed twice, is tolerated but contributes nothing.
type Hyperedge []NodeID

// Order is the number of nodes in a motif.
type Order int

// ClassID identifies a motif isomorphism class of a given Order.
// IDs are one-based and ascend with the class's canonical representative.
type ClassID int32

// ClassCount is the number of occurrences of a single motif class.
type ClassCount struct {
	Class ClassID
	Count int64
}

// Census holds one ClassCount for every class of an Order, sorted by ascending ClassID.
type Census []ClassCount

// Method selects how a census is computed.
type Method int32

const (
	// MethodHybrid enumerates node sets inside large hyperedges directly and backtracks only over the remainder.
	MethodHybrid Method = iota

	// MethodExhaustive runs the backtracking enumerator over the whole projection graph.
	MethodExhaustive
)

// MergeMode selects how the hybrid passes are reconciled into one Census.
type MergeMode int32

const (
	// MergeMax takes the per-class maximum across passes.
	MergeMax MergeMode = iota

	// MergeSum adds the per-class counts of all passes.
	MergeSum
)

// CensusOpts specifies params for running a census.
type CensusOpts struct {
	Order      Order     // motif order, MinOrder..MaxOrder
	Method     Method    // MethodHybrid or MethodExhaustive
	Merge      MergeMode // how hybrid passes are reconciled (ignored for MethodExhaustive)
	VisitedLSM bool      // if set, the hybrid visited set is kept in a badger LSM rather than a map
	VisitedDir string    // omit for an in-memory LSM (only used when VisitedLSM is set)
}

// DefaultCensusOpts is an order 3 hybrid census with max reconciliation.
var DefaultCensusOpts = CensusOpts{
	Order:  MinOrder,
	Method: MethodHybrid,
	Merge:  MergeMax,
}

// CensusJob is a single, independent census invocation.
type CensusJob struct {
	Label string
	Edges []Hyperedge
	Opts  CensusOpts
}

// CensusResult is the outcome of a CensusJob.
type CensusResult struct {
	Index  int    // position of the job in its submission order
	Label  string // CensusJob.Label
	Opts   CensusOpts
	Census Census
	Err    error
}

// CensusRecord is a Census as persisted in a Catalog.
type CensusRecord struct {
	Label         string
	Order         Order
	Method        Method
	Merge         MergeMode
	NumHyperedges int64
	Census        Census
}

// OnRecordHit is used to return CensusRecords meeting a selection.
// Ownership of a record travels through the channel.
type OnRecordHit chan<- *CensusRecord

// CatalogOpts specifies params for opening a census Catalog
type CatalogOpts struct {
	DbPathName string // omit for in-memory db
	ReadOnly   bool   // open in read-only mode
}

// Catalog wraps a database of census records keyed by (Order, Label).
type Catalog interface {

	// Put stores the given record, replacing any record with the same Order and Label.
	Put(rec *CensusRecord) error

	// Get returns the record for the given Order and Label, or ErrRecordNotFound.
	Get(order Order, label string) (*CensusRecord, error)

	// Select sends each record of the given Order to onHit, in label order.
	// An Order of 0 selects records of every order.
	Select(order Order, onHit OnRecordHit) error

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	Close() error
}

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Closes all open catalogs then closes.
	Close()

	// Signals when Close() completed and all open Catalogs have been closed
	Done() <-chan struct{}
}
