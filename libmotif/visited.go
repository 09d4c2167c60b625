package libmotif

import (
	"encoding/binary"

	"github.com/2x3systems/gomotif/gomotif"
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
)

// VisitedSet records node sets already handled by an earlier census pass.
type VisitedSet interface {

	// TryAdd adds the given node set if it is not already present.
	//
	// If set is already in this VisitedSet, this call has no effect and TryAdd() returns false.
	// If set isn't in this VisitedSet, it is added and TryAdd() returns true.
	TryAdd(set NodeSet) bool

	// Has reports if the given node set has been added.
	Has(set NodeSet) bool

	// Len returns the number of node sets added.
	Len() int64

	// Err returns the first storage error encountered, if any.
	Err() error

	// Close releases all resources.  After one or more calls to TryAdd(), call Close() for cleanup.
	Close() error
}

// NewVisitedSet returns the VisitedSet selected by the given options.
func NewVisitedSet(opts gomotif.CensusOpts) (VisitedSet, error) {
	if !opts.VisitedLSM {
		return &mapSet{
			sets: make(map[NodeSet]struct{}),
		}, nil
	}

	dbOpts := badger.DefaultOptions(opts.VisitedDir)
	if len(opts.VisitedDir) == 0 {
		dbOpts = dbOpts.WithInMemory(true)
	}
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false
	dbOpts.DetectConflicts = false

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrap(err, "opening visited set")
	}
	return &lsmSet{db: db}, nil
}

type mapSet struct {
	sets map[NodeSet]struct{}
}

func (set *mapSet) TryAdd(nodes NodeSet) bool {
	if _, exists := set.sets[nodes]; exists {
		return false
	}
	set.sets[nodes] = struct{}{}
	return true
}

func (set *mapSet) Has(nodes NodeSet) bool {
	_, exists := set.sets[nodes]
	return exists
}

func (set *mapSet) Len() int64 {
	return int64(len(set.sets))
}

func (set *mapSet) Err() error {
	return nil
}

func (set *mapSet) Close() error {
	set.sets = nil
	return nil
}

type lsmSet struct {
	db    *badger.DB
	count int64
	err   error
}

func formNodeSetKey(key []byte, nodes NodeSet) []byte {
	for _, idx := range nodes {
		key = binary.BigEndian.AppendUint32(key, uint32(idx))
	}
	return key
}

func (set *lsmSet) TryAdd(nodes NodeSet) bool {
	if set.err != nil {
		return false
	}
	var keyBuf [4 * len(NodeSet{})]byte
	key := formNodeSetKey(keyBuf[:0], nodes)

	txn := set.db.NewTransaction(true)
	defer txn.Discard()

	added := false
	_, err := txn.Get(key)
	if err == nil {
		// no-op since the key is already in the db
	} else if err == badger.ErrKeyNotFound {
		err = txn.Set(key, nil)
		if err == nil {
			err = txn.Commit()
		}
		added = err == nil
	}

	if err != nil {
		set.err = errors.Wrap(err, "visited set")
		return false
	}
	if added {
		set.count++
	}
	return added
}

func (set *lsmSet) Has(nodes NodeSet) bool {
	if set.err != nil {
		return false
	}
	var keyBuf [4 * len(NodeSet{})]byte
	key := formNodeSetKey(keyBuf[:0], nodes)

	found := false
	err := set.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		found = err == nil
		return err
	})
	if err != nil {
		set.err = errors.Wrap(err, "visited set")
	}
	return found
}

func (set *lsmSet) Len() int64 {
	return set.count
}

func (set *lsmSet) Err() error {
	return set.err
}

func (set *lsmSet) Close() error {
	if set.db == nil {
		return nil
	}
	err := set.db.Close()
	set.db = nil
	return err
}
