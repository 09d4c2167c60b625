package catalog

import (
	"runtime"

	"github.com/2x3systems/gomotif/gomotif"
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

/***

Catalog database format:

	gCatalogStateKey => catalogState

	Order (byte), Label ([]byte)   => CensusRecord (varint fields, see marshalRecord)
	...

Orders are at least MinOrder, so record keys never collide with the state key and records of one
order are contiguous and sorted by label.

***/

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

// catalog is a db wrapper for a census record catalog
type catalog struct {
	ctx        gomotif.CatalogContext
	readOnly   bool
	stateDirty bool
	state      catalogState
	db         *badger.DB
}

// OpenCatalog opens (or creates) the census catalog specified by opts and attaches it to the given context.
func OpenCatalog(ctx gomotif.CatalogContext, opts gomotif.CatalogOpts) (gomotif.Catalog, error) {
	cat := &catalog{
		ctx:      ctx,
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(gomotif.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening catalog %q", opts.DbPathName)
	}

	// Once the db is open, the catalog ctx is blocked until the catalog closes
	ctx.AttachCatalog(cat)

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = !cat.readOnly
		cat.state.MajorVers = kMajorVers
		cat.state.MinorVers = kMinorVers
	}
	if err == nil && (cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers) {
		err = errors.Errorf("catalog version %d.%d is incompatible", cat.state.MajorVers, cat.state.MinorVers)
	}
	if err != nil {
		cat.Close()
		return nil, err
	}

	klog.V(2).Infof("opened census catalog %q (%d records)", opts.DbPathName, cat.NumRecords(0))
	return cat, nil
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err == nil {
			err = item.Value(func(val []byte) error {
				return cat.state.Unmarshal(val)
			})
		}
		return err
	})
}

func (cat *catalog) flushState() error {
	if !cat.stateDirty {
		return nil
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		stateBuf, err := cat.state.Marshal()
		if err != nil {
			return err
		}
		return txn.Set(gCatalogStateKey, stateBuf)
	})
	if err == nil {
		cat.stateDirty = false
	}
	return err
}

func (cat *catalog) Close() error {
	if cat.db == nil {
		return nil
	}
	err := cat.flushState()
	if closeErr := cat.db.Close(); err == nil {
		err = closeErr
	}
	cat.db = nil
	cat.ctx.DetachCatalog(cat)
	cat.ctx = nil
	return err
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

// NumRecords returns the number of records of the given order, or of all orders if order is 0.
func (cat *catalog) NumRecords(order gomotif.Order) int64 {
	if order == 0 {
		total := uint64(0)
		for _, n := range cat.state.NumRecords {
			total += n
		}
		return int64(total)
	}
	if order < 0 || int(order) >= len(cat.state.NumRecords) {
		return 0
	}
	return int64(cat.state.NumRecords[order])
}

func (cat *catalog) Put(rec *gomotif.CensusRecord) error {
	if cat.readOnly {
		return gomotif.ErrReadOnly
	}
	if err := rec.Order.Validate(); err != nil {
		return err
	}

	key := formRecordKey(nil, rec.Order, rec.Label)
	val := marshalRecord(rec)

	isNew := false
	err := cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			isNew = true
		} else if err != nil {
			return err
		}
		return txn.Set(key, val)
	})
	if err != nil {
		return errors.Wrapf(err, "putting census %q", rec.Label)
	}

	if isNew {
		cat.state.NumRecords[rec.Order]++
		cat.stateDirty = true
	}
	return nil
}

func (cat *catalog) Get(order gomotif.Order, label string) (*gomotif.CensusRecord, error) {
	var keyBuf [128]byte
	key := formRecordKey(keyBuf[:0], order, label)

	var rec *gomotif.CensusRecord
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			rec, err = unmarshalRecord(key, val)
			return err
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, errors.Wrapf(gomotif.ErrRecordNotFound, "order %d, label %q", order, label)
	}
	return rec, err
}

// Select sends every record of the given order (or of every order if order is 0) to onHit in key order.
//
// onHit is not closed.
func (cat *catalog) Select(order gomotif.Order, onHit gomotif.OnRecordHit) error {
	if order != 0 {
		if err := order.Validate(); err != nil {
			return err
		}
	}

	txn := cat.db.NewTransaction(false)
	defer txn.Discard()

	itOpts := badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   100,
	}
	if order != 0 {
		itOpts.Prefix = []byte{byte(order)}
	}

	it := txn.NewIterator(itOpts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		key := item.KeyCopy(nil)
		if key[0] < byte(gomotif.MinOrder) || key[0] > byte(gomotif.MaxOrder) {
			continue
		}

		var rec *gomotif.CensusRecord
		err := item.Value(func(val []byte) error {
			var err error
			rec, err = unmarshalRecord(key, val)
			return err
		})
		if err != nil {
			return err
		}
		onHit <- rec
	}
	return nil
}
