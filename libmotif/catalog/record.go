package catalog

import (
	"github.com/2x3systems/gomotif/gomotif"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

const (
	kRecordVers = 1
	kMajorVers  = 2024
	kMinorVers  = 1
)

// catalogState is stored under gCatalogStateKey.
type catalogState struct {
	MajorVers  uint64
	MinorVers  uint64
	NumRecords [gomotif.MaxOrder + 1]uint64 // number of records per order
}

func (state *catalogState) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(make([]byte, 0, 32))
	buf.EncodeVarint(state.MajorVers)
	buf.EncodeVarint(state.MinorVers)
	buf.EncodeVarint(uint64(len(state.NumRecords)))
	for _, n := range state.NumRecords {
		buf.EncodeVarint(n)
	}
	return buf.Bytes(), nil
}

func (state *catalogState) Unmarshal(val []byte) error {
	buf := proto.NewBuffer(val)

	var err error
	if state.MajorVers, err = buf.DecodeVarint(); err != nil {
		return errors.Wrap(gomotif.ErrUnmarshal, "catalog state")
	}
	if state.MinorVers, err = buf.DecodeVarint(); err != nil {
		return errors.Wrap(gomotif.ErrUnmarshal, "catalog state")
	}
	n, err := buf.DecodeVarint()
	if err != nil || n != uint64(len(state.NumRecords)) {
		return errors.Wrap(gomotif.ErrUnmarshal, "catalog state")
	}
	for i := range state.NumRecords {
		if state.NumRecords[i], err = buf.DecodeVarint(); err != nil {
			return errors.Wrap(gomotif.ErrUnmarshal, "catalog state")
		}
	}
	return nil
}

// The record key is the order byte followed by the record label.
func formRecordKey(key []byte, order gomotif.Order, label string) []byte {
	key = append(key, byte(order))
	key = append(key, label...)
	return key
}

// marshalRecord encodes all fields of rec except its Order and Label, which are carried in the key.
func marshalRecord(rec *gomotif.CensusRecord) []byte {
	buf := proto.NewBuffer(make([]byte, 0, 16+4*len(rec.Census)))
	buf.EncodeVarint(kRecordVers)
	buf.EncodeVarint(uint64(rec.Method))
	buf.EncodeVarint(uint64(rec.Merge))
	buf.EncodeZigzag64(uint64(rec.NumHyperedges))
	buf.EncodeVarint(uint64(len(rec.Census)))
	for _, ci := range rec.Census {
		buf.EncodeVarint(uint64(ci.Class))
		buf.EncodeZigzag64(uint64(ci.Count))
	}
	return buf.Bytes()
}

func unmarshalRecord(key, val []byte) (*gomotif.CensusRecord, error) {
	if len(key) < 1 {
		return nil, errors.Wrap(gomotif.ErrUnmarshal, "record key")
	}
	rec := &gomotif.CensusRecord{
		Order: gomotif.Order(key[0]),
		Label: string(key[1:]),
	}

	var fields [5]uint64
	buf := proto.NewBuffer(val)
	for i := range fields {
		var err error
		if i == 3 {
			fields[i], err = buf.DecodeZigzag64()
		} else {
			fields[i], err = buf.DecodeVarint()
		}
		if err != nil {
			return nil, errors.Wrapf(gomotif.ErrUnmarshal, "record %q", rec.Label)
		}
	}
	if fields[0] != kRecordVers {
		return nil, errors.Wrapf(gomotif.ErrUnmarshal, "record %q has version %d", rec.Label, fields[0])
	}
	rec.Method = gomotif.Method(fields[1])
	rec.Merge = gomotif.MergeMode(fields[2])
	rec.NumHyperedges = int64(fields[3])

	numClasses := fields[4]
	if numClasses > uint64(len(val)) {
		return nil, errors.Wrapf(gomotif.ErrUnmarshal, "record %q", rec.Label)
	}
	rec.Census = make(gomotif.Census, numClasses)
	for i := range rec.Census {
		class, err := buf.DecodeVarint()
		if err != nil {
			return nil, errors.Wrapf(gomotif.ErrUnmarshal, "record %q", rec.Label)
		}
		count, err := buf.DecodeZigzag64()
		if err != nil {
			return nil, errors.Wrapf(gomotif.ErrUnmarshal, "record %q", rec.Label)
		}
		rec.Census[i] = gomotif.ClassCount{
			Class: gomotif.ClassID(class),
			Count: int64(count),
		}
	}
	return rec, nil
}
