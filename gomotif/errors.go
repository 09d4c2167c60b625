package gomotif

import "errors"

// Errors
var (
	ErrUnsupportedOrder   = errors.New("unsupported motif order")
	ErrBadMethod          = errors.New("unknown census method")
	ErrBadMergeMode       = errors.New("unknown merge mode")
	ErrCensusMismatch     = errors.New("censuses do not share the same classes")
	ErrBadExpr            = errors.New("bad hyperedge expression")
	ErrBadCatalogParam    = errors.New("bad catalog param")
	ErrRecordNotFound     = errors.New("census record not found")
	ErrReadOnly           = errors.New("catalog is in read-only mode")
	ErrUnmarshal          = errors.New("unmarshal failed")
	ErrNodeNotFound       = errors.New("node not found")
	ErrHyperedgeNotFound  = errors.New("hyperedge not found")
	ErrNotMember          = errors.New("node does not belong to hyperedge")
	ErrBadClusteringCoeff = errors.New("unknown clustering coefficient method")
)
