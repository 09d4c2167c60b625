package pymotif

import (
	"github.com/2x3systems/gomotif/gomotif"
	"github.com/2x3systems/gomotif/libmotif"
	"github.com/2x3systems/gomotif/libmotif/catalog"
	"github.com/2x3systems/gomotif/libmotif/hypergraph"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2024.1"
)

var (
	pyCatalogType   = py.NewType("Catalog", "gomotif.Catalog: census records keyed by (order, label)")
	pyWorkspaceType = py.NewType("Workspace", "collects active session resources and catalogs")
)

const (
	kWorkspaceAttr = "_Workspace"
)

// exportHyperedges accepts a hypergraph literal ("{1,2} {2,3}") or a sequence of int sequences.
func exportHyperedges(obj py.Object) ([]gomotif.Hyperedge, error) {
	if expr, isStr := obj.(py.String); isStr {
		edges, err := libmotif.ParseHyperedges(string(expr))
		if err != nil {
			return nil, py.ExceptionNewf(py.ValueError, "%v", err)
		}
		return edges, nil
	}

	items, err := sequenceItems(obj)
	if err != nil {
		return nil, err
	}
	edges := make([]gomotif.Hyperedge, len(items))
	for i, item := range items {
		nodes, err := sequenceItems(item)
		if err != nil {
			return nil, err
		}
		e := make(gomotif.Hyperedge, len(nodes))
		for j, node := range nodes {
			v, err := py.GetInt(node)
			if err != nil {
				return nil, err
			}
			e[j] = gomotif.NodeID(v)
		}
		edges[i] = e
	}
	return edges, nil
}

func sequenceItems(obj py.Object) ([]py.Object, error) {
	switch seq := obj.(type) {
	case py.Tuple:
		return seq, nil
	case *py.List:
		return seq.Items, nil
	}
	return nil, py.ExceptionNewf(py.TypeError, "expected list or tuple (got %v)", obj.Type().Name)
}

func wrapCensus(C gomotif.Census) py.Object {
	items := make([]py.Object, len(C))
	for i, ci := range C {
		items[i] = py.Tuple{py.Int(ci.Class), py.Int(ci.Count)}
	}
	return py.NewListFromItems(items)
}

func kwargString(kwargs py.StringDict, key string, dst *string) error {
	obj, exists := kwargs[key]
	if !exists {
		return nil
	}
	str, isStr := obj.(py.String)
	if !isStr {
		return py.ExceptionNewf(py.TypeError, "%s: expected str (got %v)", key, obj.Type().Name)
	}
	*dst = string(str)
	return nil
}

// loadCensusArgs reads (edges, order=3) plus the method and merge kwargs.
func loadCensusArgs(args py.Tuple, kwargs py.StringDict, opts *gomotif.CensusOpts) ([]gomotif.Hyperedge, error) {
	var edgesObj, orderObj py.Object
	err := py.ParseTuple(args, "O|O", &edgesObj, &orderObj)
	if err != nil {
		return nil, err
	}
	if orderObj == nil {
		orderObj = kwargs["order"]
	}
	if orderObj != nil {
		N, err := py.GetInt(orderObj)
		if err != nil {
			return nil, err
		}
		opts.Order = gomotif.Order(N)
	}

	method := opts.Method.String()
	merge := opts.Merge.String()
	if err = kwargString(kwargs, "method", &method); err != nil {
		return nil, err
	}
	if err = kwargString(kwargs, "merge", &merge); err != nil {
		return nil, err
	}
	if opts.Method, err = gomotif.ParseMethod(method); err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	if opts.Merge, err = gomotif.ParseMergeMode(merge); err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return exportHyperedges(edgesObj)
}

// count(edges, order=3, method="hybrid", merge="max") -> [(class_id, count), ...]
func py_count(module py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	opts := gomotif.DefaultCensusOpts
	edges, err := loadCensusArgs(args, kwargs, &opts)
	if err != nil {
		return nil, err
	}
	C, err := libmotif.Count(edges, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return wrapCensus(C), nil
}

// count_exhaustive(edges, order=3) -> [(class_id, count), ...]
func py_count_exhaustive(module py.Object, args py.Tuple) (py.Object, error) {
	opts := gomotif.DefaultCensusOpts
	edges, err := loadCensusArgs(args, nil, &opts)
	if err != nil {
		return nil, err
	}
	C, err := libmotif.CountExhaustive(edges, opts.Order)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return wrapCensus(C), nil
}

// parse(expr) -> [(node, ...), ...]
func py_parse(module py.Object, args py.Tuple) (py.Object, error) {
	var exprObj py.Object
	if err := py.ParseTuple(args, "O", &exprObj); err != nil {
		return nil, err
	}
	if _, isStr := exprObj.(py.String); !isStr {
		return nil, py.ExceptionNewf(py.TypeError, "expected str (got %v)", exprObj.Type().Name)
	}
	edges, err := exportHyperedges(exprObj)
	if err != nil {
		return nil, err
	}

	items := make([]py.Object, len(edges))
	for i, e := range edges {
		nodes := make(py.Tuple, len(e))
		for j, v := range e {
			nodes[j] = py.Int(v)
		}
		items[i] = nodes
	}
	return py.NewListFromItems(items), nil
}

func loadHyperGraph(args py.Tuple, extra ...*py.Object) (*hypergraph.HyperGraph, error) {
	var edgesObj py.Object
	format := "O"
	results := []*py.Object{&edgesObj}
	if len(extra) > 0 {
		format = "O|O"
		results = append(results, extra...)
	}
	if err := py.ParseTuple(args, format, results...); err != nil {
		return nil, err
	}
	edges, err := exportHyperedges(edgesObj)
	if err != nil {
		return nil, err
	}
	return hypergraph.New(edges), nil
}

// degrees(edges) -> [(node, degree), ...] in order of first appearance
func py_degrees(module py.Object, args py.Tuple) (py.Object, error) {
	G, err := loadHyperGraph(args)
	if err != nil {
		return nil, err
	}
	nd := G.NodeDegree()
	items := make([]py.Object, len(G.V))
	for i, v := range G.V {
		items[i] = py.Tuple{py.Int(v), py.Int(nd[v])}
	}
	return py.NewListFromItems(items), nil
}

// stats(edges) -> (num_nodes, num_hyperedges, num_bipartite_edges)
func py_stats(module py.Object, args py.Tuple) (py.Object, error) {
	G, err := loadHyperGraph(args)
	if err != nil {
		return nil, err
	}
	sum := G.Summary()
	return py.Tuple{py.Int(sum.NumNodes), py.Int(sum.NumHyperedges), py.Int(sum.NumBipartiteEdges)}, nil
}

// clustering(edges, method="opsahl") -> [(node, coefficient), ...] in order of first appearance
func py_clustering(module py.Object, args py.Tuple) (py.Object, error) {
	var methodObj py.Object
	G, err := loadHyperGraph(args, &methodObj)
	if err != nil {
		return nil, err
	}

	method := hypergraph.Opsahl
	if methodObj != nil {
		name, isStr := methodObj.(py.String)
		if !isStr {
			return nil, py.ExceptionNewf(py.TypeError, "method: expected str (got %v)", methodObj.Type().Name)
		}
		if method, err = hypergraph.ParseClusteringMethod(string(name)); err != nil {
			return nil, py.ExceptionNewf(py.ValueError, "%v", err)
		}
	}

	cc, err := G.Clustering(method)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	items := make([]py.Object, len(G.V))
	for i, v := range G.V {
		items[i] = py.Tuple{py.Int(v), py.Float(cc[v])}
	}
	return py.NewListFromItems(items), nil
}

type Workspace struct {
	CatalogCtx gomotif.CatalogContext
}

func (ws *Workspace) Close() {
	ws.CatalogCtx.Close()
	<-ws.CatalogCtx.Done()
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func getWorkspace(module py.Object) *Workspace {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		wsObj = &Workspace{
			CatalogCtx: gomotif.NewCatalogContext(),
		}
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj.(*Workspace)
}

// open_catalog(pathname="", read_only=False) -> Catalog
func py_open_catalog(module py.Object, args py.Tuple) (py.Object, error) {
	var pathObj, readOnlyObj py.Object
	if err := py.ParseTuple(args, "|OO", &pathObj, &readOnlyObj); err != nil {
		return nil, err
	}

	opts := gomotif.CatalogOpts{}
	if pathObj != nil {
		pathname, isStr := pathObj.(py.String)
		if !isStr {
			return nil, py.ExceptionNewf(py.TypeError, "pathname: expected str (got %v)", pathObj.Type().Name)
		}
		opts.DbPathName = string(pathname)
	}
	if readOnlyObj != nil {
		readOnly, err := py.MakeBool(readOnlyObj)
		if err != nil {
			return nil, err
		}
		opts.ReadOnly = readOnly == py.True
	}

	ws := getWorkspace(module)
	cat, err := catalog.OpenCatalog(ws.CatalogCtx, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return pyCatalog{cat}, nil
}

type pyCatalog struct {
	gomotif.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

// Catalog.put(label, edges, order=3, method="hybrid", merge="max") -> [(class_id, count), ...]
func py_Catalog_put(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	cat := self.(pyCatalog)
	if cat.IsReadOnly() {
		return nil, py.ExceptionNewf(py.PermissionError, "%v", gomotif.ErrReadOnly)
	}
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "put() requires a label")
	}
	label, isStr := args[0].(py.String)
	if !isStr {
		return nil, py.ExceptionNewf(py.TypeError, "label: expected str (got %v)", args[0].Type().Name)
	}

	opts := gomotif.DefaultCensusOpts
	edges, err := loadCensusArgs(args[1:], kwargs, &opts)
	if err != nil {
		return nil, err
	}
	C, err := libmotif.Count(edges, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}

	err = cat.Put(&gomotif.CensusRecord{
		Label:         string(label),
		Order:         opts.Order,
		Method:        opts.Method,
		Merge:         opts.Merge,
		NumHyperedges: int64(len(edges)),
		Census:        C,
	})
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return wrapCensus(C), nil
}

// Catalog.get(label, order=3) -> [(class_id, count), ...] or None
func py_Catalog_get(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	var labelObj, orderObj py.Object
	if err := py.ParseTuple(args, "O|O", &labelObj, &orderObj); err != nil {
		return nil, err
	}
	label, isStr := labelObj.(py.String)
	if !isStr {
		return nil, py.ExceptionNewf(py.TypeError, "label: expected str (got %v)", labelObj.Type().Name)
	}
	order := gomotif.MinOrder
	if orderObj != nil {
		N, err := py.GetInt(orderObj)
		if err != nil {
			return nil, err
		}
		order = gomotif.Order(N)
	}

	rec, err := cat.Get(order, string(label))
	if err != nil {
		return py.None, nil
	}
	return wrapCensus(rec.Census), nil
}

// Catalog.labels(order=0) -> [label, ...] in key order
func py_Catalog_labels(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	order := gomotif.Order(0)
	if len(args) > 0 {
		N, err := py.GetInt(args[0])
		if err != nil {
			return nil, err
		}
		order = gomotif.Order(N)
	}

	onHit := make(chan *gomotif.CensusRecord, 4)
	var err error
	go func() {
		err = cat.Select(order, onHit)
		close(onHit)
	}()

	var items []py.Object
	for rec := range onHit {
		items = append(items, py.String(rec.Label))
	}
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.NewListFromItems(items), nil
}

func py_Catalog_close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if cat.Catalog != nil {
		cat.Close()
	}
	return py.None, nil
}

func init() {

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["put"] = py.MustNewMethod("put", py_Catalog_put, 0, "runs a census and stores it under the given label")
		pyCatalogType.Dict["get"] = py.MustNewMethod("get", py_Catalog_get, 0, "returns the census stored under the given label, or None")
		pyCatalogType.Dict["labels"] = py.MustNewMethod("labels", py_Catalog_labels, 0, "lists the stored labels")
		pyCatalogType.Dict["close"] = py.MustNewMethod("close", py_Catalog_close, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("count", py_count, 0, "count(edges, order=3, method='hybrid', merge='max') -> [(class_id, count), ...]"),
			py.MustNewMethod("count_exhaustive", py_count_exhaustive, 0, "count_exhaustive(edges, order=3) -> [(class_id, count), ...]"),
			py.MustNewMethod("parse", py_parse, 0, "parse(expr) -> [(node, ...), ...]"),
			py.MustNewMethod("degrees", py_degrees, 0, "degrees(edges) -> [(node, degree), ...]"),
			py.MustNewMethod("stats", py_stats, 0, "stats(edges) -> (num_nodes, num_hyperedges, num_bipartite_edges)"),
			py.MustNewMethod("clustering", py_clustering, 0, "clustering(edges, method='opsahl') -> [(node, coefficient), ...]"),
			py.MustNewMethod("open_catalog", py_open_catalog, 0, "open_catalog(pathname='', read_only=False) -> Catalog"),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
			"MIN_ORDER":   py.Int(gomotif.MinOrder),
			"MAX_ORDER":   py.Int(gomotif.MaxOrder),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "gomotif",
				Doc:  "exact hypergraph motif census",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})
	}
}
