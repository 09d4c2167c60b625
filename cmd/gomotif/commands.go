package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/2x3systems/gomotif/gomotif"
	"github.com/2x3systems/gomotif/libmotif"
	"github.com/2x3systems/gomotif/libmotif/catalog"
	"github.com/2x3systems/gomotif/libmotif/hypergraph"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

var gCommands = map[string]func(args []string) error{
	"count":    cmdCount,
	"features": cmdFeatures,
	"stats":    cmdStats,
	"cc":       cmdClustering,
	"catalog":  cmdCatalog,
	"run":      cmdRun,
}

// readHyperedges parses expr, reading it from stdin if expr is "-".
func readHyperedges(expr string) ([]gomotif.Hyperedge, error) {
	if expr == "-" {
		buf, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(err, "reading stdin")
		}
		expr = string(buf)
	}
	return libmotif.ParseHyperedges(expr)
}

func singleExpr(fset *flag.FlagSet) ([]gomotif.Hyperedge, error) {
	if fset.NArg() != 1 {
		return nil, errors.Wrapf(gomotif.ErrBadExpr, "expected one hypergraph expression (got %d args)", fset.NArg())
	}
	return readHyperedges(fset.Arg(0))
}

func cmdCount(args []string) error {
	fset := flag.NewFlagSet("count", flag.ExitOnError)
	order := fset.Int("order", int(gomotif.DefaultCensusOpts.Order), "motif order (3 or 4)")
	method := fset.String("method", gomotif.DefaultCensusOpts.Method.String(), "hybrid or exhaustive")
	merge := fset.String("merge", gomotif.DefaultCensusOpts.Merge.String(), "max or sum (hybrid only)")
	lsm := fset.Bool("lsm", false, "keep the hybrid visited set in an in-memory LSM")
	catalogDir := fset.String("catalog", "", "catalog dir to store results in")
	label := fset.String("label", "", "label of the stored result (used as a prefix for multiple expressions)")
	workers := fset.Int("workers", 0, "number of concurrent censuses (0 for one per CPU)")
	fset.Parse(args)

	if fset.NArg() == 0 {
		return errors.Wrap(gomotif.ErrBadExpr, "no hypergraph expression given")
	}

	opts := gomotif.CensusOpts{
		Order:      gomotif.Order(*order),
		VisitedLSM: *lsm,
	}
	var err error
	if opts.Method, err = gomotif.ParseMethod(*method); err != nil {
		return err
	}
	if opts.Merge, err = gomotif.ParseMergeMode(*merge); err != nil {
		return err
	}
	if err = opts.Order.Validate(); err != nil {
		return err
	}

	jobs := make([]*gomotif.CensusJob, fset.NArg())
	numEdges := make(map[string]int64, len(jobs))
	for i, expr := range fset.Args() {
		edges, err := readHyperedges(expr)
		if err != nil {
			return err
		}
		jobLabel := *label
		if len(jobs) > 1 || jobLabel == "" {
			jobLabel = fmt.Sprintf("%s%d", *label, i+1)
		}
		jobs[i] = &gomotif.CensusJob{
			Label: jobLabel,
			Edges: edges,
			Opts:  opts,
		}
		numEdges[jobLabel] = int64(len(edges))
	}

	stream := libmotif.StreamCensus(jobs, libmotif.StreamOpts{Workers: *workers})

	if *catalogDir != "" {
		ctx := gomotif.NewCatalogContext()
		defer func() {
			ctx.Close()
			<-ctx.Done()
		}()

		cat, err := catalog.OpenCatalog(ctx, gomotif.CatalogOpts{DbPathName: *catalogDir})
		if err != nil {
			stream.PullAll()
			return err
		}
		stream = stream.AddTo(cat, func(label string) int64 { return numEdges[label] })
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	// A single census is printed bare; several are prefixed by their label.
	if len(jobs) > 1 {
		stream = stream.Print(out)
	}

	var firstErr error
	for _, res := range stream.PullAll() {
		if res.Err != nil {
			if firstErr == nil {
				firstErr = errors.Wrapf(res.Err, "census %q", res.Label)
			}
			continue
		}
		if len(jobs) == 1 {
			if err := res.Census.WriteTSV(out); err != nil {
				return err
			}
		}
		klog.V(1).Infof("census %q: %d connected node sets across %d hyperedges", res.Label, res.Census.Total(), numEdges[res.Label])
	}
	return firstErr
}

func cmdFeatures(args []string) error {
	fset := flag.NewFlagSet("features", flag.ExitOnError)
	fset.Parse(args)

	edges, err := singleExpr(fset)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for _, fi := range hypergraph.New(edges).Features() {
		avgSize := 0.0
		if fi.Degree > 0 {
			avgSize = float64(fi.MemberSizeSum) / float64(fi.Degree)
		}
		fmt.Fprintf(out, "%d\t%d\t%d\t%g\n", fi.Node, fi.Degree, fi.NumNeighbors, avgSize)
	}
	return nil
}

func cmdStats(args []string) error {
	fset := flag.NewFlagSet("stats", flag.ExitOnError)
	fset.Parse(args)

	edges, err := singleExpr(fset)
	if err != nil {
		return err
	}

	sum := hypergraph.New(edges).Summary()
	fmt.Printf("%d\t%d\t%d\n", sum.NumNodes, sum.NumHyperedges, sum.NumBipartiteEdges)
	return nil
}

func cmdClustering(args []string) error {
	fset := flag.NewFlagSet("cc", flag.ExitOnError)
	methodName := fset.String("method", hypergraph.Opsahl.String(), "opsahl, zhou, proposed or simple")
	fset.Parse(args)

	method, err := hypergraph.ParseClusteringMethod(*methodName)
	if err != nil {
		return err
	}
	edges, err := singleExpr(fset)
	if err != nil {
		return err
	}

	G := hypergraph.New(edges)
	cc, err := G.Clustering(method)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for _, v := range G.V {
		fmt.Fprintf(out, "%d\t%g\n", v, cc[v])
	}
	return nil
}

func cmdCatalog(args []string) error {
	fset := flag.NewFlagSet("catalog", flag.ExitOnError)
	dir := fset.String("dir", "", "catalog dir")
	order := fset.Int("order", 0, "only list records of this order (0 for all)")
	fset.Parse(args)

	if *dir == "" {
		return errors.Wrap(gomotif.ErrBadCatalogParam, "-dir is required")
	}

	ctx := gomotif.NewCatalogContext()
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	cat, err := catalog.OpenCatalog(ctx, gomotif.CatalogOpts{DbPathName: *dir, ReadOnly: true})
	if err != nil {
		return err
	}

	onHit := make(chan *gomotif.CensusRecord, 8)
	go func() {
		err = cat.Select(gomotif.Order(*order), onHit)
		close(onHit)
	}()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for rec := range onHit {
		fmt.Fprintf(out, "%s\t%d\t%v\t%v\t%d\t%d\n", rec.Label, rec.Order, rec.Method, rec.Merge, rec.NumHyperedges, rec.Census.Total())
	}
	return err
}

func cmdRun(args []string) error {
	fset := flag.NewFlagSet("run", flag.ExitOnError)
	fset.Parse(args)

	return runPython(fset.Arg(0))
}
