package libmotif

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"

	"github.com/2x3systems/gomotif/gomotif"
	"github.com/plan-systems/klog"
)

// StreamOpts specifies params for running census jobs concurrently.
type StreamOpts struct {
	Workers int // 0 denotes runtime.GOMAXPROCS(0)
}

// DefaultStreamOpts runs one job per available CPU.
var DefaultStreamOpts = StreamOpts{}

// CensusStream is a channel of census results.  Ownership of each result travels through the channel.
type CensusStream struct {
	Outlet chan *gomotif.CensusResult
}

// StreamCensus runs each job on its own projection, table and accumulator, sending results as they complete.
// Jobs share nothing, so they run fully in parallel; the Outlet is closed once every job has reported.
func StreamCensus(jobs []*gomotif.CensusJob, opts StreamOpts) *CensusStream {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	stream := &CensusStream{
		Outlet: make(chan *gomotif.CensusResult, 1),
	}

	jobIndex := make(chan int)
	go func() {
		for i := range jobs {
			jobIndex <- i
		}
		close(jobIndex)
	}()

	var running sync.WaitGroup
	for w := 0; w < workers; w++ {
		running.Add(1)
		go func() {
			defer running.Done()
			for i := range jobIndex {
				job := jobs[i]
				census, err := Count(job.Edges, job.Opts)
				stream.Outlet <- &gomotif.CensusResult{
					Index:  i,
					Label:  job.Label,
					Opts:   job.Opts,
					Census: census,
					Err:    err,
				}
			}
		}()
	}

	go func() {
		running.Wait()
		stream.Close()
	}()

	return stream
}

func (stream *CensusStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

// PullAll drains the stream and returns the results in job submission order.
func (stream *CensusStream) PullAll() []*gomotif.CensusResult {
	var results []*gomotif.CensusResult
	for res := range stream.Outlet {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}

// AddTo stores each successful result in the given catalog and forwards every result downstream.
// numHyperedges reports the hyperedge count recorded for a given job label (it may be nil).
func (stream *CensusStream) AddTo(cat gomotif.Catalog, numHyperedges func(label string) int64) *CensusStream {
	next := &CensusStream{
		Outlet: make(chan *gomotif.CensusResult, 1),
	}

	go func() {
		for res := range stream.Outlet {
			if res.Err == nil {
				rec := &gomotif.CensusRecord{
					Label:  res.Label,
					Order:  res.Opts.Order,
					Method: res.Opts.Method,
					Merge:  res.Opts.Merge,
					Census: res.Census,
				}
				if numHyperedges != nil {
					rec.NumHyperedges = numHyperedges(res.Label)
				}
				if err := cat.Put(rec); err != nil {
					res.Err = err
				}
			}
			next.Outlet <- res
		}
		next.Close()
	}()

	return next
}

// Print writes each result as "label<TAB>class<TAB>count" lines and forwards it downstream.
func (stream *CensusStream) Print(out io.Writer) *CensusStream {
	next := &CensusStream{
		Outlet: make(chan *gomotif.CensusResult, 1),
	}

	go func() {
		for res := range stream.Outlet {
			if res.Err != nil {
				klog.Errorf("census %q failed: %v", res.Label, res.Err)
			} else {
				for _, ci := range res.Census {
					fmt.Fprintf(out, "%s\t%d\t%d\n", res.Label, ci.Class, ci.Count)
				}
			}
			next.Outlet <- res
		}
		next.Close()
	}()

	return next
}
