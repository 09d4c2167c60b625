package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/plan-systems/klog"
)

const usage = `usage: gomotif [-v N] <command> [flags] [args]

commands:
  count     [-order 3] [-method hybrid|exhaustive] [-merge max|sum] [-lsm] [-catalog DIR -label NAME] EXPR...
  features  EXPR     per-node degree, neighbor count and mean member hyperedge size
  stats     EXPR     node, hyperedge and bipartite edge counts
  cc        [-method opsahl|zhou|proposed|simple] EXPR
  catalog   -dir DIR [-order N]
  run       [script.py]

EXPR is a hypergraph literal such as "{1,2,3} {2,4}", or "-" to read one from stdin.
`

func main() {
	fset := flag.NewFlagSet("gomotif", flag.ExitOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "1")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})
	fset.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
	}
	fset.Parse(os.Args[1:])

	args := fset.Args()
	if len(args) == 0 {
		fset.Usage()
		os.Exit(2)
	}

	cmd, exists := gCommands[args[0]]
	if !exists {
		klog.Errorf("unknown command %q", args[0])
		fset.Usage()
		klog.Flush()
		os.Exit(2)
	}

	err := cmd(args[1:])
	klog.Flush()
	if err != nil {
		klog.Errorf("%s: %v", args[0], err)
		klog.Flush()
		os.Exit(1)
	}
}
