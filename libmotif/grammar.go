package libmotif

import (
	"strconv"

	"github.com/2x3systems/gomotif/gomotif"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// HypergraphExpr is a hypergraph literal such as "{1,2,3} {2,4}".
// Groups may be separated by whitespace, ',' or ';'.
type HypergraphExpr struct {
	Edges []*HyperedgeExpr `parser:"( @@ ( ( \",\" | \";\" )? @@ )* )?"`
}

type HyperedgeExpr struct {
	Nodes []int64 `parser:"\"{\" ( @Int ( \",\" @Int )* )? \"}\""`
}

var sHypergraphLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `-?[0-9]+`},
	{Name: "Punct", Pattern: `[{},;]`},
	{Name: "whitespace", Pattern: `[ \t\r\n]+`},
})

var parseHypergraphExpr = participle.MustBuild[HypergraphExpr](
	participle.Lexer(sHypergraphLexer),
	participle.Elide("whitespace"),
)

// ParseHyperedges parses a hypergraph literal into hyperedges, preserving the order of groups and of nodes within each group.
func ParseHyperedges(expr string) ([]gomotif.Hyperedge, error) {
	Hexpr, err := parseHypergraphExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrapf(gomotif.ErrBadExpr, "%v", err)
	}

	edges := make([]gomotif.Hyperedge, len(Hexpr.Edges))
	for i, ei := range Hexpr.Edges {
		e := make(gomotif.Hyperedge, len(ei.Nodes))
		for j, v := range ei.Nodes {
			e[j] = gomotif.NodeID(v)
		}
		edges[i] = e
	}
	return edges, nil
}

// FormatHyperedges renders hyperedges as a literal accepted by ParseHyperedges.
func FormatHyperedges(edges []gomotif.Hyperedge) string {
	var buf []byte
	for i, e := range edges {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, '{')
		for j, v := range e {
			if j > 0 {
				buf = append(buf, ',')
			}
			buf = strconv.AppendInt(buf, int64(v), 10)
		}
		buf = append(buf, '}')
	}
	return string(buf)
}
