package referenceframe

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// sortMimics returns every joint ordered so that a mimic target always precedes the joints that mimic
// it. Joints otherwise keep their declaration order. Mimic targets must already be known to exist.
func sortMimics(joints []*Joint) ([]*Joint, error) {
	g := simple.NewDirectedGraph()
	ids := make(map[string]int64, len(joints))
	for i, j := range joints {
		ids[j.name] = int64(i)
		g.AddNode(simple.Node(i))
	}
	for i, j := range joints {
		if j.mimic == nil {
			continue
		}
		// edges run target -> mimicking joint so that a topological order evaluates targets first
		g.SetEdge(g.NewEdge(simple.Node(ids[j.mimic.Joint]), simple.Node(i)))
	}

	sorted, err := topo.SortStabilized(g, byID)
	if err != nil {
		var cycles topo.Unorderable
		if !errors.As(err, &cycles) {
			return nil, err
		}
		var names []string
		for _, component := range cycles {
			for _, n := range component {
				names = append(names, joints[n.ID()].name)
			}
		}
		return nil, NewMimicCycleError(names...)
	}

	order := make([]*Joint, 0, len(sorted))
	for _, n := range sorted {
		order = append(order, joints[n.ID()])
	}
	return order, nil
}

func byID(nodes []graph.Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
}
