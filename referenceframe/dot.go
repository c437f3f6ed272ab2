package referenceframe

import (
	"fmt"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

type linkNode struct {
	id   int64
	link *Link
}

func (n linkNode) ID() int64 { return n.id }

// DOTID uses the link name as the node identifier.
func (n linkNode) DOTID() string { return n.link.name }

type jointEdge struct {
	from, to linkNode
	joint    *Joint
}

func (e jointEdge) From() graph.Node         { return e.from }
func (e jointEdge) To() graph.Node           { return e.to }
func (e jointEdge) ReversedEdge() graph.Edge { return jointEdge{from: e.to, to: e.from, joint: e.joint} }

// Attributes labels the edge with the joint name and type; mimic joints are dashed.
func (e jointEdge) Attributes() []encoding.Attribute {
	attrs := []encoding.Attribute{{Key: "label", Value: fmt.Sprintf("%q", fmt.Sprintf("%s (%s)", e.joint.name, e.joint.jointType))}}
	if e.joint.IsMimic() {
		attrs = append(attrs, encoding.Attribute{Key: "style", Value: "dashed"})
	}
	return attrs
}

// MarshalDOT renders the link tree as a Graphviz digraph: one node per link and one edge per joint
// from parent to child.
func (r *Robot) MarshalDOT() ([]byte, error) {
	g := simple.NewDirectedGraph()
	nodes := make(map[*Link]linkNode, len(r.links))
	for i, l := range r.links {
		n := linkNode{id: int64(i), link: l}
		nodes[l] = n
		g.AddNode(n)
	}
	for _, j := range r.joints {
		g.SetEdge(jointEdge{from: nodes[j.parentLink], to: nodes[j.childLink], joint: j})
	}
	return dot.Marshal(g, r.name, "", "  ")
}
