package referenceframe

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Robot is a frozen kinematic tree. It owns its links and joints and exposes only read access, so
// it is safe for concurrent use. Rebuilding from a changed description always yields a new Robot.
type Robot struct {
	name        string
	root        *Link
	links       []*Link
	joints      []*Joint
	linkByName  map[string]*Link
	jointByName map[string]*Joint
	breadth     []*Link
	mimicOrder  []*Joint
}

func newRobot(name string, root *Link, links []*Link, joints []*Joint, breadth []*Link, mimicOrder []*Joint) *Robot {
	return &Robot{
		name:        name,
		root:        root,
		links:       links,
		joints:      joints,
		linkByName:  lo.KeyBy(links, func(l *Link) string { return l.name }),
		jointByName: lo.KeyBy(joints, func(j *Joint) string { return j.name }),
		breadth:     breadth,
		mimicOrder:  mimicOrder,
	}
}

// Name returns the name of the robot.
func (r *Robot) Name() string {
	return r.name
}

// Root returns the single link without a parent joint.
func (r *Robot) Root() *Link {
	return r.root
}

// Link returns the link with the given name.
func (r *Robot) Link(name string) (*Link, bool) {
	l, ok := r.linkByName[name]
	return l, ok
}

// Joint returns the joint with the given name.
func (r *Robot) Joint(name string) (*Joint, bool) {
	j, ok := r.jointByName[name]
	return j, ok
}

// Links returns every link in declaration order.
func (r *Robot) Links() []*Link {
	return append([]*Link(nil), r.links...)
}

// Joints returns every joint in declaration order.
func (r *Robot) Joints() []*Joint {
	return append([]*Joint(nil), r.joints...)
}

// ParentJoint returns the joint above the named link. The root has none.
func (r *Robot) ParentJoint(linkName string) (ParentJoint, bool) {
	l, ok := r.linkByName[linkName]
	if !ok {
		return ParentJoint{}, false
	}
	return l.ParentJoint()
}

// ChildJoints returns the joints below the named link in declaration order.
func (r *Robot) ChildJoints(linkName string) ([]ChildJoint, error) {
	l, ok := r.linkByName[linkName]
	if !ok {
		return nil, NewLinkNotFoundError(linkName)
	}
	return l.ChildJoints(), nil
}

// Children returns the links directly below the named link.
func (r *Robot) Children(linkName string) ([]*Link, error) {
	l, ok := r.linkByName[linkName]
	if !ok {
		return nil, NewLinkNotFoundError(linkName)
	}
	return l.Children(), nil
}

// Ancestors returns the links above the named link, nearest first and ending with the root.
func (r *Robot) Ancestors(linkName string) ([]*Link, error) {
	l, ok := r.linkByName[linkName]
	if !ok {
		return nil, NewLinkNotFoundError(linkName)
	}
	var ancestors []*Link
	for l.parent != nil {
		l = l.parent.Link
		ancestors = append(ancestors, l)
	}
	return ancestors, nil
}

// Traceback returns the chain of links from the root down to and including the named link.
func (r *Robot) Traceback(linkName string) ([]*Link, error) {
	ancestors, err := r.Ancestors(linkName)
	if err != nil {
		return nil, err
	}
	return append(lo.Reverse(ancestors), r.linkByName[linkName]), nil
}

// Depth returns the number of joints between the root and the named link.
func (r *Robot) Depth(linkName string) (int, error) {
	ancestors, err := r.Ancestors(linkName)
	if err != nil {
		return 0, err
	}
	return len(ancestors), nil
}

// BreadthFirst returns every link, level by level from the root, siblings in declaration order.
func (r *Robot) BreadthFirst() []*Link {
	return append([]*Link(nil), r.breadth...)
}

// DepthFirst returns every link in pre-order from the root, siblings in declaration order.
func (r *Robot) DepthFirst() []*Link {
	order := make([]*Link, 0, len(r.links))
	var visit func(l *Link)
	visit = func(l *Link) {
		order = append(order, l)
		for _, c := range l.children {
			visit(c.Link)
		}
	}
	visit(r.root)
	return order
}

// MimicOrder returns every joint ordered so that each mimic target comes before any joint mimicking it.
// A kinematics evaluator can assign joint values in this order without further checks.
func (r *Robot) MimicOrder() []*Joint {
	return append([]*Joint(nil), r.mimicOrder...)
}

// ActuatedJoints returns the joints that take an independent position: those with a degree of freedom
// that do not mimic another joint, in declaration order.
func (r *Robot) ActuatedJoints() []*Joint {
	return lo.Filter(r.joints, func(j *Joint, _ int) bool { return j.DoF() > 0 && !j.IsMimic() })
}

// DoF returns the total degrees of freedom of the actuated joints.
func (r *Robot) DoF() int {
	return lo.SumBy(r.ActuatedJoints(), func(j *Joint) int { return j.DoF() })
}

// MimicPositions completes a set of single degree of freedom joint positions. Every actuated revolute,
// continuous or prismatic joint must be given; each mimic joint is then computed from its target in
// mimic order. Fixed joints are reported at zero. Values given for mimic joints are replaced.
func (r *Robot) MimicPositions(positions map[string]float64) (map[string]float64, error) {
	for name := range positions {
		if _, ok := r.jointByName[name]; !ok {
			return nil, NewJointNotFoundError(name)
		}
	}
	out := make(map[string]float64, len(r.joints))
	for _, j := range r.mimicOrder {
		if m, ok := j.Mimic(); ok {
			target, ok := out[m.Joint]
			if !ok {
				return nil, errors.Errorf("joint %q mimics %q which has no scalar position", j.name, m.Joint)
			}
			if j.DoF() == 1 {
				out[j.name] = m.Apply(target)
			}
			continue
		}
		switch j.DoF() {
		case 0:
			out[j.name] = 0
		case 1:
			pos, ok := positions[j.name]
			if !ok {
				return nil, NewMissingJointPositionError(j.name)
			}
			out[j.name] = pos
		}
	}
	return out, nil
}

// String prints a table of each joint with its type, parent and child links and mimic target.
func (r *Robot) String() string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s (root: %s)", r.name, r.root.name))
	t.AppendHeader(table.Row{"#", "Joint", "Type", "Parent", "Child", "Axis", "Range", "Mimic"})
	for i, j := range r.joints {
		axisString := ""
		if axis, ok := j.Axis(); ok {
			dir := axis.Direction()
			axisString = fmt.Sprintf("X:%.2f, Y:%.2f, Z:%.2f", dir.X, dir.Y, dir.Z)
		}
		lower, upper := j.Range()
		mimicString := ""
		if m, ok := j.Mimic(); ok {
			mimicString = fmt.Sprintf("%.3g * %s + %.3g", m.Multiplier, m.Joint, m.Offset)
		}
		t.AppendRow([]interface{}{
			fmt.Sprintf("%d", i+1),
			j.name,
			string(j.jointType),
			j.parent,
			j.child,
			axisString,
			fmt.Sprintf("[%.3g, %.3g]", lower, upper),
			mimicString,
		})
	}
	return t.Render()
}

// TreeString renders the link tree with one link per line, indented by depth.
func (r *Robot) TreeString() string {
	var sb strings.Builder
	var visit func(l *Link, depth int, via *Joint)
	visit = func(l *Link, depth int, via *Joint) {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(l.name)
		if via != nil {
			fmt.Fprintf(&sb, " (%s: %s)", via.name, via.jointType)
		}
		sb.WriteString("\n")
		for _, c := range l.children {
			visit(c.Link, depth+1, c.Joint)
		}
	}
	visit(r.root, 0, nil)
	return sb.String()
}
