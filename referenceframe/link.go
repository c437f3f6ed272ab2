package referenceframe

import (
	"github.com/samber/lo"
)

// ParentJoint pairs a link's incoming joint with the link on the other side of it.
type ParentJoint struct {
	Joint *Joint
	Link  *Link
}

// ChildJoint pairs one of a link's outgoing joints with the link on the other side of it.
type ChildJoint struct {
	Joint *Joint
	Link  *Link
}

// Link is a rigid body of a robot. Once part of a Robot it knows the joint above it and the joints
// below it.
type Link struct {
	name       string
	inertial   *Inertial
	visuals    []Visual
	collisions []Collision
	attributes map[string]interface{}

	parent   *ParentJoint
	children []ChildJoint
}

// NewLink returns a link with no inertial or geometry.
func NewLink(name string) *Link {
	return &Link{name: name}
}

// Name returns the link's name.
func (l *Link) Name() string {
	return l.name
}

// Inertial returns the link's mass properties if any were declared.
func (l *Link) Inertial() (Inertial, bool) {
	if l.inertial == nil {
		return Inertial{}, false
	}
	return *l.inertial, true
}

// Visuals returns the link's visual geometries in declaration order.
func (l *Link) Visuals() []Visual {
	return append([]Visual(nil), l.visuals...)
}

// Collisions returns the link's collision geometries in declaration order.
func (l *Link) Collisions() []Collision {
	return append([]Collision(nil), l.collisions...)
}

// Attributes returns a copy of the non-standard attributes declared on the link.
func (l *Link) Attributes() map[string]interface{} {
	return lo.Assign(l.attributes)
}

// ParentJoint returns the joint above this link. The root link of a Robot, and any link not yet part
// of one, returns false.
func (l *Link) ParentJoint() (ParentJoint, bool) {
	if l.parent == nil {
		return ParentJoint{}, false
	}
	return *l.parent, true
}

// ChildJoints returns the joints below this link in declaration order.
func (l *Link) ChildJoints() []ChildJoint {
	return append([]ChildJoint(nil), l.children...)
}

// Children returns the links directly below this link in declaration order.
func (l *Link) Children() []*Link {
	return lo.Map(l.children, func(c ChildJoint, _ int) *Link { return c.Link })
}

// IsRoot reports whether the link has no parent joint.
func (l *Link) IsRoot() bool {
	return l.parent == nil
}

// clone returns an unattached copy of the link. Geometry slices are shared since they are never
// written after construction.
func (l *Link) clone() *Link {
	c := *l
	c.parent = nil
	c.children = nil
	return &c
}
