package referenceframe

import (
	"math"

	"github.com/samber/lo"
)

// JointType is the closed set of joint kinds a model may contain.
type JointType string

// The supported joint types.
const (
	RevoluteJoint   = JointType("revolute")
	ContinuousJoint = JointType("continuous")
	PrismaticJoint  = JointType("prismatic")
	FixedJoint      = JointType("fixed")
	FloatingJoint   = JointType("floating")
	PlanarJoint     = JointType("planar")
)

// SupportedJointTypes lists every joint type in declaration order.
var SupportedJointTypes = []JointType{
	RevoluteJoint, ContinuousJoint, PrismaticJoint, FixedJoint, FloatingJoint, PlanarJoint,
}

// ParseJointType returns the JointType named by s, or an UnsupportedJointTypeError naming joint.
func ParseJointType(joint, s string) (JointType, error) {
	if !lo.Contains(SupportedJointTypes, JointType(s)) {
		return "", NewUnsupportedJointTypeError(joint, s)
	}
	return JointType(s), nil
}

// DoF returns the number of degrees of freedom the joint type allows.
func (t JointType) DoF() int {
	switch t {
	case RevoluteJoint, ContinuousJoint, PrismaticJoint:
		return 1
	case PlanarJoint:
		return 2
	case FloatingJoint:
		return 6
	case FixedJoint:
		return 0
	}
	return 0
}

// UsesAxis reports whether the joint type moves along or about an axis.
func (t JointType) UsesAxis() bool {
	switch t {
	case RevoluteJoint, ContinuousJoint, PrismaticJoint, PlanarJoint:
		return true
	case FixedJoint, FloatingJoint:
	}
	return false
}

// IsRotational reports whether the joint's position is an angle.
func (t JointType) IsRotational() bool {
	return t == RevoluteJoint || t == ContinuousJoint
}

// Joint connects a parent link to a child link. Its parent, child and mimic target are names until
// the joint belongs to a built Robot, at which point ParentLink and ChildLink are set.
type Joint struct {
	name       string
	jointType  JointType
	parent     string
	child      string
	origin     Origin
	axis       *Axis
	calib      Calibration
	dynamics   Dynamics
	limit      *Limit
	safety     *SafetyController
	mimic      *Mimic
	attributes map[string]interface{}

	// limitsScaled marks that length-valued bounds already carry the scale factor.
	limitsScaled bool
	parentLink   *Link
	childLink    *Link
}

// NewJoint returns a joint of the given type between two named links with every optional field at
// its default. It is mostly useful for building models programmatically.
func NewJoint(name string, jointType JointType, parent, child string) (*Joint, error) {
	if _, err := ParseJointType(name, string(jointType)); err != nil {
		return nil, err
	}
	return &Joint{name: name, jointType: jointType, parent: parent, child: child}, nil
}

// Name returns the joint's name.
func (j *Joint) Name() string {
	return j.name
}

// Type returns the joint's type.
func (j *Joint) Type() JointType {
	return j.jointType
}

// Parent returns the name of the parent link.
func (j *Joint) Parent() string {
	return j.parent
}

// Child returns the name of the child link.
func (j *Joint) Child() string {
	return j.child
}

// ParentLink returns the resolved parent link, or nil for a joint not yet part of a Robot.
func (j *Joint) ParentLink() *Link {
	return j.parentLink
}

// ChildLink returns the resolved child link, or nil for a joint not yet part of a Robot.
func (j *Joint) ChildLink() *Link {
	return j.childLink
}

// Origin returns the transform from the parent link to the child link. It defaults to identity.
func (j *Joint) Origin() Origin {
	return j.origin
}

// Axis returns the joint axis for joint types that use one. An axis-using joint that declares no axis
// gets DefaultAxis. Fixed and floating joints return false.
func (j *Joint) Axis() (Axis, bool) {
	if !j.jointType.UsesAxis() {
		return Axis{}, false
	}
	if j.axis == nil {
		return DefaultAxis, true
	}
	return *j.axis, true
}

// Calibration returns the joint's calibration, all zeros by default.
func (j *Joint) Calibration() Calibration {
	return j.calib
}

// Dynamics returns the joint's dynamics, all zeros by default.
func (j *Joint) Dynamics() Dynamics {
	return j.dynamics
}

// Limit returns the joint's limit if one was declared.
func (j *Joint) Limit() (Limit, bool) {
	if j.limit == nil {
		return Limit{}, false
	}
	return *j.limit, true
}

// SafetyController returns the joint's safety controller if one was declared.
func (j *Joint) SafetyController() (SafetyController, bool) {
	if j.safety == nil {
		return SafetyController{}, false
	}
	return *j.safety, true
}

// Mimic returns the mimic relation if this joint follows another.
func (j *Joint) Mimic() (Mimic, bool) {
	if j.mimic == nil {
		return Mimic{}, false
	}
	return *j.mimic, true
}

// IsMimic reports whether the joint follows another joint.
func (j *Joint) IsMimic() bool {
	return j.mimic != nil
}

// Attributes returns a copy of the non-standard attributes declared on the joint.
func (j *Joint) Attributes() map[string]interface{} {
	return lo.Assign(j.attributes)
}

// DoF returns the degrees of freedom of the joint.
func (j *Joint) DoF() int {
	return j.jointType.DoF()
}

// Range returns the motion range of a single degree of freedom joint. Continuous joints are unbounded,
// fixed joints are pinned at zero, and other joints use their limit, or are unbounded without one.
func (j *Joint) Range() (lower, upper float64) {
	switch j.jointType {
	case ContinuousJoint:
		return math.Inf(-1), math.Inf(1)
	case FixedJoint:
		return 0, 0
	case RevoluteJoint, PrismaticJoint, FloatingJoint, PlanarJoint:
	}
	if j.limit == nil {
		return math.Inf(-1), math.Inf(1)
	}
	return j.limit.Lower, j.limit.Upper
}

// clone returns an unattached copy of the joint.
func (j *Joint) clone() *Joint {
	c := *j
	c.parentLink = nil
	c.childLink = nil
	return &c
}

// scaleLimits applies the unit scale factor to the joint's positional bounds if they are lengths.
func (j *Joint) scaleLimits(factor float64) {
	if j.limitsScaled || j.jointType != PrismaticJoint {
		return
	}
	j.limitsScaled = true
	if j.limit != nil {
		limit := *j.limit
		limit.Lower *= factor
		limit.Upper *= factor
		j.limit = &limit
	}
	if j.safety != nil {
		safety := *j.safety
		safety.SoftLowerLimit *= factor
		safety.SoftUpperLimit *= factor
		j.safety = &safety
	}
}
