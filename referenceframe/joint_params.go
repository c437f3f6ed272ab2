package referenceframe

import (
	"strings"

	"github.com/golang/geo/r3"

	"go.viam.com/kinemodel/utils"
)

// Axis is the direction of motion of a joint in the joint frame. Its components are scaled on
// construction, so use Direction for a unit vector.
type Axis struct {
	XYZ r3.Vector
}

// DefaultAxis is used by joints that move along an axis but do not declare one.
var DefaultAxis = Axis{XYZ: r3.Vector{X: 1}}

// Direction returns the normalised axis, or the zero vector for a zero axis.
func (a Axis) Direction() r3.Vector {
	return a.XYZ.Normalize()
}

// Calibration holds the reference positions used to calibrate the absolute position of a joint.
type Calibration struct {
	Rising            float64
	Falling           float64
	ReferencePosition float64
}

// Dynamics holds the physical damping and friction of a joint.
type Dynamics struct {
	Damping  float64
	Friction float64
}

// Limit bounds the motion of a joint. Lower and Upper are radians for rotational joints and scaled
// lengths for prismatic joints.
type Limit struct {
	Effort   float64
	Velocity float64
	Lower    float64
	Upper    float64
}

// SafetyController holds the soft limits and gains of a joint's safety controller. Soft limits follow
// the same units as Limit.
type SafetyController struct {
	SoftLowerLimit float64
	SoftUpperLimit float64
	KPosition      float64
	KVelocity      float64
}

// Mimic makes a joint follow another: position = Multiplier * target + Offset.
type Mimic struct {
	Joint      string
	Multiplier float64
	Offset     float64
}

// Apply returns the mimicking joint's position given its target's position.
func (m Mimic) Apply(target float64) float64 {
	return m.Multiplier*target + m.Offset
}

// AxisConfig is the raw form of an axis, an "x y z" triple.
type AxisConfig struct {
	XYZ string `json:"xyz,omitempty"`
}

// ParseConfig converts an AxisConfig into a scaled Axis. An axis without components is DefaultAxis.
func (cfg *AxisConfig) ParseConfig() (Axis, error) {
	if strings.TrimSpace(cfg.XYZ) == "" {
		return DefaultAxis, nil
	}
	xyz, err := utils.ParseScaledFloats(cfg.XYZ, 3)
	if err != nil {
		return Axis{}, err
	}
	return Axis{XYZ: r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}}, nil
}

// CalibrationConfig is the raw form of Calibration. Absent values are zero.
type CalibrationConfig struct {
	Rising            float64 `json:"rising,omitempty"`
	Falling           float64 `json:"falling,omitempty"`
	ReferencePosition float64 `json:"reference_position,omitempty"`
}

// ParseConfig converts a CalibrationConfig into a Calibration.
func (cfg *CalibrationConfig) ParseConfig() Calibration {
	if cfg == nil {
		return Calibration{}
	}
	return Calibration{Rising: cfg.Rising, Falling: cfg.Falling, ReferencePosition: cfg.ReferencePosition}
}

// DynamicsConfig is the raw form of Dynamics. Absent values are zero.
type DynamicsConfig struct {
	Damping  float64 `json:"damping,omitempty"`
	Friction float64 `json:"friction,omitempty"`
}

// ParseConfig converts a DynamicsConfig into a Dynamics.
func (cfg *DynamicsConfig) ParseConfig() Dynamics {
	if cfg == nil {
		return Dynamics{}
	}
	return Dynamics{Damping: cfg.Damping, Friction: cfg.Friction}
}

// LimitConfig is the raw form of Limit. Absent values are zero. Lower and Upper are left unscaled
// here; the model builder scales them once the joint type is known.
type LimitConfig struct {
	Effort   float64 `json:"effort,omitempty"`
	Velocity float64 `json:"velocity,omitempty"`
	Lower    float64 `json:"lower,omitempty"`
	Upper    float64 `json:"upper,omitempty"`
}

// ParseConfig converts a LimitConfig into a Limit.
func (cfg *LimitConfig) ParseConfig() Limit {
	return Limit{Effort: cfg.Effort, Velocity: cfg.Velocity, Lower: cfg.Lower, Upper: cfg.Upper}
}

// SafetyControllerConfig is the raw form of SafetyController. KVelocity is required.
type SafetyControllerConfig struct {
	SoftLowerLimit float64  `json:"soft_lower_limit,omitempty"`
	SoftUpperLimit float64  `json:"soft_upper_limit,omitempty"`
	KPosition      float64  `json:"k_position,omitempty"`
	KVelocity      *float64 `json:"k_velocity"`
}

// ParseConfig converts a SafetyControllerConfig into a SafetyController.
func (cfg *SafetyControllerConfig) ParseConfig() (SafetyController, error) {
	if cfg.KVelocity == nil {
		return SafetyController{}, ErrMissingField
	}
	return SafetyController{
		SoftLowerLimit: cfg.SoftLowerLimit,
		SoftUpperLimit: cfg.SoftUpperLimit,
		KPosition:      cfg.KPosition,
		KVelocity:      *cfg.KVelocity,
	}, nil
}

// MimicConfig is the raw form of Mimic. Multiplier defaults to 1 and Offset to 0.
type MimicConfig struct {
	Joint      string   `json:"joint"`
	Multiplier *float64 `json:"multiplier,omitempty"`
	Offset     *float64 `json:"offset,omitempty"`
}

// ParseConfig converts a MimicConfig into a Mimic. The target is not looked up here.
func (cfg *MimicConfig) ParseConfig() (Mimic, error) {
	if cfg.Joint == "" {
		return Mimic{}, ErrMissingField
	}
	m := Mimic{Joint: cfg.Joint, Multiplier: 1}
	if cfg.Multiplier != nil {
		m.Multiplier = *cfg.Multiplier
	}
	if cfg.Offset != nil {
		m.Offset = *cfg.Offset
	}
	return m, nil
}
