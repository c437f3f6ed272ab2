package referenceframe

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/kinemodel/spatialmath"
	"go.viam.com/kinemodel/utils"
)

// Origin is the rigid transform from a parent frame to a child frame: a translation, scaled on
// construction, followed by a fixed-axis roll/pitch/yaw rotation in radians.
type Origin struct {
	Translation r3.Vector
	Rotation    spatialmath.EulerAngles
}

// NewZeroOrigin returns the identity transform, the default for every absent origin.
func NewZeroOrigin() Origin {
	return Origin{}
}

// Orientation returns the rotation part of the origin.
func (o Origin) Orientation() spatialmath.Orientation {
	rot := o.Rotation
	return &rot
}

// Quaternion returns the rotation part of the origin as a unit quaternion.
func (o Origin) Quaternion() quat.Number {
	return o.Rotation.Quaternion()
}

// IsIdentity reports whether the origin neither translates nor rotates.
func (o Origin) IsIdentity() bool {
	return o == Origin{}
}

// OriginConfig is the raw form of an origin: two whitespace separated triples. Either may be
// omitted, in which case it defaults to zeros.
type OriginConfig struct {
	XYZ string `json:"xyz,omitempty"`
	RPY string `json:"rpy,omitempty"`
}

// ParseConfig converts an OriginConfig into an Origin, scaling the translation. A nil config is the
// identity.
func (cfg *OriginConfig) ParseConfig() (Origin, error) {
	origin := NewZeroOrigin()
	if cfg == nil {
		return origin, nil
	}
	if cfg.XYZ != "" {
		xyz, err := utils.ParseScaledFloats(cfg.XYZ, 3)
		if err != nil {
			return origin, err
		}
		origin.Translation = r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	}
	if cfg.RPY != "" {
		rpy, err := utils.ParseFloats(cfg.RPY, 3)
		if err != nil {
			return origin, err
		}
		origin.Rotation = spatialmath.EulerAngles{Roll: rpy[0], Pitch: rpy[1], Yaw: rpy[2]}
	}
	return origin, nil
}
