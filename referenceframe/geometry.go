package referenceframe

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/kinemodel/utils"
)

// GeometryType names one of the supported shape variants.
type GeometryType string

// The set of allowed geometry types.
const (
	BoxType      = GeometryType("box")
	CylinderType = GeometryType("cylinder")
	SphereType   = GeometryType("sphere")
	CapsuleType  = GeometryType("capsule")
	MeshType     = GeometryType("mesh")
)

// Geometry is one of Box, Cylinder, Sphere, Capsule or MeshDescriptor. All lengths are scaled.
type Geometry interface {
	Type() GeometryType
	String() string
}

// Box is an axis aligned box centred on its frame.
type Box struct {
	Size r3.Vector
}

// Type returns BoxType.
func (b Box) Type() GeometryType { return BoxType }

func (b Box) String() string {
	return fmt.Sprintf("box(%.3g x %.3g x %.3g)", b.Size.X, b.Size.Y, b.Size.Z)
}

// Cylinder is a cylinder centred on its frame with its length along z.
type Cylinder struct {
	Radius float64
	Length float64
}

// Type returns CylinderType.
func (c Cylinder) Type() GeometryType { return CylinderType }

func (c Cylinder) String() string {
	return fmt.Sprintf("cylinder(r=%.3g, l=%.3g)", c.Radius, c.Length)
}

// Sphere is a sphere centred on its frame.
type Sphere struct {
	Radius float64
}

// Type returns SphereType.
func (s Sphere) Type() GeometryType { return SphereType }

func (s Sphere) String() string {
	return fmt.Sprintf("sphere(r=%.3g)", s.Radius)
}

// Capsule is a cylinder with hemispherical caps, its length along z.
type Capsule struct {
	Radius float64
	Length float64
}

// Type returns CapsuleType.
func (c Capsule) Type() GeometryType { return CapsuleType }

func (c Capsule) String() string {
	return fmt.Sprintf("capsule(r=%.3g, l=%.3g)", c.Radius, c.Length)
}

// MeshDescriptor references an external mesh file. The mesh itself is never loaded. Scale is a per
// axis ratio and is not affected by the unit scale factor.
type MeshDescriptor struct {
	Filename string
	Scale    r3.Vector
}

// Type returns MeshType.
func (m MeshDescriptor) Type() GeometryType { return MeshType }

func (m MeshDescriptor) String() string {
	return fmt.Sprintf("mesh(%s)", m.Filename)
}

// Visual is a geometry attached to a link for display.
type Visual struct {
	Name     string
	Origin   Origin
	Geometry Geometry
	Material string
}

// Collision is a geometry attached to a link for collision checking.
type Collision struct {
	Name     string
	Origin   Origin
	Geometry Geometry
}

// Inertia is the symmetric rotational inertia tensor of a link about its inertial origin.
type Inertia struct {
	Ixx, Ixy, Ixz float64
	Iyy, Iyz      float64
	Izz           float64
}

// Matrix returns the full symmetric 3x3 tensor.
func (in Inertia) Matrix() *mat.SymDense {
	return mat.NewSymDense(3, []float64{
		in.Ixx, in.Ixy, in.Ixz,
		in.Ixy, in.Iyy, in.Iyz,
		in.Ixz, in.Iyz, in.Izz,
	})
}

// Inertial is the mass properties of a link.
type Inertial struct {
	Origin  Origin
	Mass    float64
	Inertia Inertia
}

// GeometryConfig is the raw form of a geometry element. Exactly one shape must be set.
type GeometryConfig struct {
	Box      *BoxConfig      `json:"box,omitempty"`
	Cylinder *CylinderConfig `json:"cylinder,omitempty"`
	Sphere   *SphereConfig   `json:"sphere,omitempty"`
	Capsule  *CapsuleConfig  `json:"capsule,omitempty"`
	Mesh     *MeshConfig     `json:"mesh,omitempty"`
}

// BoxConfig holds the box dimensions as an "x y z" triple.
type BoxConfig struct {
	Size string `json:"size"`
}

// CylinderConfig holds cylinder dimensions.
type CylinderConfig struct {
	Radius float64 `json:"radius"`
	Length float64 `json:"length"`
}

// SphereConfig holds sphere dimensions.
type SphereConfig struct {
	Radius float64 `json:"radius"`
}

// CapsuleConfig holds capsule dimensions.
type CapsuleConfig struct {
	Radius float64 `json:"radius"`
	Length float64 `json:"length"`
}

// MeshConfig references a mesh file. Scale defaults to "1 1 1".
type MeshConfig struct {
	Filename string `json:"filename"`
	Scale    string `json:"scale,omitempty"`
}

// ParseConfig converts a GeometryConfig into the single Geometry it declares.
func (cfg *GeometryConfig) ParseConfig() (Geometry, error) {
	if cfg == nil {
		return nil, ErrGeometryUnspecified
	}
	var geoms []Geometry
	if cfg.Box != nil {
		size, err := utils.ParseScaledFloats(cfg.Box.Size, 3)
		if err != nil {
			return nil, err
		}
		geoms = append(geoms, Box{Size: r3.Vector{X: size[0], Y: size[1], Z: size[2]}})
	}
	if cfg.Cylinder != nil {
		geoms = append(geoms, Cylinder{Radius: utils.Scale(cfg.Cylinder.Radius), Length: utils.Scale(cfg.Cylinder.Length)})
	}
	if cfg.Sphere != nil {
		geoms = append(geoms, Sphere{Radius: utils.Scale(cfg.Sphere.Radius)})
	}
	if cfg.Capsule != nil {
		geoms = append(geoms, Capsule{Radius: utils.Scale(cfg.Capsule.Radius), Length: utils.Scale(cfg.Capsule.Length)})
	}
	if cfg.Mesh != nil {
		if cfg.Mesh.Filename == "" {
			return nil, ErrMissingField
		}
		mesh := MeshDescriptor{Filename: cfg.Mesh.Filename, Scale: r3.Vector{X: 1, Y: 1, Z: 1}}
		if cfg.Mesh.Scale != "" {
			scale, err := utils.ParseFloats(cfg.Mesh.Scale, 3)
			if err != nil {
				return nil, err
			}
			mesh.Scale = r3.Vector{X: scale[0], Y: scale[1], Z: scale[2]}
		}
		geoms = append(geoms, mesh)
	}
	switch len(geoms) {
	case 0:
		return nil, ErrGeometryUnspecified
	case 1:
		return geoms[0], nil
	default:
		return nil, ErrGeometryAmbiguous
	}
}
