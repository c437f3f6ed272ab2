package referenceframe

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cast"

	"go.viam.com/kinemodel/utils"
)

// Record is one raw link or joint element as produced by a document parser: field names mapped to
// strings, numbers or nested records. Numeric fields may be given as numbers or numeric strings.
// Keys that match no known field are kept as free-form attributes of the entity.
type Record map[string]interface{}

// LinkRefConfig names a link from a joint. In a record it may be given as {"link": name} or as the
// bare name.
type LinkRefConfig struct {
	Link string `json:"link"`
}

// JointConfig is the raw form of a Joint. Parent, child and mimic target are not checked against the
// rest of the model here.
type JointConfig struct {
	Name             string                  `json:"name"`
	Type             string                  `json:"type"`
	Parent           LinkRefConfig           `json:"parent"`
	Child            LinkRefConfig           `json:"child"`
	Origin           *OriginConfig           `json:"origin,omitempty"`
	Axis             *AxisConfig             `json:"axis,omitempty"`
	Calibration      *CalibrationConfig      `json:"calibration,omitempty"`
	Dynamics         *DynamicsConfig         `json:"dynamics,omitempty"`
	Limit            *LimitConfig            `json:"limit,omitempty"`
	SafetyController *SafetyControllerConfig `json:"safety_controller,omitempty"`
	Mimic            *MimicConfig            `json:"mimic,omitempty"`
	Attributes       map[string]interface{}  `json:"-"`
}

// ParseConfig converts a JointConfig into a Joint. Only local validation happens here: the joint
// type, required names and numeric literals.
func (cfg *JointConfig) ParseConfig() (*Joint, error) {
	if cfg.Name == "" {
		return nil, NewFieldError("joint", cfg.Name, "name", ErrMissingField)
	}
	jointType, err := ParseJointType(cfg.Name, cfg.Type)
	if err != nil {
		return nil, err
	}
	if cfg.Parent.Link == "" {
		return nil, NewFieldError("joint", cfg.Name, "parent", ErrMissingField)
	}
	if cfg.Child.Link == "" {
		return nil, NewFieldError("joint", cfg.Name, "child", ErrMissingField)
	}

	joint := &Joint{
		name:      cfg.Name,
		jointType: jointType,
		parent:    cfg.Parent.Link,
		child:     cfg.Child.Link,
		calib:     cfg.Calibration.ParseConfig(),
		dynamics:  cfg.Dynamics.ParseConfig(),
	}
	if joint.origin, err = cfg.Origin.ParseConfig(); err != nil {
		return nil, NewFieldError("joint", cfg.Name, "origin", err)
	}
	if cfg.Axis != nil {
		axis, err := cfg.Axis.ParseConfig()
		if err != nil {
			return nil, NewFieldError("joint", cfg.Name, "axis", err)
		}
		joint.axis = &axis
	}
	if cfg.Limit != nil {
		limit := cfg.Limit.ParseConfig()
		joint.limit = &limit
	}
	if cfg.SafetyController != nil {
		safety, err := cfg.SafetyController.ParseConfig()
		if err != nil {
			return nil, NewFieldError("joint", cfg.Name, "safety_controller.k_velocity", err)
		}
		joint.safety = &safety
	}
	if cfg.Mimic != nil {
		mimic, err := cfg.Mimic.ParseConfig()
		if err != nil {
			return nil, NewFieldError("joint", cfg.Name, "mimic.joint", err)
		}
		joint.mimic = &mimic
	}
	if len(cfg.Attributes) > 0 {
		joint.attributes = lo.Assign(cfg.Attributes)
	}
	return joint, nil
}

// InertialConfig is the raw form of Inertial.
type InertialConfig struct {
	Origin  *OriginConfig `json:"origin,omitempty"`
	Mass    MassConfig    `json:"mass"`
	Inertia InertiaConfig `json:"inertia"`
}

// MassConfig holds a link's mass.
type MassConfig struct {
	Value float64 `json:"value"`
}

// InertiaConfig holds the six independent entries of an inertia tensor.
type InertiaConfig struct {
	Ixx float64 `json:"ixx"`
	Ixy float64 `json:"ixy"`
	Ixz float64 `json:"ixz"`
	Iyy float64 `json:"iyy"`
	Iyz float64 `json:"iyz"`
	Izz float64 `json:"izz"`
}

// MaterialConfig names a visual's material. Materials are not resolved.
type MaterialConfig struct {
	Name string `json:"name"`
}

// VisualConfig is the raw form of Visual.
type VisualConfig struct {
	Name     string          `json:"name,omitempty"`
	Origin   *OriginConfig   `json:"origin,omitempty"`
	Geometry *GeometryConfig `json:"geometry"`
	Material *MaterialConfig `json:"material,omitempty"`
}

// CollisionConfig is the raw form of Collision.
type CollisionConfig struct {
	Name     string          `json:"name,omitempty"`
	Origin   *OriginConfig   `json:"origin,omitempty"`
	Geometry *GeometryConfig `json:"geometry"`
}

// LinkConfig is the raw form of a Link.
type LinkConfig struct {
	Name       string                 `json:"name"`
	Inertial   *InertialConfig        `json:"inertial,omitempty"`
	Visual     []VisualConfig         `json:"visual,omitempty"`
	Collision  []CollisionConfig      `json:"collision,omitempty"`
	Attributes map[string]interface{} `json:"-"`
}

// ParseConfig converts a LinkConfig into a Link.
func (cfg *LinkConfig) ParseConfig() (*Link, error) {
	if cfg.Name == "" {
		return nil, NewFieldError("link", cfg.Name, "name", ErrMissingField)
	}
	link := NewLink(cfg.Name)
	if cfg.Inertial != nil {
		origin, err := cfg.Inertial.Origin.ParseConfig()
		if err != nil {
			return nil, NewFieldError("link", cfg.Name, "inertial.origin", err)
		}
		in := cfg.Inertial.Inertia
		link.inertial = &Inertial{
			Origin: origin,
			Mass:   cfg.Inertial.Mass.Value,
			Inertia: Inertia{
				Ixx: in.Ixx, Ixy: in.Ixy, Ixz: in.Ixz,
				Iyy: in.Iyy, Iyz: in.Iyz,
				Izz: in.Izz,
			},
		}
	}
	for i, vc := range cfg.Visual {
		field := fmt.Sprintf("visual[%d]", i)
		origin, err := vc.Origin.ParseConfig()
		if err != nil {
			return nil, NewFieldError("link", cfg.Name, field+".origin", err)
		}
		geom, err := vc.Geometry.ParseConfig()
		if err != nil {
			return nil, NewFieldError("link", cfg.Name, field+".geometry", err)
		}
		visual := Visual{Name: vc.Name, Origin: origin, Geometry: geom}
		if vc.Material != nil {
			visual.Material = vc.Material.Name
		}
		link.visuals = append(link.visuals, visual)
	}
	for i, cc := range cfg.Collision {
		field := fmt.Sprintf("collision[%d]", i)
		origin, err := cc.Origin.ParseConfig()
		if err != nil {
			return nil, NewFieldError("link", cfg.Name, field+".origin", err)
		}
		geom, err := cc.Geometry.ParseConfig()
		if err != nil {
			return nil, NewFieldError("link", cfg.Name, field+".geometry", err)
		}
		link.collisions = append(link.collisions, Collision{Name: cc.Name, Origin: origin, Geometry: geom})
	}
	if len(cfg.Attributes) > 0 {
		link.attributes = lo.Assign(cfg.Attributes)
	}
	return link, nil
}

// DecodeJointConfig decodes a raw joint record. Unknown top level keys become the config's Attributes.
func DecodeJointConfig(rec Record) (*JointConfig, error) {
	cfg := &JointConfig{}
	attrs, err := decodeRecord(rec, cfg)
	if err != nil {
		return nil, NewFieldError("joint", recordName(rec), "record", err)
	}
	cfg.Attributes = attrs
	return cfg, nil
}

// DecodeLinkConfig decodes a raw link record. Unknown top level keys become the config's Attributes.
func DecodeLinkConfig(rec Record) (*LinkConfig, error) {
	cfg := &LinkConfig{}
	attrs, err := decodeRecord(rec, cfg)
	if err != nil {
		return nil, NewFieldError("link", recordName(rec), "record", err)
	}
	cfg.Attributes = attrs
	return cfg, nil
}

// NewJointFromRecord decodes and constructs a Joint from a raw record.
func NewJointFromRecord(rec Record) (*Joint, error) {
	cfg, err := DecodeJointConfig(rec)
	if err != nil {
		return nil, err
	}
	return cfg.ParseConfig()
}

// NewLinkFromRecord decodes and constructs a Link from a raw record.
func NewLinkFromRecord(rec Record) (*Link, error) {
	cfg, err := DecodeLinkConfig(rec)
	if err != nil {
		return nil, err
	}
	return cfg.ParseConfig()
}

func recordName(rec Record) string {
	return cast.ToString(rec["name"])
}

func decodeRecord(rec Record, out interface{}) (map[string]interface{}, error) {
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:  "json",
		Result:   out,
		Metadata: &md,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToFloatHookFunc(),
			stringToLinkRefHookFunc(),
		),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(map[string]interface{}(rec)); err != nil {
		return nil, err
	}

	var attrs map[string]interface{}
	for _, key := range md.Unused {
		// nested unused keys are reported with a dotted path and are not attributes of the entity
		val, ok := rec[key]
		if !ok {
			continue
		}
		if attrs == nil {
			attrs = map[string]interface{}{}
		}
		attrs[key] = val
	}
	return attrs, nil
}

// stringToFloatHookFunc parses numeric strings so that a malformed literal is reported as such rather
// than as a type mismatch.
func stringToFloatHookFunc() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Float64 {
			return data, nil
		}
		literal := strings.TrimSpace(reflect.ValueOf(data).String())
		value, err := cast.ToFloat64E(literal)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, errors.Wrapf(utils.ErrMalformedValue, "%q is not a number", literal)
		}
		return value, nil
	}
}

func stringToLinkRefHookFunc() mapstructure.DecodeHookFuncType {
	linkRefType := reflect.TypeOf(LinkRefConfig{})
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != linkRefType {
			return data, nil
		}
		return map[string]interface{}{"link": reflect.ValueOf(data).String()}, nil
	}
}
