// Package urdf reads Universal Robot Description Format (URDF) files into kinematic models. It only
// maps XML elements to raw records; all validation happens when the model is built.
package urdf

import (
	"encoding/xml"
	"os"

	"github.com/pkg/errors"

	"go.viam.com/kinemodel/logging"
	"go.viam.com/kinemodel/referenceframe"
)

// Extension is the file extension associated with URDF files.
const Extension string = "urdf"

// ModelConfig represents all supported fields in a URDF file.
type ModelConfig struct {
	XMLName xml.Name `xml:"robot"`
	Name    string   `xml:"name,attr"`
	Links   []link   `xml:"link"`
	Joints  []joint  `xml:"joint"`
}

type link struct {
	Name      string      `xml:"name,attr"`
	Inertial  *inertial   `xml:"inertial"`
	Visual    []visual    `xml:"visual"`
	Collision []collision `xml:"collision"`
	Extra     []xml.Attr  `xml:",any,attr"`
}

type joint struct {
	Name             string            `xml:"name,attr"`
	Type             string            `xml:"type,attr"`
	Parent           frame             `xml:"parent"`
	Child            frame             `xml:"child"`
	Origin           *pose             `xml:"origin"`
	Axis             *axis             `xml:"axis"`
	Calibration      *calibration      `xml:"calibration"`
	Dynamics         *dynamics         `xml:"dynamics"`
	Limit            *limit            `xml:"limit"`
	SafetyController *safetyController `xml:"safety_controller"`
	Mimic            *mimic            `xml:"mimic"`
	Extra            []xml.Attr        `xml:",any,attr"`
}

type frame struct {
	Link string `xml:"link,attr"`
}

type pose struct {
	XYZ string `xml:"xyz,attr"`
	RPY string `xml:"rpy,attr"`
}

type axis struct {
	XYZ string `xml:"xyz,attr"`
}

type calibration struct {
	Rising            string `xml:"rising,attr"`
	Falling           string `xml:"falling,attr"`
	ReferencePosition string `xml:"reference_position,attr"`
}

type dynamics struct {
	Damping  string `xml:"damping,attr"`
	Friction string `xml:"friction,attr"`
}

type limit struct {
	Effort   string `xml:"effort,attr"`
	Velocity string `xml:"velocity,attr"`
	Lower    string `xml:"lower,attr"`
	Upper    string `xml:"upper,attr"`
}

type safetyController struct {
	SoftLowerLimit string `xml:"soft_lower_limit,attr"`
	SoftUpperLimit string `xml:"soft_upper_limit,attr"`
	KPosition      string `xml:"k_position,attr"`
	KVelocity      string `xml:"k_velocity,attr"`
}

type mimic struct {
	Joint      string `xml:"joint,attr"`
	Multiplier string `xml:"multiplier,attr"`
	Offset     string `xml:"offset,attr"`
}

type inertial struct {
	Origin  *pose    `xml:"origin"`
	Mass    *value   `xml:"mass"`
	Inertia *inertia `xml:"inertia"`
}

type value struct {
	Value string `xml:"value,attr"`
}

type inertia struct {
	Ixx string `xml:"ixx,attr"`
	Ixy string `xml:"ixy,attr"`
	Ixz string `xml:"ixz,attr"`
	Iyy string `xml:"iyy,attr"`
	Iyz string `xml:"iyz,attr"`
	Izz string `xml:"izz,attr"`
}

type visual struct {
	Name     string    `xml:"name,attr"`
	Origin   *pose     `xml:"origin"`
	Geometry *geometry `xml:"geometry"`
	Material *material `xml:"material"`
}

type collision struct {
	Name     string    `xml:"name,attr"`
	Origin   *pose     `xml:"origin"`
	Geometry *geometry `xml:"geometry"`
}

type material struct {
	Name string `xml:"name,attr"`
}

type geometry struct {
	Box *struct {
		Size string `xml:"size,attr"`
	} `xml:"box"`
	Cylinder *struct {
		Radius string `xml:"radius,attr"`
		Length string `xml:"length,attr"`
	} `xml:"cylinder"`
	Sphere *struct {
		Radius string `xml:"radius,attr"`
	} `xml:"sphere"`
	Capsule *struct {
		Radius string `xml:"radius,attr"`
		Length string `xml:"length,attr"`
	} `xml:"capsule"`
	Mesh *struct {
		Filename string `xml:"filename,attr"`
		Scale    string `xml:"scale,attr"`
	} `xml:"mesh"`
}

// record builds a Record from alternating keys and values, leaving out empty values so that the
// model's defaults apply to attributes the document did not set.
func record(keysAndValues ...string) referenceframe.Record {
	rec := referenceframe.Record{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if keysAndValues[i+1] != "" {
			rec[keysAndValues[i]] = keysAndValues[i+1]
		}
	}
	return rec
}

func (p *pose) toRecord() referenceframe.Record {
	return record("xyz", p.XYZ, "rpy", p.RPY)
}

func (g *geometry) toRecord() referenceframe.Record {
	rec := referenceframe.Record{}
	if g.Box != nil {
		rec["box"] = record("size", g.Box.Size)
	}
	if g.Cylinder != nil {
		rec["cylinder"] = record("radius", g.Cylinder.Radius, "length", g.Cylinder.Length)
	}
	if g.Sphere != nil {
		rec["sphere"] = record("radius", g.Sphere.Radius)
	}
	if g.Capsule != nil {
		rec["capsule"] = record("radius", g.Capsule.Radius, "length", g.Capsule.Length)
	}
	if g.Mesh != nil {
		rec["mesh"] = record("filename", g.Mesh.Filename, "scale", g.Mesh.Scale)
	}
	return rec
}

func extraAttributes(rec referenceframe.Record, extra []xml.Attr) {
	for _, attr := range extra {
		rec[attr.Name.Local] = attr.Value
	}
}

func (l *link) toRecord() referenceframe.Record {
	rec := record("name", l.Name)
	extraAttributes(rec, l.Extra)
	if in := l.Inertial; in != nil {
		inRec := referenceframe.Record{}
		if in.Origin != nil {
			inRec["origin"] = in.Origin.toRecord()
		}
		if in.Mass != nil {
			inRec["mass"] = record("value", in.Mass.Value)
		}
		if i := in.Inertia; i != nil {
			inRec["inertia"] = record("ixx", i.Ixx, "ixy", i.Ixy, "ixz", i.Ixz, "iyy", i.Iyy, "iyz", i.Iyz, "izz", i.Izz)
		}
		rec["inertial"] = inRec
	}
	visuals := make([]interface{}, 0, len(l.Visual))
	for _, v := range l.Visual {
		vRec := record("name", v.Name)
		if v.Origin != nil {
			vRec["origin"] = v.Origin.toRecord()
		}
		if v.Geometry != nil {
			vRec["geometry"] = v.Geometry.toRecord()
		}
		if v.Material != nil {
			vRec["material"] = record("name", v.Material.Name)
		}
		visuals = append(visuals, vRec)
	}
	if len(visuals) > 0 {
		rec["visual"] = visuals
	}
	collisions := make([]interface{}, 0, len(l.Collision))
	for _, c := range l.Collision {
		cRec := record("name", c.Name)
		if c.Origin != nil {
			cRec["origin"] = c.Origin.toRecord()
		}
		if c.Geometry != nil {
			cRec["geometry"] = c.Geometry.toRecord()
		}
		collisions = append(collisions, cRec)
	}
	if len(collisions) > 0 {
		rec["collision"] = collisions
	}
	return rec
}

func (j *joint) toRecord() referenceframe.Record {
	rec := record("name", j.Name, "type", j.Type)
	extraAttributes(rec, j.Extra)
	rec["parent"] = record("link", j.Parent.Link)
	rec["child"] = record("link", j.Child.Link)
	if j.Origin != nil {
		rec["origin"] = j.Origin.toRecord()
	}
	if j.Axis != nil {
		rec["axis"] = record("xyz", j.Axis.XYZ)
	}
	if c := j.Calibration; c != nil {
		rec["calibration"] = record("rising", c.Rising, "falling", c.Falling, "reference_position", c.ReferencePosition)
	}
	if d := j.Dynamics; d != nil {
		rec["dynamics"] = record("damping", d.Damping, "friction", d.Friction)
	}
	if l := j.Limit; l != nil {
		rec["limit"] = record("effort", l.Effort, "velocity", l.Velocity, "lower", l.Lower, "upper", l.Upper)
	}
	if s := j.SafetyController; s != nil {
		rec["safety_controller"] = record(
			"soft_lower_limit", s.SoftLowerLimit,
			"soft_upper_limit", s.SoftUpperLimit,
			"k_position", s.KPosition,
			"k_velocity", s.KVelocity,
		)
	}
	if m := j.Mimic; m != nil {
		rec["mimic"] = record("joint", m.Joint, "multiplier", m.Multiplier, "offset", m.Offset)
	}
	return rec
}

// DecodeRecords parses URDF XML into one raw record per link and joint element, in document order.
func DecodeRecords(xmlData []byte) (name string, links, joints []referenceframe.Record, err error) {
	// empty data probably means that the read URDF has no actionable information
	if len(xmlData) == 0 {
		return "", nil, nil, referenceframe.ErrNoModelInformation
	}
	cfg := &ModelConfig{}
	if err := xml.Unmarshal(xmlData, cfg); err != nil {
		return "", nil, nil, errors.Wrap(err, "failed to convert URDF data to equivalent URDFConfig struct")
	}
	for i := range cfg.Links {
		links = append(links, cfg.Links[i].toRecord())
	}
	for i := range cfg.Joints {
		joints = append(joints, cfg.Joints[i].toRecord())
	}
	return cfg.Name, links, joints, nil
}

// UnmarshalModelXML builds a Robot from URDF XML. modelName overrides the robot name in the document
// when set.
func UnmarshalModelXML(xmlData []byte, modelName string, logger logging.Logger) (*referenceframe.Robot, error) {
	name, links, joints, err := DecodeRecords(xmlData)
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = name
	}
	logger.Debugw("decoded URDF", "robot", modelName, "links", len(links), "joints", len(joints))
	return referenceframe.NewRobotFromRecords(modelName, links, joints, logger)
}

// ParseModelXMLFile will read a given file and parse the contained URDF XML data into a Robot.
func ParseModelXMLFile(filename, modelName string, logger logging.Logger) (*referenceframe.Robot, error) {
	//nolint:gosec
	xmlData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read URDF file")
	}
	return UnmarshalModelXML(xmlData, modelName, logger)
}
