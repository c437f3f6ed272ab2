package referenceframe

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/kinemodel/logging"
	"go.viam.com/kinemodel/utils"
)

const pendulumJSON = `{
  "name": "pendulum",
  "links": [
    {
      "name": "mount",
      "visual": [{"geometry": {"box": {"size": "0.1 0.1 0.02"}}, "material": {"name": "grey"}}]
    },
    {
      "name": "bob",
      "inertial": {
        "origin": {"xyz": "0 0 -0.5"},
        "mass": {"value": 2.5},
        "inertia": {"ixx": 0.1, "iyy": 0.1, "izz": "0.05"}
      },
      "collision": [
        {"origin": {"xyz": "0 0 -0.5"}, "geometry": {"sphere": {"radius": "0.05"}}},
        {"geometry": {"mesh": {"filename": "package://pendulum/rod.stl", "scale": "1 1 2"}}}
      ],
      "color": "red"
    }
  ],
  "joints": [
    {
      "name": "swing",
      "type": "revolute",
      "parent": {"link": "mount"},
      "child": "bob",
      "axis": {"xyz": "1 0 0"},
      "limit": {"lower": -1.2, "upper": 1.2, "effort": 3, "velocity": 1}
    }
  ]
}`

func TestUnmarshalModelJSON(t *testing.T) {
	logger := logging.NewTestLogger(t)
	robot, err := UnmarshalModelJSON([]byte(pendulumJSON), "", logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, robot.Name(), test.ShouldEqual, "pendulum")
	test.That(t, robot.Root().Name(), test.ShouldEqual, "mount")

	mount := robot.Root()
	visuals := mount.Visuals()
	test.That(t, len(visuals), test.ShouldEqual, 1)
	test.That(t, visuals[0].Geometry, test.ShouldResemble, Box{Size: r3.Vector{X: 0.1, Y: 0.1, Z: 0.02}})
	test.That(t, visuals[0].Material, test.ShouldEqual, "grey")

	bob, ok := robot.Link("bob")
	test.That(t, ok, test.ShouldBeTrue)
	inertial, ok := bob.Inertial()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, inertial.Mass, test.ShouldEqual, 2.5)
	test.That(t, inertial.Origin.Translation, test.ShouldResemble, r3.Vector{Z: -0.5})
	test.That(t, inertial.Inertia.Matrix().At(2, 2), test.ShouldEqual, 0.05)

	collisions := bob.Collisions()
	test.That(t, len(collisions), test.ShouldEqual, 2)
	test.That(t, collisions[0].Geometry, test.ShouldResemble, Sphere{Radius: 0.05})
	test.That(t, collisions[1].Geometry.Type(), test.ShouldEqual, MeshType)
	test.That(t, collisions[1].Geometry, test.ShouldResemble, MeshDescriptor{
		Filename: "package://pendulum/rod.stl",
		Scale:    r3.Vector{X: 1, Y: 1, Z: 2},
	})
	test.That(t, bob.Attributes(), test.ShouldResemble, map[string]interface{}{"color": "red"})

	swing, ok := robot.Joint("swing")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, swing.ParentLink(), test.ShouldEqual, mount)
	test.That(t, swing.ChildLink(), test.ShouldEqual, bob)
	lower, upper := swing.Range()
	test.That(t, lower, test.ShouldEqual, -1.2)
	test.That(t, upper, test.ShouldEqual, 1.2)

	named, err := UnmarshalModelJSON([]byte(pendulumJSON), "other", logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, named.Name(), test.ShouldEqual, "other")

	_, err = UnmarshalModelJSON(nil, "", logger)
	test.That(t, err, test.ShouldEqual, ErrNoModelInformation)
}

func TestParseModelJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pendulum.json")
	test.That(t, os.WriteFile(path, []byte(pendulumJSON), 0o600), test.ShouldBeNil)

	robot, err := ParseModelJSONFile(path, "", logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(robot.Links()), test.ShouldEqual, 2)

	_, err = ParseModelJSONFile(filepath.Join(t.TempDir(), "missing.json"), "", logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestGeometryConfig(t *testing.T) {
	_, err := (&GeometryConfig{}).ParseConfig()
	test.That(t, err, test.ShouldEqual, ErrGeometryUnspecified)

	_, err = (&GeometryConfig{Sphere: &SphereConfig{Radius: 1}, Cylinder: &CylinderConfig{Radius: 1, Length: 2}}).ParseConfig()
	test.That(t, err, test.ShouldEqual, ErrGeometryAmbiguous)

	_, err = NewLinkFromRecord(Record{"name": "l", "visual": []interface{}{Record{"geometry": Record{}}}})
	var fieldErr *FieldError
	test.That(t, errors.As(err, &fieldErr), test.ShouldBeTrue)
	test.That(t, fieldErr.Field, test.ShouldEqual, "visual[0].geometry")
	test.That(t, errors.Is(err, ErrGeometryUnspecified), test.ShouldBeTrue)

	test.That(t, utils.SetScaleFactor(1000), test.ShouldBeNil)
	t.Cleanup(func() { test.That(t, utils.SetScaleFactor(utils.DefaultScaleFactor), test.ShouldBeNil) })
	geom, err := (&GeometryConfig{Capsule: &CapsuleConfig{Radius: 0.5, Length: 2}}).ParseConfig()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, geom, test.ShouldResemble, Capsule{Radius: 500, Length: 2000})
	test.That(t, geom.String(), test.ShouldEqual, "capsule(r=500, l=2e+03)")
}

func TestModelConfig(t *testing.T) {
	cfg := &ModelConfig{
		Name:  "cart",
		Links: []LinkConfig{{Name: "rail"}, {Name: "carriage"}},
		Joints: []JointConfig{{
			Name:   "slide",
			Type:   "prismatic",
			Parent: LinkRefConfig{Link: "rail"},
			Child:  LinkRefConfig{Link: "carriage"},
			Axis:   &AxisConfig{XYZ: "0 1 0"},
		}},
	}
	robot, err := cfg.ParseConfig(logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, robot.DoF(), test.ShouldEqual, 1)

	cfg.Joints[0].Type = "hinge"
	_, err = cfg.ParseConfig(logging.NewTestLogger(t))
	test.That(t, errors.Is(err, ErrLocalValidation), test.ShouldBeTrue)
}

func TestMarshalDOT(t *testing.T) {
	linkRecs, jointRecs := armRecords()
	robot, err := NewRobotFromRecords("arm", linkRecs, jointRecs, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	out, err := robot.MarshalDOT()
	test.That(t, err, test.ShouldBeNil)
	dot := string(out)
	test.That(t, dot, test.ShouldContainSubstring, "digraph arm {")
	test.That(t, dot, test.ShouldContainSubstring, "forearm -> palm")
	test.That(t, dot, test.ShouldContainSubstring, "wrist_mount (fixed)")
	test.That(t, dot, test.ShouldContainSubstring, "dashed")
}
