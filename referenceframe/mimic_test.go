package referenceframe

import (
	"errors"
	"testing"

	"github.com/samber/lo"
	"go.viam.com/test"

	"go.viam.com/kinemodel/logging"
)

// gripperRecords builds a chain base -> l0 -> ... -> l5 whose joints mimic each other out of
// declaration order: j1 follows j4, j4 follows j2, j5 follows j1.
func gripperRecords() ([]Record, []Record) {
	links := []Record{{"name": "base"}}
	for _, name := range []string{"l0", "l1", "l2", "l3", "l4", "l5"} {
		links = append(links, Record{"name": name})
	}
	joints := []Record{
		{"name": "j0", "type": "revolute", "parent": "base", "child": "l0"},
		{"name": "j1", "type": "revolute", "parent": "l0", "child": "l1", "mimic": Record{"joint": "j4", "offset": 0.5}},
		{"name": "j2", "type": "revolute", "parent": "l1", "child": "l2"},
		{"name": "j3", "type": "fixed", "parent": "l2", "child": "l3"},
		{"name": "j4", "type": "revolute", "parent": "l3", "child": "l4", "mimic": Record{"joint": "j2", "multiplier": 2}},
		{"name": "j5", "type": "revolute", "parent": "l4", "child": "l5", "mimic": Record{"joint": "j1"}},
	}
	return links, joints
}

func TestMimicOrder(t *testing.T) {
	links, joints := gripperRecords()
	robot, err := NewRobotFromRecords("gripper", links, joints, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	order := robot.MimicOrder()
	test.That(t, len(order), test.ShouldEqual, len(joints))
	test.That(t, len(lo.Uniq(order)), test.ShouldEqual, len(joints))

	position := make(map[string]int, len(order))
	for i, j := range order {
		position[j.Name()] = i
	}
	for _, j := range order {
		if m, ok := j.Mimic(); ok {
			test.That(t, position[m.Joint], test.ShouldBeLessThan, position[j.Name()])
		}
	}

	positions, err := robot.MimicPositions(map[string]float64{"j0": 0.1, "j2": 0.25, "j5": 100})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, positions["j0"], test.ShouldEqual, 0.1)
	test.That(t, positions["j3"], test.ShouldEqual, 0.0)
	test.That(t, positions["j4"], test.ShouldEqual, 0.5)
	test.That(t, positions["j1"], test.ShouldEqual, 1.0)
	test.That(t, positions["j5"], test.ShouldEqual, 1.0)

	_, err = robot.MimicPositions(map[string]float64{"j0": 0.1})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "j2")

	_, err = robot.MimicPositions(map[string]float64{"j0": 0.1, "j2": 0, "nope": 1})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestMimicOrderWithoutMimics(t *testing.T) {
	robot, err := NewRobot("plain", newTestLinks("base", "a", "b"), []*Joint{
		newTestJoint(t, "ja", RevoluteJoint, "base", "a"),
		newTestJoint(t, "jb", PrismaticJoint, "base", "b"),
	}, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, jointNames(robot.MimicOrder()), test.ShouldResemble, []string{"ja", "jb"})
}

func TestMimicCycle(t *testing.T) {
	_, err := NewRobotFromRecords("cycle",
		[]Record{{"name": "base"}, {"name": "a"}, {"name": "b"}, {"name": "c"}},
		[]Record{
			{"name": "ja", "type": "revolute", "parent": "base", "child": "a", "mimic": Record{"joint": "jb"}},
			{"name": "jb", "type": "revolute", "parent": "a", "child": "b", "mimic": Record{"joint": "ja"}},
			{"name": "jc", "type": "revolute", "parent": "b", "child": "c"},
		},
		logging.NewTestLogger(t),
	)
	var cycle *MimicCycleError
	test.That(t, errors.As(err, &cycle), test.ShouldBeTrue)
	test.That(t, cycle.Joints, test.ShouldHaveLength, 2)
	test.That(t, cycle.Joints, test.ShouldContain, "ja")
	test.That(t, cycle.Joints, test.ShouldContain, "jb")
	test.That(t, errors.Is(err, ErrStructural), test.ShouldBeTrue)
}
