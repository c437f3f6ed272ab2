package spatialmath

import (
	"math"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

// represent a 45 degree rotation around the x axis in all the representations
var (
	th    = math.Pi / 4.
	q45x  = quat.Number{Real: math.Cos(th / 2.), Imag: math.Sin(th / 2.), Jmag: 0, Kmag: 0}
	aa45x = &R4AA{th, 1., 0., 0.}
	ea45x = &EulerAngles{Roll: th, Pitch: 0, Yaw: 0}
)

// quaternionAlmostEqual compares component-wise, accepting both q and -q since they are the same rotation.
func quaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	near := func(a, b quat.Number) bool {
		return math.Abs(a.Real-b.Real) < tol &&
			math.Abs(a.Imag-b.Imag) < tol &&
			math.Abs(a.Jmag-b.Jmag) < tol &&
			math.Abs(a.Kmag-b.Kmag) < tol
	}
	return near(a, b) || near(a, quat.Scale(-1, b))
}

func TestZeroOrientation(t *testing.T) {
	var zero Orientation = NewEulerAngles()
	test.That(t, zero.AxisAngles(), test.ShouldResemble, NewR4AA())
	test.That(t, zero.Quaternion(), test.ShouldResemble, quat.Number{Real: 1, Imag: 0, Jmag: 0, Kmag: 0})
	test.That(t, QuatToEulerAngles(zero.Quaternion()), test.ShouldResemble, NewEulerAngles())
}

func TestRepresentationsAgree(t *testing.T) {
	test.That(t, quaternionAlmostEqual(ea45x.Quaternion(), q45x, 1e-9), test.ShouldBeTrue)
	test.That(t, quaternionAlmostEqual(aa45x.Quaternion(), q45x, 1e-9), test.ShouldBeTrue)

	aa := ea45x.AxisAngles()
	test.That(t, aa.Theta, test.ShouldAlmostEqual, aa45x.Theta)
	test.That(t, aa.RX, test.ShouldAlmostEqual, 1.)
	test.That(t, aa.RY, test.ShouldAlmostEqual, 0.)

	ea := aa45x.EulerAngles()
	test.That(t, ea.Roll, test.ShouldAlmostEqual, th)
	test.That(t, ea.Pitch, test.ShouldAlmostEqual, 0.)
	test.That(t, ea.Yaw, test.ShouldAlmostEqual, 0.)
}

func TestEulerRoundTrip(t *testing.T) {
	for _, ea := range []*EulerAngles{
		{Roll: 0.1, Pitch: -0.4, Yaw: 2.0},
		{Roll: -1.2, Pitch: 0.3, Yaw: -0.7},
		{Roll: 0, Pitch: 0, Yaw: math.Pi / 2},
	} {
		back := QuatToEulerAngles(ea.Quaternion())
		test.That(t, back.Roll, test.ShouldAlmostEqual, ea.Roll)
		test.That(t, back.Pitch, test.ShouldAlmostEqual, ea.Pitch)
		test.That(t, back.Yaw, test.ShouldAlmostEqual, ea.Yaw)
	}
}

func TestRPYIsYawPitchRollComposition(t *testing.T) {
	ea := &EulerAngles{Roll: 0.3, Pitch: 0.5, Yaw: -0.2}
	qx := (&R4AA{Theta: ea.Roll, RX: 1}).Quaternion()
	qy := (&R4AA{Theta: ea.Pitch, RY: 1}).Quaternion()
	qz := (&R4AA{Theta: ea.Yaw, RZ: 1}).Quaternion()
	composed := quat.Mul(qz, quat.Mul(qy, qx))
	test.That(t, quaternionAlmostEqual(ea.Quaternion(), composed, 1e-9), test.ShouldBeTrue)
}

func TestNormalize(t *testing.T) {
	test.That(t, Normalize(quat.Number{}), test.ShouldResemble, quat.Number{Real: 1})
	test.That(t, quaternionAlmostEqual(Normalize(quat.Scale(-2, q45x)), q45x, 1e-9), test.ShouldBeTrue)
	test.That(t, quat.Abs(Normalize(quat.Number{Real: 3, Kmag: 4})), test.ShouldAlmostEqual, 1.0)
}
