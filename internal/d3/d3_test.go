package d3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestComposeTransform(t *testing.T) {
	const tol = 1e-12
	identity := ComposeTransform(r3.Vec{}, Elem(1), r3.NewRotation(0, r3.Vec{Z: 1}))
	v := r3.Vec{X: 1, Y: -2, Z: 3}
	if got := identity.Transform(v); !EqualWithin(got, v, tol) {
		t.Errorf("identity transform moved %v to %v", v, got)
	}
	if got := (Transform{}).Transform(v); got != v {
		t.Errorf("zero transform moved %v to %v", v, got)
	}
	for _, test := range []struct {
		pos, scale r3.Vec
		angle      float64
		in, want   r3.Vec
	}{
		{pos: r3.Vec{X: 1}, scale: Elem(1), in: r3.Vec{}, want: r3.Vec{X: 1}},
		{scale: r3.Vec{X: 2, Y: 3, Z: 4}, in: Elem(1), want: r3.Vec{X: 2, Y: 3, Z: 4}},
		{scale: Elem(1), angle: math.Pi / 2, in: r3.Vec{X: 1}, want: r3.Vec{Y: 1}},
		// Scale is applied before rotation, translation last.
		{pos: r3.Vec{Z: 1}, scale: r3.Vec{X: 2, Y: 1, Z: 1}, angle: math.Pi / 2, in: r3.Vec{X: 1}, want: r3.Vec{Y: 2, Z: 1}},
	} {
		tf := ComposeTransform(test.pos, test.scale, r3.NewRotation(test.angle, r3.Vec{Z: 1}))
		got := tf.Transform(test.in)
		if !EqualWithin(got, test.want, 1e-9) {
			t.Errorf("%+v: got %v", test, got)
		}
	}
}

func TestSetBounds(t *testing.T) {
	set := Set{{X: 1, Y: 1, Z: 1}, {X: -1, Y: 2, Z: 0}, {X: 0, Y: -3, Z: 5}}
	got := set.Bounds()
	want := Box{Min: r3.Vec{X: -1, Y: -3, Z: 0}, Max: r3.Vec{X: 1, Y: 2, Z: 5}}
	if got != want {
		t.Errorf("got bounds %v, want %v", got, want)
	}
	single := Set{{X: 4}}.Bounds()
	if single.Min != single.Max {
		t.Errorf("single point bounds %v not degenerate", single)
	}
}
