package thread

import "fmt"

// Acme is a trapezoidal thread form. https://en.wikipedia.org/wiki/Trapezoidal_thread_form
type Acme struct {
	// D is the thread nominal diameter.
	D float64
	// P is the thread pitch.
	P float64
}

var _ Threader = Acme{} // Compile time check of interface implementation.

func (acme Acme) Spec() Spec {
	radius := acme.D / 2
	return Spec{
		Name:  fmt.Sprintf("Tr%gx%g", acme.D, acme.P),
		Major: radius,
		Minor: radius - 0.5*acme.P,
		Pitch: acme.P,
	}
}
