// Package irq defines the basic interfaces for working
// with a 6502 family interrupt. A receiver of interrupts (IRQ/NMI)
// will sample a Sender to allow other components which generate
// them to easily raise state without cross coupling component logic.
// NOTE: Even though chips make a distinction between level and edge type interrupts
//       the interfaces here don't. The cpu package handles NMI edge detection itself
//       when it samples the line at an instruction boundary.
package irq

type Sender interface {
	// Raised indicates whether the interrupt is currently held high.
	Raised() bool
}

// Line is a Sender whose state is set directly by whatever drives it
// (a test, a frame loop, etc).
type Line struct {
	raised bool
}

// Raised implements Sender.
func (l *Line) Raised() bool {
	return l.raised
}

// Raise holds the line high until Lower is called.
func (l *Line) Raise() {
	l.raised = true
}

// Lower releases the line.
func (l *Line) Lower() {
	l.raised = false
}
