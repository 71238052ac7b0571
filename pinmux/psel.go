// Package pinmux converts (port, pin) pairs from the board description
// into the packed pin-select values that the simulated SoC's peripheral
// registers use.
package pinmux

import (
	"fmt"

	"github.com/ppryga-nordic/nativesim/hwdesc"
)

const (
	pselPortShift = 5
	pselPinMask   = 0x1F
)

// PSel packs a port number and a pin-within-port number into a single
// pin-select value:
//
//	Bit number     5 4 3 2 1 0
//	ID             B A A A A A
//
//	ID  Field  Value    Description
//	A   PIN    [0..31]  Pin number
//	B   PORT   [0..1]   Port number
//
// Pin P0.4 packs to 4, pin P1.5 packs to 37. Pin values of 32 and above
// have their upper bits masked away; they are truncated, not rejected.
func PSel(port, pin uint32) uint32 {
	return port<<pselPortShift | pin&pselPinMask
}

// GPIOToPSelByIndex resolves the idx-th entry of a GPIO property of a
// board description node and packs it into a pin-select value.
func GPIOToPSelByIndex(
	d *hwdesc.Description,
	node, prop string,
	idx int,
) (uint32, error) {
	n, ok := d.Node(node)
	if !ok {
		return 0, fmt.Errorf("board description has no node %s", node)
	}

	g, err := n.GPIO(prop, idx)
	if err != nil {
		return 0, fmt.Errorf("node %s: %w", node, err)
	}

	return PSel(g.Port, g.Pin), nil
}

// GPIOToPSel is GPIOToPSelByIndex with index 0.
func GPIOToPSel(d *hwdesc.Description, node, prop string) (uint32, error) {
	return GPIOToPSelByIndex(d, node, prop, 0)
}

// GPIOToPSelOr returns the pin-select value of the first entry of a GPIO
// property, or def when the node does not carry the property at all. The
// encoding is not computed in the default case.
func GPIOToPSelOr(
	d *hwdesc.Description,
	node, prop string,
	def uint32,
) uint32 {
	n, ok := d.Node(node)
	if !ok || !n.HasProp(prop) {
		return def
	}

	psel, err := GPIOToPSel(d, node, prop)
	if err != nil {
		panic(err)
	}

	return psel
}
