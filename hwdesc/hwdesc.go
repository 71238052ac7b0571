// Package hwdesc loads the board hardware description that the native
// target uses in place of a real devicetree. The description is a TOML
// file that lists hardware nodes and their properties. Peripheral models
// resolve pin assignments from it.
package hwdesc

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// A GPIOEntry is one (port, pin) element of a GPIO property of a node.
type GPIOEntry struct {
	Prop string `toml:"prop"`
	Port uint32 `toml:"port"`
	Pin  uint32 `toml:"pin"`
}

// A Node is one hardware node of the board description.
type Node struct {
	Status string      `toml:"status"`
	GPIOs  []GPIOEntry `toml:"gpios"`
}

// A Description is a parsed board description.
type Description struct {
	Board string          `toml:"board"`
	Nodes map[string]Node `toml:"nodes"`
}

// Load reads and parses the board description file at path.
func Load(path string) (*Description, error) {
	d := &Description{}

	_, err := toml.DecodeFile(path, d)
	if err != nil {
		return nil, fmt.Errorf("loading board description %s: %w", path, err)
	}

	return d, nil
}

// Parse parses a board description from raw TOML data.
func Parse(data []byte) (*Description, error) {
	d := &Description{}

	err := toml.Unmarshal(data, d)
	if err != nil {
		return nil, fmt.Errorf("parsing board description: %w", err)
	}

	return d, nil
}

// Node returns the node with the given label.
func (d *Description) Node(label string) (Node, bool) {
	n, ok := d.Nodes[label]
	return n, ok
}

// Enabled tells if the node is usable. A node without an explicit status
// counts as enabled.
func (n Node) Enabled() bool {
	return n.Status != "disabled"
}

// HasProp tells if the node carries at least one GPIO entry for the given
// property name.
func (n Node) HasProp(prop string) bool {
	for _, g := range n.GPIOs {
		if g.Prop == prop {
			return true
		}
	}

	return false
}

// GPIO returns the idx-th GPIO entry of the given property of the node.
func (n Node) GPIO(prop string, idx int) (GPIOEntry, error) {
	i := 0
	for _, g := range n.GPIOs {
		if g.Prop != prop {
			continue
		}

		if i == idx {
			return g, nil
		}
		i++
	}

	return GPIOEntry{}, fmt.Errorf(
		"node has no entry %d of gpio property %s", idx, prop)
}
