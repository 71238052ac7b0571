package boot

import (
	"github.com/ppryga-nordic/nativesim/hwdesc"
	"github.com/ppryga-nordic/nativesim/nativetask"
)

// Builder can be used to build a Sequencer.
type Builder struct {
	registry  *nativetask.Registry
	envFile   string
	boardPath string
	desc      *hwdesc.Description
	models    []HardwareModel
}

// MakeBuilder creates a builder with the default task registry.
func MakeBuilder() Builder {
	return Builder{
		registry: nativetask.Default(),
	}
}

// WithRegistry sets the task registry to dispatch from.
func (b Builder) WithRegistry(r *nativetask.Registry) Builder {
	b.registry = r
	return b
}

// WithEnvFile sets an env file to load during the configuration step,
// between PRE_BOOT_1 and PRE_BOOT_2.
func (b Builder) WithEnvFile(path string) Builder {
	b.envFile = path
	return b
}

// WithBoardDescription sets the board description file to load during the
// configuration step.
func (b Builder) WithBoardDescription(path string) Builder {
	b.boardPath = path
	return b
}

// WithDescription sets an already-parsed board description instead of a
// file to load.
func (b Builder) WithDescription(d *hwdesc.Description) Builder {
	b.desc = d
	return b
}

// WithHardwareModel adds a hardware model to initialize between
// PRE_BOOT_2 and PRE_BOOT_3. Models initialize in the order they are
// added.
func (b Builder) WithHardwareModel(m HardwareModel) Builder {
	b.models = append(b.models, m)
	return b
}

// Build builds the sequencer.
func (b Builder) Build() *Sequencer {
	if b.registry == nil {
		panic("building a sequencer without a task registry")
	}

	if b.boardPath != "" && b.desc != nil {
		panic("a board description file and a parsed description " +
			"cannot both be set")
	}

	return &Sequencer{
		registry:  b.registry,
		envFile:   b.envFile,
		boardPath: b.boardPath,
		desc:      b.desc,
		models:    b.models,
	}
}
