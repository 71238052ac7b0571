// Package boot drives the lifecycle of the native executable: it
// dispatches the staged tasks of every phase at the right moment, loads
// the configuration, initializes the hardware models, and boots the
// simulated CPU.
package boot

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"

	"github.com/ppryga-nordic/nativesim/hwdesc"
	"github.com/ppryga-nordic/nativesim/nativetask"
)

// A HardwareModel is a simulated peripheral or SoC block that needs to be
// brought up before the CPU boots.
type HardwareModel interface {
	Name() string

	// Init prepares the model. The board description is nil when the
	// sequencer was built without one.
	Init(desc *hwdesc.Description) error
}

// A Sequencer runs the boot and shutdown schedule. It dispatches each
// phase exactly once, in lifecycle order:
//
//	PRE_BOOT_1 -> configuration -> PRE_BOOT_2 -> hardware models ->
//	PRE_BOOT_3 -> CPU boot -> FIRST_SLEEP (on first CPU idle) ->
//	ON_EXIT (on Shutdown)
//
// Build one with a Builder.
type Sequencer struct {
	registry  *nativetask.Registry
	envFile   string
	boardPath string
	models    []HardwareModel

	desc *hwdesc.Description

	firstSleepOnce sync.Once
	shutdownOnce   sync.Once
}

// Run executes the boot schedule up to and including the CPU boot. It
// returns when the CPU model returns, with the CPU's error if it failed.
func (s *Sequencer) Run(cpu CPU) error {
	s.registry.Freeze()

	s.registry.RunPhase(nativetask.PhasePreBoot1)

	err := s.parseConfiguration()
	if err != nil {
		return err
	}

	s.registry.RunPhase(nativetask.PhasePreBoot2)

	err = s.initHardwareModels()
	if err != nil {
		return err
	}

	s.registry.RunPhase(nativetask.PhasePreBoot3)

	err = cpu.Boot(s.notifyFirstSleep)
	if err != nil {
		return fmt.Errorf("booting CPU: %w", err)
	}

	return nil
}

// Shutdown dispatches the ON_EXIT phase. It is safe to call more than
// once; only the first call dispatches. Wire it to the process exit path,
// e.g. with atexit.Register.
func (s *Sequencer) Shutdown() {
	s.shutdownOnce.Do(func() {
		s.registry.RunPhase(nativetask.PhaseOnExit)
	})
}

// Description returns the board description loaded during boot, or nil if
// none was configured.
func (s *Sequencer) Description() *hwdesc.Description {
	return s.desc
}

// Registry returns the task registry the sequencer dispatches from.
func (s *Sequencer) Registry() *nativetask.Registry {
	return s.registry
}

func (s *Sequencer) parseConfiguration() error {
	if s.envFile != "" {
		err := godotenv.Load(s.envFile)
		if err != nil {
			return fmt.Errorf("loading env file %s: %w", s.envFile, err)
		}
	}

	if s.boardPath != "" {
		desc, err := hwdesc.Load(s.boardPath)
		if err != nil {
			return err
		}
		s.desc = desc
	}

	return nil
}

func (s *Sequencer) initHardwareModels() error {
	for _, m := range s.models {
		err := m.Init(s.desc)
		if err != nil {
			return fmt.Errorf("initializing hardware model %s: %w",
				m.Name(), err)
		}
	}

	return nil
}

// notifyFirstSleep dispatches FIRST_SLEEP the first time the CPU model
// reports going idle. Later idle notifications are ignored.
func (s *Sequencer) notifyFirstSleep() {
	s.firstSleepOnce.Do(func() {
		s.registry.RunPhase(nativetask.PhaseFirstSleep)
	})
}
