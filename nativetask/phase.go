package nativetask

import "fmt"

// A Phase identifies one of the five fixed moments in the lifetime of the
// native executable at which registered tasks may run. Phases are totally
// ordered by their numeric values, and the order matches the order in which
// the boot sequencer dispatches them.
type Phase int

// The five phases, in lifecycle order.
//
// For the three pre-boot phases and the exit phase, no kernel or scheduler
// of the simulated system is running. Tasks registered there execute in a
// plain single-threaded context and must not block on anything that only
// another simulated thread could unblock. At PhaseFirstSleep the simulated
// kernel is already up.
const (
	// PhasePreBoot1 runs before the command line parameters are parsed and
	// before the hardware models are initialized.
	PhasePreBoot1 Phase = iota

	// PhasePreBoot2 runs after the command line parameters are parsed but
	// before the hardware models are initialized.
	PhasePreBoot2

	// PhasePreBoot3 runs after the hardware models are initialized, right
	// before the simulated CPU is booted.
	PhasePreBoot3

	// PhaseFirstSleep runs the first time the simulated CPU is sent to
	// sleep.
	PhaseFirstSleep

	// PhaseOnExit runs during termination of the native executable.
	PhaseOnExit
)

// NumPhases is the number of defined phases.
const NumPhases = 5

var phaseNames = [NumPhases]string{
	"PRE_BOOT_1",
	"PRE_BOOT_2",
	"PRE_BOOT_3",
	"FIRST_SLEEP",
	"ON_EXIT",
}

// ValidPhase tells if p is one of the defined phases.
func ValidPhase(p Phase) bool {
	return p >= PhasePreBoot1 && p < NumPhases
}

// String returns the conventional name of the phase.
func (p Phase) String() string {
	if !ValidPhase(p) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}

	return phaseNames[p]
}
