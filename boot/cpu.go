package boot

// A CPU is the simulated processor that the sequencer boots after the
// pre-boot phases. Implementations call onFirstSleep the first time the
// CPU goes idle; the sequencer turns that into the FIRST_SLEEP dispatch.
type CPU interface {
	Boot(onFirstSleep func()) error
}

// An InfClockCPU executes the embedded program at infinite speed: there
// is no timing model, the program simply runs on the host until it
// yields. It is the CPU model of the native target.
type InfClockCPU struct {
	// Kernel is the entry point of the simulated kernel and application.
	// A nil Kernel boots straight to idle.
	Kernel func() error
}

// Boot runs the kernel entry point. When the kernel returns, the CPU goes
// idle for the first time.
func (c *InfClockCPU) Boot(onFirstSleep func()) error {
	if c.Kernel != nil {
		err := c.Kernel()
		if err != nil {
			return err
		}
	}

	onFirstSleep()

	return nil
}
