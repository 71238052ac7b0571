package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ppryga-nordic/nativesim/boot"
	"github.com/ppryga-nordic/nativesim/monitoring"
	"github.com/ppryga-nordic/nativesim/nativetask"
	"github.com/ppryga-nordic/nativesim/tasktrace"
)

var (
	boardFlag       string
	envFileFlag     string
	traceFlag       string
	logTasksFlag    bool
	monitorFlag     bool
	monitorPortFlag int
	browserFlag     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the boot and shutdown lifecycle of the native target.",
	RunE:  runLifecycle,
}

func init() {
	runCmd.Flags().StringVar(&boardFlag, "board", "",
		"path of the board description TOML file")
	runCmd.Flags().StringVar(&envFileFlag, "env-file", "",
		"env file to load before PRE_BOOT_2")
	runCmd.Flags().StringVar(&traceFlag, "trace", "",
		"record task dispatch into this SQLite database")
	runCmd.Flags().BoolVar(&logTasksFlag, "log-tasks", false,
		"log every dispatched task to stderr")
	runCmd.Flags().BoolVar(&monitorFlag, "monitor", false,
		"serve the task registry over HTTP")
	runCmd.Flags().IntVar(&monitorPortFlag, "monitor-port", 0,
		"port of the monitoring server, random if 0")
	runCmd.Flags().BoolVar(&browserFlag, "open-browser", false,
		"open the monitoring page in the local browser")

	rootCmd.AddCommand(runCmd)
}

func runLifecycle(_ *cobra.Command, _ []string) error {
	registry := nativetask.Default()

	if logTasksFlag {
		logger := log.New(os.Stderr, "nativesim ", log.LstdFlags)
		registry.AcceptHook(nativetask.NewTaskLogger(logger))
	}

	if traceFlag != "" {
		recorder := tasktrace.NewRecorder(traceFlag)
		registry.AcceptHook(tasktrace.NewHook(recorder))
	}

	if monitorFlag {
		monitor := monitoring.NewMonitor()
		if monitorPortFlag > 0 {
			monitor.WithPortNumber(monitorPortFlag)
		}
		if browserFlag {
			monitor.WithBrowser()
		}

		monitor.RegisterRegistry(registry)
		monitor.StartServer()
	}

	b := boot.MakeBuilder().WithRegistry(registry)
	if boardFlag != "" {
		b = b.WithBoardDescription(boardFlag)
	}
	if envFileFlag != "" {
		b = b.WithEnvFile(envFileFlag)
	}

	sequencer := b.Build()
	atexit.Register(sequencer.Shutdown)

	err := sequencer.Run(&boot.InfClockCPU{})
	if err != nil {
		return err
	}

	atexit.Exit(0)

	return nil
}
