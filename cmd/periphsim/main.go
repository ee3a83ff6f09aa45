// Command periphsim runs peripheral check suites against a simulated board
// and reports PASS/FAIL over the serial-style log.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sarchlab/periphsim/session"
	"github.com/sarchlab/periphsim/suites"
)

var (
	flagSuites      []string
	flagOutput      string
	flagMonitorPort int
	flagNoMonitor   bool
	flagTickNanos   int64
)

var rootCmd = &cobra.Command{
	Use:   "periphsim",
	Short: "Peripheral check suites on a simulated STM32-style board",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run check suites and record the outcomes",
	RunE:  runSuites,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available suites",
	Run: func(_ *cobra.Command, _ []string) {
		for _, name := range suites.Names() {
			fmt.Println(name)
		}
	},
}

func init() {
	runCmd.Flags().StringSliceVar(&flagSuites, "suite", suites.Names(),
		"suites to run")
	runCmd.Flags().StringVar(&flagOutput, "output", "",
		"output database name, without extension")
	runCmd.Flags().IntVar(&flagMonitorPort, "monitor-port", 0,
		"port for the monitoring server, 0 picks a random port")
	runCmd.Flags().BoolVar(&flagNoMonitor, "no-monitor", false,
		"disable the monitoring server")
	runCmd.Flags().Int64Var(&flagTickNanos, "tick-ns", 0,
		"wall-clock nanoseconds per board tick, 0 runs free")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
}

func applyEnv() {
	// A missing .env file is fine; variables may come from the shell.
	_ = godotenv.Load()

	if v := os.Getenv("PERIPHSIM_MONITOR_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err == nil {
			flagMonitorPort = port
		}
	}

	if v := os.Getenv("PERIPHSIM_OUTPUT"); v != "" && flagOutput == "" {
		flagOutput = v
	}
}

func runSuites(_ *cobra.Command, _ []string) error {
	applyEnv()

	builders := make([]suites.BuildFunc, 0, len(flagSuites))
	for _, name := range flagSuites {
		build, err := suites.Lookup(name)
		if err != nil {
			return err
		}

		builders = append(builders, build)
	}

	b := session.MakeBuilder().
		WithOutputFileName(flagOutput).
		WithTickInterval(time.Duration(flagTickNanos))
	if flagNoMonitor {
		b = b.WithoutMonitoring()
	} else if flagMonitorPort > 0 {
		b = b.WithMonitorPort(flagMonitorPort)
	}

	s := b.Build()
	defer s.Terminate()

	for _, build := range builders {
		s.AddSuite(build, os.Stdout)
	}

	if !s.Run() {
		return fmt.Errorf("one or more checks failed")
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
