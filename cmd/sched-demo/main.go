// Command sched-demo runs the runtime through a few demonstration
// scenarios and prints their progress, including the two that exercise the
// frozen-wake machinery: a nested loop inside a joined computation.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/toykit/sched"
)

var (
	flagUnit time.Duration

	logger *slog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sched-demo",
		Short: "Demonstration scenarios for the sched runtime",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().DurationVar(&flagUnit, "unit", 500*time.Millisecond,
		"base duration scenarios are scaled by")

	root.AddCommand(
		newSleepCmd(),
		newNestedCmd(),
		newJoinCmd(),
		newSpawnJoinCmd(),
	)

	return root
}

// timed runs a scenario under a fresh scheduler and logs the elapsed time.
func timed(name string, starter func() sched.Computation) {
	start := time.Now()
	sched.Run(starter)
	logger.Info("scenario complete", "name", name, "elapsed", time.Since(start))
}

func say(format string, args ...any) sched.Computation {
	return sched.Do(func() { fmt.Printf(format+"\n", args...) })
}

// nested wraps comp so that polling it drains comp in a nested loop.
func nested(comp sched.Computation) sched.Computation {
	return sched.PollFunc(func(ctx *sched.Context) sched.Poll {
		ctx.NestedLoop(comp)
		return sched.Ready
	})
}

func newSleepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sleep",
		Short: "A single sleeping computation",
		Run: func(cmd *cobra.Command, args []string) {
			timed("sleep", func() sched.Computation {
				fmt.Println("going to sleep")
				return sched.Block(
					sched.Sleep(flagUnit),
					say("awake again"),
				)
			})
		},
	}
}

func newNestedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nested",
		Short: "A sleep, then a second sleep drained in a nested loop",
		Run: func(cmd *cobra.Command, args []string) {
			timed("nested", func() sched.Computation {
				return sched.Block(
					say("sleeping"),
					sched.Sleep(flagUnit),
					say("resumed; draining a nested sleep"),
					nested(sched.Block(
						sched.Sleep(flagUnit),
						say("nested sleep done"),
					)),
					say("nested loop returned"),
				)
			})
		},
	}
}

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join",
		Short: "Join2 around a nested loop: the deferred-wake path",
		Long: "Joins a plain sleep with a computation that enters a nested loop.\n" +
			"Join2 creates no tasks, so the sleep's wake arriving mid-loop is\n" +
			"queued as a frozen event and replayed once the loop exits.",
		Run: func(cmd *cobra.Command, args []string) {
			timed("join", func() sched.Computation {
				return sched.Join2(
					sched.Block(
						sched.Sleep(2*flagUnit),
						say("plain sleep done (wake was deferred)"),
					),
					sched.Block(
						sched.Sleep(flagUnit),
						say("entering nested loop"),
						nested(sched.Sleep(2*flagUnit)),
						say("nested loop exited"),
					),
				)
			})
		},
	}
}

func newSpawnJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spawnjoin",
		Short: "SpawnJoin2 around a nested loop: the redirected-wake path",
		Long: "Same shape as \"join\", but with task-creating SpawnJoin2: the plain\n" +
			"sleep is a task of its own and completes while the other side's\n" +
			"nested loop is still running.",
		Run: func(cmd *cobra.Command, args []string) {
			timed("spawnjoin", func() sched.Computation {
				return sched.SpawnJoin2(
					sched.Block(
						sched.Sleep(2*flagUnit),
						say("plain sleep done (delivered mid-loop)"),
					),
					sched.Block(
						sched.Sleep(flagUnit),
						say("entering nested loop"),
						nested(sched.Sleep(2*flagUnit)),
						say("nested loop exited"),
					),
				)
			})
		},
	}
}
