// Command lifecyclectl runs lifecycle operations against the configured store
// without starting the API server.
//
// Usage:
//
//	lifecyclectl events --status upcoming,live
//	lifecyclectl check
//	lifecyclectl schedule ufc-fight-night --wait
//	lifecyclectl complete ufc-fight-night main-card
//	lifecyclectl sweep
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/fightcard/internal/app"
	"github.com/riskibarqy/fightcard/internal/config"
	"github.com/riskibarqy/fightcard/internal/domain/fight"
	"github.com/riskibarqy/fightcard/internal/platform/logging"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "lifecyclectl",
		Short:         "Operate the fight card lifecycle",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(eventsCmd())
	root.AddCommand(checkCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(completeCmd())
	root.AddCommand(sweepCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func eventsCmd() *cobra.Command {
	var statuses string
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), func(ctx context.Context, rt *app.Runtime, _ *logging.Logger) error {
				var filter []string
				for _, status := range strings.Split(statuses, ",") {
					if status = strings.TrimSpace(status); status != "" {
						filter = append(filter, status)
					}
				}
				items, err := rt.EventService.ListEvents(ctx, filter)
				if err != nil {
					return err
				}
				return printJSON(cmd, items)
			})
		},
	}
	cmd.Flags().StringVar(&statuses, "status", "", "Comma separated statuses (upcoming, live, completed)")
	return cmd
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Complete every overdue section of every open event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), func(ctx context.Context, rt *app.Runtime, _ *logging.Logger) error {
				result, err := rt.Orchestrator.RunLifecycleCheckNow(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, result)
			})
		},
	}
}

func scheduleCmd() *cobra.Command {
	var wait bool
	cmd := &cobra.Command{
		Use:   "schedule <event-id>",
		Short: "Arm section timers for one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), func(ctx context.Context, rt *app.Runtime, logger *logging.Logger) error {
				result, err := rt.Scheduler.ScheduleEvent(ctx, args[0])
				if err != nil {
					return err
				}
				if err := printJSON(cmd, result); err != nil {
					return err
				}
				if !wait || len(result.Armed) == 0 {
					return nil
				}

				logger.Info("waiting for armed timers, interrupt to exit", "event_id", args[0], "armed", len(result.Armed))
				<-ctx.Done()
				logger.Info("timers cancelled", "event_id", args[0], "cancelled", rt.Scheduler.CancelTimers(args[0]))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", false, "Keep running until interrupted so armed timers can fire")
	return cmd
}

func completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <event-id> <section>",
		Short: "Complete one card section (early-prelims, prelims, main-card, all)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := fight.ParseSection(args[1])
			if err != nil {
				return err
			}
			return withRuntime(cmd.Context(), func(ctx context.Context, rt *app.Runtime, _ *logging.Logger) error {
				result, err := rt.Scheduler.CompleteSection(ctx, args[0], section)
				if err != nil {
					return err
				}
				return printJSON(cmd, result)
			})
		},
	}
}

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Promote fights whose scheduled start time has passed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd.Context(), func(ctx context.Context, rt *app.Runtime, _ *logging.Logger) error {
				promoted, err := rt.Poller.Sweep(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, map[string]int{"promoted": promoted})
			})
		},
	}
}

func withRuntime(parent context.Context, fn func(context.Context, *app.Runtime, *logging.Logger) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "cli", "lifecyclectl")
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	rt, err := app.NewRuntime(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		rt.Scheduler.CancelAllTimers()
		if err := rt.Close(); err != nil {
			logger.Warn("close runtime", "error", err)
		}
	}()

	return fn(ctx, rt, logger)
}

func printJSON(cmd *cobra.Command, payload any) error {
	out, err := sonic.ConfigDefault.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
