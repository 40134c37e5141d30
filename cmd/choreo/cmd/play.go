package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-drift/choreo/pkg/animation"
	"github.com/go-drift/choreo/pkg/choreo"
	"github.com/go-drift/choreo/pkg/sequences"
)

var playExitToo bool

var playCmd = &cobra.Command{
	Use:   "play <sequence>",
	Short: "Play a named sequence against a real frame driver",
	Long: `Play looks up the named sequence (user directory first, then the
builtin set), runs its entrance pattern to completion, and prints the
coordinator's metric summary. Ctrl-C stops all in-flight tasks.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playExitToo, "exit", false, "play the exit run after the entrance completes")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	name := args[0]

	file, err := sequences.Find(name, viper.GetString("sequence_dir"))
	if err != nil {
		return err
	}
	cfg, err := file.Config()
	if err != nil {
		return err
	}

	driver := animation.NewDriver(viper.GetDuration("frame_interval"))
	driver.Start()
	defer driver.Stop()

	reg := choreo.NewRegistry()
	defer reg.DisposeAll()

	coord := choreo.New(reg,
		choreo.WithLogger(logger),
		choreo.WithPreferences(func() choreo.Preferences {
			return choreo.Preferences{
				AnimationsEnabled: !viper.GetBool("no_animations"),
				ReducedMotion:     viper.GetBool("reduced_motion"),
			}
		}),
	)

	subID, changes := coord.Subscribe()
	defer coord.Unsubscribe(subID)
	go func() {
		for change := range changes {
			logger.Debug().
				Stringer("state", change.State).
				Str("sequence", change.Sequence).
				Msg("state changed")
		}
	}()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := coord.PlayEntrance(ctx, name, cfg); err != nil {
		if ctx.Err() != nil {
			coord.StopAll()
			logger.Warn().Msg("interrupted; all tasks stopped")
			return nil
		}
		return err
	}

	if playExitToo {
		if err := coord.PlayExit(ctx); err != nil && ctx.Err() == nil {
			return err
		}
	}

	printSummary(cmd.OutOrStdout(), coord)
	return nil
}

func printSummary(out io.Writer, coord *choreo.Coordinator) {
	summary := coord.Summary()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "runs\t%d\n", summary.Count)
	fmt.Fprintf(w, "elements\t%d\n", summary.TotalElements)
	fmt.Fprintf(w, "average\t%s\n", summary.Average)
	fmt.Fprintf(w, "longest\t%s\n", summary.Longest)
	fmt.Fprintf(w, "shortest\t%s\n", summary.Shortest)
	w.Flush()

	for _, m := range coord.Metrics() {
		logger.Debug().
			Str("run_id", m.RunID).
			Str("sequence", m.SequenceName).
			Str("pattern", m.Pattern).
			Dur("took", m.Duration).
			Msg("recorded metric")
	}
}
