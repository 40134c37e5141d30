package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-drift/choreo/pkg/sequences"
)

var sequencesCmd = &cobra.Command{
	Use:     "sequences",
	Aliases: []string{"seq", "ls"},
	Short:   "List available sequence configurations",
	Long: `Sequences lists the builtin configurations and, when --sequence-dir is
set, the user's YAML sequence files. User files shadow builtins by name.`,
	Args: cobra.NoArgs,
	RunE: runSequences,
}

func init() {
	rootCmd.AddCommand(sequencesCmd)
}

func runSequences(cmd *cobra.Command, args []string) error {
	files, err := sequences.Builtin()
	if err != nil {
		return err
	}

	if dir := viper.GetString("sequence_dir"); dir != "" {
		user, err := sequences.LoadDir(dir)
		if err != nil {
			return err
		}
		files = append(user, files...)
	}

	seen := make(map[string]bool)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPATTERN\tELEMENTS\tSOURCE\tDESCRIPTION")
	for _, f := range files {
		if seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			f.Name, f.Pattern, len(f.Elements), f.Source, f.Description)
	}
	return w.Flush()
}
