package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/racewatch/racewatch/internal/tui"
)

var historyResetYes bool

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"log"},
	Short:   "Print the recorded history",
	Args:    cobra.NoArgs,
	RunE:    runHistory,
}

var historyResetCmd = &cobra.Command{
	Use:     "reset",
	Aliases: []string{"clear"},
	Short:   "Delete every recorded entry",
	Args:    cobra.NoArgs,
	RunE:    runHistoryReset,
}

func init() {
	historyResetCmd.Flags().BoolVarP(&historyResetYes, "yes", "y", false, "Skip confirmation")
	historyCmd.AddCommand(historyResetCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	out := cmd.OutOrStdout()
	if !env.history.Available() {
		fmt.Fprintln(out, styleWarning.Render("History storage unavailable."))
		return nil
	}

	entries, err := env.history.Load()
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, styleHint.Render("No entries recorded."))
		return nil
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = e.Fields()
	}
	fmt.Fprintln(out, tui.RenderTable(rows, 0))
	fmt.Fprintf(out, "%s %s\n", styleLabel.Render("Entries:"), styleValue.Render(fmt.Sprint(len(entries))))
	return nil
}

func runHistoryReset(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	out := cmd.OutOrStdout()
	if !env.history.Available() {
		fmt.Fprintln(out, styleWarning.Render("History storage unavailable."))
		return nil
	}

	if !historyResetYes {
		reader := bufio.NewReader(cmd.InOrStdin())
		fmt.Fprintf(out, "Delete %d entries? [no]: ", env.history.Size())
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if err := env.history.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	fmt.Fprintln(out, styleSuccess.Render("History cleared."))
	return nil
}
