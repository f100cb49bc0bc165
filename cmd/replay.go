package cmd

import (
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Re-validate every input stored in the corpus",
	Long: `Hashes every input saved with --save-to-corpus again and checks the digests against
the oracles and against the digest recorded when the input was saved.`,
	Run: Replay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func Replay(cmd *cobra.Command, args []string) {
	app := mustLoadApp(true)
	defer app.Stop()

	_, err := app.Replay()
	exitOnMismatch(app, err)
}
