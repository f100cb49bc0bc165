package cmd

import (
	"github.com/spf13/cobra"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Check the sponge and the oracles against published Keccak-256 vectors",
	Run:   SelfTest,
}

func init() {
	rootCmd.AddCommand(selftestCmd)
}

func SelfTest(cmd *cobra.Command, args []string) {
	app := mustLoadApp(false)
	defer app.Stop()

	exitOnMismatch(app, app.SelfTest())
}
