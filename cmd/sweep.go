package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Validate inputs at every rate boundary plus a seeded set of random inputs",
	Long: `Validates pseudo-random inputs of length 0, 1, 135, 136, 137 and 272, then
--sweep-samples inputs of random length up to --sweep-max-length. The same --sweep-seed always
produces the same inputs. The sweep stops at the first mismatch.`,
	Run: Sweep,
}

func init() {
	SetupSweepFlags(sweepCmd)
	rootCmd.AddCommand(sweepCmd)
}

func Sweep(cmd *cobra.Command, args []string) {
	app := mustLoadApp(viper.GetBool("save-to-corpus"))
	defer app.Stop()

	_, err := app.Sweep()
	exitOnMismatch(app, err)
}

func SetupSweepFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Int("sweep-samples", 1000, "The number of random inputs to validate")
	cmd.PersistentFlags().Int("sweep-max-length", 300, "The maximum length of a random input")
	cmd.PersistentFlags().Int64("sweep-seed", 1, "The seed the random inputs are generated from")

	cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		viper.BindPFlag(flag.Name, flag)
	})
}
