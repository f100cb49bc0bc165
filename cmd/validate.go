package cmd

import (
	"os"

	"github.com/deso-protocol/keccakcheck/lib"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Hash one input and check the digest against every oracle",
	Long: `Reads a single input, hashes it with the sponge and with every configured oracle,
prints each digest and exits with an error if any oracle disagrees. The input comes from
--input-hex, --input-file, or stdin, in that order of preference.`,
	Run: Validate,
}

func init() {
	SetupValidateFlags(validateCmd)
	rootCmd.AddCommand(validateCmd)
}

func Validate(cmd *cobra.Command, args []string) {
	app := mustLoadApp(viper.GetBool("save-to-corpus"))
	defer app.Stop()

	input, err := app.ReadInput(os.Stdin)
	if err != nil {
		app.Stop()
		glog.Fatal(err)
	}
	_, err = app.Validate(input)
	exitOnMismatch(app, err)
}

func SetupValidateFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("input-file", "",
		"Read the input from this file instead of stdin, using --framing")
	cmd.PersistentFlags().String("input-hex", "",
		"The input as hex, with or without a 0x prefix. Takes precedence over --input-file and stdin")
	cmd.PersistentFlags().String("framing", string(lib.InputFramingRaw),
		"How the input is laid out: raw (the whole stream), uvarint (varint length then bytes), "+
			"u64le (8-byte little-endian length then bytes), or hex (hex text)")

	cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		viper.BindPFlag(flag.Name, flag)
	})
}
