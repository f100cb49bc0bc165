package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/deso-protocol/keccakcheck/lib"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "keccakcheck",
	Short: "Validate a hand-rolled Keccak-256 against reference implementations",
	Long: `keccakcheck hashes input with its own Keccak-f[1600] sponge and checks the digest
against independent Keccak-256 implementations. Any disagreement is fatal.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.keccakcheck/keccakcheck.yaml)")
	SetupSharedFlags(rootCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Expand("~/.keccakcheck")
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigName("keccakcheck")
	}

	// Environment variable support
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// SetupSharedFlags registers the flags every subcommand understands. They live on the root
// command so each key is bound to viper exactly once.
func SetupSharedFlags(cmd *cobra.Command) {
	// Validation
	cmd.PersistentFlags().StringSlice("oracles", lib.DefaultOracles,
		fmt.Sprintf("A comma-separated list of reference implementations to check the sponge "+
			"against. Available: %s", strings.Join(lib.OracleKeys(), ", ")))
	cmd.PersistentFlags().String("output-format", string(lib.OutputFormatHex),
		"How digests are printed: hex, bytes (a decimal byte list), or json")

	// Measurement
	cmd.PersistentFlags().Bool("cycle-markers", false,
		"Print cycle-tracker-start/cycle-tracker-end markers to stdout around every digest "+
			"computation")
	cmd.PersistentFlags().Bool("time-events", false,
		"Accumulate the time spent in every digest computation and log the totals on exit")
	cmd.PersistentFlags().String("statsd-address", "",
		"When set, report the duration of every digest computation to this statsd host:port")
	cmd.PersistentFlags().Bool("datadog-tracer", false,
		"Start the Datadog tracer and record a span for every digest computation")

	// Corpus
	cmd.PersistentFlags().String("corpus-dir", "",
		"The location of the corpus of validated inputs. When unset, defaults to a directory "+
			"under the system's configuration directory.")
	cmd.PersistentFlags().Bool("save-to-corpus", false,
		"Store every input that validates cleanly in the corpus so it can be replayed later")

	// Logging
	cmd.PersistentFlags().String("log-dir", "", "The directory for logs")
	cmd.PersistentFlags().Uint64("glog-v", 0, "The log level. 0 = INFO, 1 = DEBUG, 2 = TRACE. Defaults to zero")
	cmd.PersistentFlags().String("glog-vmodule", "", "The syntax of the argument is a comma-separated "+
		"list of pattern=N, where pattern is a literal file name (minus the \".go\" suffix) or "+
		"\"glob\" pattern and N is a V level. For instance, -vmodule=gopher*=3 sets the V level to 3 "+
		"in all Go files whose names begin \"gopher\".")

	cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		viper.BindPFlag(flag.Name, flag)
	})
}

// mustLoadApp loads the config and starts an App, exiting on any problem.
func mustLoadApp(withCorpus bool) *App {
	config, err := LoadConfig()
	if err != nil {
		glog.Fatal(err)
	}
	app := NewApp(config, os.Stdout)
	if err = app.Start(withCorpus); err != nil {
		glog.Fatal(err)
	}
	return app
}

// exitOnMismatch aborts the process when err is a digest mismatch, logging a per-lane diff of
// every disagreeing digest first. Any other error is also fatal.
func exitOnMismatch(app *App, err error) {
	if err == nil {
		return
	}
	var mismatchErr *lib.DigestMismatchError
	if errors.As(err, &mismatchErr) {
		glog.Error(lib.CLog(lib.Red, lib.MismatchReport(mismatchErr)))
	}
	app.Stop()
	glog.Fatal(err)
}
