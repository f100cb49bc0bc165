package cmd

import (
	"strings"

	"github.com/deso-protocol/keccakcheck/lib"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	// Input
	InputFile string
	InputHex  string
	Framing   lib.InputFraming

	// Validation
	Oracles      []string
	OutputFormat lib.OutputFormat

	// Measurement
	CycleMarkers  bool
	TimeEvents    bool
	StatsdAddress string
	DatadogTracer bool

	// Corpus
	CorpusDirectory string
	SaveToCorpus    bool

	// Sweep
	SweepSamples   int
	SweepMaxLength int
	SweepSeed      int64

	// Logging
	LogDirectory string
	GlogV        uint64
	GlogVmodule  string
}

func LoadConfig() (*Config, error) {
	config := Config{}
	var err error

	// Input
	config.InputFile = viper.GetString("input-file")
	config.InputHex = viper.GetString("input-hex")
	framing := viper.GetString("framing")
	if framing == "" {
		framing = string(lib.InputFramingRaw)
	}
	config.Framing, err = lib.ParseInputFraming(framing)
	if err != nil {
		return nil, errors.Wrapf(err, "LoadConfig: Problem with --framing")
	}

	// Validation
	config.Oracles = viper.GetStringSlice("oracles")
	if len(config.Oracles) == 0 {
		config.Oracles = lib.DefaultOracles
	}
	if _, err = lib.NewOracles(config.Oracles); err != nil {
		return nil, errors.Wrapf(err, "LoadConfig: Problem with --oracles")
	}
	outputFormat := viper.GetString("output-format")
	if outputFormat == "" {
		outputFormat = string(lib.OutputFormatHex)
	}
	config.OutputFormat, err = lib.ParseOutputFormat(outputFormat)
	if err != nil {
		return nil, errors.Wrapf(err, "LoadConfig: Problem with --output-format")
	}

	// Measurement
	config.CycleMarkers = viper.GetBool("cycle-markers")
	config.TimeEvents = viper.GetBool("time-events")
	config.StatsdAddress = viper.GetString("statsd-address")
	config.DatadogTracer = viper.GetBool("datadog-tracer")

	// Corpus
	config.CorpusDirectory = viper.GetString("corpus-dir")
	config.SaveToCorpus = viper.GetBool("save-to-corpus")

	// Sweep
	config.SweepSamples = viper.GetInt("sweep-samples")
	config.SweepMaxLength = viper.GetInt("sweep-max-length")
	config.SweepSeed = viper.GetInt64("sweep-seed")
	if config.SweepSamples < 0 || config.SweepMaxLength < 0 {
		return nil, errors.Errorf("LoadConfig: --sweep-samples (%d) and --sweep-max-length (%d) "+
			"must not be negative", config.SweepSamples, config.SweepMaxLength)
	}

	// Logging
	config.LogDirectory = viper.GetString("log-dir")
	config.GlogV = viper.GetUint64("glog-v")
	config.GlogVmodule = viper.GetString("glog-vmodule")

	return &config, nil
}

func (config *Config) Print() {
	if config.LogDirectory != "" {
		glog.Infof("Logging to directory %s", config.LogDirectory)
	}
	glog.Infof("Oracles: %s", strings.Join(config.Oracles, ", "))
	glog.Infof("Output format: %s", config.OutputFormat)

	if config.CycleMarkers {
		glog.Infof("Cycle markers: ON")
	}
	if config.TimeEvents {
		glog.Infof("Timer: ON")
	}
	if config.StatsdAddress != "" {
		glog.Infof("Statsd address: %s", config.StatsdAddress)
	}
	if config.DatadogTracer {
		glog.Infof("Datadog tracer: ON")
	}
	if config.CorpusDirectory != "" {
		glog.Infof("Corpus directory: %s", config.CorpusDirectory)
	}
	if config.SaveToCorpus {
		glog.Infof("Saving validated inputs to the corpus")
	}
}
