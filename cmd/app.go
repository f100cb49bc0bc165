package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/deso-protocol/keccakcheck/keccak"
	"github.com/deso-protocol/keccakcheck/lib"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// App owns everything a single keccakcheck run needs: the validator with its measurement hooks
// and, for commands that use it, the corpus.
type App struct {
	Config *Config

	Validator *lib.Validator
	Corpus    *lib.Corpus
	Timer     *lib.Timer

	out           io.Writer
	errOut        io.Writer
	statsdClient  *statsd.Client
	tracerStarted bool
	started       bool
}

func NewApp(config *Config, out io.Writer) *App {
	return &App{
		Config: config,
		out:    out,
		errOut: os.Stderr,
	}
}

// Start sets up logging, builds the measurement hooks and the validator, and opens the corpus
// when withCorpus is set.
func (app *App) Start(withCorpus bool) error {
	if app.Config.LogDirectory != "" {
		flag.Set("log_dir", app.Config.LogDirectory)
	}
	flag.Set("v", fmt.Sprintf("%d", app.Config.GlogV))
	flag.Set("vmodule", app.Config.GlogVmodule)
	flag.Set("alsologtostderr", "true")
	glog.CopyStandardLogTo("INFO")

	app.Config.Print()

	var hooks []lib.MeasurementHook
	if app.Config.CycleMarkers {
		// Keep stdout a single JSON document.
		markerOut := app.out
		if app.Config.OutputFormat == lib.OutputFormatJSON {
			markerOut = app.errOut
		}
		hooks = append(hooks, lib.NewMarkerHook(markerOut))
	}
	if app.Config.TimeEvents {
		lib.Mode = lib.EnableTimer
		app.Timer = &lib.Timer{}
		app.Timer.Initialize()
		hooks = append(hooks, app.Timer)
	}
	if app.Config.StatsdAddress != "" {
		statsdClient, err := statsd.New(app.Config.StatsdAddress)
		if err != nil {
			return errors.Wrapf(err, "App.Start: Problem creating statsd client for %s", app.Config.StatsdAddress)
		}
		app.statsdClient = statsdClient
		hooks = append(hooks, lib.NewStatsdHook(statsdClient, nil))
	}
	if app.Config.DatadogTracer {
		tracer.Start(tracer.WithService(lib.ConfigDirAppName))
		app.tracerStarted = true
		hooks = append(hooks, lib.NewTracerHook())
	}

	oracles, err := lib.NewOracles(app.Config.Oracles)
	if err != nil {
		return errors.Wrapf(err, "App.Start: Problem creating oracles")
	}
	app.Validator, err = lib.NewValidator(lib.NewSpongeHasher(keccak.KeccakF1600{}), oracles, hooks...)
	if err != nil {
		return errors.Wrapf(err, "App.Start: Problem creating validator")
	}

	if withCorpus {
		corpusDir := app.Config.CorpusDirectory
		if corpusDir == "" {
			corpusDir = lib.GetCorpusDir(lib.GetDataDir())
		}
		if err = os.MkdirAll(corpusDir, os.ModePerm); err != nil {
			return errors.Wrapf(err, "App.Start: Could not create corpus directory %s", corpusDir)
		}
		app.Corpus, err = lib.OpenCorpus(corpusDir)
		if err != nil {
			return errors.Wrapf(err, "App.Start")
		}
	}

	app.started = true
	return nil
}

// Stop releases everything Start acquired. It is safe to call more than once.
func (app *App) Stop() {
	if !app.started {
		return
	}
	app.started = false

	if app.Corpus != nil {
		if err := app.Corpus.Close(); err != nil {
			glog.Errorf("App.Stop: Problem closing corpus: %v", err)
		}
		app.Corpus = nil
	}
	if app.Timer != nil {
		app.Timer.PrintAll()
	}
	if app.tracerStarted {
		tracer.Stop()
		app.tracerStarted = false
	}
	if app.statsdClient != nil {
		if err := app.statsdClient.Close(); err != nil {
			glog.Errorf("App.Stop: Problem closing statsd client: %v", err)
		}
		app.statsdClient = nil
	}
	glog.Flush()
}

// ReadInput returns the input named by the config: --input-hex if set, otherwise the framed
// contents of --input-file, otherwise the framed contents of stdin.
func (app *App) ReadInput(stdin io.Reader) ([]byte, error) {
	if app.Config.InputHex != "" {
		return lib.DecodeHexInput(app.Config.InputHex)
	}
	if app.Config.InputFile != "" {
		file, err := os.Open(app.Config.InputFile)
		if err != nil {
			return nil, errors.Wrapf(err, "App.ReadInput: Problem opening %s", app.Config.InputFile)
		}
		defer file.Close()
		return lib.ReadInput(file, app.Config.Framing)
	}
	return lib.ReadInput(stdin, app.Config.Framing)
}

// Validate checks one input, prints the result and, when configured, saves the input to the
// corpus. A mismatch is still printed before its error is returned.
func (app *App) Validate(input []byte) (*lib.ValidationResult, error) {
	result, validateErr := app.Validator.Validate(input)
	if result != nil {
		if err := lib.PrintResult(app.out, result, app.Config.OutputFormat); err != nil {
			return result, errors.Wrapf(err, "App.Validate")
		}
	}
	if validateErr != nil {
		return result, validateErr
	}

	if app.Config.SaveToCorpus && app.Corpus != nil {
		if err := app.Corpus.PutResult(fmt.Sprintf("run-%v", result.RunID), input, result); err != nil {
			return result, errors.Wrapf(err, "App.Validate: Problem saving input to corpus")
		}
	}
	return result, nil
}

// Sweep validates the boundary lengths and the configured number of random inputs, stopping
// at the first mismatch. It returns the number of inputs that validated.
func (app *App) Sweep() (int, error) {
	inputs := lib.SweepInputs(app.Config.SweepSamples, app.Config.SweepMaxLength, app.Config.SweepSeed)

	validated := 0
	var saveErr error
	err := lib.RunSweep(app.Validator, inputs, func(sweepInput lib.SweepInput, result *lib.ValidationResult) {
		if !result.Matched() {
			return
		}
		validated++
		if glog.V(1) {
			lib.PrintResult(app.out, result, app.Config.OutputFormat)
		}
		if saveErr == nil && app.Config.SaveToCorpus && app.Corpus != nil {
			saveErr = app.Corpus.PutResult(sweepInput.Label, sweepInput.Input, result)
		}
	})
	if err != nil {
		return validated, err
	}
	if saveErr != nil {
		return validated, errors.Wrapf(saveErr, "App.Sweep: Problem saving input to corpus")
	}

	fmt.Fprintf(app.out, "swept %d inputs (seed %d), %s\n",
		validated, app.Config.SweepSeed, lib.CLog(lib.Green, "all digests match"))
	return validated, nil
}

// Replay re-validates every input in the corpus.
func (app *App) Replay() (int, error) {
	if app.Corpus == nil {
		return 0, errors.New("App.Replay: Corpus is not open")
	}
	replayed, err := lib.ReplayCorpus(app.Corpus, app.Validator)
	if err != nil {
		return replayed, err
	}
	fmt.Fprintf(app.out, "replayed %d corpus entries, %s\n", replayed, lib.CLog(lib.Green, "all digests match"))
	return replayed, nil
}

// SelfTest checks the sponge against the known vectors on its own, then runs every known vector
// through the validator so the oracles are checked as well.
func (app *App) SelfTest() error {
	if err := keccak.NewSponge(keccak.KeccakF1600{}).VerifyKnownVectors(); err != nil {
		return errors.Wrapf(err, "App.SelfTest")
	}
	for _, vec := range keccak.KnownVectors {
		if _, err := app.Validator.Validate(vec.Input); err != nil {
			return errors.Wrapf(err, "App.SelfTest: Vector %q", vec.Name)
		}
	}
	fmt.Fprintf(app.out, "%d known vectors, %s\n", len(keccak.KnownVectors), lib.CLog(lib.Green, "all digests match"))
	return nil
}
