package lib

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/golang/glog"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// MeasurementHook observes the start and end of a measured computation. Hooks are purely
// observational: they cannot change or abort the computation they wrap.
type MeasurementHook interface {
	Enter(eventName string)
	Exit(eventName string, elapsed time.Duration)
}

// Measure runs fn between the Enter and Exit of every hook and returns how long fn took. Exit
// hooks run in reverse order so nested hooks unwind cleanly.
func Measure(hooks []MeasurementHook, eventName string, fn func()) time.Duration {
	for _, hook := range hooks {
		hook.Enter(eventName)
	}
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	for ii := len(hooks) - 1; ii >= 0; ii-- {
		hooks[ii].Exit(eventName, elapsed)
	}
	return elapsed
}

// -------------------------------------------------------------------------------------
// MarkerHook
// -------------------------------------------------------------------------------------

// MarkerHook writes "cycle-tracker-start: <event>" and "cycle-tracker-end: <event>" lines that
// an external profiler can use to delimit each computation.
type MarkerHook struct {
	out io.Writer
}

func NewMarkerHook(out io.Writer) *MarkerHook {
	return &MarkerHook{out: out}
}

func (mh *MarkerHook) Enter(eventName string) {
	fmt.Fprintf(mh.out, "cycle-tracker-start: %s\n", eventName)
}

func (mh *MarkerHook) Exit(eventName string, elapsed time.Duration) {
	fmt.Fprintf(mh.out, "cycle-tracker-end: %s\n", eventName)
}

// -------------------------------------------------------------------------------------
// StatsdHook
// -------------------------------------------------------------------------------------

// StatsdHook reports the elapsed time of every computation as a statsd timing.
type StatsdHook struct {
	client statsd.ClientInterface
	tags   []string
}

func NewStatsdHook(client statsd.ClientInterface, tags []string) *StatsdHook {
	return &StatsdHook{client: client, tags: tags}
}

// StatsdMetricName turns an event name into a metric name, e.g. "raw keccak" becomes
// "KECCAK.RAW_KECCAK.DIGEST".
func StatsdMetricName(eventName string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "_", "-", "_")
	return "KECCAK." + strings.ToUpper(replacer.Replace(eventName)) + ".DIGEST"
}

func (sh *StatsdHook) Enter(eventName string) {}

func (sh *StatsdHook) Exit(eventName string, elapsed time.Duration) {
	if err := sh.client.Timing(StatsdMetricName(eventName), elapsed, sh.tags, 1); err != nil {
		glog.V(1).Infof("StatsdHook.Exit: Problem reporting timing for %s: %v", eventName, err)
	}
}

// -------------------------------------------------------------------------------------
// TracerHook
// -------------------------------------------------------------------------------------

// DigestSpanName is the operation name of the span opened around each computation.
const DigestSpanName = "keccak.digest"

// TracerHook opens a Datadog span per computation. The event name becomes the span's resource.
type TracerHook struct {
	spans map[string]ddtrace.Span
}

func NewTracerHook() *TracerHook {
	return &TracerHook{spans: make(map[string]ddtrace.Span)}
}

func (th *TracerHook) Enter(eventName string) {
	th.spans[eventName] = tracer.StartSpan(DigestSpanName, tracer.ResourceName(eventName))
}

func (th *TracerHook) Exit(eventName string, elapsed time.Duration) {
	span, exists := th.spans[eventName]
	if !exists {
		glog.Errorf("TracerHook.Exit: Called with non-existent eventName %s", eventName)
		return
	}
	delete(th.spans, eventName)
	span.SetTag("elapsed_ns", elapsed.Nanoseconds())
	span.Finish()
}
