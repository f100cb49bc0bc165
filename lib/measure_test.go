package lib

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/stretchr/testify/require"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/ext"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/mocktracer"
)

// recordingStatsd captures Timing calls and ignores everything else.
type recordingStatsd struct {
	statsd.NoOpClient
	names []string
}

func (rs *recordingStatsd) Timing(name string, value time.Duration, tags []string, rate float64) error {
	rs.names = append(rs.names, name)
	return nil
}

func TestMeasure(t *testing.T) {
	require := require.New(t)

	first := &recordingHook{}
	second := &recordingHook{}
	ran := false
	elapsed := Measure([]MeasurementHook{first, second}, "event", func() {
		ran = true
		time.Sleep(time.Millisecond)
	})

	require.True(ran)
	require.GreaterOrEqual(elapsed, time.Millisecond)
	require.Equal([]string{"enter event", "exit event"}, first.events)
	require.Equal([]string{"enter event", "exit event"}, second.events)

	// No hooks is fine.
	Measure(nil, "event", func() {})
}

func TestMarkerHook(t *testing.T) {
	require := require.New(t)

	var out bytes.Buffer
	validator := newTestValidator(t, NewMarkerHook(&out))
	_, err := validator.Validate([]byte{0x01})
	require.NoError(err)

	require.Equal(
		"cycle-tracker-start: raw keccak\n"+
			"cycle-tracker-end: raw keccak\n"+
			"cycle-tracker-start: x/crypto sha3\n"+
			"cycle-tracker-end: x/crypto sha3\n"+
			"cycle-tracker-start: go-ethereum\n"+
			"cycle-tracker-end: go-ethereum\n",
		out.String())
}

func TestStatsdHook(t *testing.T) {
	require := require.New(t)

	require.Equal("KECCAK.RAW_KECCAK.DIGEST", StatsdMetricName(SpongeHasherName))
	require.Equal("KECCAK.X_CRYPTO_SHA3.DIGEST", StatsdMetricName(XCryptoHasherName))
	require.Equal("KECCAK.GO_ETHEREUM.DIGEST", StatsdMetricName(GethHasherName))

	client := &recordingStatsd{}
	validator := newTestValidator(t, NewStatsdHook(client, []string{"env:test"}))
	_, err := validator.Validate([]byte("statsd"))
	require.NoError(err)
	require.Equal([]string{
		"KECCAK.RAW_KECCAK.DIGEST",
		"KECCAK.X_CRYPTO_SHA3.DIGEST",
		"KECCAK.GO_ETHEREUM.DIGEST",
	}, client.names)
}

func TestTracerHook(t *testing.T) {
	require := require.New(t)

	mt := mocktracer.Start()
	defer mt.Stop()

	hook := NewTracerHook()
	validator := newTestValidator(t, hook)
	_, err := validator.Validate([]byte("trace me"))
	require.NoError(err)

	spans := mt.FinishedSpans()
	require.Equal(3, len(spans))
	for ii, name := range []string{SpongeHasherName, XCryptoHasherName, GethHasherName} {
		require.Equal(DigestSpanName, spans[ii].OperationName())
		require.Equal(name, spans[ii].Tag(ext.ResourceName))
	}
	require.Empty(hook.spans)

	// Exit without Enter is logged and ignored.
	hook.Exit("unknown", time.Second)
	require.Equal(3, len(mt.FinishedSpans()))
}

func TestTimerHook(t *testing.T) {
	require := require.New(t)

	Mode = EnableTimer
	defer func() { Mode = DisableTimer }()

	timer := &Timer{}
	timer.Initialize()
	validator := newTestValidator(t, timer)
	for ii := 0; ii < 3; ii++ {
		_, err := validator.Validate([]byte{byte(ii)})
		require.NoError(err)
	}

	for _, name := range []string{SpongeHasherName, XCryptoHasherName, GethHasherName} {
		seconds, count := timer.Elapsed(name)
		require.Equal(3, count, name)
		require.GreaterOrEqual(seconds, 0.0)
	}
	timer.PrintAll()
	require.True(strings.HasPrefix(timer.summary(SpongeHasherName),
		"Timer.Print: event (raw keccak) total elapsed time ("))
	require.True(strings.HasSuffix(timer.summary(SpongeHasherName), ") over (3) runs"))

	// Ending an event that never started is ignored.
	timer.End("never started")
	_, count := timer.Elapsed("never started")
	require.Equal(0, count)
}

func TestTimerDisabled(t *testing.T) {
	require := require.New(t)

	timer := &Timer{}
	timer.Initialize()
	timer.Start("event")
	timer.End("event")
	_, count := timer.Elapsed("event")
	require.Equal(0, count)
}
