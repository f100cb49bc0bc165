package lib

import (
	"fmt"
	"sort"
	"time"

	"github.com/golang/glog"
)

// Mode determines if Timer will be used. Set --time-events=true to enable timing.
var Mode = DisableTimer

// Timer accumulates the total elapsed time of named events. It doubles as a MeasurementHook so
// it can be attached to a Validator.
// NOTE: Timer uses maps and so doesn't support concurrent calls to Start() or End().
type Timer struct {
	totalElapsedTimes map[string]float64
	lastTimes         map[string]time.Time
	counts            map[string]int
	mode              bool
}

func (t *Timer) Initialize() {
	t.totalElapsedTimes = make(map[string]float64)
	t.lastTimes = make(map[string]time.Time)
	t.counts = make(map[string]int)
	t.mode = Mode
}

func (t *Timer) Start(eventName string) {
	if t.mode != EnableTimer {
		return
	}

	if _, exists := t.lastTimes[eventName]; !exists {
		t.totalElapsedTimes[eventName] = 0.0
	}
	t.lastTimes[eventName] = time.Now()
}

func (t *Timer) End(eventName string) {
	if t.mode != EnableTimer {
		return
	}

	if _, exists := t.totalElapsedTimes[eventName]; !exists {
		glog.Errorf("Timer.End: Error called with non-existent eventName")
		return
	}
	t.totalElapsedTimes[eventName] += time.Since(t.lastTimes[eventName]).Seconds()
	t.counts[eventName]++
}

// Elapsed returns the accumulated seconds and the number of completed events for eventName.
func (t *Timer) Elapsed(eventName string) (_seconds float64, _count int) {
	return t.totalElapsedTimes[eventName], t.counts[eventName]
}

func (t *Timer) Print(eventName string) {
	if t.mode != EnableTimer {
		return
	}

	if _, exists := t.lastTimes[eventName]; exists {
		glog.Info(t.summary(eventName))
	}
}

func (t *Timer) summary(eventName string) string {
	return fmt.Sprintf("Timer.Print: event (%s) total elapsed time (%v) over (%d) runs",
		eventName, t.totalElapsedTimes[eventName], t.counts[eventName])
}

// PrintAll logs every event the Timer has seen, in name order.
func (t *Timer) PrintAll() {
	var eventNames []string
	for eventName := range t.lastTimes {
		eventNames = append(eventNames, eventName)
	}
	sort.Strings(eventNames)
	for _, eventName := range eventNames {
		t.Print(eventName)
	}
}

func (t *Timer) Enter(eventName string) {
	t.Start(eventName)
}

func (t *Timer) Exit(eventName string, elapsed time.Duration) {
	t.End(eventName)
}
