package lib

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/deso-protocol/keccakcheck/keccak"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
)

// -------------------------------------------------------------------------------------
// Color Logger
// -------------------------------------------------------------------------------------

var (
	Green = color.New(color.FgHiGreen)
	Red   = color.New(color.FgRed)
)

func CLog(c *color.Color, str string) string {
	return c.Sprint(str)
}

// -------------------------------------------------------------------------------------
// Result output
// -------------------------------------------------------------------------------------

type OutputFormat string

const (
	OutputFormatHex   OutputFormat = "hex"
	OutputFormatBytes OutputFormat = "bytes"
	OutputFormatJSON  OutputFormat = "json"
)

func ParseOutputFormat(format string) (OutputFormat, error) {
	switch OutputFormat(format) {
	case OutputFormatHex, OutputFormatBytes, OutputFormatJSON:
		return OutputFormat(format), nil
	}
	return "", fmt.Errorf("ParseOutputFormat: Unknown output format %q", format)
}

// FormatDigestBytes renders a digest as a decimal byte list, e.g. [197, 210, 70, ...].
func FormatDigestBytes(digest [keccak.DigestSize]byte) string {
	parts := make([]string, len(digest))
	for ii, b := range digest {
		parts[ii] = strconv.Itoa(int(b))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type jsonComputation struct {
	Name      string `json:"name"`
	Digest    string `json:"digest"`
	ElapsedNs int64  `json:"elapsedNs"`
}

type jsonResult struct {
	RunID        string            `json:"runId"`
	InputLength  int               `json:"inputLength"`
	Matched      bool              `json:"matched"`
	Computations []jsonComputation `json:"computations"`
}

// PrintResult writes every digest in result to w in the given format.
func PrintResult(w io.Writer, result *ValidationResult, format OutputFormat) error {
	switch format {
	case OutputFormatJSON:
		out := jsonResult{
			RunID:       result.RunID.String(),
			InputLength: result.InputLength,
			Matched:     result.Matched(),
		}
		for _, computation := range result.Computations {
			out.Computations = append(out.Computations, jsonComputation{
				Name:      computation.Name,
				Digest:    hexutil.Encode(computation.Digest[:]),
				ElapsedNs: computation.Elapsed.Nanoseconds(),
			})
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(out); err != nil {
			return errors.Wrapf(err, "PrintResult: Problem encoding json")
		}
		return nil

	case OutputFormatHex, OutputFormatBytes:
		for _, computation := range result.Computations {
			digest := hexutil.Encode(computation.Digest[:])
			if format == OutputFormatBytes {
				digest = FormatDigestBytes(computation.Digest)
			}
			if _, err := fmt.Fprintf(w, "%s hash: %s\n", computation.Name, digest); err != nil {
				return errors.Wrapf(err, "PrintResult: Problem writing digest")
			}
		}
		status := CLog(Green, "all digests match")
		if !result.Matched() {
			status = CLog(Red, "DIGEST MISMATCH")
		}
		_, err := fmt.Fprintf(w, "input length: %d, %s\n", result.InputLength, status)
		return err
	}
	return fmt.Errorf("PrintResult: Unknown output format %q", format)
}

// digestLanes renders a digest one 8-byte lane per line.
func digestLanes(digest [keccak.DigestSize]byte) []string {
	var lines []string
	for lane := 0; lane < keccak.DigestSize/8; lane++ {
		lines = append(lines, fmt.Sprintf("lane %d: %x\n", lane, digest[lane*8:(lane+1)*8]))
	}
	return lines
}

// DigestDiff returns a unified diff of two digests, one lane per line, so a mismatch shows
// which lanes of the squeezed state disagree.
func DigestDiff(reference Computation, other Computation) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        digestLanes(reference.Digest),
		B:        digestLanes(other.Digest),
		FromFile: reference.Name,
		ToFile:   other.Name,
		Context:  0,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", errors.Wrapf(err, "DigestDiff: Problem diffing %s against %s", reference.Name, other.Name)
	}
	return text, nil
}

// MismatchReport describes every mismatch in err with a diff against the reference.
func MismatchReport(err *DigestMismatchError) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")
	for _, mismatch := range err.Mismatches {
		diff, diffErr := DigestDiff(err.Reference, mismatch)
		if diffErr != nil {
			sb.WriteString(diffErr.Error())
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(diff)
	}
	return sb.String()
}
