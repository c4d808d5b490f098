package internal

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

var (
	errorStyle = color.New(color.FgRed, color.Bold)
	okStyle    = color.New(color.FgGreen, color.Bold)
	ruleStyle  = color.New(color.FgYellow, color.Bold)
	fileStyle  = color.New(color.FgCyan, color.Bold)
	arrowStyle = color.New(color.FgBlue, color.Bold)
)

// FormatResult renders a result header followed, on success, by its
// value as YAML.
func FormatResult(res Result) string {
	var builder strings.Builder
	builder.WriteString(formatResultHeader(res))
	if !res.Matched {
		return builder.String()
	}
	value, err := FormatValue(res.Value)
	if err != nil {
		builder.WriteString(errorStyle.Sprint("error: ") + err.Error() + "\n")
		return builder.String()
	}
	for _, line := range strings.Split(strings.TrimRight(value, "\n"), "\n") {
		builder.WriteString(arrowStyle.Sprint("  | ") + line + "\n")
	}
	return builder.String()
}

// FormatSummary renders a one line verdict per result, as printed by check.
func FormatSummary(res Result) string {
	return formatResultHeader(res)
}

func formatResultHeader(res Result) string {
	name := res.Filename
	if name == "" {
		name = "<stdin>"
	}
	var status string
	switch {
	case res.Err != nil:
		status = errorStyle.Sprint("error: ") + res.Err.Error()
	case res.Matched:
		status = okStyle.Sprint("match")
	default:
		status = errorStyle.Sprint("no match")
	}
	return fmt.Sprintf("%s %s %s %s\n",
		fileStyle.Sprint(name),
		arrowStyle.Sprint("-->"),
		ruleStyle.Sprint(res.Rule),
		status,
	)
}

// FormatValue encodes a parsed value as YAML.
func FormatValue(v any) (string, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding value: %w", err)
	}
	return string(out), nil
}

type jsonResult struct {
	File    string `json:"file,omitempty"`
	Rule    string `json:"rule"`
	Matched bool   `json:"matched"`
	Value   any    `json:"value,omitempty"`
	Error   string `json:"error,omitempty"`
}

// FormatJSON encodes results as an indented JSON array.
func FormatJSON(results []Result) ([]byte, error) {
	out := make([]jsonResult, len(results))
	for i, res := range results {
		out[i] = jsonResult{
			File:    res.Filename,
			Rule:    res.Rule,
			Matched: res.Matched,
			Value:   res.Value,
		}
		if res.Err != nil {
			out[i].Error = res.Err.Error()
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
