package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/hanmaum/kredact/internal/pii"
	"gopkg.in/yaml.v3"
)

// Summary is everything a formatter renders for one processed input. It
// intentionally carries no transcript text and no matched values.
type Summary struct {
	Source     string                `json:"source" yaml:"source"`
	Report     pii.DetectionReport   `json:"report" yaml:"report"`
	Validation *pii.ValidationResult `json:"validation,omitempty" yaml:"validation,omitempty"`
}

// Formatter renders redaction summaries for the CLI.
type Formatter interface {
	Format(summaries []Summary) (string, error)
}

// New returns the formatter for the given format name.
func New(format string) (Formatter, error) {
	switch format {
	case "text":
		return &textFormatter{}, nil
	case "json":
		return &jsonFormatter{}, nil
	case "yaml":
		return &yamlFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown output format: %s", format)
}

type jsonFormatter struct{}

func (f *jsonFormatter) Format(summaries []Summary) (string, error) {
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format JSON: %w", err)
	}
	return string(data) + "\n", nil
}

type yamlFormatter struct{}

func (f *yamlFormatter) Format(summaries []Summary) (string, error) {
	data, err := yaml.Marshal(summaries)
	if err != nil {
		return "", fmt.Errorf("failed to format YAML: %w", err)
	}
	return string(data), nil
}

type textFormatter struct{}

func (f *textFormatter) Format(summaries []Summary) (string, error) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	var b strings.Builder
	for _, s := range summaries {
		bold.Fprintf(&b, "%s\n", s.Source)
		if s.Report.TotalMasked == 0 {
			green.Fprintf(&b, "  no PII detected\n")
		} else {
			fmt.Fprintf(&b, "  masked %d span(s) in %dµs\n",
				s.Report.TotalMasked, s.Report.DurationMicros)
			for _, cat := range sortedCategories(s.Report.CountsByCategory) {
				fmt.Fprintf(&b, "    %-22s %d\n", cat, s.Report.CountsByCategory[cat])
			}
		}
		if v := s.Validation; v != nil {
			line := fmt.Sprintf("  readability: %s (preserved %.2f)\n", v.Readability, v.PreservedRatio)
			switch {
			case !v.IsValid || v.Readability == pii.ReadabilityLow:
				red.Fprint(&b, line)
			case v.Readability == pii.ReadabilityMedium:
				yellow.Fprint(&b, line)
			default:
				fmt.Fprint(&b, line)
			}
		}
	}
	return b.String(), nil
}

func sortedCategories(counts map[pii.Category]int) []pii.Category {
	cats := make([]pii.Category, 0, len(counts))
	for c := range counts {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Priority() < cats[j].Priority() })
	return cats
}
