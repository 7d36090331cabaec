package pii

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hanmaum/kredact/internal/logger"
	"go.uber.org/zap"
)

// ErrInvalidInput is returned when the input is not a valid text value.
var ErrInvalidInput = errors.New("input is not valid UTF-8 text")

// Options restricts which categories and name-confidence tiers are active.
type Options struct {
	// EnabledCategories limits detection to the given categories.
	// A nil map enables everything.
	EnabledCategories map[Category]bool

	// MinNameConfidence is the lowest PersonName tier that is redacted.
	// Structured categories are always High and unaffected. Zero value
	// defaults to Medium, leaving the Low tier opt-in.
	MinNameConfidence Confidence
}

func (o Options) enabled(c Category) bool {
	if o.EnabledCategories == nil {
		return true
	}
	return o.EnabledCategories[c]
}

func (o Options) minNameConfidence() Confidence {
	if o.MinNameConfidence == 0 {
		return ConfidenceMedium
	}
	return o.MinNameConfidence
}

// Engine orchestrates the detectors, span resolution, and the rewrite pass.
// It is stateless across calls; the compiled detector tables are built once
// in New and shared read-only by any number of concurrent Redact calls.
type Engine struct {
	patterns *PatternLibrary
	address  *AddressMatcher
	names    *NameDetector
	opts     Options
	logger   *logger.Logger
}

// New creates a redaction engine with the given options.
func New(opts Options, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		patterns: NewPatternLibrary(),
		address:  NewAddressMatcher(),
		names:    NewNameDetector(),
		opts:     opts,
		logger:   log.WithComponent("pii-engine"),
	}
}

// Redact detects PII spans in text and replaces each with its category's
// canonical placeholder. The placeholders hold no digits or @ for the
// structured patterns, and their bracket delimiters break every Hangul-run
// and boundary rule the name and address heuristics check, so redacting
// already-redacted output is a no-op.
//
// Only invalid input surfaces as an error; an internal detector fault is
// isolated at that detector's boundary and degrades to a partial redaction.
func (e *Engine) Redact(text string) (*RedactionResult, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidInput
	}
	started := time.Now()

	candidates := e.collect(text)
	spans := Resolve(candidates)

	report := DetectionReport{
		CountsByCategory:   make(map[Category]int),
		CountsByConfidence: make(map[Confidence]int),
	}

	// Single left-to-right pass over the sorted resolved spans: gaps are
	// copied verbatim, each span becomes its placeholder, and counts are
	// tallied while iterating.
	var b strings.Builder
	b.Grow(len(text))
	cursor := 0
	for _, s := range spans {
		b.WriteString(text[cursor:s.Start])
		b.WriteString(s.Category.Placeholder())
		cursor = s.End

		report.CountsByCategory[s.Category]++
		report.CountsByConfidence[s.Confidence]++
		report.TotalMasked++
	}
	b.WriteString(text[cursor:])

	report.DurationMicros = time.Since(started).Microseconds()
	return &RedactionResult{
		MaskedText: b.String(),
		Report:     report,
		Original:   text,
	}, nil
}

// collect runs every enabled detector and gathers candidates, isolating each
// detector behind a panic boundary: a fault in one detector must never
// prevent the others' redactions from being applied.
func (e *Engine) collect(text string) []Candidate {
	var candidates []Candidate

	for _, c := range e.runDetector("patterns", func() []Candidate {
		return e.patterns.Detect(text)
	}) {
		if e.opts.enabled(c.Category) {
			candidates = append(candidates, c)
		}
	}

	if e.opts.enabled(CategoryAddress) {
		candidates = append(candidates, e.runDetector("address", func() []Candidate {
			return e.address.Detect(text)
		})...)
	}

	if e.opts.enabled(CategoryPersonName) {
		minTier := e.opts.minNameConfidence()
		for _, c := range e.runDetector("names", func() []Candidate {
			return e.names.Detect(text)
		}) {
			if c.Confidence >= minTier {
				candidates = append(candidates, c)
			}
		}
	}

	return candidates
}

// runDetector invokes fn and converts a panic into zero candidates from that
// detector, logging the failure.
func (e *Engine) runDetector(name string, fn func() []Candidate) (out []Candidate) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			e.logger.Error("detector failed, continuing without it",
				zap.String("detector", name),
				zap.Any("panic", r),
			)
		}
	}()
	return fn()
}
