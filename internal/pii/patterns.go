package pii

import "regexp"

// matcher pairs a compiled regex with its category.
type matcher struct {
	category Category
	re       *regexp.Regexp
}

// PatternLibrary holds the compiled structured-PII matchers. It is built once
// and read-only afterwards, so a single instance is safe to share across
// concurrent calls.
type PatternLibrary struct {
	matchers []matcher
}

// Structured pattern notes:
//   - \b keeps an 11-digit run from passing as a 10-digit match plus a stray
//     digit; RE2 word boundaries treat Hangul as non-word, so a digit run
//     glued to Korean text (e.g. "5678입니다") still terminates cleanly.
//   - The matchers are listed in their fixed application order:
//     Email → Phone → NationalId → Card → Passport → DriverLicense →
//     BusinessRegistration → BankAccount. Email first because its character
//     class cannot be consumed by the numeric patterns; Card before
//     BankAccount because four groups of four is the stricter shape; the
//     looser account pattern would otherwise eat part of a card number.
var structuredSpecs = []struct {
	category Category
	expr     string
}{
	{CategoryEmail, `\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`},
	// Mobile (010/011/016-019), Seoul (02), regional (031-064), internet (070).
	{CategoryPhone, `\b(?:01[016789]|02|0[3-6][1-9]|070)[-\s]?\d{3,4}[-\s]?\d{4}\b`},
	// Resident registration number: birth date, then a century/gender digit
	// restricted to 1-4, then six more digits.
	{CategoryNationalID, `\b\d{6}[-\s]?[1-4]\d{6}\b`},
	{CategoryCard, `\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`},
	{CategoryPassport, `\b[MSRODG]\d{8}\b`},
	// Region code (01-28), issue year, serial, check digits.
	{CategoryDriverLicense, `\b(?:0[1-9]|1[0-9]|2[0-8])-\d{2}-\d{6}-\d{2}\b`},
	{CategoryBusinessRegistration, `\b\d{3}-\d{2}-\d{5}\b`},
	// Bank accounts vary by bank; accept three hyphenated variable groups.
	{CategoryBankAccount, `\b\d{2,6}-\d{2,6}-\d{4,7}\b`},
}

// NewPatternLibrary compiles the structured matchers in application order.
func NewPatternLibrary() *PatternLibrary {
	lib := &PatternLibrary{matchers: make([]matcher, 0, len(structuredSpecs))}
	for _, s := range structuredSpecs {
		lib.matchers = append(lib.matchers, matcher{
			category: s.category,
			re:       regexp.MustCompile(s.expr),
		})
	}
	return lib
}

// Detect returns all structured-PII candidates in text. Every structured
// match is High confidence; syntactic collisions between categories are left
// for the span resolver, which relies on the category priority order.
func (l *PatternLibrary) Detect(text string) []Candidate {
	var out []Candidate
	for _, m := range l.matchers {
		for _, loc := range m.re.FindAllStringIndex(text, -1) {
			out = append(out, Candidate{
				Category:   m.category,
				Start:      loc[0],
				End:        loc[1],
				Text:       text[loc[0]:loc[1]],
				Confidence: ConfidenceHigh,
			})
		}
	}
	return out
}
