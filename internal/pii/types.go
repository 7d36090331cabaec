package pii

import "fmt"

// Category classifies the kind of sensitive data found.
type Category string

// Supported PII categories for detection and redaction.
const (
	CategoryPhone                Category = "phone"
	CategoryEmail                Category = "email"
	CategoryNationalID           Category = "national_id"
	CategoryCard                 Category = "card"
	CategoryBankAccount          Category = "bank_account"
	CategoryAddress              Category = "address"
	CategoryBusinessRegistration Category = "business_registration"
	CategoryPassport             Category = "passport"
	CategoryDriverLicense        Category = "driver_license"
	CategoryPersonName           Category = "person_name"
)

// placeholders maps each category to its canonical replacement token.
// Downstream consumers key on these exact literals, so they must not change.
var placeholders = map[Category]string{
	CategoryPhone:                "[전화번호]",
	CategoryEmail:                "[이메일]",
	CategoryNationalID:           "[주민등록번호]",
	CategoryCard:                 "[카드번호]",
	CategoryBankAccount:          "[계좌번호]",
	CategoryAddress:              "[주소]",
	CategoryBusinessRegistration: "[사업자번호]",
	CategoryPassport:             "[여권번호]",
	CategoryDriverLicense:        "[운전면허번호]",
	CategoryPersonName:           "[이름]",
}

// priorities fixes the span-resolution order across categories. Structured
// patterns come first because they are unambiguous; Address follows them so
// digit runs inside an address cannot be claimed as account or registration
// numbers; PersonName resolves last so a name heuristic can never override a
// structured match it happens to overlap.
var priorities = map[Category]int{
	CategoryEmail:                1,
	CategoryPhone:                2,
	CategoryNationalID:           3,
	CategoryCard:                 4,
	CategoryPassport:             5,
	CategoryDriverLicense:        6,
	CategoryBusinessRegistration: 7,
	CategoryBankAccount:          8,
	CategoryAddress:              9,
	CategoryPersonName:           10,
}

// Categories returns all categories in resolution-priority order.
func Categories() []Category {
	return []Category{
		CategoryEmail,
		CategoryPhone,
		CategoryNationalID,
		CategoryCard,
		CategoryPassport,
		CategoryDriverLicense,
		CategoryBusinessRegistration,
		CategoryBankAccount,
		CategoryAddress,
		CategoryPersonName,
	}
}

// Placeholder returns the canonical replacement token for the category.
func (c Category) Placeholder() string {
	return placeholders[c]
}

// Priority returns the category's resolution rank (lower wins conflicts).
func (c Category) Priority() int {
	return priorities[c]
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := placeholders[c]
	return ok
}

// ParseCategory converts a configuration string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown PII category: %s", s)
	}
	return c, nil
}

// Confidence ranks how certain a detection heuristic is.
// Structured pattern matches are always High; name heuristics vary.
type Confidence int

const (
	ConfidenceLow Confidence = iota + 1
	ConfidenceMedium
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	}
	return "unknown"
}

// MarshalText makes Confidence usable as a JSON map key.
func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// MarshalYAML renders the tier name instead of its numeric rank.
func (c Confidence) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// ParseConfidence converts a configuration string into a Confidence.
func ParseConfidence(s string) (Confidence, error) {
	switch s {
	case "high":
		return ConfidenceHigh, nil
	case "medium":
		return ConfidenceMedium, nil
	case "low":
		return ConfidenceLow, nil
	}
	return 0, fmt.Errorf("unknown confidence tier: %s", s)
}

// Candidate is a single detected span before conflict resolution.
// Start and End are byte offsets into the original input, never into any
// intermediate rewritten buffer.
type Candidate struct {
	Category   Category
	Start      int
	End        int
	Text       string
	Confidence Confidence
}

// ResolvedSpan is a candidate that survived span-conflict resolution. The
// resolved set is pairwise non-overlapping and sorted ascending by Start.
type ResolvedSpan = Candidate

// DetectionReport aggregates what was redacted in one call.
type DetectionReport struct {
	CountsByCategory   map[Category]int   `json:"countsByCategory" yaml:"countsByCategory"`
	CountsByConfidence map[Confidence]int `json:"countsByConfidence" yaml:"countsByConfidence"`
	TotalMasked        int                `json:"totalMasked" yaml:"totalMasked"`
	DurationMicros     int64              `json:"processingDurationMicros" yaml:"processingDurationMicros"`
}

// RedactionResult is the output of a single Redact call.
type RedactionResult struct {
	MaskedText string          `json:"maskedText"`
	Report     DetectionReport `json:"report"`
	Original   string          `json:"-"` // never serialized
}

// Readability grades how legible masked output remains.
type Readability string

const (
	ReadabilityHigh   Readability = "high"
	ReadabilityMedium Readability = "medium"
	ReadabilityLow    Readability = "low"
)

// ValidationResult is the diagnostic output of the quality validator.
type ValidationResult struct {
	IsValid        bool        `json:"isValid" yaml:"isValid"`
	PreservedRatio float64     `json:"preservedRatio" yaml:"preservedRatio"`
	Readability    Readability `json:"readability" yaml:"readability"`
}
