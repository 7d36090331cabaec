package pii

import (
	"regexp"
	"unicode/utf8"
)

// AddressMatcher recognizes Korean administrative-unit address strings. The
// match is greedy-maximal: once a top-level administrative token is found,
// every contiguous trailing component (city/county/district, road or
// neighborhood, building and unit numbers) is consumed into one span so a
// single address is never fragmented into several shorter redactions.
type AddressMatcher struct {
	re *regexp.Regexp
}

// The leading token covers the 17 top-level divisions in both short and
// official forms (서울 / 서울시 / 서울특별시, 충북 / 충청북도, ...).
const addressExpr = `(?:서울|부산|대구|인천|광주|대전|울산|세종|경기|강원|충청북|충청남|충북|충남|전라북|전라남|전북|전남|경상북|경상남|경북|경남|제주)` +
	`(?:특별자치시|특별자치도|특별시|광역시|도|시)?` +
	`(?:\s?[가-힣]{1,8}(?:시|군|구))*` +
	`(?:\s?[가-힣0-9]{1,12}(?:로|길|동|읍|면|리)(?:\s?\d+(?:-\d+)?(?:번지|번길|호|층)?)?)*` +
	`(?:\s?\d+(?:-\d+)?(?:번지|번길|호|층|동|호실))*`

// NewAddressMatcher compiles the address pattern.
func NewAddressMatcher() *AddressMatcher {
	return &AddressMatcher{re: regexp.MustCompile(addressExpr)}
}

// Detect returns all address candidates in text with High confidence.
func (a *AddressMatcher) Detect(text string) []Candidate {
	var out []Candidate
	for _, loc := range a.re.FindAllStringIndex(text, -1) {
		// A province token embedded in a longer Hangul word is not an
		// address; RE2 has no lookbehind, so check the preceding rune here.
		if r, _ := utf8.DecodeLastRuneInString(text[:loc[0]]); isHangul(r) {
			continue
		}
		out = append(out, Candidate{
			Category:   CategoryAddress,
			Start:      loc[0],
			End:        loc[1],
			Text:       text[loc[0]:loc[1]],
			Confidence: ConfidenceHigh,
		})
	}
	return out
}
