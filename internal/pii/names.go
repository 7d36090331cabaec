package pii

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// isHangul reports whether r is a precomposed Hangul syllable.
func isHangul(r rune) bool {
	return r >= 0xAC00 && r <= 0xD7A3
}

// surnameList is a closed dictionary of common Korean surnames. Every
// surname here is a single syllable, so membership is a rune lookup.
const surnameList = "김이박최정강조윤장임한오서신권황안송전홍유고문양손배백허남심노하곽성차주우구민류나진지엄채원천방공현"

// honorificTokens are the title and polite-suffix cues that mark the
// preceding token as a personal name. Longest first so prefix matching never
// stops at an embedded shorter token (선생님 before 선생 before 님).
var honorificTokens = []string{
	"본부장님", "연구원님", "변호사님",
	"선생님", "교수님", "부장님", "차장님", "과장님", "대리님",
	"팀장님", "실장님", "이사님", "대표님", "사장님", "회장님",
	"기자님", "작가님", "본부장", "연구원", "변호사",
	"선생", "교수", "부장", "차장", "과장", "대리",
	"팀장", "실장", "이사", "대표", "사장", "회장",
	"기자", "작가", "씨", "님",
}

// introEndings are copula/ending tokens that may directly follow a name in a
// self-introduction ("김철수입니다", "김철수예요", ...).
var introEndings = []string{
	"입니다만", "입니다", "이에요", "이라고", "라고요",
	"예요", "에요", "이고", "이며", "이라", "라고", "이야",
}

// NameDetector generates Korean personal-name candidates from the surname
// dictionary combined with three independent cue strategies, each tagged with
// its own confidence tier.
type NameDetector struct {
	surnames    map[rune]bool
	introRe     *regexp.Regexp
	timestampRe *regexp.Regexp
}

// NewNameDetector builds the detector tables. The result is read-only and
// safe for concurrent use.
func NewNameDetector() *NameDetector {
	surnames := make(map[rune]bool, utf8.RuneCountInString(surnameList))
	for _, r := range surnameList {
		surnames[r] = true
	}
	return &NameDetector{
		surnames: surnames,
		// Self-introduction lead-in phrases, including trailing whitespace.
		introRe: regexp.MustCompile(`(?:제\s?이름은|저의\s?이름은|내\s?이름은|제\s?성함은|저는|나는)\s*`),
		// Transcript timestamps at line start: 10:42, 10:42:15, [00:01:23].
		timestampRe: regexp.MustCompile(`^\s*[\[\(]?\d{1,2}:\d{2}(?::\d{2})?[\]\)]?\s+`),
	}
}

// Detect runs all three strategies and unions their candidates. Candidates
// with identical spans collapse to the highest tier; overlapping non-identical
// spans are left for the resolver.
func (d *NameDetector) Detect(text string) []Candidate {
	var cands []Candidate
	cands = append(cands, d.detectHonorific(text)...)
	cands = append(cands, d.detectIntroduction(text)...)
	cands = append(cands, d.detectMetadata(text)...)
	return dedupeBySpan(cands)
}

// detectHonorific finds surname + 1-2 syllables followed (after at most one
// space) by an honorific or title token. The honorific itself stays outside
// the span; only the name is redacted. High confidence.
func (d *NameDetector) detectHonorific(text string) []Candidate {
	var out []Candidate
	prev := rune(-1)
	for i, r := range text {
		surname := d.surnames[r] && !isHangul(prev)
		prev = r
		if !surname {
			continue
		}
		for _, given := range []int{2, 1} {
			end, ok := hangulRun(text, i, given+1)
			if !ok {
				continue
			}
			rest := text[end:]
			if len(rest) > 0 && (rest[0] == ' ' || rest[0] == '\t') {
				rest = rest[1:]
			}
			if honorificAt(rest) == "" {
				continue
			}
			out = append(out, Candidate{
				Category:   CategoryPersonName,
				Start:      i,
				End:        end,
				Text:       text[i:end],
				Confidence: ConfidenceHigh,
			})
			break
		}
	}
	return out
}

// detectIntroduction finds a self-introduction lead-in phrase immediately
// followed by surname + 1-2 syllables. The syllable run must be terminated by
// a recognized copula/ending token or by a non-Hangul rune, so a name is
// never matched as a prefix of a longer unrelated word. High confidence.
func (d *NameDetector) detectIntroduction(text string) []Candidate {
	var out []Candidate
	for _, loc := range d.introRe.FindAllStringIndex(text, -1) {
		// Reject a lead-in that is itself the tail of a longer word
		// (e.g. 나는 inside 만나는).
		if r, _ := utf8.DecodeLastRuneInString(text[:loc[0]]); isHangul(r) {
			continue
		}
		start := loc[1]
		r, _ := utf8.DecodeRuneInString(text[start:])
		if !d.surnames[r] {
			continue
		}
		for _, given := range []int{2, 1} {
			end, ok := hangulRun(text, start, given+1)
			if !ok || !introBoundary(text[end:]) {
				continue
			}
			out = append(out, Candidate{
				Category:   CategoryPersonName,
				Start:      start,
				End:        end,
				Text:       text[start:end],
				Confidence: ConfidenceHigh,
			})
			break
		}
	}
	return out
}

// detectMetadata finds speaker-label conventions: a line consisting solely of
// surname + 1-2 syllables, or such a token right after a timestamp on the
// same line. This heuristic cannot tell a name from any other short Hangul
// phrase, hence Medium confidence.
func (d *NameDetector) detectMetadata(text string) []Candidate {
	var out []Candidate
	offset := 0
	for offset <= len(text) {
		lineEnd := len(text)
		if idx := strings.IndexByte(text[offset:], '\n'); idx >= 0 {
			lineEnd = offset + idx
		}
		line := text[offset:lineEnd]

		if c, ok := d.bareNameLine(line, offset); ok {
			out = append(out, c)
		} else if c, ok := d.timestampName(line, offset); ok {
			out = append(out, c)
		}

		if lineEnd == len(text) {
			break
		}
		offset = lineEnd + 1
	}
	return out
}

// bareNameLine matches a whitespace-trimmed line that is exactly a
// surname + 1-2 Hangul syllables and nothing else.
func (d *NameDetector) bareNameLine(line string, offset int) (Candidate, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Candidate{}, false
	}
	runes := []rune(trimmed)
	if len(runes) < 2 || len(runes) > 3 || !d.surnames[runes[0]] {
		return Candidate{}, false
	}
	for _, r := range runes {
		if !isHangul(r) {
			return Candidate{}, false
		}
	}
	start := offset + strings.Index(line, trimmed)
	return Candidate{
		Category:   CategoryPersonName,
		Start:      start,
		End:        start + len(trimmed),
		Text:       trimmed,
		Confidence: ConfidenceMedium,
	}, true
}

// timestampName matches a surname + 1-2 syllable token immediately following
// a recognized timestamp at the start of the line.
func (d *NameDetector) timestampName(line string, offset int) (Candidate, bool) {
	loc := d.timestampRe.FindStringIndex(line)
	if loc == nil {
		return Candidate{}, false
	}
	start := loc[1]
	r, _ := utf8.DecodeRuneInString(line[start:])
	if !d.surnames[r] {
		return Candidate{}, false
	}
	for _, given := range []int{2, 1} {
		end, ok := hangulRun(line, start, given+1)
		if !ok || nextIsHangul(line[end:]) {
			continue
		}
		return Candidate{
			Category:   CategoryPersonName,
			Start:      offset + start,
			End:        offset + end,
			Text:       line[start:end],
			Confidence: ConfidenceMedium,
		}, true
	}
	return Candidate{}, false
}

// hangulRun consumes exactly n Hangul syllables starting at byte offset
// start and returns the end offset.
func hangulRun(text string, start, n int) (int, bool) {
	i := start
	for k := 0; k < n; k++ {
		r, sz := utf8.DecodeRuneInString(text[i:])
		if !isHangul(r) {
			return 0, false
		}
		i += sz
	}
	return i, true
}

// honorificAt returns the honorific token at the start of s, or "".
func honorificAt(s string) string {
	for _, tok := range honorificTokens {
		if strings.HasPrefix(s, tok) {
			return tok
		}
	}
	return ""
}

// introBoundary reports whether the text after a name candidate is a valid
// terminator for the introduction strategy: a recognized ending token, or
// anything that is not another Hangul syllable.
func introBoundary(rest string) bool {
	for _, tok := range introEndings {
		if strings.HasPrefix(rest, tok) {
			return true
		}
	}
	return !nextIsHangul(rest)
}

func nextIsHangul(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return isHangul(r)
}

// dedupeBySpan collapses candidates with identical spans, keeping the
// highest confidence tier.
func dedupeBySpan(cands []Candidate) []Candidate {
	if len(cands) < 2 {
		return cands
	}
	best := make(map[[2]int]Candidate, len(cands))
	order := make([][2]int, 0, len(cands))
	for _, c := range cands {
		key := [2]int{c.Start, c.End}
		if prev, ok := best[key]; ok {
			if c.Confidence > prev.Confidence {
				best[key] = c
			}
			continue
		}
		best[key] = c
		order = append(order, key)
	}
	out := make([]Candidate, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}
