package pii

import (
	"strings"
	"testing"
)

func TestEngineRedact(t *testing.T) {
	engine := New(Options{}, nil)

	t.Run("Phone", func(t *testing.T) {
		result, err := engine.Redact("전화번호는 010-1234-5678입니다.")
		if err != nil {
			t.Fatalf("Redact failed: %v", err)
		}
		if result.MaskedText != "전화번호는 [전화번호]입니다." {
			t.Errorf("got %q", result.MaskedText)
		}
		if result.Report.CountsByCategory[CategoryPhone] != 1 {
			t.Errorf("expected phone count 1, got %d", result.Report.CountsByCategory[CategoryPhone])
		}
	})

	t.Run("EmailAndNationalID", func(t *testing.T) {
		result, err := engine.Redact("이메일은 test@example.com이고 주민번호는 901225-1234567입니다.")
		if err != nil {
			t.Fatalf("Redact failed: %v", err)
		}
		if !strings.Contains(result.MaskedText, "[이메일]") {
			t.Errorf("missing email placeholder: %q", result.MaskedText)
		}
		if !strings.Contains(result.MaskedText, "[주민등록번호]") {
			t.Errorf("missing national ID placeholder: %q", result.MaskedText)
		}
		if result.Report.TotalMasked != 2 {
			t.Errorf("expected totalMasked 2, got %d", result.Report.TotalMasked)
		}
		if len(result.Report.CountsByCategory) != 2 {
			t.Errorf("expected 2 categories, got %v", result.Report.CountsByCategory)
		}
	})

	t.Run("CardAndAccountNoDoubleCount", func(t *testing.T) {
		result, err := engine.Redact("카드번호는 1234-5678-9012-3456이고 계좌번호는 123-456-789012입니다.")
		if err != nil {
			t.Fatalf("Redact failed: %v", err)
		}
		if result.Report.CountsByCategory[CategoryCard] != 1 {
			t.Errorf("expected 1 card, got %d", result.Report.CountsByCategory[CategoryCard])
		}
		if result.Report.CountsByCategory[CategoryBankAccount] != 1 {
			t.Errorf("expected 1 account, got %d", result.Report.CountsByCategory[CategoryBankAccount])
		}
		if result.Report.TotalMasked != 2 {
			t.Errorf("expected totalMasked 2, got %d", result.Report.TotalMasked)
		}
	})

	t.Run("IntroducedName", func(t *testing.T) {
		result, err := engine.Redact("제 이름은 김철수입니다")
		if err != nil {
			t.Fatalf("Redact failed: %v", err)
		}
		if result.MaskedText != "제 이름은 [이름]입니다" {
			t.Errorf("got %q", result.MaskedText)
		}
		if result.Report.CountsByConfidence[ConfidenceHigh] != 1 {
			t.Errorf("expected 1 high-confidence span, got %v", result.Report.CountsByConfidence)
		}
	})

	t.Run("NameWithoutCueUntouched", func(t *testing.T) {
		result, err := engine.Redact("김철수입니다")
		if err != nil {
			t.Fatalf("Redact failed: %v", err)
		}
		if result.MaskedText != "김철수입니다" {
			t.Errorf("expected no redaction, got %q", result.MaskedText)
		}
	})

	t.Run("NoPIIInput", func(t *testing.T) {
		input := "오늘 회의는 오후에 진행됩니다."
		result, err := engine.Redact(input)
		if err != nil {
			t.Fatalf("Redact failed: %v", err)
		}
		if result.MaskedText != input {
			t.Errorf("text without PII must pass through unchanged, got %q", result.MaskedText)
		}
		if result.Report.TotalMasked != 0 {
			t.Errorf("expected totalMasked 0, got %d", result.Report.TotalMasked)
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		result, err := engine.Redact("")
		if err != nil {
			t.Fatalf("Redact failed: %v", err)
		}
		if result.MaskedText != "" || result.Report.TotalMasked != 0 {
			t.Errorf("unexpected result for empty input: %+v", result)
		}
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		_, err := engine.Redact("\xff\xfe broken")
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("DurationRecorded", func(t *testing.T) {
		result, err := engine.Redact("전화 010-1234-5678")
		if err != nil {
			t.Fatalf("Redact failed: %v", err)
		}
		if result.Report.DurationMicros < 0 {
			t.Errorf("duration must be non-negative, got %d", result.Report.DurationMicros)
		}
	})
}

func TestEngineIdempotence(t *testing.T) {
	engine := New(Options{}, nil)

	inputs := []string{
		"전화번호는 010-1234-5678입니다.",
		"제 이름은 김철수입니다",
		"김철수\n주소는 서울특별시 강남구 테헤란로 123 입니다\n메일 test@example.com",
		"카드번호는 1234-5678-9012-3456이고 계좌번호는 123-456-789012입니다.",
	}

	for _, input := range inputs {
		first, err := engine.Redact(input)
		if err != nil {
			t.Fatalf("first pass failed for %q: %v", input, err)
		}
		second, err := engine.Redact(first.MaskedText)
		if err != nil {
			t.Fatalf("second pass failed for %q: %v", input, err)
		}
		if second.MaskedText != first.MaskedText {
			t.Errorf("redaction not idempotent:\n first: %q\nsecond: %q", first.MaskedText, second.MaskedText)
		}
		if second.Report.TotalMasked != 0 {
			t.Errorf("second pass masked %d spans in %q", second.Report.TotalMasked, first.MaskedText)
		}
	}
}

func TestEngineOptions(t *testing.T) {
	t.Run("DisabledCategoryPassesThrough", func(t *testing.T) {
		engine := New(Options{
			EnabledCategories: map[Category]bool{CategoryEmail: true},
		}, nil)
		result, err := engine.Redact("전화 010-1234-5678 메일 a@b.com")
		if err != nil {
			t.Fatalf("Redact failed: %v", err)
		}
		if strings.Contains(result.MaskedText, "[전화번호]") {
			t.Errorf("disabled phone category was masked: %q", result.MaskedText)
		}
		if !strings.Contains(result.MaskedText, "[이메일]") {
			t.Errorf("enabled email category was not masked: %q", result.MaskedText)
		}
	})

	t.Run("HighThresholdExcludesMetadataNames", func(t *testing.T) {
		engine := New(Options{MinNameConfidence: ConfidenceHigh}, nil)
		result, err := engine.Redact("김철수\n안녕하세요")
		if err != nil {
			t.Fatalf("Redact failed: %v", err)
		}
		if result.MaskedText != "김철수\n안녕하세요" {
			t.Errorf("medium-tier speaker line should not be masked at high threshold, got %q", result.MaskedText)
		}
	})

	t.Run("DefaultThresholdIncludesMetadataNames", func(t *testing.T) {
		engine := New(Options{}, nil)
		result, err := engine.Redact("김철수\n안녕하세요")
		if err != nil {
			t.Fatalf("Redact failed: %v", err)
		}
		if result.MaskedText != "[이름]\n안녕하세요" {
			t.Errorf("expected speaker line masked by default, got %q", result.MaskedText)
		}
	})
}

func TestEngineDetectorFaultIsolation(t *testing.T) {
	t.Run("PanicYieldsNoCandidates", func(t *testing.T) {
		engine := New(Options{}, nil)
		out := engine.runDetector("faulty", func() []Candidate {
			panic("boom")
		})
		if out != nil {
			t.Errorf("faulting detector must contribute zero candidates, got %v", out)
		}
	})

	t.Run("StructuredSurvivesNameFault", func(t *testing.T) {
		engine := New(Options{}, nil)
		// A nil detector panics on first use; the fault must stay inside
		// its own boundary.
		engine.names = nil

		result, err := engine.Redact("제 이름은 김철수입니다. 전화번호는 010-1234-5678입니다.")
		if err != nil {
			t.Fatalf("Redact failed: %v", err)
		}
		if !strings.Contains(result.MaskedText, "[전화번호]") {
			t.Errorf("structured redaction lost to a name-detector fault: %q", result.MaskedText)
		}
		if strings.Contains(result.MaskedText, "[이름]") {
			t.Errorf("faulting detector still produced spans: %q", result.MaskedText)
		}
		if result.Report.CountsByCategory[CategoryPhone] != 1 {
			t.Errorf("expected 1 phone span, got %v", result.Report.CountsByCategory)
		}
	})
}

func TestEngineConcurrentCalls(t *testing.T) {
	engine := New(Options{}, nil)
	input := "제 이름은 김철수입니다. 전화번호는 010-1234-5678입니다."

	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() {
			result, err := engine.Redact(input)
			if err != nil {
				done <- "error: " + err.Error()
				return
			}
			done <- result.MaskedText
		}()
	}

	want := ""
	for i := 0; i < 8; i++ {
		got := <-done
		if want == "" {
			want = got
		}
		if got != want {
			t.Fatalf("concurrent calls disagree: %q vs %q", got, want)
		}
	}
}
