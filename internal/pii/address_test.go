package pii

import "testing"

func TestAddressMatcher(t *testing.T) {
	m := NewAddressMatcher()

	t.Run("FullRoadAddressIsOneSpan", func(t *testing.T) {
		input := "주소는 서울특별시 강남구 테헤란로 123 입니다"
		cands := m.Detect(input)
		if len(cands) != 1 {
			t.Fatalf("expected 1 address span, got %d: %v", len(cands), cands)
		}
		if cands[0].Text != "서울특별시 강남구 테헤란로 123" {
			t.Errorf("address fragmented: got %q", cands[0].Text)
		}
	})

	t.Run("ProvinceShortForm", func(t *testing.T) {
		cands := m.Detect("경기 성남시 분당구 판교로 235")
		if len(cands) != 1 {
			t.Fatalf("expected 1 address span, got %v", cands)
		}
		if cands[0].Text != "경기 성남시 분당구 판교로 235" {
			t.Errorf("got %q", cands[0].Text)
		}
	})

	t.Run("BareProvinceToken", func(t *testing.T) {
		cands := m.Detect("다음 주에 부산 갈게요")
		if len(cands) != 1 || cands[0].Text != "부산" {
			t.Fatalf("expected bare province match, got %v", cands)
		}
	})

	t.Run("ProvinceInsideWordIgnored", func(t *testing.T) {
		// 대구 embedded in a longer Hangul word is not an address.
		if cands := m.Detect("왕대구탕을 먹었다"); len(cands) != 0 {
			t.Errorf("expected no match, got %v", cands)
		}
	})

	t.Run("BuildingAndUnitConsumed", func(t *testing.T) {
		cands := m.Detect("인천광역시 연수구 송도동 123-45번지")
		if len(cands) != 1 {
			t.Fatalf("expected 1 span, got %v", cands)
		}
		if cands[0].Text != "인천광역시 연수구 송도동 123-45번지" {
			t.Errorf("got %q", cands[0].Text)
		}
	})
}
