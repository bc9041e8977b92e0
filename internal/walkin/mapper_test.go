package walkin

import (
	"reflect"
	"testing"
	"time"
)

func ans(s string) AnswerValue       { return AnswerValue{parts: []string{s}, valid: true} }
func multi(ss ...string) AnswerValue { return AnswerValue{parts: ss, valid: true} }

func TestMapItems(t *testing.T) {
	m := NewMapper(NewNormalizer(time.UTC))

	items := []FormItem{
		{Title: TitleVisitDate, Answer: ans("2025-03-29")},
		{Title: TitleStartTime, Answer: ans("13:00")},
		{Title: TitleNumRegular, Answer: ans("4")},
		{Title: TitleNumStudent, Answer: ans("０")},
		{Title: TitleLanguage, Answer: ans("English")},
		{Title: "メールアドレス", Answer: ans("x@example.com")}, // 取り込み対象外
	}

	got := m.MapItems(items)
	want := Record{
		VisitDate:  sp("2025-03-29"),
		StartTime:  sp("13:00:00"),
		NumRegular: ip(4),
		NumStudent: ip(0),
		Language:   sp("English"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MapItems = %s, want %s", got, want)
	}
}

func TestMapItemsMissingAndNull(t *testing.T) {
	m := NewMapper(NewNormalizer(time.UTC))

	// 項目が1つも無ければ全列 nil のまま
	if got := m.MapItems(nil); !reflect.DeepEqual(got, Record{}) {
		t.Errorf("empty items = %s, want all-nil record", got)
	}

	// null 回答の言語は未設定、空文字回答は空文字のまま入る
	got := m.MapItems([]FormItem{
		{Title: TitleLanguage, Answer: AnswerValue{}},
	})
	if got.Language != nil {
		t.Errorf("null language = %q, want nil", *got.Language)
	}

	got = m.MapItems([]FormItem{
		{Title: TitleLanguage, Answer: ans("")},
	})
	if !eqStr(got.Language, sp("")) {
		t.Errorf("empty language = %v, want empty string", got.Language)
	}
}

func TestMapItemsMultiSelect(t *testing.T) {
	m := NewMapper(NewNormalizer(time.UTC))

	got := m.MapItems([]FormItem{
		{Title: TitleLanguage, Answer: multi("English", "日本語")},
	})
	if !eqStr(got.Language, sp("English, 日本語")) {
		t.Errorf("multi-select language = %v", strOrNull(got.Language))
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *int64
	}{
		{"plain", "4", ip(4)},
		{"zero", "0", ip(0)},
		{"full width", "４", ip(4)},
		{"full width padded", "　８　", ip(8)},
		{"trailing unit", "4人", ip(4)},
		{"decimal truncated", "4.5", ip(4)},
		{"leading run only", "12:34", ip(12)},
		{"negative", "-2", ip(-2)},
		{"explicit plus", "+5", ip(5)},
		{"unit before digits", "約10名", nil},
		{"no digits", "たくさん", nil},
		{"bare sign", "-", nil},
		{"empty", "", nil},
		{"overflow", "99999999999999999999", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCount(tt.in)
			if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
				t.Errorf("parseCount(%q) = %s, want %s", tt.in, intOrNull(got), intOrNull(tt.want))
			}
		})
	}
}
