package walkin

import (
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// Mapper: 回答一覧を1パスで Record に写す。
// 必須チェックはしない方針（全列 nil のレコードも正常出力として通す）。
type Mapper struct {
	norm *Normalizer
}

func NewMapper(norm *Normalizer) *Mapper { return &Mapper{norm: norm} }

// MapItems: タイトル完全一致で5項目だけ拾う。未知タイトルは黙って捨てる。
// 複数選択の回答は ", " 連結してから各変換に回す。
func (m *Mapper) MapItems(items []FormItem) Record {
	var rec Record
	for _, it := range items {
		ans := it.Answer.Joined()
		switch it.Title {
		case TitleVisitDate:
			rec.VisitDate = m.norm.Normalize(ans, DateLayout)
		case TitleStartTime:
			rec.StartTime = m.norm.Normalize(ans, TimeLayout)
		case TitleNumRegular:
			rec.NumRegular = parseCount(ans)
		case TitleNumStudent:
			rec.NumStudent = parseCount(ans)
		case TitleLanguage:
			// 原文のまま入れる（正規化しない）。null 回答だけは未設定扱い。
			if it.Answer.Valid() {
				lang := ans
				rec.Language = &lang
			}
		}
	}
	return rec
}

// parseCount: 人数欄の回答を10進で読む。
// 全角数字を半角へ畳んでから先頭の数字並びだけ採る（"４人" → 4）。
// 数字が無ければ nil。
func parseCount(raw string) *int64 {
	s := strings.TrimSpace(width.Narrow.String(raw))
	if s == "" {
		return nil
	}

	i := 0
	if s[0] == '-' || s[0] == '+' {
		i = 1
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return nil
	}

	v, err := strconv.ParseInt(s[:j], 10, 64)
	if err != nil {
		// 桁あふれ等。人数欄でここに来たら諦めて NULL 行きにする。
		return nil
	}
	return &v
}
