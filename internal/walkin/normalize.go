package walkin

import (
	"log"
	"strings"
	"time"
)

// Normalizer: フォーム回答の日付・時刻を倉庫スキーマの正規形
// （YYYY-MM-DD / HH:MM:SS）に揃える。表示タイムゾーンは設定から注入する。
type Normalizer struct {
	loc *time.Location
}

func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{loc: loc}
}

// ResolveLocation: 設定のタイムゾーン名を解決する。失敗時はUTCに落とす。
func ResolveLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[WARN] unknown timezone %q, falling back to UTC", name)
		return time.UTC
	}
	return loc
}

// Normalize: 回答値を layout（DateLayout / TimeLayout）の文字列へ整形する。
// 失敗時の挙動:
//   - 空値・nil                  → nil
//   - "HH:MM" 形の時刻文字列      → ":00" を付けて確定（日付パースを通さない）
//   - 形が違う時刻文字列          → 警告ログの上、原文をそのまま返す
//   - 日付としてパース不能        → 警告ログの上、nil
func (n *Normalizer) Normalize(value any, layout string) *string {
	if value == nil {
		return nil
	}

	if s, ok := value.(string); ok {
		if s == "" {
			return nil
		}
		if layout == TimeLayout {
			// "13:00" のような時刻だけの回答を日付パースに通すと、基準日が
			// 勝手に補われタイムゾーン換算で時刻がずれる。ここで確定させる。
			if parts := strings.Split(s, ":"); len(parts) == 2 {
				out := s + ":00"
				return &out
			}
			log.Printf("[WARN] unexpected time answer %q, keeping as-is", s)
			keep := s
			return &keep
		}

		t, ok := parseLoose(s, n.loc)
		if !ok {
			log.Printf("[WARN] unparseable date answer %q, dropping", s)
			return nil
		}
		out := t.In(n.loc).Format(layout)
		return &out
	}

	if t, ok := value.(time.Time); ok {
		if t.IsZero() {
			return nil
		}
		out := t.In(n.loc).Format(layout)
		return &out
	}

	log.Printf("[WARN] unsupported answer type %T, dropping", value)
	return nil
}

// フォームから来がちな表記。上から順に試して最初に通ったものを採用する。
// "2006-1-2" 系はゼロ埋めあり・なしの両方を受ける。
var looseLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006年1月2日",
	time.RFC3339,
	"2006-1-2T15:04:05",
	"2006-1-2 15:04:05",
	"2006/1/2 15:04:05",
}

func parseLoose(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range looseLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
