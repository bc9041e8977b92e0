package walkin

import (
	"encoding/json"
	"fmt"
	"strings"
)

// 取り込むフォーム項目タイトル（完全一致のみ、これ以外の項目は無視）
const (
	TitleVisitDate  = "日付"
	TitleStartTime  = "時間"
	TitleNumRegular = "人数（一般）"
	TitleNumStudent = "人数（学部生以下）"
	TitleLanguage   = "言語"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"

	// 飛び入り参加者は氏名を取らないため、予約テーブルには固定名で入れる
	WalkInName = "飛び入り参加"
)

// FormSubmission: フォーム側フォワーダから届く1送信分の回答。
// 項目はフォーム上の並び順のまま渡ってくる前提（順序には依存しない）。
type FormSubmission struct {
	Items []FormItem `json:"items"`
}

type FormItem struct {
	Title  string      `json:"title"`
	Answer AnswerValue `json:"answer"`
}

// AnswerValue: 回答は文字列・文字列配列（複数選択）・数値・null のどれでも来る。
// 配列は ", " で連結した1本の文字列として扱う。
type AnswerValue struct {
	parts []string
	valid bool
}

func (v AnswerValue) Valid() bool { return v.valid }

// Joined: 複数選択の回答を ", " で1本に連結して返す。null は空文字。
func (v AnswerValue) Joined() string {
	return strings.Join(v.parts, ", ")
}

func (v *AnswerValue) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "null" {
		*v = AnswerValue{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = AnswerValue{parts: []string{s}, valid: true}
		return nil
	}

	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*v = AnswerValue{parts: arr, valid: true}
		return nil
	}

	// 数値のまま送ってくるフォワーダもいる（人数欄）。桁を崩さず文字列化する。
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*v = AnswerValue{parts: []string{n.String()}, valid: true}
		return nil
	}

	return fmt.Errorf("unsupported answer value: %s", trimmed)
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if !v.valid {
		return []byte("null"), nil
	}
	if len(v.parts) == 1 {
		return json.Marshal(v.parts[0])
	}
	return json.Marshal(v.parts)
}

// IntakeResponse: 受付結果。intake_ulid はログ突き合わせ用の識別子で、
// 予約行の reservation_id / submission_id（倉庫側生成）とは別物。
type IntakeResponse struct {
	Status     string `json:"status"` // "ok" | "error"
	IntakeULID string `json:"intake_ulid"`
	JobID      string `json:"job_id,omitempty"`
	Message    string `json:"message,omitempty"`
}
