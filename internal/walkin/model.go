package walkin

import (
	"fmt"
	"strconv"
)

// Record: 1送信分から組み立てる挿入前レコード。
// nullable な列はすべてポインタで持ち、nil がそのまま SQL の NULL になる。
// 1回の MapItems で埋めて即 Store に渡す使い捨て（保持も共有もしない）。
type Record struct {
	VisitDate  *string // "YYYY-MM-DD"
	StartTime  *string // "HH:MM:SS"
	NumRegular *int64
	NumStudent *int64
	Language   *string
}

func (r Record) String() string {
	return fmt.Sprintf("{visit_date:%s start_time:%s num_regular:%s num_student:%s language:%s}",
		strOrNull(r.VisitDate), strOrNull(r.StartTime),
		intOrNull(r.NumRegular), intOrNull(r.NumStudent), strOrNull(r.Language))
}

// ===== helpers =====

func strOrNull(v *string) string {
	if v == nil {
		return "null"
	}
	return *v
}

func intOrNull(v *int64) string {
	if v == nil {
		return "null"
	}
	return strconv.FormatInt(*v, 10)
}
