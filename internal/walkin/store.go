package walkin

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"tour-intake-backend/internal/platform/warehouse"
)

// 挿入先の列（この並びで statement を組む）。
// reservation_id / submission_id / submitted_at は倉庫側の関数で埋める。
const insertColumns = "reservation_id, submission_id, submitted_at, visit_date, start_time, name, num_regular, num_student, language"

type Store struct {
	runner   warehouse.Runner
	tableRef string // `project.dataset.table`
	mode     string
}

func NewStore(runner warehouse.Runner, cfg warehouse.WarehouseConfig) *Store {
	return &Store{
		runner:   runner,
		tableRef: fmt.Sprintf("`%s.%s`", cfg.ProjectID, cfg.Table),
		mode:     cfg.InsertMode,
	}
}

// Insert: レコード1件を1文のINSERTで送る。リトライ・バッチなし。
// 組み立てた文は実行前に必ずログへ残す。
func (s *Store) Insert(ctx context.Context, rec Record) (warehouse.JobRef, error) {
	var (
		stmt   string
		params []bigquery.QueryParameter
	)
	if s.mode == warehouse.InsertModeLegacy {
		stmt = s.BuildLegacyInsert(rec)
	} else {
		stmt, params = s.buildParamInsert(rec)
	}

	log.Printf("[INFO] insert statement: %s", stmt)
	return s.runner.RunStatement(ctx, stmt, params)
}

// buildParamInsert: パラメータバインド版（既定）。
// 値は型付きパラメータで渡し、文字列連結はテーブル参照と列名だけにする。
func (s *Store) buildParamInsert(rec Record) (string, []bigquery.QueryParameter) {
	stmt := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (GENERATE_UUID(), GENERATE_UUID(), CURRENT_TIMESTAMP(), @visit_date, @start_time, @name, @num_regular, @num_student, @language)",
		s.tableRef, insertColumns)

	params := []bigquery.QueryParameter{
		{Name: "visit_date", Value: nullDate(rec.VisitDate)},
		{Name: "start_time", Value: nullTime(rec.StartTime)},
		{Name: "name", Value: WalkInName},
		{Name: "num_regular", Value: nullInt64(rec.NumRegular)},
		{Name: "num_student", Value: nullInt64(rec.NumStudent)},
		{Name: "language", Value: nullString(rec.Language)},
	}
	return stmt, params
}

// BuildLegacyInsert: 値を文字列リテラルで埋め込む版（insert_mode: legacy）。
// パラメータバインドではないので、文字列値は必ず escapeString を通すこと。
// 列を足すときに escapeString を迂回すると注入の穴になる。
func (s *Store) BuildLegacyInsert(rec Record) string {
	name := WalkInName
	values := []string{
		escapeString(rec.VisitDate),
		escapeString(rec.StartTime),
		escapeString(&name),
		formatInt64(rec.NumRegular),
		formatInt64(rec.NumStudent),
		escapeString(rec.Language),
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (GENERATE_UUID(), GENERATE_UUID(), CURRENT_TIMESTAMP(), %s)",
		s.tableRef, insertColumns, strings.Join(values, ", "))
}

// ===== helpers =====

// escapeString: nil は素の NULL。それ以外はシングルクォートを二重化して '...' で包む。
func escapeString(v *string) string {
	if v == nil {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(*v, "'", "''") + "'"
}

func formatInt64(v *int64) string {
	if v == nil {
		return "NULL"
	}
	return strconv.FormatInt(*v, 10)
}

func nullDate(v *string) bigquery.NullDate {
	if v == nil {
		return bigquery.NullDate{}
	}
	d, err := civil.ParseDate(*v)
	if err != nil {
		// 正規形以外はここに来ない想定だが、来たら NULL に落とす
		log.Printf("[WARN] non-canonical date %q, inserting NULL", *v)
		return bigquery.NullDate{}
	}
	return bigquery.NullDate{Date: d, Valid: true}
}

// nullTime: 正規形でない時刻（Normalizer が原文のまま通したもの）は NULL に落とす。
// legacy モードでは原文が文として飛び、倉庫側でエラーになる。その差は許容している。
func nullTime(v *string) bigquery.NullTime {
	if v == nil {
		return bigquery.NullTime{}
	}
	t, err := civil.ParseTime(*v)
	if err != nil {
		log.Printf("[WARN] non-canonical time %q, inserting NULL", *v)
		return bigquery.NullTime{}
	}
	return bigquery.NullTime{Time: t, Valid: true}
}

func nullInt64(v *int64) bigquery.NullInt64 {
	if v == nil {
		return bigquery.NullInt64{}
	}
	return bigquery.NullInt64{Int64: *v, Valid: true}
}

func nullString(v *string) bigquery.NullString {
	if v == nil {
		return bigquery.NullString{}
	}
	return bigquery.NullString{StringVal: *v, Valid: true}
}
