package warehouse

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/bigquery"
)

// JobRef: 実行で払い出されたジョブの参照（ログ用）
type JobRef struct {
	JobID string
}

// Runner: 1文を同期実行する最小インターフェース。
// walkin 側はこれだけに依存する（テストではフェイクを差す）。
type Runner interface {
	RunStatement(ctx context.Context, stmt string, params []bigquery.QueryParameter) (JobRef, error)
}

type QueryRunner struct {
	client *bigquery.Client
}

func NewRunner(client *bigquery.Client) *QueryRunner {
	return &QueryRunner{client: client}
}

// RunStatement: Run → Wait で完了まで待つ（同期呼び出し1回、内部リトライなし）
func (r *QueryRunner) RunStatement(ctx context.Context, stmt string, params []bigquery.QueryParameter) (JobRef, error) {
	q := r.client.Query(stmt)
	q.UseLegacySQL = false
	q.Parameters = params

	job, err := q.Run(ctx)
	if err != nil {
		return JobRef{}, fmt.Errorf("クエリ実行に失敗: %w", err)
	}
	ref := JobRef{JobID: job.ID()}

	status, err := job.Wait(ctx)
	if err != nil {
		return ref, fmt.Errorf("ジョブ完了待ちに失敗: %w", err)
	}
	if err := status.Err(); err != nil {
		return ref, fmt.Errorf("ジョブがエラー終了: %w", err)
	}
	return ref, nil
}

// DryRunner: 文を実行せずログに残すだけ。本番テーブル設定のまま手元で流す用。
type DryRunner struct{}

func (DryRunner) RunStatement(_ context.Context, stmt string, params []bigquery.QueryParameter) (JobRef, error) {
	log.Printf("[INFO] dry-run: statement not executed (params=%d)", len(params))
	_ = stmt
	return JobRef{JobID: "dry-run"}, nil
}
