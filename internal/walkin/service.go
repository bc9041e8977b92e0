package walkin

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"log"
	"time"

	ulid "github.com/oklog/ulid/v2"

	"tour-intake-backend/internal/platform/warehouse"
)

// ---- Clock & ID ----

type Clock interface{ Now() time.Time }
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type IDGen interface{ NewULID(t time.Time) string }
type ulidGen struct{}

func (ulidGen) NewULID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// ---- Service ----

type Service struct {
	mapper *Mapper
	store  *Store
	clock  Clock
	id     IDGen
}

func NewService(runner warehouse.Runner, cfg warehouse.WarehouseConfig, loc *time.Location) *Service {
	return &Service{
		mapper: NewMapper(NewNormalizer(loc)),
		store:  NewStore(runner, cfg),
		clock:  realClock{},
		id:     ulidGen{},
	}
}

// Handle: フォーム送信1件を処理する（マッピング → 整形 → INSERT 1回）。
// 日付・時刻・人数の変換失敗は nil 列に落とすだけで処理は止めない。
// 失敗し得るのは倉庫への実行だけ。その握り方（ホストへ返すか）は呼び出し側が決める。
func (s *Service) Handle(ctx context.Context, sub FormSubmission) (IntakeResponse, error) {
	intakeID := s.id.NewULID(s.clock.Now())

	// 生イベントと変換後レコードは突き合わせ用に両方ログへ残す
	if raw, err := json.Marshal(sub.Items); err == nil {
		log.Printf("[INFO] intake %s: event=%s", intakeID, raw)
	}

	rec := s.mapper.MapItems(sub.Items)
	log.Printf("[INFO] intake %s: record=%s", intakeID, rec)

	ref, err := s.store.Insert(ctx, rec)
	if err != nil {
		return IntakeResponse{Status: "error", IntakeULID: intakeID}, err
	}

	log.Printf("[INFO] intake %s: inserted job=%s", intakeID, ref.JobID)
	return IntakeResponse{Status: "ok", IntakeULID: intakeID, JobID: ref.JobID}, nil
}
