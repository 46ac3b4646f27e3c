package maintenance

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Engine paket fonksiyonlarını tek bir veritabanı ve logger ile kullanmayı sağlar.
type Engine struct {
	db  *gorm.DB
	log zerolog.Logger
}

func New(db *gorm.DB, log zerolog.Logger) *Engine {
	return &Engine{db: db, log: log.With().Str("component", "maintenance").Logger()}
}

// DB handler katmanındaki transaction'lar için.
func (e *Engine) DB() *gorm.DB { return e.db }

func (e *Engine) Build(ctx context.Context) (*SystemSnapshot, error) {
	start := time.Now()
	snap, err := BuildSystemSnapshot(ctx, e.db)
	if err != nil {
		e.log.Error().Err(err).Msg("snapshot oluşturulamadı")
		return nil, err
	}
	ev := e.log.Info().Dur("took", time.Since(start))
	for name, n := range snap.Data.Counts() {
		ev = ev.Int(name, n)
	}
	ev.Msg("snapshot oluşturuldu")
	return snap, nil
}

func (e *Engine) Restore(ctx context.Context, snapshot *SystemSnapshot) (*RestoreReport, error) {
	report, err := RestoreSystemSnapshot(ctx, e.db, snapshot)
	if err != nil {
		e.log.Error().Err(err).Msg("geri yükleme başarısız")
		return nil, err
	}
	e.log.Info().
		Int("inserted", report.Inserted()).
		Int("dropped", report.Dropped()).
		Int("remapped_user_ids", report.RemappedUserIDs).
		Strs("dropped_collections", report.DroppedCollections()).
		Dur("took", report.Duration).
		Msg("geri yükleme tamamlandı")
	return report, nil
}

func (e *Engine) Reset(ctx context.Context, scope Scope) (*ResetResult, error) {
	result, err := ResetSystemData(ctx, e.db, scope)
	if err != nil {
		e.log.Error().Err(err).Str("scope", string(scope)).Msg("sıfırlama başarısız")
		return nil, err
	}
	e.log.Warn().Str("scope", string(scope)).Int64("deleted", result.Total()).Msg("veriler sıfırlandı")
	return result, nil
}

func (e *Engine) FactoryReset(ctx context.Context) (*ResetResult, error) {
	result, err := FactoryResetSystemData(ctx, e.db)
	if err != nil {
		e.log.Error().Err(err).Msg("fabrika ayarlarına dönüş başarısız")
		return nil, err
	}
	e.log.Warn().Int64("deleted", result.Total()).Msg("fabrika ayarlarına dönüldü")
	return result, nil
}
