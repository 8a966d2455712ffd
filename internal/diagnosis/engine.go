// Package diagnosis собирает движок: каталог + справочник лечения + Matcher.
// Единственная точка инициализации; после неё всё только на чтение.
package diagnosis

import (
	"errors"

	"github.com/rs/zerolog"

	"symptom-service/internal/diagnosis/catalog"
	"symptom-service/internal/diagnosis/model"
	"symptom-service/internal/diagnosis/service"
	"symptom-service/internal/diagnosis/treatment"
)

type Sources struct {
	CatalogPath      string
	CatalogHeaderRow int
	TreatmentPath    string
}

// Engine: то, что процесс (сервер, CLI) создаёт один раз и передаёт явно.
type Engine struct {
	Matcher    *service.Matcher
	Stats      model.CatalogStats
	Treatments *treatment.Reference
}

// Load: ошибка каталога фатальна (model.ErrDataUnavailable),
// ошибка справочника: только предупреждение, рекомендации будут пустыми.
func Load(src Sources, logger zerolog.Logger) (*Engine, error) {
	entries, stats, err := catalog.Load(src.CatalogPath, src.CatalogHeaderRow)
	if err != nil {
		logger.Error().Err(err).Str("path", src.CatalogPath).Msg("catalog load failed")
		return nil, err
	}
	logger.Info().
		Str("path", stats.Source).
		Int("rows", stats.RowsRead).
		Int("dropped", stats.RowsDropped).
		Int("diseases", stats.Diseases).
		Int("symptom_mentions", stats.SymptomMentions).
		Msg("catalog loaded")

	ref, err := treatment.Load(src.TreatmentPath)
	switch {
	case errors.Is(err, model.ErrTreatmentDataMissing):
		logger.Warn().Err(err).Str("path", src.TreatmentPath).Msg("treatment reference unavailable, recommendations disabled")
	case err != nil:
		return nil, err
	default:
		logger.Info().Str("path", src.TreatmentPath).Int("conditions", ref.Len()).Msg("treatment reference loaded")
	}

	return &Engine{
		Matcher:    service.NewMatcher(entries, ref, logger),
		Stats:      stats,
		Treatments: ref,
	}, nil
}
