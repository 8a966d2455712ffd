package handler

import (
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"symptom-service/internal/config"
	"symptom-service/internal/diagnosis"
	"symptom-service/internal/diagnosis/catalog"
	"symptom-service/internal/diagnosis/model"
	"symptom-service/internal/diagnosis/service"
	"symptom-service/internal/middleware"
)

// Diagnose: POST/GET /diagnose. Симптомы -> конверт ответа с дисклеймером.
// Пустой ввод не ошибка, отдаём 200 и message с подсказкой.
func Diagnose(cfg config.Config, eng *diagnosis.Engine, logger zerolog.Logger) http.HandlerFunc {
	var cache *gocache.Cache
	if cfg.CacheTTL > 0 {
		cache = gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logger.With().Str("rid", middleware.GetRequestID(r)).Logger()

		symptoms, topN, err := parseDiagnoseRequest(r, cfg.TopN)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var (
			results []model.MatchResult
			cached  bool
		)
		key := cacheKey(symptoms, topN)
		if cache != nil {
			if v, ok := cache.Get(key); ok {
				results, cached = v.([]model.MatchResult), true
			}
		}
		if !cached {
			results = eng.Matcher.Rank(symptoms, topN)
			if cache != nil {
				cache.SetDefault(key, results)
			}
		}

		resp := service.FormatResponse(symptoms, results)
		if err := writeJSON(w, http.StatusOK, resp); err != nil {
			log.Error().Err(err).Msg("write json")
			return
		}

		log.Info().
			Int("symptoms", len(symptoms)).
			Int("top_n", topN).
			Int("conditions", len(resp.PossibleConditions)).
			Bool("cached", cached).
			Dur("elapsed", time.Since(start)).
			Msg("diagnose done")
	}
}

type catalogDisease struct {
	Name         string `json:"name"`
	SymptomCount int    `json:"symptom_count"`
}

type catalogResponse struct {
	Stats      model.CatalogStats `json:"stats"`
	Treatments int                `json:"treatments"`
	Diseases   []catalogDisease   `json:"diseases"`
}

// Catalog: GET /catalog: сводка и список болезней.
func Catalog(eng *diagnosis.Engine, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := eng.Matcher.Catalog()
		resp := catalogResponse{
			Stats:    eng.Stats,
			Diseases: make([]catalogDisease, 0, len(entries)),
		}
		if eng.Treatments != nil {
			resp.Treatments = eng.Treatments.Len()
		}
		for _, d := range entries {
			resp.Diseases = append(resp.Diseases, catalogDisease{Name: d.Name, SymptomCount: len(d.Symptoms)})
		}
		if err := writeJSON(w, http.StatusOK, resp); err != nil {
			logger.Error().Err(err).Msg("write json")
		}
	}
}

type lintResponse struct {
	OK    bool               `json:"ok"`
	Error string             `json:"error,omitempty"`
	Stats model.CatalogStats `json:"stats"`
}

// LintCatalog: POST /catalog/lint: разбирает загруженную таблицу тем же загрузчиком,
// рабочий каталог не трогает.
func LintCatalog(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.With().Str("rid", middleware.GetRequestID(r)).Logger()

		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		_, stats, err := catalog.Read(file, header.Filename, atoi(r.FormValue("header_row"), 1))
		status, resp := http.StatusOK, lintResponse{OK: err == nil, Stats: stats}
		if err != nil {
			resp.Error = err.Error()
			status = http.StatusUnprocessableEntity
		}
		if err := writeJSON(w, status, resp); err != nil {
			log.Error().Err(err).Msg("write json")
			return
		}
		log.Info().
			Str("file", header.Filename).
			Int("diseases", stats.Diseases).
			Bool("ok", resp.OK).
			Msg("catalog lint done")
	}
}
