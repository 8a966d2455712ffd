package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"symptom-service/internal/diagnosis/model"
	"symptom-service/internal/diagnosis/treatment"
)

const (
	// AcceptThreshold: пара (симптом пользователя, известный симптом) принимается строго выше порога.
	AcceptThreshold = 0.5
	DefaultTopN     = 5

	weightRatio    = 0.6
	weightCoverage = 0.4
	specificityK   = 0.1
)

// TreatmentFinder ищет запись справочника лечения по названию болезни.
type TreatmentFinder interface {
	Find(disease string) (model.TreatmentEntry, bool)
}

// Matcher держит каталог и справочник, загруженные один раз при старте.
// После создания ничего не меняется, Rank можно звать из нескольких горутин.
type Matcher struct {
	catalog    []model.DiseaseEntry
	treatments TreatmentFinder
	log        zerolog.Logger
}

// NewMatcher: treatments может быть nil, тогда рекомендаций не будет.
func NewMatcher(catalog []model.DiseaseEntry, treatments TreatmentFinder, logger zerolog.Logger) *Matcher {
	return &Matcher{catalog: catalog, treatments: treatments, log: logger}
}

// Catalog отдаёт каталог только для чтения.
func (m *Matcher) Catalog() []model.DiseaseEntry { return m.catalog }

// Rank нормализует симптомы, оценивает каждую болезнь каталога и возвращает
// первые topN по (score desc, known_symptom_count desc). topN < 1 -> DefaultTopN.
// Пустой ввод даёт пустой результат, не ошибку.
func (m *Matcher) Rank(userSymptoms []string, topN int) []model.MatchResult {
	if topN < 1 {
		topN = DefaultTopN
	}
	user := NormalizeList(userSymptoms)
	if len(user) == 0 {
		m.log.Warn().Msg("no valid symptoms after normalization")
		return []model.MatchResult{}
	}

	results := make([]model.MatchResult, 0)
	for i := range m.catalog {
		d := &m.catalog[i]
		res, ok, err := m.scoreDisease(d, user)
		if err != nil {
			m.log.Warn().Err(err).Str("disease", d.Name).Msg("disease skipped")
			continue
		}
		if ok {
			results = append(results, res)
		}
	}

	// стабильная сортировка: при полном равенстве сохраняется порядок каталога
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchScore != results[j].MatchScore {
			return results[i].MatchScore > results[j].MatchScore
		}
		return results[i].KnownSymptomCount > results[j].KnownSymptomCount
	})

	if e := m.log.Debug(); e.Enabled() {
		top := make([]string, 0, 3)
		for i := 0; i < len(results) && i < 3; i++ {
			top = append(top, fmt.Sprintf("%s (%.2f)", results[i].Disease, results[i].MatchScore))
		}
		e.Strs("symptoms", user).
			Int("diseases", len(m.catalog)).
			Int("matched", len(results)).
			Int("returned", min(topN, len(results))).
			Strs("top", top).
			Msg("rank done")
	}

	if len(results) > topN {
		results = results[:topN]
	}
	return results
}

// scoreDisease считает одну болезнь. Паника или нечисловой скор превращаются в ошибку,
// чтобы одна кривая строка каталога не роняла весь проход.
func (m *Matcher) scoreDisease(d *model.DiseaseEntry, user []string) (res model.MatchResult, ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			res, ok, err = model.MatchResult{}, false, fmt.Errorf("score %q: panic: %v", d.Name, rec)
		}
	}()

	known := d.Symptoms
	if len(known) == 0 {
		return res, false, nil
	}

	// известный симптом -> лучший скор среди всех симптомов пользователя
	matched := make(map[string]float64)
	for _, us := range user {
		best, score := bestMatch(us, known)
		if best == "" || score <= AcceptThreshold {
			continue
		}
		if score > matched[best] {
			matched[best] = score
		}
	}
	if len(matched) == 0 {
		return res, false, nil
	}

	names := make([]string, 0, len(matched))
	for k := range matched {
		names = append(names, k)
	}
	sort.Strings(names)
	// суммируем в отсортированном порядке: повторный вызов даёт тот же float
	sum, words := 0.0, 0
	for _, k := range names {
		sum += matched[k]
		words += wordCount(k)
	}

	n := float64(len(matched))
	matchRatio := sum / float64(len(known))
	coverage := n / float64(len(user))
	base := weightRatio*matchRatio + weightCoverage*coverage
	specificity := float64(words) / n
	final := math.Min(1.0, base*(1+specificityK*specificity))
	if math.IsNaN(final) || math.IsInf(final, 0) || final < 0 {
		return res, false, fmt.Errorf("score %q: invalid score %v", d.Name, final)
	}

	res = model.MatchResult{
		Disease:           d.Name,
		MatchScore:        round(final, 4),
		MatchingSymptoms:  names,
		KnownSymptomCount: len(known),
		MatchQuality:      round(sum/n, 2),
		Recommendations:   []string{},
	}
	if m.treatments != nil {
		if t, found := m.treatments.Find(d.Name); found {
			res.Treatment = &t
			res.Recommendations = treatment.Recommendations(t)
		}
	}
	return res, true, nil
}

// bestMatch: известный симптом с максимальной похожестью; при равенстве первый по порядку.
func bestMatch(userSymptom string, known []string) (string, float64) {
	best, bestScore := "", 0.0
	for _, k := range known {
		if s := Similarity(userSymptom, k); s > bestScore {
			best, bestScore = k, s
		}
	}
	return best, bestScore
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
