// Package catalog грузит таблицу "болезнь -> симптомы" в неизменяемый список DiseaseEntry.
package catalog

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"symptom-service/internal/diagnosis/model"
	"symptom-service/internal/diagnosis/service"
	"symptom-service/internal/fileio"
)

const (
	diseaseColumn = "disease"
	symptomColumn = "symptoms"
	// фолбэк: любая колонка, в названии которой есть эти подстроки
	diseaseHint = "disease"
	symptomHint = "symptom"

	minSymptomLen = 3
)

// Load читает каталог с диска (.csv/.xlsx/.xls). Любая ошибка оборачивается в
// model.ErrDataUnavailable: без каталога сервис работать не должен.
func Load(path string, headerRow int) ([]model.DiseaseEntry, model.CatalogStats, error) {
	tbl, err := fileio.ReadFile(path, headerRow)
	if err != nil {
		return nil, model.CatalogStats{Source: path}, fmt.Errorf("%w: %v", model.ErrDataUnavailable, err)
	}
	return FromTable(tbl, path)
}

// Read: то же для уже открытого потока (загрузка через HTTP).
func Read(r io.Reader, filename string, headerRow int) ([]model.DiseaseEntry, model.CatalogStats, error) {
	tbl, err := fileio.ReadAny(r, filename, headerRow)
	if err != nil {
		return nil, model.CatalogStats{Source: filename}, fmt.Errorf("%w: %v", model.ErrDataUnavailable, err)
	}
	return FromTable(tbl, filename)
}

// FromTable строит каталог из прочитанной таблицы. Строки без названия или без
// симптомов (после чистки) выбрасываются. Дубли названий допустимы: это список, не map.
func FromTable(tbl *fileio.Table, source string) ([]model.DiseaseEntry, model.CatalogStats, error) {
	stats := model.CatalogStats{Source: source}
	if tbl == nil || len(tbl.Header) == 0 {
		return nil, stats, fmt.Errorf("%w: %s: empty table", model.ErrDataUnavailable, source)
	}

	dKey, sKey := resolveColumns(tbl.Header)
	if dKey == "" || sKey == "" {
		return nil, stats, fmt.Errorf("%w: %s: table must contain 'Disease' and 'Symptoms' columns, found %v",
			model.ErrDataUnavailable, source, tbl.Header)
	}
	stats.DiseaseColumn, stats.SymptomColumn = dKey, sKey
	stats.RowsRead = tbl.Rows

	distinct := make(map[string]struct{})
	entries := make([]model.DiseaseEntry, 0, len(tbl.Records))
	for _, rec := range tbl.Records {
		name := strings.TrimSpace(rec[dKey])
		symptoms := CleanSymptoms(rec[sKey])
		if name == "" || len(symptoms) == 0 {
			continue
		}
		for _, s := range symptoms {
			distinct[s] = struct{}{}
		}
		stats.SymptomMentions += len(symptoms)
		entries = append(entries, model.DiseaseEntry{Name: name, Symptoms: symptoms})
	}
	stats.Diseases = len(entries)
	stats.RowsDropped = stats.RowsRead - stats.Diseases
	stats.DistinctSymptoms = len(distinct)

	if len(entries) == 0 {
		return nil, stats, fmt.Errorf("%w: %s: no usable disease rows", model.ErrDataUnavailable, source)
	}
	return entries, stats, nil
}

// CleanSymptoms режет ячейку по запятым, нормализует каждый кусок и оставляет
// только то, что длиннее двух символов. Без дублей, отсортировано.
func CleanSymptoms(cell string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(cell, ",") {
		s := service.Normalize(part)
		if utf8.RuneCountInString(s) < minSymptomLen {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

var nonAlnum = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// нормализуем имя колонки: нижний регистр, служебные символы и лишние пробелы убираем
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveColumns: сначала точные "disease"/"symptoms" (без учёта регистра и пробелов),
// иначе первая по порядку колонка, содержащая "disease" / "symptom".
func resolveColumns(header []string) (disease, symptoms string) {
	for _, h := range header {
		switch normHeaderKey(h) {
		case diseaseColumn:
			if disease == "" {
				disease = h
			}
		case symptomColumn:
			if symptoms == "" {
				symptoms = h
			}
		}
	}
	if disease != "" && symptoms != "" {
		return disease, symptoms
	}

	for _, h := range header {
		nk := normHeaderKey(h)
		if disease == "" && strings.Contains(nk, diseaseHint) && h != symptoms {
			disease = h
			continue
		}
		if symptoms == "" && strings.Contains(nk, symptomHint) && h != disease {
			symptoms = h
		}
	}
	return disease, symptoms
}
