package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"symptom-service/internal/diagnosis/service"
)

// symptomList принимает в JSON и строку "fever, cough", и список строк.
type symptomList []string

func (s *symptomList) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = nil
		return nil
	}
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		*s = service.SplitSymptoms(text)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return errors.New("symptoms must be a string or a list of strings")
	}
	*s = list
	return nil
}

type diagnoseRequest struct {
	Symptoms symptomList `json:"symptoms"`
	TopN     *int        `json:"top_n"`
}

// parseDiagnoseRequest: JSON-тело или форма/квери (symptoms, top_n).
// top_n не задан -> def; задан и < 1 -> ошибка.
func parseDiagnoseRequest(r *http.Request, def int) ([]string, int, error) {
	if isJSON(r) {
		var req diagnoseRequest
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&req); err != nil {
			return nil, 0, fmt.Errorf("bad json: %w", err)
		}
		topN := def
		if req.TopN != nil {
			topN = *req.TopN
		}
		if topN < 1 {
			return nil, 0, errors.New("top_n must be >= 1")
		}
		return req.Symptoms, topN, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, 0, fmt.Errorf("bad form: %w", err)
	}
	var symptoms []string
	for _, v := range r.Form["symptoms"] {
		symptoms = append(symptoms, service.SplitSymptoms(v)...)
	}
	topN := def
	if v := strings.TrimSpace(r.FormValue("top_n")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, 0, errors.New("top_n must be an integer >= 1")
		}
		topN = n
	}
	return symptoms, topN, nil
}

func isJSON(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(ct)
	return err == nil && mt == "application/json"
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// cacheKey: нормализованный набор симптомов + topN; ранжирование детерминировано.
func cacheKey(symptoms []string, topN int) string {
	return strings.Join(service.NormalizeList(symptoms), "|") + "#" + strconv.Itoa(topN)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
