// Package treatment: справочник лечения: состояние -> лекарства, домашние средства, когда к врачу.
package treatment

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"symptom-service/internal/diagnosis/model"
)

// Advisory дописывается последней строкой к любым рекомендациям.
const Advisory = "If symptoms persist or worsen, consult a healthcare professional."

// Reference: справочник в порядке ключей исходного файла.
// Пустой Reference валиден: поиск просто ничего не находит.
type Reference struct {
	keys    []string
	entries map[string]model.TreatmentEntry
}

type rawEntry struct {
	OTCMedications   []model.Medication `json:"otc_medications"`
	HomeRemedies     []string           `json:"home_remedies"`
	MedicalAttention string             `json:"medical_attention"`
	EmergencyNote    string             `json:"emergency_note"`
}

// Empty: справочник без записей.
func Empty() *Reference {
	return &Reference{entries: map[string]model.TreatmentEntry{}}
}

// Load читает JSON с диска. При любой ошибке возвращает пустой справочник
// и ошибку, обёрнутую в model.ErrTreatmentDataMissing: вызывающий логирует и работает дальше.
func Load(path string) (*Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return Empty(), fmt.Errorf("%w: %v", model.ErrTreatmentDataMissing, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse разбирает JSON-объект {condition: {...}}, сохраняя порядок ключей.
// Повторяющийся ключ: остаётся первое вхождение.
func Parse(r io.Reader) (*Reference, error) {
	ref, err := parse(r)
	if err != nil {
		return Empty(), fmt.Errorf("%w: %v", model.ErrTreatmentDataMissing, err)
	}
	return ref, nil
}

func parse(r io.Reader) (*Reference, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("expected a JSON object keyed by condition name")
	}

	ref := Empty()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var raw rawEntry
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("condition %q: %w", key, err)
		}
		if _, dup := ref.entries[key]; dup {
			continue
		}
		ref.keys = append(ref.keys, key)
		ref.entries[key] = model.TreatmentEntry{
			Condition:        key,
			OTCMedications:   raw.OTCMedications,
			HomeRemedies:     raw.HomeRemedies,
			MedicalAttention: raw.MedicalAttention,
			EmergencyNote:    raw.EmergencyNote,
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return ref, nil
}

func (r *Reference) Len() int { return len(r.keys) }

// Find: сначала точное совпадение без учёта регистра, потом подстрока в любую сторону.
// Берётся ПЕРВОЕ совпадение в порядке файла, а не лучшее: "Flu" может попасть
// в "Stomach Flu", если записи "Flu" нет. Известное ограничение.
func (r *Reference) Find(disease string) (model.TreatmentEntry, bool) {
	name := strings.ToLower(strings.TrimSpace(disease))
	if name == "" || r == nil {
		return model.TreatmentEntry{}, false
	}
	for _, k := range r.keys {
		if strings.ToLower(k) == name {
			return r.entries[k], true
		}
	}
	for _, k := range r.keys {
		lk := strings.ToLower(k)
		if lk == "" {
			continue
		}
		if strings.Contains(lk, name) || strings.Contains(name, lk) {
			return r.entries[k], true
		}
	}
	return model.TreatmentEntry{}, false
}

// Recommendations: плоский список строк: лекарства, домашние средства,
// "Medical Attention: ..." и в конце Advisory (всегда).
func Recommendations(t model.TreatmentEntry) []string {
	out := make([]string, 0, len(t.OTCMedications)+len(t.HomeRemedies)+2)
	for _, m := range t.OTCMedications {
		out = append(out, fmt.Sprintf("%s: %s — %s", m.Name, m.Dosage, m.Purpose))
	}
	out = append(out, t.HomeRemedies...)
	if t.MedicalAttention != "" {
		out = append(out, "Medical Attention: "+t.MedicalAttention)
	}
	return append(out, Advisory)
}
