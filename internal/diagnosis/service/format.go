package service

import (
	"fmt"
	"math"
	"strings"

	"symptom-service/internal/diagnosis/model"
)

const (
	Disclaimer = "This information is not a substitute for professional medical advice. " +
		"Always consult with a healthcare provider for proper diagnosis and treatment."
	MessageNoMatch    = "No specific conditions matched your symptoms. Please consult a healthcare provider for further evaluation."
	MessageNoSymptoms = "No symptoms provided. Please enter your symptoms separated by commas."

	SeverityHigh   = "High"
	SeverityMedium = "Medium"
	SeverityLow    = "Low"
)

// ConfidencePercent: целый процент с отбрасыванием дробной части (0.935 -> 93).
// Эпсилон гасит хвосты float: 0.29*100 = 28.999999999999996.
func ConfidencePercent(score float64) int {
	return int(math.Floor(score*100 + 1e-9))
}

// Severity: High >= 70%, Medium >= 40%, иначе Low.
func Severity(percent int) string {
	switch {
	case percent >= 70:
		return SeverityHigh
	case percent >= 40:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// FormatCondition превращает MatchResult во внешний вид.
func FormatCondition(r model.MatchResult) model.Condition {
	pct := ConfidencePercent(r.MatchScore)
	c := model.Condition{
		Disease:         r.Disease,
		Confidence:      fmt.Sprintf("%d%%", pct),
		Severity:        Severity(pct),
		MatchedSymptoms: nonNil(r.MatchingSymptoms),
		TotalSymptoms:   r.KnownSymptomCount,
		Recommendations: nonNil(r.Recommendations),
	}
	if t := r.Treatment; t != nil {
		c.Treatment = &model.Treatment{
			Medications:      t.OTCMedications,
			HomeRemedies:     nonNil(t.HomeRemedies),
			MedicalAttention: t.MedicalAttention,
			EmergencyNote:    t.EmergencyNote,
		}
		if c.Treatment.Medications == nil {
			c.Treatment.Medications = []model.Medication{}
		}
	}
	return c
}

// FormatResponse собирает конверт ответа. Дисклеймер есть всегда,
// message: только если список болезней пуст.
func FormatResponse(symptoms []string, results []model.MatchResult) model.Response {
	resp := model.Response{
		SymptomsEntered:    joinEntered(symptoms),
		PossibleConditions: make([]model.Condition, 0, len(results)),
		Disclaimer:         Disclaimer,
	}
	for _, r := range results {
		if r.MatchScore <= 0 {
			continue
		}
		resp.PossibleConditions = append(resp.PossibleConditions, FormatCondition(r))
	}
	if len(resp.PossibleConditions) == 0 {
		if len(NormalizeList(symptoms)) == 0 {
			resp.Message = MessageNoSymptoms
		} else {
			resp.Message = MessageNoMatch
		}
	}
	return resp
}

// Diagnose = Rank + FormatResponse.
func (m *Matcher) Diagnose(symptoms []string, topN int) model.Response {
	return FormatResponse(symptoms, m.Rank(symptoms, topN))
}

func joinEntered(symptoms []string) string {
	parts := make([]string, 0, len(symptoms))
	for _, s := range symptoms {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
