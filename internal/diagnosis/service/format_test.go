package service

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"symptom-service/internal/diagnosis/model"
)

func TestConfidencePercentAndSeverity(t *testing.T) {
	cases := []struct {
		score    float64
		pct      int
		severity string
	}{
		{0.935, 93, SeverityHigh},
		{0.7, 70, SeverityHigh},
		{0.6999, 69, SeverityMedium},
		{0.4, 40, SeverityMedium},
		{0.29, 29, SeverityLow},
		{0.3667, 36, SeverityLow},
		{1, 100, SeverityHigh},
	}
	for _, c := range cases {
		pct := ConfidencePercent(c.score)
		if pct != c.pct {
			t.Errorf("ConfidencePercent(%v) = %d, expected %d", c.score, pct, c.pct)
		}
		if s := Severity(pct); s != c.severity {
			t.Errorf("Severity(%d) = %s, expected %s", pct, s, c.severity)
		}
	}
}

func TestFormatCondition(t *testing.T) {
	c := FormatCondition(model.MatchResult{
		Disease:           "Flu",
		MatchScore:        0.935,
		MatchingSymptoms:  []string{"cough", "fever"},
		KnownSymptomCount: 4,
		Treatment:         &model.TreatmentEntry{Condition: "Flu", EmergencyNote: "call 911"},
	})
	if c.Confidence != "93%" || c.Severity != SeverityHigh || c.TotalSymptoms != 4 {
		t.Fatalf("unexpected condition %+v", c)
	}
	if c.Recommendations == nil {
		t.Fatal("recommendations must serialize as a list")
	}
	if c.Treatment == nil || c.Treatment.EmergencyNote != "call 911" || c.Treatment.Medications == nil {
		t.Fatalf("unexpected treatment block %+v", c.Treatment)
	}

	b, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"disease"`, `"confidence":"93%"`, `"matched_symptoms"`, `"total_symptoms":4`, `"recommendations":[]`} {
		if !strings.Contains(string(b), key) {
			t.Errorf("expected %s in %s", key, b)
		}
	}
}

func TestDiagnoseEnvelope(t *testing.T) {
	m := NewMatcher(testCatalog(), nil, zerolog.Nop())

	resp := m.Diagnose([]string{"Fever", " cough"}, 5)
	if resp.SymptomsEntered != "fever, cough" {
		t.Fatalf("unexpected symptoms_entered %q", resp.SymptomsEntered)
	}
	if len(resp.PossibleConditions) == 0 || resp.Message != "" {
		t.Fatalf("expected conditions and no message, got %+v", resp)
	}
	if resp.Disclaimer != Disclaimer {
		t.Fatal("disclaimer must accompany results")
	}

	none := m.Diagnose([]string{"itchy elbow"}, 5)
	if len(none.PossibleConditions) != 0 || none.Message != MessageNoMatch {
		t.Fatalf("expected no-match message, got %+v", none)
	}
	if none.PossibleConditions == nil {
		t.Fatal("possible_conditions must serialize as a list")
	}

	empty := m.Diagnose(nil, 5)
	if empty.Message != MessageNoSymptoms || empty.SymptomsEntered != "" {
		t.Fatalf("expected no-symptoms message, got %+v", empty)
	}
}
