package model

import "errors"

var (
	// ErrDataUnavailable: каталог не загрузился, сопоставлять не с чем.
	ErrDataUnavailable = errors.New("disease catalog unavailable")
	// ErrTreatmentDataMissing: справочника лечения нет или он битый; работаем без рекомендаций.
	ErrTreatmentDataMissing = errors.New("treatment reference missing")
	// ErrNoSymptoms: после нормализации не осталось ни одного симптома.
	ErrNoSymptoms = errors.New("no symptoms provided")
)

// DiseaseEntry: строка каталога. Symptoms нормализованы, без дублей, не пустые.
type DiseaseEntry struct {
	Name     string   `json:"name"`
	Symptoms []string `json:"symptoms"`
}

type Medication struct {
	Name    string `json:"name" yaml:"name"`
	Dosage  string `json:"dosage" yaml:"dosage"`
	Purpose string `json:"purpose" yaml:"purpose"`
}

// TreatmentEntry: запись справочника лечения, ключ: название состояния.
type TreatmentEntry struct {
	Condition        string       `json:"-" yaml:"-"`
	OTCMedications   []Medication `json:"otc_medications,omitempty" yaml:"medications,omitempty"`
	HomeRemedies     []string     `json:"home_remedies,omitempty" yaml:"home_remedies,omitempty"`
	MedicalAttention string       `json:"medical_attention,omitempty" yaml:"medical_attention,omitempty"`
	EmergencyNote    string       `json:"emergency_note,omitempty" yaml:"emergency_note,omitempty"`
}

// MatchResult: одна болезнь в ранжированной выдаче.
type MatchResult struct {
	Disease           string          `json:"disease"`
	MatchScore        float64         `json:"match_score"`
	MatchingSymptoms  []string        `json:"matching_symptoms"`
	KnownSymptomCount int             `json:"known_symptom_count"`
	MatchQuality      float64         `json:"match_quality"`
	Recommendations   []string        `json:"recommendations"`
	Treatment         *TreatmentEntry `json:"-"`
}

// Treatment: блок лечения во внешнем ответе.
type Treatment struct {
	Medications      []Medication `json:"medications" yaml:"medications"`
	HomeRemedies     []string     `json:"home_remedies" yaml:"home_remedies"`
	MedicalAttention string       `json:"medical_attention" yaml:"medical_attention"`
	EmergencyNote    string       `json:"emergency_note" yaml:"emergency_note"`
}

// Condition: MatchResult в виде, который отдаём наружу.
type Condition struct {
	Disease         string     `json:"disease" yaml:"disease"`
	Confidence      string     `json:"confidence" yaml:"confidence"`
	Severity        string     `json:"severity" yaml:"severity"`
	MatchedSymptoms []string   `json:"matched_symptoms" yaml:"matched_symptoms"`
	TotalSymptoms   int        `json:"total_symptoms" yaml:"total_symptoms"`
	Recommendations []string   `json:"recommendations" yaml:"recommendations"`
	Treatment       *Treatment `json:"treatment,omitempty" yaml:"treatment,omitempty"`
}

type Response struct {
	SymptomsEntered    string      `json:"symptoms_entered" yaml:"symptoms_entered"`
	PossibleConditions []Condition `json:"possible_conditions" yaml:"possible_conditions"`
	Disclaimer         string      `json:"disclaimer" yaml:"disclaimer"`
	Message            string      `json:"message,omitempty" yaml:"message,omitempty"`
}

// CatalogStats: сводка загрузки каталога.
type CatalogStats struct {
	Source           string `json:"source" yaml:"source"`
	DiseaseColumn    string `json:"disease_column" yaml:"disease_column"`
	SymptomColumn    string `json:"symptom_column" yaml:"symptom_column"`
	RowsRead         int    `json:"rows_read" yaml:"rows_read"`
	RowsDropped      int    `json:"rows_dropped" yaml:"rows_dropped"`
	Diseases         int    `json:"diseases" yaml:"diseases"`
	SymptomMentions  int    `json:"symptom_mentions" yaml:"symptom_mentions"`
	DistinctSymptoms int    `json:"distinct_symptoms" yaml:"distinct_symptoms"`
}
