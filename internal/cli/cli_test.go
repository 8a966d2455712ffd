package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"symptom-service/internal/diagnosis/model"
)

func fixtures(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cat := filepath.Join(dir, "catalog.csv")
	ref := filepath.Join(dir, "drugs.json")
	csv := "Disease,Symptoms\nFlu,\"fever, cough, fatigue, headache\"\nCommon Cold,\"cough, sore throat, runny nose\"\n"
	if err := os.WriteFile(cat, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ref, []byte(`{"Flu": {"home_remedies": ["Rest"], "emergency_note": "Call for help if breathing is hard"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	return cat, ref
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMatchText(t *testing.T) {
	cat, ref := fixtures(t)
	out, err := run(t, "--catalog", cat, "--treatments", ref, "match", "fever, cough", "headache", "--top", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Symptoms: fever, cough, headache", "1. Flu  93% (High)", "- Rest", "! Call for help", "2. Common Cold"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestMatchJSONAndYAML(t *testing.T) {
	cat, ref := fixtures(t)

	out, err := run(t, "--catalog", cat, "--treatments", ref, "match", "cough", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var resp model.Response
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if len(resp.PossibleConditions) != 2 || resp.PossibleConditions[0].Disease != "Common Cold" {
		t.Fatalf("unexpected conditions %+v", resp.PossibleConditions)
	}

	out, err = run(t, "--catalog", cat, "--treatments", ref, "match", "cough", "-f", "yaml")
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode yaml: %v\n%s", err, out)
	}
	if _, ok := doc["possible_conditions"]; !ok {
		t.Fatalf("expected possible_conditions key in yaml:\n%s", out)
	}
}

func TestMatchErrors(t *testing.T) {
	cat, ref := fixtures(t)
	if _, err := run(t, "--catalog", cat, "--treatments", ref, "match", "fever", "--top", "0"); err == nil {
		t.Fatal("expected error for --top 0")
	}
	if _, err := run(t, "--catalog", cat, "match", "fever", "--format", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if _, err := run(t, "--catalog", filepath.Join(t.TempDir(), "none.csv"), "match", "fever"); err == nil {
		t.Fatal("expected error for missing catalog")
	}
}

func TestCatalogStats(t *testing.T) {
	cat, _ := fixtures(t)
	out, err := run(t, "catalog", "--file", cat)
	if err != nil {
		t.Fatal(err)
	}
	var stats model.CatalogStats
	if err := yaml.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Diseases != 2 || stats.DistinctSymptoms != 6 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestVersion(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "symptomctl") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}
