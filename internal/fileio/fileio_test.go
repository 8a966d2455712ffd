package fileio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	excelize "github.com/xuri/excelize/v2"
)

func TestReadAnyCSV(t *testing.T) {
	src := "Disease,Symptoms\nFlu,\"fever, cough\"\n,\nCommon Cold,\"cough, sore throat\"\n"
	tbl, err := ReadAny(strings.NewReader(src), "catalog.csv", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.Header) != 2 || tbl.Header[0] != "Disease" || tbl.Header[1] != "Symptoms" {
		t.Fatalf("unexpected header %v", tbl.Header)
	}
	if tbl.Rows != 3 {
		t.Fatalf("expected 3 data rows, got %d", tbl.Rows)
	}
	if len(tbl.Records) != 2 {
		t.Fatalf("expected empty row to be skipped, got %d records", len(tbl.Records))
	}
	if tbl.Records[1]["Symptoms"] != "cough, sore throat" {
		t.Fatalf("unexpected record %v", tbl.Records[1])
	}
}

func TestReadAnyHeaderRowAndBlankHeaders(t *testing.T) {
	src := "exported by tool\n\uFEFFDisease,,Symptoms\nFlu,x,fever\n"
	tbl, err := ReadAny(strings.NewReader(src), "catalog.CSV", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Disease", "Column 2", "Symptoms"}
	for i, h := range want {
		if tbl.Header[i] != h {
			t.Fatalf("header[%d]: expected %q, got %q", i, h, tbl.Header[i])
		}
	}
	if len(tbl.Records) != 1 || tbl.Records[0]["Symptoms"] != "fever" {
		t.Fatalf("unexpected records %v", tbl.Records)
	}
}

func TestPickHeaderDuplicates(t *testing.T) {
	h := pickHeader([][]string{{"Symptoms", "Symptoms"}}, 1)
	if h[0] == h[1] {
		t.Fatalf("duplicate headers must be disambiguated, got %v", h)
	}
}

func TestReadAnyXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	_ = f.SetCellValue(sheet, "A1", "Disease")
	_ = f.SetCellValue(sheet, "B1", "Symptoms")
	_ = f.SetCellValue(sheet, "A2", "Migraine")
	_ = f.SetCellValue(sheet, "B2", "headache, nausea")
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	tbl, err := ReadAny(&buf, "catalog.xlsx", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.Records) != 1 || tbl.Records[0]["Disease"] != "Migraine" {
		t.Fatalf("unexpected records %v", tbl.Records)
	}
}

func TestReadAnyUnsupported(t *testing.T) {
	if _, err := ReadAny(strings.NewReader(""), "catalog.pdf", 1); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), 1); err == nil {
		t.Fatal("expected error for missing file")
	}
}
