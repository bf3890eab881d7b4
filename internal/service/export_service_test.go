package service

import (
	"bytes"
	"encoding/csv"
	"inbalance_quiz_backend/internal/model"
	"testing"
)

func TestBuildCSVHeaderOnly(t *testing.T) {
	data, err := BuildCSV(nil)
	if err != nil {
		t.Fatalf("BuildCSV: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want header only", len(records))
	}
	if records[0][0] != "timestamp" || records[0][len(records[0])-1] != "notes" {
		t.Errorf("unexpected header: %v", records[0])
	}
}

func TestBuildCSVRows(t *testing.T) {
	rows := []model.QuizResponse{*sampleResponse()}
	data, err := BuildCSV(rows)
	if err != nil {
		t.Fatalf("BuildCSV: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want header + 1 row", len(records))
	}

	header, row := records[0], records[1]
	if len(header) != len(row) {
		t.Fatalf("header has %d columns, row has %d", len(header), len(row))
	}

	byName := map[string]string{}
	for i, h := range header {
		byName[h] = row[i]
	}
	if byName["email"] != "lina@example.com" {
		t.Errorf("email column = %q", byName["email"])
	}
	if byName["diagnosis"] != "HCA-PCO (Possible PCOS)" {
		t.Errorf("diagnosis column = %q", byName["diagnosis"])
	}
	if byName["score_ca"] != "32" || byName["total_score"] != "108" {
		t.Errorf("score columns = %q / %q", byName["score_ca"], byName["total_score"])
	}
	if byName["waitlist_opt_in"] != "yes" {
		t.Errorf("waitlist column = %q", byName["waitlist_opt_in"])
	}
	if byName["symptoms"] != "Irregular cycles, Low energy" {
		t.Errorf("symptoms column = %q", byName["symptoms"])
	}
}

func TestBuildCSVEmptyAnswerTexts(t *testing.T) {
	r := model.QuizResponse{}
	data, err := BuildCSV([]model.QuizResponse{r})
	if err != nil {
		t.Fatalf("BuildCSV: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records[1]) != len(records[0]) {
		t.Fatalf("row width %d != header width %d", len(records[1]), len(records[0]))
	}
}
