package service

import (
	"context"
	"encoding/json"
	"inbalance_quiz_backend/internal/config"
	"inbalance_quiz_backend/internal/model"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func sampleResponse() *model.QuizResponse {
	answers, _ := json.Marshal([]int{3, 3, 3, 3, 3})
	texts, _ := json.Marshal([]string{
		"Rarely got period (< 6 times a year)",
		"Yes + scalp thinning or hair loss",
		"Yes, severe and persistent",
		"Can't lose weight despite diet/exercise",
		"Yes, almost daily with alertness issues",
	})
	symptoms, _ := json.Marshal([]string{"Irregular cycles", "Low energy"})

	r := &model.QuizResponse{
		FirstName:      "Lina",
		LastName:       "K",
		Email:          "lina@example.com",
		Phone:          "+49123456",
		Country:        "Germany",
		Answers:        answers,
		AnswerTexts:    texts,
		ScoreCA:        32,
		ScoreHYPRA:     56,
		ScorePCOMIR:    20,
		TotalScore:     108,
		DiagnosisCode:  "HCA-PCO",
		DiagnosisLabel: "HCA-PCO (Possible PCOS)",
		WaitlistOptIn:  true,
		Tracking:       "Yes, with an app",
		Symptoms:       symptoms,
		Goal:           "Understand my cycle",
		Notes:          "none",
	}
	r.ID = "resp-1"
	r.CreatedAt = time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	return r
}

func TestBuildRowLayout(t *testing.T) {
	row := BuildRow(sampleResponse())

	// timestamp + 5 contact + 5 answers + diagnosis + 4 scores + 5 waitlist
	if len(row) != 21 {
		t.Fatalf("row has %d columns, want 21", len(row))
	}
	if row[0] != "2026-08-01T10:30:00Z" {
		t.Errorf("timestamp = %q", row[0])
	}
	if row[1] != "Lina" || row[3] != "lina@example.com" {
		t.Errorf("contact columns wrong: %v", row[1:6])
	}
	if row[6] != "Rarely got period (< 6 times a year)" {
		t.Errorf("first answer column = %q", row[6])
	}
	if row[11] != "HCA-PCO (Possible PCOS)" {
		t.Errorf("diagnosis column = %q", row[11])
	}
	if row[12] != "32" || row[13] != "56" || row[14] != "20" || row[15] != "108" {
		t.Errorf("score columns = %v", row[12:16])
	}
	if row[16] != "Yes" {
		t.Errorf("opt-in column = %q", row[16])
	}
	if row[18] != "Irregular cycles, Low energy" {
		t.Errorf("symptoms column = %q", row[18])
	}
}

func TestBuildRowMissingAnswerTexts(t *testing.T) {
	r := &model.QuizResponse{}
	r.CreatedAt = time.Now()
	row := BuildRow(r)
	if len(row) != 21 {
		t.Fatalf("row has %d columns, want 21 even with empty fields", len(row))
	}
}

func TestSheetAppend(t *testing.T) {
	var received appendRowRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewSheetService(config.SheetsConfig{WebhookURL: server.URL, TimeoutSeconds: 5})
	if err := svc.Append(context.Background(), sampleResponse()); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if received.ResponseID != "resp-1" {
		t.Errorf("ResponseID = %q", received.ResponseID)
	}
	if len(received.Row) != 21 {
		t.Errorf("row columns = %d, want 21", len(received.Row))
	}
}

func TestSheetAppendNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewSheetService(config.SheetsConfig{WebhookURL: server.URL, TimeoutSeconds: 5})
	if err := svc.Append(context.Background(), sampleResponse()); err == nil {
		t.Fatal("Append accepted a 502 response")
	}
}

func TestSheetAppendDisabled(t *testing.T) {
	svc := NewSheetService(config.SheetsConfig{TimeoutSeconds: 5})
	if svc.Enabled() {
		t.Fatal("service without webhook URL reports enabled")
	}
	if err := svc.Append(context.Background(), sampleResponse()); err != nil {
		t.Fatalf("disabled Append should be a no-op, got %v", err)
	}
}
