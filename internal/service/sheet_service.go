package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"inbalance_quiz_backend/internal/config"
	"inbalance_quiz_backend/internal/model"
	"inbalance_quiz_backend/internal/scoring"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// SheetService 外部表格的唯一出口。把响应行以 JSON 形式 POST 到配置的
// webhook（Google Apps Script 端负责真正的 append_row）。
type SheetService struct {
	mu     sync.RWMutex
	cfg    config.SheetsConfig
	client *http.Client
}

func NewSheetService(cfg config.SheetsConfig) *SheetService {
	return &SheetService{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// UpdateConfig 配置热更新回调
func (s *SheetService) UpdateConfig(cfg config.SheetsConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.client.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
}

func (s *SheetService) Timeout() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Duration(s.cfg.TimeoutSeconds) * time.Second
}

// Enabled 未配置 webhook 时整个同步静默关闭（本地开发场景）
func (s *SheetService) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.WebhookURL != ""
}

// BuildRow produces the flat spreadsheet row for one response:
// timestamp, contact fields, raw answer text per question, diagnosis,
// cluster/total scores, waitlist opt-in and its sub-answers.
func BuildRow(response *model.QuizResponse) []string {
	row := []string{
		response.CreatedAt.UTC().Format(time.RFC3339),
		response.FirstName,
		response.LastName,
		response.Email,
		response.Phone,
		response.Country,
	}

	var answerTexts []string
	if len(response.AnswerTexts) > 0 {
		_ = json.Unmarshal(response.AnswerTexts, &answerTexts)
	}
	for i := 0; i < scoring.QuestionCount; i++ {
		if i < len(answerTexts) {
			row = append(row, answerTexts[i])
		} else {
			row = append(row, "")
		}
	}

	row = append(row,
		response.DiagnosisLabel,
		strconv.Itoa(response.ScoreCA),
		strconv.Itoa(response.ScoreHYPRA),
		strconv.Itoa(response.ScorePCOMIR),
		strconv.Itoa(response.TotalScore),
	)

	optIn := "No"
	if response.WaitlistOptIn {
		optIn = "Yes"
	}

	var symptoms []string
	if len(response.Symptoms) > 0 {
		_ = json.Unmarshal(response.Symptoms, &symptoms)
	}

	row = append(row,
		optIn,
		response.Tracking,
		strings.Join(symptoms, ", "),
		response.Goal,
		response.Notes,
	)
	return row
}

type appendRowRequest struct {
	ResponseID string   `json:"responseId"`
	Row        []string `json:"row"`
}

// Append posts one row to the webhook. Any non-2xx status is an error so the
// caller can schedule a retry.
func (s *SheetService) Append(ctx context.Context, response *model.QuizResponse) error {
	if !s.Enabled() {
		return nil
	}

	payload, err := json.Marshal(appendRowRequest{
		ResponseID: response.ID,
		Row:        BuildRow(response),
	})
	if err != nil {
		return err
	}

	s.mu.RLock()
	webhookURL := s.cfg.WebhookURL
	s.mu.RUnlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sheet webhook returned status %d", resp.StatusCode)
	}
	return nil
}
