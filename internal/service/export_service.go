package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"inbalance_quiz_backend/internal/model"
	"inbalance_quiz_backend/internal/repository"
	"inbalance_quiz_backend/internal/scoring"
	"inbalance_quiz_backend/internal/util"
	"strconv"
	"strings"
	"time"
)

// ExportService 把全部响应行导出为 CSV 并上传到配置的存储后端
type ExportService struct {
	Responses *repository.ResponseRepository
	Storage   *StorageService
}

func NewExportService(responses *repository.ResponseRepository, storage *StorageService) *ExportService {
	return &ExportService{Responses: responses, Storage: storage}
}

func csvHeader() []string {
	header := []string{"timestamp", "first_name", "last_name", "email", "phone", "country"}
	for i := 0; i < scoring.QuestionCount; i++ {
		header = append(header, fmt.Sprintf("q%d_answer", i+1))
	}
	header = append(header,
		"diagnosis", "score_ca", "score_hypra", "score_pcomir", "total_score",
		"waitlist_opt_in", "tracking", "symptoms", "goal", "notes",
	)
	return header
}

// BuildCSV renders rows in the same column layout as the spreadsheet sink.
func BuildCSV(rows []model.QuizResponse) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader()); err != nil {
		return nil, err
	}

	for i := range rows {
		record := buildCSVRecord(&rows[i])
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildCSVRecord(response *model.QuizResponse) []string {
	record := []string{
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
			record = append(record, answerTexts[i])
		} else {
			record = append(record, "")
		}
	}

	optIn := "no"
	if response.WaitlistOptIn {
		optIn = "yes"
	}

	var symptoms []string
	if len(response.Symptoms) > 0 {
		_ = json.Unmarshal(response.Symptoms, &symptoms)
	}

	record = append(record,
		response.DiagnosisLabel,
		strconv.Itoa(response.ScoreCA),
		strconv.Itoa(response.ScoreHYPRA),
		strconv.Itoa(response.ScorePCOMIR),
		strconv.Itoa(response.TotalScore),
		optIn,
		response.Tracking,
		strings.Join(symptoms, ", "),
		response.Goal,
		response.Notes,
	)
	return record
}

// ExportCSV 生成带时间戳的导出文件并返回可下载地址
func (s *ExportService) ExportCSV(ctx context.Context) (string, error) {
	if s.Storage == nil || s.Storage.Provider == nil {
		return "", util.ErrStorageNotConfigured
	}

	rows, err := s.Responses.ListAllOrdered()
	if err != nil {
		return "", err
	}

	data, err := BuildCSV(rows)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("exports/quiz_responses_%s.csv", time.Now().UTC().Format("20060102_150405"))
	return s.Storage.Provider.Upload(ctx, filename, bytes.NewReader(data), int64(len(data)), "text/csv")
}
