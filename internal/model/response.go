package model

import (
	"encoding/json"
	"time"
)

// QuizResponse 一次完成的问卷会话对应一行响应记录
// swagger:model QuizResponse
type QuizResponse struct {
	UUIDBase
	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	Email     string `gorm:"size:100;index;not null" json:"email"`
	Phone     string `gorm:"size:30" json:"phone"`
	Country   string `gorm:"size:100" json:"country"`

	// 原始答案（选项下标）与选项文本快照
	Answers     json.RawMessage `gorm:"type:json" json:"answers"`     // JSON: []int
	AnswerTexts json.RawMessage `gorm:"type:json" json:"answerTexts"` // JSON: []string

	ScoreCA         int             `gorm:"default:0" json:"scoreCa"`
	ScoreHYPRA      int             `gorm:"default:0" json:"scoreHypra"`
	ScorePCOMIR     int             `gorm:"default:0" json:"scorePcomir"`
	TotalScore      int             `gorm:"default:0" json:"totalScore"`
	DiagnosisCode   string          `gorm:"size:20;index" json:"diagnosisCode"`
	DiagnosisLabel  string          `gorm:"size:255" json:"diagnosisLabel"`
	Recommendations json.RawMessage `gorm:"type:json" json:"recommendations"` // JSON: []string

	// 候补名单附加问题
	WaitlistOptIn bool            `gorm:"default:false;index" json:"waitlistOptIn"`
	Tracking      string          `gorm:"size:100" json:"tracking"`
	Symptoms      json.RawMessage `gorm:"type:json" json:"symptoms"` // JSON: []string
	Goal          string          `gorm:"size:100" json:"goal"`
	Notes         string          `gorm:"type:text" json:"notes"`

	// 外部表格同步状态，NULL 表示待重试
	SheetSyncedAt *time.Time `gorm:"index" json:"sheetSyncedAt,omitempty"`
}

func (QuizResponse) TableName() string {
	return "quiz_responses"
}

// AnswerIndexes decodes the stored answer list.
func (r *QuizResponse) AnswerIndexes() ([]int, error) {
	var answers []int
	if len(r.Answers) == 0 {
		return answers, nil
	}
	err := json.Unmarshal(r.Answers, &answers)
	return answers, err
}
