package model

import "encoding/json"

// QuizQuestion 问卷题目（用于前端展示，不含权重）
// Seeded from the canonical scoring table at migration time; the scoring
// engine never reads these rows.
// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	Prompt  string          `gorm:"type:text;not null" json:"prompt"`
	Options json.RawMessage `gorm:"type:json" json:"options"` // JSON: []string, option order matters
	Order   int             `gorm:"default:0;uniqueIndex" json:"order"`
	Cluster string          `gorm:"size:20" json:"cluster"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
