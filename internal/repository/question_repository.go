package repository

import (
	"inbalance_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) ListAll() ([]model.QuizQuestion, error) {
	var qs []model.QuizQuestion
	err := r.DB.Order("`order` asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) FindByOrder(order int) (*model.QuizQuestion, error) {
	var q model.QuizQuestion
	err := r.DB.Where("`order` = ?", order).First(&q).Error
	return &q, err
}
