package repository

import (
	"inbalance_quiz_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

func (r *ResponseRepository) Create(resp *model.QuizResponse) error {
	return r.DB.Create(resp).Error
}

func (r *ResponseRepository) FindByID(id string) (*model.QuizResponse, error) {
	var resp model.QuizResponse
	err := r.DB.First(&resp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *ResponseRepository) Update(resp *model.QuizResponse) error {
	return r.DB.Save(resp).Error
}

// List 分页查询，支持按诊断、候补名单状态和邮箱模糊过滤
func (r *ResponseRepository) List(page, limit int, diagnosisCode string, waitlistOnly bool, email string) ([]model.QuizResponse, int64, error) {
	var rows []model.QuizResponse
	var total int64

	query := r.DB.Model(&model.QuizResponse{})
	if diagnosisCode != "" {
		query = query.Where("diagnosis_code = ?", diagnosisCode)
	}
	if waitlistOnly {
		query = query.Where("waitlist_opt_in = ?", true)
	}
	if email != "" {
		query = query.Where("email LIKE ?", "%"+email+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}

// ListAllOrdered 导出时按时间正序取全部行
func (r *ResponseRepository) ListAllOrdered() ([]model.QuizResponse, error) {
	var rows []model.QuizResponse
	err := r.DB.Order("created_at asc").Find(&rows).Error
	return rows, err
}

// ListUnsynced returns responses that still need a spreadsheet append.
func (r *ResponseRepository) ListUnsynced(limit int) ([]model.QuizResponse, error) {
	var rows []model.QuizResponse
	err := r.DB.Where("sheet_synced_at IS NULL").Order("created_at asc").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *ResponseRepository) MarkSynced(id string, at time.Time) error {
	return r.DB.Model(&model.QuizResponse{}).Where("id = ?", id).Update("sheet_synced_at", at).Error
}

func (r *ResponseRepository) MarkUnsynced(id string) error {
	return r.DB.Model(&model.QuizResponse{}).Where("id = ?", id).Update("sheet_synced_at", nil).Error
}

// CountByDiagnosis 各诊断标签的响应数量
func (r *ResponseRepository) CountByDiagnosis() (map[string]int64, error) {
	type row struct {
		DiagnosisCode string
		Count         int64
	}
	var rows []row
	err := r.DB.Model(&model.QuizResponse{}).
		Select("diagnosis_code, COUNT(*) as count").
		Group("diagnosis_code").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.DiagnosisCode] = rw.Count
	}
	return counts, nil
}
