package repository

import (
	"inbalance_quiz_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AdminRepository struct {
	DB *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

func (r *AdminRepository) Create(user *model.AdminUser) error {
	return r.DB.Create(user).Error
}

func (r *AdminRepository) FindByEmail(email string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AdminRepository) FindByID(id uint) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AdminRepository) UpdateLastLogin(id uint) error {
	return r.DB.Model(&model.AdminUser{}).Where("id = ?", id).Update("last_login", time.Now()).Error
}
