package service

import (
	"inbalance_quiz_backend/internal/config"
	"inbalance_quiz_backend/internal/model"
	"inbalance_quiz_backend/internal/repository"
	"inbalance_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	AdminRepo *repository.AdminRepository
	Cfg       *config.Config
}

func NewAuthService(adminRepo *repository.AdminRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		AdminRepo: adminRepo,
		Cfg:       cfg,
	}
}

// CreateAccount 由管理员创建后台账号
func (s *AuthService) CreateAccount(user *model.AdminUser) error {
	_, err := s.AdminRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	return s.AdminRepo.Create(user)
}

func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.AdminRepo.FindByEmail(email)
	if err != nil {
		return "", util.ErrInvalidCredentials
	}
	if user.Disabled {
		return "", util.ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	_ = s.AdminRepo.UpdateLastLogin(user.ID)

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.AdminUser {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.AdminRepo.FindByID(claims.UserID)
	return user
}
