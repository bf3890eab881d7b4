package database

import (
	"encoding/json"
	"fmt"
	"inbalance_quiz_backend/internal/config"
	"inbalance_quiz_backend/internal/model"
	"inbalance_quiz_backend/internal/scoring"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.AdminUser{},
		&model.QuizQuestion{},
		&model.QuizResponse{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := seedQuestions(db); err != nil {
		return nil, err
	}
	if err := seedDefaultAdmin(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedQuestions 从 scoring 包的标准题表同步展示用题目行。
// The scoring table is the single source of truth; rows here exist only so
// the frontend payload is served from the database like everything else.
func seedQuestions(db *gorm.DB) error {
	for i, q := range scoring.Questions {
		texts := make([]string, len(q.Options))
		for j, o := range q.Options {
			texts[j] = o.Text
		}
		optionsJSON, err := json.Marshal(texts)
		if err != nil {
			return err
		}

		var existing model.QuizQuestion
		err = db.Where("`order` = ?", i).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			row := &model.QuizQuestion{
				Prompt:  q.Prompt,
				Options: optionsJSON,
				Order:   i,
				Cluster: string(q.Cluster),
			}
			if err := db.Create(row).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		// 题表更新后保持数据库行一致
		existing.Prompt = q.Prompt
		existing.Options = optionsJSON
		existing.Cluster = string(q.Cluster)
		if err := db.Save(&existing).Error; err != nil {
			return err
		}
	}
	return nil
}

// 默认管理员账号（首次启动时创建，密码需要在上线后立即修改）
func seedDefaultAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.AdminUser{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &model.AdminUser{
		Name:     "InBalance Admin",
		Email:    "admin@inbalance.local",
		Password: string(hashed),
		Role:     model.Admin,
	}
	return db.Create(admin).Error
}
