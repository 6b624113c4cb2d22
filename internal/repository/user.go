package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dakabot/internal/model"
)

// UserRepository 员工表的读写
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// EnsureUser 惰性建档：line_user_id 已存在时不做任何修改
func (r *UserRepository) EnsureUser(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "line_user_id"}},
			DoNothing: true,
		}).
		Create(user).Error
}

// List 全部员工，新注册的在前
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&users).Error

	return users, err
}
