package store

import (
	"github.com/yussufhh/Novella/internal/model"
	"gorm.io/gorm"
)

// UserStore persists users in PostgreSQL.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore builds a user store over the given connection.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(user *model.User) error {
	return s.db.Create(user).Error
}

func (s *UserStore) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetByEmail looks a user up by email. Callers hand in the lower-cased form;
// the comparison folds the stored value as well so pre-normalization rows
// still match.
func (s *UserStore) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("LOWER(email) = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *UserStore) Update(user *model.User) error {
	return s.db.Save(user).Error
}
