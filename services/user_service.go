package services

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"yatube/models"

	"gorm.io/gorm"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) CreateUser(req *models.CreateUserRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if !usernamePattern.MatchString(username) {
		return nil, NewValidationError("username", "Username may contain only letters, digits and @/./+/-/_ characters.")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing int64
	if err := s.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing > 0 {
		return nil, ErrUserExists
	}

	user := &models.User{
		Email:     email,
		Username:  username,
		Password:  req.Password,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		IsActive:  true,
	}

	if err := user.HashPassword(); err != nil {
		return nil, err
	}

	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Printf("User %q registered", user.Username)
	return user, nil
}

// Authenticate accepts a username or an email address as login.
func (s *UserService) Authenticate(login, password string) (*models.User, error) {
	login = strings.TrimSpace(login)

	var user models.User
	err := s.db.Where("username = ? OR email = ?", login, strings.ToLower(login)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive || !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) CountPosts(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Post{}).Where("author_id = ?", userID).Count(&count).Error
	return count, err
}

// DeleteUser removes the user together with every post they wrote.
func (s *UserService) DeleteUser(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}
