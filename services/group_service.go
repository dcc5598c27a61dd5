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

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

func (s *GroupService) List() ([]models.Group, error) {
	var groups []models.Group
	err := s.db.Order("title ASC, id ASC").Find(&groups).Error
	return groups, err
}

func (s *GroupService) GetBySlug(slug string) (*models.Group, error) {
	var group models.Group
	if err := s.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (s *GroupService) GetByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := s.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

// Create provisions a group. Slugs are part of public URLs and there is no
// operation that changes them afterwards.
func (s *GroupService) Create(req *models.CreateGroupRequest) (*models.Group, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, NewValidationError("title", "This field is required.")
	}
	slug := strings.TrimSpace(req.Slug)
	if !slugPattern.MatchString(slug) {
		return nil, NewValidationError("slug", "Enter a valid slug consisting of letters, numbers, underscores or hyphens.")
	}

	var existing int64
	if err := s.db.Model(&models.Group{}).Where("slug = ?", slug).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check existing group: %w", err)
	}
	if existing > 0 {
		return nil, ErrGroupExists
	}

	group := &models.Group{
		Title:       title,
		Slug:        slug,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.insert(group); err != nil {
		return nil, err
	}

	log.Printf("Group %q created", group.Slug)
	return group, nil
}

// insert relies on the unique slug index for creates that race past the
// existence check.
func (s *GroupService) insert(group *models.Group) error {
	if err := s.db.Create(group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrGroupExists
		}
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

// Delete removes the group. Its posts survive with no group assigned.
func (s *GroupService) Delete(slug string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.Where("slug = ?", slug).First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}

		if err := tx.Model(&models.Post{}).
			Where("group_id = ?", group.ID).
			Update("group_id", nil).Error; err != nil {
			return fmt.Errorf("detach posts: %w", err)
		}

		if err := tx.Delete(&group).Error; err != nil {
			return err
		}

		log.Printf("Group %q deleted", slug)
		return nil
	})
}
