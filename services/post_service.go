package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"yatube/models"
	"yatube/utils"

	"gorm.io/gorm"
)

type PostService struct {
	db       *gorm.DB
	pageSize int
}

func NewPostService(db *gorm.DB, pageSize int) *PostService {
	if pageSize < 1 {
		pageSize = utils.DefaultPageSize
	}
	return &PostService{db: db, pageSize: pageSize}
}

func (s *PostService) PageSize() int {
	return s.pageSize
}

func (s *PostService) ListAll(page string) (utils.Page[models.Post], error) {
	return s.paginate(page, func(db *gorm.DB) *gorm.DB { return db })
}

func (s *PostService) ListByGroup(groupID uint, page string) (utils.Page[models.Post], error) {
	return s.paginate(page, func(db *gorm.DB) *gorm.DB {
		return db.Where("group_id = ?", groupID)
	})
}

func (s *PostService) ListByAuthor(authorID uint, page string) (utils.Page[models.Post], error) {
	return s.paginate(page, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id = ?", authorID)
	})
}

// paginate counts the scoped rows first, then fetches only the resolved
// window in the default post order.
func (s *PostService) paginate(page string, scope func(*gorm.DB) *gorm.DB) (utils.Page[models.Post], error) {
	var total int64
	if err := s.db.Model(&models.Post{}).Scopes(scope).Count(&total).Error; err != nil {
		return utils.Page[models.Post]{}, fmt.Errorf("count posts: %w", err)
	}

	w := utils.ResolvePage(page, int(total), s.pageSize)

	var posts []models.Post
	if w.Limit > 0 {
		err := s.db.Scopes(scope).
			Preload("Author").
			Preload("Group").
			Order(models.PostOrder).
			Offset(w.Offset).
			Limit(w.Limit).
			Find(&posts).Error
		if err != nil {
			return utils.Page[models.Post]{}, fmt.Errorf("list posts: %w", err)
		}
	}

	return utils.NewPage(posts, w), nil
}

func (s *PostService) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostService) Create(actor *models.User, form *models.PostForm) (*models.Post, error) {
	text, groupID, err := s.validate(form)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     text,
		AuthorID: actor.ID,
		GroupID:  groupID,
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	log.Printf("Post %d created by %q", post.ID, actor.Username)
	return s.GetByID(post.ID)
}

func (s *PostService) Update(post *models.Post, actor *models.User, form *models.PostForm) (*models.Post, error) {
	if !CheckEditAccess(post, actor).Allowed() {
		return nil, ErrNotAuthor
	}

	text, groupID, err := s.validate(form)
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Post{ID: post.ID}).
		Select("text", "group_id", "updated_at").
		Updates(map[string]interface{}{"text": text, "group_id": groupID, "updated_at": time.Now()}).Error
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	return s.GetByID(post.ID)
}

func (s *PostService) Delete(post *models.Post, actor *models.User) error {
	if !CheckEditAccess(post, actor).Allowed() {
		return ErrNotAuthor
	}
	if err := s.db.Delete(&models.Post{}, post.ID).Error; err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	log.Printf("Post %d deleted by %q", post.ID, actor.Username)
	return nil
}

func (s *PostService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

// validate trims the text and resolves the optional group reference, which
// must point at an existing group.
func (s *PostService) validate(form *models.PostForm) (string, *uint, error) {
	text := strings.TrimSpace(form.Text)
	if text == "" {
		return "", nil, NewValidationError("text", "This field is required.")
	}

	raw := strings.TrimSpace(form.Group)
	if raw == "" {
		return text, nil, nil
	}

	invalid := NewValidationError("group", "Select a valid choice. That choice is not one of the available choices.")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return "", nil, invalid
	}

	var count int64
	if err := s.db.Model(&models.Group{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return "", nil, fmt.Errorf("check group: %w", err)
	}
	if count == 0 {
		return "", nil, invalid
	}

	groupID := uint(id)
	return text, &groupID, nil
}
