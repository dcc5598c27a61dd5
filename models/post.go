package models

import "time"

const postTextDisplayLength = 50

// PostOrder is the default listing order: newest first, ties broken by id so
// pages stay stable.
const PostOrder = "posts.created_at DESC, posts.id DESC"

type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index;<-:create"`
	UpdatedAt time.Time `json:"updated_at"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID   *uint     `json:"group_id" gorm:"index"`
	Group     *Group    `json:"-" gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

// PostForm is bound from both the HTML form and the JSON API. Group holds a
// group id; empty means the post has no group.
type PostForm struct {
	Text  string `json:"text" form:"text" binding:"required"`
	Group string `json:"group" form:"group"`
}

type PostResponse struct {
	ID        uint       `json:"id"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	Author    PublicUser `json:"author"`
	Group     *GroupRef  `json:"group,omitempty"`
}

type GroupRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

func (p Post) String() string {
	return truncate(p.Text, postTextDisplayLength)
}

func (p *Post) IsAuthor(u *User) bool {
	return u != nil && p.AuthorID == u.ID
}

func (p *Post) Response() PostResponse {
	resp := PostResponse{
		ID:        p.ID,
		Text:      p.Text,
		CreatedAt: p.CreatedAt,
		Author:    p.Author.Public(),
	}
	if p.Group != nil {
		resp.Group = &GroupRef{ID: p.Group.ID, Title: p.Group.Title, Slug: p.Group.Slug}
	}
	return resp
}
