package models

import "time"

const groupTitleDisplayLength = 60

type Group struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:200"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null;size:50"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateGroupRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Slug        string `json:"slug" binding:"required,max=50"`
	Description string `json:"description"`
}

func (g Group) String() string {
	return truncate(g.Title, groupTitleDisplayLength)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
