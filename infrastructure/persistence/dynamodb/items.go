package dynamodb

import (
	"time"

	"notes-backend/domain/core/entities"
)

// noteItem is the stored shape of a note; timestamps are epoch millis so
// range conditions compare numerically.
type noteItem struct {
	PK         string   `dynamodbav:"PK"`
	SK         string   `dynamodbav:"SK"`
	GSI1PK     string   `dynamodbav:"GSI1PK"`
	GSI1SK     string   `dynamodbav:"GSI1SK"`
	EntityType string   `dynamodbav:"EntityType"`
	NoteID     string   `dynamodbav:"NoteID"`
	UserID     string   `dynamodbav:"UserID"`
	Title      string   `dynamodbav:"Title"`
	Content    string   `dynamodbav:"Content"`
	Category   string   `dynamodbav:"Category"`
	Tags       []string `dynamodbav:"Tags"`
	IsFavorite bool     `dynamodbav:"IsFavorite"`
	IsArchived bool     `dynamodbav:"IsArchived"`
	CreatedAt  int64    `dynamodbav:"CreatedAt"`
	UpdatedAt  int64    `dynamodbav:"UpdatedAt"`
}

func newNoteItem(n *entities.Note) noteItem {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return noteItem{
		PK:         userPK(n.UserID),
		SK:         noteSK(n.ID),
		GSI1PK:     noteSK(n.ID),
		GSI1SK:     gsiSortKey,
		EntityType: entityNote,
		NoteID:     n.ID,
		UserID:     n.UserID,
		Title:      n.Title,
		Content:    n.Content,
		Category:   n.Category,
		Tags:       tags,
		IsFavorite: n.IsFavorite,
		IsArchived: n.IsArchived,
		CreatedAt:  n.CreatedAt.UnixMilli(),
		UpdatedAt:  n.UpdatedAt.UnixMilli(),
	}
}

func (i noteItem) toEntity() *entities.Note {
	tags := i.Tags
	if tags == nil {
		tags = []string{}
	}
	return &entities.Note{
		ID:         i.NoteID,
		UserID:     i.UserID,
		Title:      i.Title,
		Content:    i.Content,
		Category:   i.Category,
		Tags:       tags,
		IsFavorite: i.IsFavorite,
		IsArchived: i.IsArchived,
		CreatedAt:  time.UnixMilli(i.CreatedAt).UTC(),
		UpdatedAt:  time.UnixMilli(i.UpdatedAt).UTC(),
	}
}

type categoryItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	GSI1PK     string `dynamodbav:"GSI1PK"`
	GSI1SK     string `dynamodbav:"GSI1SK"`
	EntityType string `dynamodbav:"EntityType"`
	CategoryID string `dynamodbav:"CategoryID"`
	UserID     string `dynamodbav:"UserID"`
	Name       string `dynamodbav:"Name"`
	Color      string `dynamodbav:"Color"`
	Icon       string `dynamodbav:"Icon"`
	CreatedAt  int64  `dynamodbav:"CreatedAt"`
	UpdatedAt  int64  `dynamodbav:"UpdatedAt"`
}

func newCategoryItem(c *entities.Category) categoryItem {
	return categoryItem{
		PK:         userPK(c.UserID),
		SK:         categorySK(c.ID),
		GSI1PK:     categorySK(c.ID),
		GSI1SK:     gsiSortKey,
		EntityType: entityCategory,
		CategoryID: c.ID,
		UserID:     c.UserID,
		Name:       c.Name,
		Color:      c.Color,
		Icon:       c.Icon,
		CreatedAt:  c.CreatedAt.UnixMilli(),
		UpdatedAt:  c.UpdatedAt.UnixMilli(),
	}
}

func (i categoryItem) toEntity() *entities.Category {
	return &entities.Category{
		ID:        i.CategoryID,
		UserID:    i.UserID,
		Name:      i.Name,
		Color:     i.Color,
		Icon:      i.Icon,
		CreatedAt: time.UnixMilli(i.CreatedAt).UTC(),
		UpdatedAt: time.UnixMilli(i.UpdatedAt).UTC(),
	}
}

// categoryNameItem reserves a category name within a user's partition
type categoryNameItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	CategoryID string `dynamodbav:"CategoryID"`
}
