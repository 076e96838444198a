package mongodb

import (
	"time"

	"notes-backend/domain/core/entities"
)

type noteDocument struct {
	ID         string    `bson:"_id"`
	UserID     string    `bson:"user_id"`
	Title      string    `bson:"title"`
	Content    string    `bson:"content"`
	Category   string    `bson:"category"`
	Tags       []string  `bson:"tags"`
	IsFavorite bool      `bson:"is_favorite"`
	IsArchived bool      `bson:"is_archived"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func toNoteDocument(n *entities.Note) noteDocument {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return noteDocument{
		ID:         n.ID,
		UserID:     n.UserID,
		Title:      n.Title,
		Content:    n.Content,
		Category:   n.Category,
		Tags:       tags,
		IsFavorite: n.IsFavorite,
		IsArchived: n.IsArchived,
		CreatedAt:  n.CreatedAt.UTC(),
		UpdatedAt:  n.UpdatedAt.UTC(),
	}
}

func (d noteDocument) toEntity() *entities.Note {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &entities.Note{
		ID:         d.ID,
		UserID:     d.UserID,
		Title:      d.Title,
		Content:    d.Content,
		Category:   d.Category,
		Tags:       tags,
		IsFavorite: d.IsFavorite,
		IsArchived: d.IsArchived,
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

type categoryDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Name      string    `bson:"name"`
	Color     string    `bson:"color"`
	Icon      string    `bson:"icon"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toCategoryDocument(c *entities.Category) categoryDocument {
	return categoryDocument{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Color:     c.Color,
		Icon:      c.Icon,
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
}

func (d categoryDocument) toEntity() *entities.Category {
	return &entities.Category{
		ID:        d.ID,
		UserID:    d.UserID,
		Name:      d.Name,
		Color:     d.Color,
		Icon:      d.Icon,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type categoryCountDocument struct {
	Category string `bson:"_id"`
	Count    int64  `bson:"count"`
}
