package categories

import (
	"github.com/shopmallhq/shopmall-backend/pkg/db/models"
)

// CategoryDTO is the transport shape of a navigation category.
type CategoryDTO struct {
	Code        int     `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	SortOrder   int     `json:"sort_order"`
}

// FromModel maps a persisted category to its transport shape.
func FromModel(c *models.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		SortOrder:   c.SortOrder,
	}
}

// FromModels maps a category list.
func FromModels(rows []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
