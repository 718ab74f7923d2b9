package store

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/yamacbayin/blog-admin-panel/internal/core/domain"
	"github.com/yamacbayin/blog-admin-panel/internal/core/mapping"
	"github.com/yamacbayin/blog-admin-panel/internal/core/ports"
	"github.com/yamacbayin/blog-admin-panel/internal/panel/alert"
)

// CategoryStore caches the category collection and owns every category write.
type CategoryStore struct {
	*Store[domain.Category, domain.CategoryDto]
}

func NewCategoryStore(api ports.Collection[domain.Category, domain.CategoryDto], alerts *alert.Notifier, log zerolog.Logger) *CategoryStore {
	return &CategoryStore{newStore(api, alerts, log, hooks[domain.Category, domain.CategoryDto]{
		entity:  "category",
		id:      func(d domain.CategoryDto) int { return d.ID },
		label:   func(d domain.CategoryDto) string { return d.Name },
		fromDto: mapping.CategoryFromDto,
		toDto:   mapping.CategoryToDto,
		trim: func(c domain.Category) domain.Category {
			c.Name = strings.TrimSpace(c.Name)
			return c
		},
		carryOver: func(draft, returned domain.CategoryDto) domain.CategoryDto {
			returned.PostCount = draft.PostCount
			return returned
		},
		deleteGuard: func(target domain.CategoryDto, _ int) string {
			if target.PostCount > 0 {
				return "Categories with posts cannot be deleted."
			}
			return ""
		},
	})}
}

// SelectOptions projects the current snapshot into category picker options.
func (s *CategoryStore) SelectOptions() []domain.SelectOption {
	snapshot := s.Snapshot()
	options := make([]domain.SelectOption, len(snapshot))
	for i, dto := range snapshot {
		options[i] = mapping.CategoryToSelect(dto)
	}
	return options
}
