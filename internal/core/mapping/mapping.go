// Package mapping converts between the canonical (wire) and view (Dto)
// representations of each entity, and projects view records into select
// options. Every function is pure: writes must never leak stale denormalized
// counters to the server, and reads start with zero-valued placeholders that
// the next fetch corrects.
package mapping

import "github.com/yamacbayin/blog-admin-panel/internal/core/domain"

func UserFromDto(dto domain.UserDto) domain.User { return dto.User }

func UserToDto(user domain.User) domain.UserDto {
	return domain.UserDto{User: user}
}

func UserToSelect(dto domain.UserDto) domain.SelectOption {
	return domain.SelectOption{ID: dto.ID, Label: dto.Username}
}

func CategoryFromDto(dto domain.CategoryDto) domain.Category { return dto.Category }

func CategoryToDto(category domain.Category) domain.CategoryDto {
	return domain.CategoryDto{Category: category}
}

func CategoryToSelect(dto domain.CategoryDto) domain.SelectOption {
	return domain.SelectOption{ID: dto.ID, Label: dto.Name}
}

func PostFromDto(dto domain.PostDto) domain.Post { return dto.Post }

func PostToDto(post domain.Post) domain.PostDto {
	return domain.PostDto{Post: post}
}

func PostToSelect(dto domain.PostDto) domain.SelectOption {
	return domain.SelectOption{ID: dto.ID, Label: dto.Title}
}

func CommentFromDto(dto domain.CommentDto) domain.Comment { return dto.Comment }

func CommentToDto(comment domain.Comment) domain.CommentDto {
	return domain.CommentDto{Comment: comment}
}
