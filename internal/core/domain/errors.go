package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrCategoryNotFound = errors.New("category not found")
var ErrPostNotFound = errors.New("post not found")
var ErrCommentNotFound = errors.New("comment not found")

// ErrHasDependents is returned when a delete would orphan dependent records
// (a user with posts or comments, a category with posts, a post with comments).
var ErrHasDependents = errors.New("entity has dependent records")

// ErrLastUser is returned when a delete would remove the only remaining user.
var ErrLastUser = errors.New("the last user cannot be deleted")
