package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// fieldMessages maps the first failing field to the message shown to the
// user, keyed by struct namespace. Each field has exactly one constraint
// bundle, so the tag that failed does not change the wording.
var fieldMessages = map[string]string{
	"User.Username":   "Username must be between 4 and 30 characters.",
	"User.Email":      "Email must be between 4 and 70 characters.",
	"Category.Name":   "Category name must not be empty or exceed 30 characters.",
	"Post.UserID":     "User ID cannot be null.",
	"Post.CategoryID": "Category ID cannot be null.",
	"Post.Title":      "Title must not be empty or exceed 50 characters.",
	"Post.Content":    "Content must not be empty.",
	"Comment.UserID":  "User ID cannot be null.",
	"Comment.PostID":  "Post ID cannot be null.",
	"Comment.Text":    "Comment must not be empty.",
}

// validateRecord checks a canonical record's field constraints and returns
// the user-facing message for the first violation, or "" when valid.
func validateRecord(record any) string {
	err := validate.Struct(record)
	if err == nil {
		return ""
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		if msg, ok := fieldMessages[fe.StructNamespace()]; ok {
			return msg
		}
		return fmt.Sprintf("%s failed validation (%s)", strings.ToLower(fe.Field()), fe.Tag())
	}
	return err.Error()
}
