// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SearchForm carries the title search input from the query string. A
// present-but-invalid query is a client error, not an empty result.
type SearchForm struct {
	Query string `validate:"required,max=100"`
}

// CommentForm carries a comment submission. All fields are required;
// the email must parse as an address.
type CommentForm struct {
	Name  string `validate:"required,max=80"`
	Email string `validate:"required,email,max=254"`
	Body  string `validate:"required,max=10000"`
}

// commentFormError maps the first validation failure to a reader-facing
// message for the re-rendered form.
func commentFormError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid submission."
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "max" {
			return "Name must be at most 80 characters."
		}
		return "Please enter your name."
	case "Email":
		if fe.Tag() == "required" {
			return "Please enter your email address."
		}
		return "Please enter a valid email address."
	case "Body":
		if fe.Tag() == "max" {
			return "Comment is too long."
		}
		return "Please write a comment."
	}
	return "Invalid submission."
}
