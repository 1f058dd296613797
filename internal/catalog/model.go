// Package catalog is the public book catalog: its record store and the
// HTTP routes that read and (behind the access gate) modify it.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("book not found")
	ErrInvalid  = errors.New("invalid book")
)

type Book struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
}

// BookInput is the writable part of a Book.
type BookInput struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
}

// Validate requires a title and a positive price.
func (in *BookInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)

	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if in.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalid)
	}
	return nil
}

func (in BookInput) toBook(id int64) Book {
	return Book{
		ID:          id,
		Title:       in.Title,
		Author:      in.Author,
		Price:       in.Price,
		Description: in.Description,
	}
}
