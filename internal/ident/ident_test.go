package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Book", "book"},
		{"BookAuthor", "book_author"},
		{"HTTPCode", "http_code"},
		{"XMLParser", "xml_parser"},
		{"already_snake", "already_snake"},
		{"Foo_Table", "foo_table"},
		{"userInfo", "user_info"},
		{"Table2Name", "table2_name"},
		{"A", "a"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Snake(tt.input))
		})
	}
}

func TestCamelize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"book", "Book"},
		{"book_author", "BookAuthor"},
		{"author_id", "AuthorId"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Camelize(tt.input))
		})
	}
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "Books", Pluralize("Book"))
	assert.Equal(t, "Categories", Pluralize("Category"))
	assert.Equal(t, "Book", Singularize("Books"))
	assert.Equal(t, "", Pluralize(""))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("Book", "Book", false))
	assert.False(t, Equal("Book", "book", false))
	assert.True(t, Equal("Book", "book", true))
	assert.Equal(t, "author_id", Lower("Author_ID"))
	assert.Equal(t, "NOW()", Upper("now()"))
}

func TestShortHash(t *testing.T) {
	t.Parallel()

	h := ShortHash("title,author_id", "")
	assert.Len(t, h, 6)
	// Deterministic and case-insensitive.
	assert.Equal(t, h, ShortHash("title,author_id", ""))
	assert.Equal(t, h, ShortHash("Title,Author_Id", ""))
	// Content sensitive.
	assert.NotEqual(t, h, ShortHash("title,author", ""))
	assert.NotEqual(t, h, ShortHash("title,author_id", "10"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "book_i_", Truncate("book_i_123456", 7))
	assert.Equal(t, "book", Truncate("book", 64))
	assert.Equal(t, "book", Truncate("book", 0))
}
