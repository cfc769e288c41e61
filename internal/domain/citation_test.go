package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCitation_String(t *testing.T) {
	t.Run("renders fields in insertion order", func(t *testing.T) {
		c := NewCitation(TemplateJournal).
			Add("title", "Array programming with NumPy").
			Add("journal", "Nature").
			Add("year", "2020")

		assert.Equal(t, "{{cite journal | title=Array programming with NumPy | journal=Nature | year=2020 }}", c.String())
	})

	t.Run("omits empty optional fields", func(t *testing.T) {
		c := NewCitation(TemplateBook).
			Add("title", "Go").
			Add("year", "").
			Add("publisher", "   ").
			Add("isbn", "9780134190440")

		assert.Equal(t, "{{cite book | title=Go | isbn=9780134190440 }}", c.String())
		assert.NotContains(t, c.String(), "year=")
		assert.NotContains(t, c.String(), "publisher=")
	})

	t.Run("keeps empty required fields", func(t *testing.T) {
		c := NewCitation(TemplateWeb).
			Require("title", "  ").
			Require("url", "https://example.org")

		assert.Equal(t, "{{cite web | title= | url=https://example.org }}", c.String())
	})

	t.Run("trims values", func(t *testing.T) {
		c := NewCitation(TemplateWeb).Require("title", "\n  Hello World \t")
		assert.Equal(t, "{{cite web | title=Hello World }}", c.String())
	})

	t.Run("no fields", func(t *testing.T) {
		assert.Equal(t, "{{cite journal }}", NewCitation(TemplateJournal).String())
	})
}

func TestCitation_AddAuthors(t *testing.T) {
	c := NewCitation(TemplateJournal).AddAuthors([]string{"Doe J", "", "  ", "Smith A"})

	assert.Equal(t, "{{cite journal | author1=Doe J | author2=Smith A }}", c.String())
}

func TestCitation_AddSplitAuthors(t *testing.T) {
	c := NewCitation(TemplateJournal).AddSplitAuthors([]PersonName{
		{Last: "Harris", First: "Charles R."},
		{},
		{Last: "Millman", First: "K. Jarrod"},
		{Last: "Consortium"},
	})

	assert.Equal(t,
		"{{cite journal | last1=Harris | first1=Charles R. | last2=Millman | first2=K. Jarrod | last3=Consortium }}",
		c.String())
}

func TestCitation_Get(t *testing.T) {
	c := NewCitation(TemplateWeb).
		Add("author", "").
		Require("title", "").
		Add("url", " https://example.org ")

	_, ok := c.Get("author")
	assert.False(t, ok)

	v, ok := c.Get("title")
	assert.True(t, ok)
	assert.Empty(t, v)

	v, ok = c.Get("url")
	assert.True(t, ok)
	assert.Equal(t, "https://example.org", v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}
