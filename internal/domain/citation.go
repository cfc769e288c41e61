package domain

import (
	"strconv"
	"strings"
)

// TemplateType is the wiki citation template a citation renders as.
type TemplateType string

// Supported citation templates.
const (
	TemplateJournal TemplateType = "cite journal"
	TemplateBook    TemplateType = "cite book"
	TemplateWeb     TemplateType = "cite web"
)

// Field is one key=value pair of a citation template.
type Field struct {
	Key   string
	Value string

	// Required fields are rendered even when Value is empty.
	Required bool
}

// Citation is an ordered field list for one citation template.
// Fields render in insertion order.
type Citation struct {
	Type   TemplateType
	Fields []Field
}

// NewCitation creates an empty citation of the given template type.
func NewCitation(t TemplateType) *Citation {
	return &Citation{Type: t}
}

// Add appends an optional field. Empty values are dropped at render time.
func (c *Citation) Add(key, value string) *Citation {
	c.Fields = append(c.Fields, Field{Key: key, Value: value})
	return c
}

// Require appends a field that is always rendered.
func (c *Citation) Require(key, value string) *Citation {
	c.Fields = append(c.Fields, Field{Key: key, Value: value, Required: true})
	return c
}

// AddAuthors appends authorN fields for every non-empty name, numbered from 1.
func (c *Citation) AddAuthors(names []string) *Citation {
	n := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		n++
		c.Add("author"+strconv.Itoa(n), name)
	}
	return c
}

// PersonName is a split author name.
type PersonName struct {
	Last  string
	First string
}

// AddSplitAuthors appends lastN/firstN pairs, numbered from 1. Authors with
// neither part are skipped without consuming a number.
func (c *Citation) AddSplitAuthors(names []PersonName) *Citation {
	n := 0
	for _, p := range names {
		last := strings.TrimSpace(p.Last)
		first := strings.TrimSpace(p.First)
		if last == "" && first == "" {
			continue
		}
		n++
		idx := strconv.Itoa(n)
		c.Add("last"+idx, last)
		c.Add("first"+idx, first)
	}
	return c
}

// Get returns the rendered value of the first field with key, if it would be emitted.
func (c *Citation) Get(key string) (string, bool) {
	for _, f := range c.Fields {
		if f.Key != key {
			continue
		}
		v := strings.TrimSpace(f.Value)
		if v == "" && !f.Required {
			return "", false
		}
		return v, true
	}
	return "", false
}

// String renders the citation as {{cite TYPE | key=value ... }}.
func (c *Citation) String() string {
	var b strings.Builder
	b.WriteString("{{")
	b.WriteString(string(c.Type))
	for _, f := range c.Fields {
		v := strings.TrimSpace(f.Value)
		if v == "" && !f.Required {
			continue
		}
		b.WriteString(" | ")
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(v)
	}
	b.WriteString(" }}")
	return b.String()
}
