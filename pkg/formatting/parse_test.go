package formatting_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/tonsuu/tonsuu/pkg/formatting"
)

type sample struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Note  string `json:"note"`
}

func TestParse(t *testing.T) {
	t.Run("direct JSON", func(t *testing.T) {
		got, err := formatting.Parse[sample](`{"name":"test","value":42}`)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Name != "test" || got.Value != 42 {
			t.Errorf("Parse = %+v, want {Name:test Value:42}", got)
		}
	})

	t.Run("direct JSON with whitespace", func(t *testing.T) {
		got, err := formatting.Parse[sample](`  {"name":"padded","value":1}  `)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Name != "padded" {
			t.Errorf("Name = %q, want padded", got.Name)
		}
	})

	t.Run("markdown fenced JSON", func(t *testing.T) {
		input := "```json\n{\"name\":\"fenced\",\"value\":7}\n```"
		got, err := formatting.Parse[sample](input)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Name != "fenced" || got.Value != 7 {
			t.Errorf("Parse = %+v, want {Name:fenced Value:7}", got)
		}
	})

	t.Run("JSON surrounded by prose", func(t *testing.T) {
		input := "Here is the result:\n{\"name\":\"wrapped\",\"value\":5}\nDone."
		got, err := formatting.Parse[sample](input)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Name != "wrapped" || got.Value != 5 {
			t.Errorf("Parse = %+v, want {Name:wrapped Value:5}", got)
		}
	})

	t.Run("braces inside string values", func(t *testing.T) {
		got, err := formatting.Parse[sample](`{"name":"x","value":1,"note":"a{b}c"}`)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Note != "a{b}c" {
			t.Errorf("Note = %q, want a{b}c", got.Note)
		}
	})

	t.Run("escaped quotes inside strings", func(t *testing.T) {
		got, err := formatting.Parse[sample](`text {"name":"say \"hi\" {now}","value":2} trailing`)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Name != `say "hi" {now}` || got.Value != 2 {
			t.Errorf("Parse = %+v", got)
		}
	})

	t.Run("nested objects", func(t *testing.T) {
		type outer struct {
			Inner sample `json:"inner"`
		}
		got, err := formatting.Parse[outer](`prefix {"inner":{"name":"deep","value":9}} suffix`)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Inner.Name != "deep" {
			t.Errorf("Inner.Name = %q, want deep", got.Inner.Name)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := formatting.Parse[sample]("")
		if !errors.Is(err, formatting.ErrNoJSON) {
			t.Errorf("err = %v, want ErrNoJSON", err)
		}
	})

	t.Run("no JSON object", func(t *testing.T) {
		_, err := formatting.Parse[sample]("This is not JSON at all")
		if !errors.Is(err, formatting.ErrNoJSON) {
			t.Errorf("err = %v, want ErrNoJSON", err)
		}
	})

	t.Run("incomplete object", func(t *testing.T) {
		_, err := formatting.Parse[sample](`{"name":"cut","value":1`)
		if !errors.Is(err, formatting.ErrIncomplete) {
			t.Errorf("err = %v, want ErrIncomplete", err)
		}
	})

	t.Run("balanced but malformed", func(t *testing.T) {
		_, err := formatting.Parse[sample](`prose {"name": oops} prose`)
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("err = %v, want ErrParseFailed", err)
		}
	})
}

func TestParseIdempotent(t *testing.T) {
	input := "Result below:\n{\"name\":\"stable\",\"value\":3,\"note\":\"n{1}\"}\nend"

	first, err := formatting.Parse[sample](input)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	serialized, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	second, err := formatting.Parse[sample](string(serialized))
	if err != nil {
		t.Fatalf("re-Parse error: %v", err)
	}
	if first != second {
		t.Errorf("re-parsed value %+v != original %+v", second, first)
	}
}
