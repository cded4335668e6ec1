package candidate

import (
	"testing"

	"github.com/kailas-cloud/promptsearch/internal/domain/search/field"
)

func TestValues(t *testing.T) {
	c := Candidate{
		ID: "1", Title: "t", Description: "d", Body: "b", Category: "c",
		Tags: []string{"x", "y"},
	}
	tests := []struct {
		f    field.Name
		want []string
	}{
		{field.Title, []string{"t"}},
		{field.Description, []string{"d"}},
		{field.Body, []string{"b"}},
		{field.Category, []string{"c"}},
		{field.Tags, []string{"x", "y"}},
		{field.Name("unknown"), nil},
	}
	for _, tt := range tests {
		got := c.Values(tt.f)
		if len(got) != len(tt.want) {
			t.Fatalf("Values(%q) = %v, want %v", tt.f, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Values(%q)[%d] = %q, want %q", tt.f, i, got[i], tt.want[i])
			}
		}
	}
}
