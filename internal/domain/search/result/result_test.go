package result

import (
	"testing"
	"time"

	"github.com/kailas-cloud/promptsearch/internal/domain/prompt"
	"github.com/kailas-cloud/promptsearch/internal/domain/search/field"
)

func TestResult_Accessors(t *testing.T) {
	rec := prompt.Reconstruct("p1", "u1", prompt.Fields{Title: "Hello"}, true, 42)
	r := New(rec, 0.01, field.Set{field.Title}, false)

	if r.ID() != "p1" {
		t.Errorf("ID() = %q, want p1", r.ID())
	}
	if r.Score() != 0.01 {
		t.Errorf("Score() = %v, want 0.01", r.Score())
	}
	if !r.MatchedFields().Contains(field.Title) {
		t.Error("expected title in matched fields")
	}
	if r.IsExactMatch() {
		t.Error("expected non-exact result")
	}
	got := r.Record()
	if !got.IsPrivate() || got.OwnerID() != "u1" {
		t.Errorf("record not preserved: private=%v owner=%q", got.IsPrivate(), got.OwnerID())
	}
}

func TestResponse_TotalAndDuration(t *testing.T) {
	resp := Response{
		Results:  []Result{{}, {}},
		Duration: 1500 * time.Microsecond,
	}
	if resp.Total() != 2 {
		t.Errorf("Total() = %d, want 2", resp.Total())
	}
	if resp.DurationMs() != 1 {
		t.Errorf("DurationMs() = %d, want 1", resp.DurationMs())
	}
}
