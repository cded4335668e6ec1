package match

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/promptsearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/promptsearch/internal/domain/search/field"
)

func mustMatch(
	t *testing.T, m *Approximate, query string, cands []candidate.Candidate, weights field.Weights, threshold float64,
) []Match {
	t.Helper()
	got, err := m.Match(context.Background(), query, cands, weights, threshold)
	require.NoError(t, err)
	return got
}

func distance(pat, text string) int {
	return compile([]rune(pat)).distance(text, len([]rune(pat)))
}

// sellers is the textbook O(m*n) table used as the reference for the bit-parallel scan.
func sellers(pattern, text []rune) int {
	m := len(pattern)
	col := make([]int, m+1)
	for i := range col {
		col[i] = i
	}
	best := m
	for _, tc := range text {
		diag := col[0]
		for i := 1; i <= m; i++ {
			cost := 1
			if pattern[i-1] == tc {
				cost = 0
			}
			next := min(col[i]+1, col[i-1]+1, diag+cost)
			diag = col[i]
			col[i] = next
		}
		best = min(best, col[m])
	}
	return best
}

func TestSubstringDistance(t *testing.T) {
	tests := []struct {
		pattern, text string
		want          int
	}{
		{"test", "this is a test", 0},
		{"test", "test", 0},
		{"tset", "test", 2},
		{"promt", "prompt", 1},
		{"prompt", "promt", 1},
		{"exactmatch", "exact", 5},
		{"abc", "", 3},
		{"", "anything", 0},
		{"test", "other", 3},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, distance(tt.pattern, tt.text))
		})
	}
}

func TestSubstringDistance_Unicode(t *testing.T) {
	assert.Equal(t, 0, distance("café", "le café noir"))
	assert.Equal(t, 1, distance("cafe", "le café noir"))
	assert.Equal(t, 1, distance("naïve", "a naive reader"))
}

func TestSubstringDistance_AgreesWithTable(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	alphabet := []rune("abcdé ")
	randomText := func(n int) string {
		out := make([]rune, n)
		for i := range out {
			out[i] = alphabet[rng.IntN(len(alphabet))]
		}
		return string(out)
	}

	// pattern lengths straddle the 64-rune block boundary
	for _, m := range []int{1, 3, 17, 63, 64, 65, 100, 128, 130} {
		for range 20 {
			pat, text := randomText(m), randomText(rng.IntN(300))
			want := sellers([]rune(pat), []rune(text))
			got := distance(pat, text)
			require.Equal(t, want, got, "pattern %q text %q", pat, text)
		}
	}
}

func TestSubstringDistance_LowerBoundCutoff(t *testing.T) {
	pat := compile([]rune("zqzqzq"))

	// no z or q anywhere: at least 6 edits, reported without a scan
	assert.Greater(t, pat.distance("hello world", 2), 2)
	// a cutoff above the bound still yields the exact distance
	assert.Equal(t, 6, pat.distance("hello world", 6))
	assert.Equal(t, 0, pat.distance("xx zqzqzq xx", 2))
}

func TestApproximate_ExcludesNonMatching(t *testing.T) {
	m := NewApproximate(DefaultMinRawScore)
	cands := []candidate.Candidate{
		{ID: "1", Title: "Test Prompt"},
		{ID: "2", Title: "Other"},
	}

	got := mustMatch(t, m, "Test", cands, field.DefaultWeights(), DefaultThreshold)

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, 0, got[0].Index)
	assert.True(t, got[0].Fields.Contains(field.Title))
}

func TestApproximate_TypoTolerance(t *testing.T) {
	m := NewApproximate(DefaultMinRawScore)
	cands := []candidate.Candidate{{ID: "1", Title: "Prompt engineering"}}

	got := mustMatch(t, m, "promt", cands, field.DefaultWeights(), DefaultThreshold)
	require.Len(t, got, 1)
	assert.InDelta(t, 0.2, got[0].Quality[field.Title], 1e-9)

	got = mustMatch(t, m, "xqzzy", cands, field.DefaultWeights(), DefaultThreshold)
	assert.Empty(t, got)
}

func TestApproximate_ThresholdControlsTolerance(t *testing.T) {
	m := NewApproximate(DefaultMinRawScore)
	cands := []candidate.Candidate{{ID: "1", Title: "prompt"}}

	assert.Len(t, mustMatch(t, m, "promt", cands, field.DefaultWeights(), 0.4), 1)
	assert.Empty(t, mustMatch(t, m, "promt", cands, field.DefaultWeights(), 0.1))
}

func TestApproximate_TitleOutweighsTags(t *testing.T) {
	m := NewApproximate(DefaultMinRawScore)
	cands := []candidate.Candidate{
		{ID: "tags", Tags: []string{"golang"}},
		{ID: "title", Title: "golang tips"},
	}

	got := mustMatch(t, m, "golang", cands, field.DefaultWeights(), DefaultThreshold)

	require.Len(t, got, 2)
	byID := map[string]Match{got[0].ID: got[0], got[1].ID: got[1]}
	assert.Less(t, byID["title"].RawScore, byID["tags"].RawScore)
	assert.InDelta(t, 0.05+0.95*0.6, byID["title"].RawScore, 1e-9)
	assert.InDelta(t, 0.05+0.95*0.9, byID["tags"].RawScore, 1e-9)
}

func TestApproximate_TagsAnyElement(t *testing.T) {
	m := NewApproximate(DefaultMinRawScore)
	cands := []candidate.Candidate{{ID: "1", Tags: []string{"", "writing", "seo"}}}

	got := mustMatch(t, m, "seo", cands, field.DefaultWeights(), DefaultThreshold)

	require.Len(t, got, 1)
	assert.Equal(t, field.Set{field.Tags}, got[0].Fields)
}

func TestApproximate_MultiFieldOrderAndScore(t *testing.T) {
	m := NewApproximate(DefaultMinRawScore)
	cands := []candidate.Candidate{{
		ID:          "1",
		Title:       "Rust",
		Description: "rust tutorial",
		Body:        "nothing relevant here",
		Category:    "rust",
		Tags:        []string{"rust"},
	}}

	got := mustMatch(t, m, "rust", cands, field.DefaultWeights(), DefaultThreshold)

	require.Len(t, got, 1)
	assert.Equal(t, field.Set{field.Title, field.Description, field.Category, field.Tags}, got[0].Fields)
	// relevance = 0.4+0.2+0.1+0.1 = 0.8
	assert.InDelta(t, 0.05+0.95*0.2, got[0].RawScore, 1e-9)
}

func TestApproximate_RawScoreBounds(t *testing.T) {
	m := NewApproximate(DefaultMinRawScore)
	cands := []candidate.Candidate{{
		ID: "1", Title: "go", Description: "go", Body: "go", Category: "go", Tags: []string{"go"},
	}}

	got := mustMatch(t, m, "go", cands, field.DefaultWeights(), DefaultThreshold)

	require.Len(t, got, 1)
	assert.InDelta(t, DefaultMinRawScore, got[0].RawScore, 1e-9)
}

func TestApproximate_Deterministic(t *testing.T) {
	m := NewApproximate(DefaultMinRawScore)
	cands := []candidate.Candidate{
		{ID: "a", Title: "Write a poem", Body: "poetry"},
		{ID: "b", Title: "Poem generator", Tags: []string{"poems"}},
		{ID: "c", Description: "A pome about cats"},
	}

	first := mustMatch(t, m, "poem", cands, field.DefaultWeights(), DefaultThreshold)
	for range 5 {
		assert.Equal(t, first, mustMatch(t, m, "poem", cands, field.DefaultWeights(), DefaultThreshold))
	}
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].Index, first[i].Index, "output must keep input order")
	}
}

func TestApproximate_EmptyInputs(t *testing.T) {
	m := NewApproximate(DefaultMinRawScore)
	cands := []candidate.Candidate{{ID: "1", Title: "x"}}

	assert.Nil(t, mustMatch(t, m, "   ", cands, field.DefaultWeights(), DefaultThreshold))
	assert.Nil(t, mustMatch(t, m, "x", nil, field.DefaultWeights(), DefaultThreshold))
	assert.Nil(t, mustMatch(t, m, "x", cands, nil, DefaultThreshold))
}

func TestNewApproximate_InvalidMinRawScore(t *testing.T) {
	assert.Equal(t, DefaultMinRawScore, NewApproximate(-1).minRawScore)
	assert.Equal(t, DefaultMinRawScore, NewApproximate(1).minRawScore)
	assert.Equal(t, 0.2, NewApproximate(0.2).minRawScore)
}

func TestApproximate_ContextCancelled(t *testing.T) {
	m := NewApproximate(DefaultMinRawScore)
	cands := []candidate.Candidate{{ID: "1", Title: "prompt"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := m.Match(ctx, "prompt", cands, field.DefaultWeights(), DefaultThreshold)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
}

func TestApproximate_LongQueryLongBodiesBounded(t *testing.T) {
	m := NewApproximate(DefaultMinRawScore)
	body := strings.Repeat("the quick brown fox jumps over the lazy dog, zq ", 230)
	cands := make([]candidate.Candidate, 200)
	for i := range cands {
		cands[i] = candidate.Candidate{ID: "c", Title: "unrelated title", Body: body}
	}

	start := time.Now()
	got := mustMatch(t, m, strings.Repeat("zq", 100), cands, field.DefaultWeights(), DefaultThreshold)
	elapsed := time.Since(start)

	assert.Empty(t, got)
	assert.Less(t, elapsed, 2*time.Second)
}
