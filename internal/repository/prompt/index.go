package prompt

import "github.com/kailas-cloud/promptsearch/internal/db"

// DefaultKeyPrefix namespaces every key the repository writes.
const DefaultKeyPrefix = "promptsearch:"

func (r *Repo) recordPrefix() string { return r.prefix + "prompt:" }

func (r *Repo) recordKey(id string) string { return r.recordPrefix() + id }

func (r *Repo) indexName() string { return r.prefix + "prompts:idx" }

// buildIndex returns the FT index over prompt hashes. Only the filter and
// ordering fields are indexed; text matching happens in the application.
func (r *Repo) buildIndex() *db.IndexDefinition {
	return db.NewIndex(r.indexName()).
		Prefix(r.recordPrefix()).
		Tag(fieldIsPrivate).
		TagWithOpts(fieldOwnerID, "\x1f", true).
		NumericSortable(fieldCreatedAt).
		MustBuild()
}
