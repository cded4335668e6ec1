// Package promptsearch embeds the prompt search engine in a Go program.
//
// The client opens a record store (Valkey, Redis, SQLite or process memory),
// ingests prompts and answers ranked fuzzy searches with the same pipeline
// the HTTP server runs. Private prompts are only returned to their owner.
//
// # Low-level API
//
//	client, _ := promptsearch.New(ctx, promptsearch.WithSQLite("prompts.db"))
//	defer client.Close()
//	_, _ = client.Put(ctx, promptsearch.Prompt{UserID: "u1", Title: "Write a haiku"})
//	resp, _ := client.Search(ctx, "u1", "haiku", 10)
//
// # Typed API
//
//	type Snippet struct {
//	    Key   string   `promptsearch:"id"`
//	    Owner string   `promptsearch:"userId"`
//	    Name  string   `promptsearch:"title"`
//	    Prose string   `promptsearch:"text"`
//	    Tags  []string `promptsearch:"tags"`
//	}
//
//	idx, _ := promptsearch.NewTyped[Snippet](client)
//	_, _ = idx.Put(ctx, snippets...)
//	hits, _ := idx.Search(ctx, "u1", "haiku", 10)
package promptsearch
