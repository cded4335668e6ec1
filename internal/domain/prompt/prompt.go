package prompt

import (
	"fmt"
	"regexp"
	"slices"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Size limits enforced on ingestion.
const (
	MaxIDLength   = 256
	MaxTextSize   = 163840 // 160KB, applies to each free-text field
	MaxTags       = 64
	MaxTagLength  = 128
	MaxOwnerIDLen = 256
)

// Record is a stored prompt (immutable value object).
// Absent free-text fields are empty strings, never nil.
type Record struct {
	id          string
	title       string
	description string
	body        string
	category    string
	tags        []string
	private     bool
	ownerID     string
	createdAt   int64 // unix milliseconds
}

// Fields groups the free-text payload of a record.
type Fields struct {
	Title       string
	Description string
	Body        string
	Category    string
	Tags        []string
}

// New validates and creates a Record.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. Owner is required for every record so that
// a record flipped to private later still has a visibility principal.
func New(id, ownerID string, f Fields, private bool, createdAt int64) (Record, error) {
	if id == "" {
		return Record{}, fmt.Errorf("prompt ID is required")
	}
	if len(id) > MaxIDLength {
		return Record{}, fmt.Errorf("prompt ID too long (max %d)", MaxIDLength)
	}
	if !idRegex.MatchString(id) {
		return Record{}, fmt.Errorf("prompt ID must be alphanumeric with underscores and hyphens")
	}
	if ownerID == "" {
		return Record{}, fmt.Errorf("owner ID is required")
	}
	if len(ownerID) > MaxOwnerIDLen {
		return Record{}, fmt.Errorf("owner ID too long (max %d)", MaxOwnerIDLen)
	}
	for name, v := range map[string]string{
		"title": f.Title, "description": f.Description, "body": f.Body, "category": f.Category,
	} {
		if len(v) > MaxTextSize {
			return Record{}, fmt.Errorf("%s too large (max %d bytes)", name, MaxTextSize)
		}
	}
	if len(f.Tags) > MaxTags {
		return Record{}, fmt.Errorf("too many tags (max %d)", MaxTags)
	}
	for _, t := range f.Tags {
		if len(t) > MaxTagLength {
			return Record{}, fmt.Errorf("tag %q too long (max %d)", t, MaxTagLength)
		}
	}
	if createdAt < 0 {
		return Record{}, fmt.Errorf("created_at must not be negative")
	}

	return Reconstruct(id, ownerID, f, private, createdAt), nil
}

// Reconstruct creates a Record without validation (storage hydration).
func Reconstruct(id, ownerID string, f Fields, private bool, createdAt int64) Record {
	tags := slices.Clone(f.Tags)
	if tags == nil {
		tags = []string{}
	}
	return Record{
		id:          id,
		title:       f.Title,
		description: f.Description,
		body:        f.Body,
		category:    f.Category,
		tags:        tags,
		private:     private,
		ownerID:     ownerID,
		createdAt:   createdAt,
	}
}

// ID returns the prompt identifier.
func (r *Record) ID() string { return r.id }

// Title returns the prompt title.
func (r *Record) Title() string { return r.title }

// Description returns the prompt description.
func (r *Record) Description() string { return r.description }

// Body returns the prompt text.
func (r *Record) Body() string { return r.body }

// Category returns the prompt category.
func (r *Record) Category() string { return r.category }

// Tags returns the prompt tags. Callers must not modify the slice.
func (r *Record) Tags() []string { return r.tags }

// IsPrivate reports whether only the owner may see the prompt.
func (r *Record) IsPrivate() bool { return r.private }

// OwnerID returns the identifier of the creating principal.
func (r *Record) OwnerID() string { return r.ownerID }

// CreatedAt returns the creation time in unix milliseconds.
func (r *Record) CreatedAt() int64 { return r.createdAt }

// Fields returns a copy of the free-text payload.
func (r *Record) Fields() Fields {
	return Fields{
		Title:       r.title,
		Description: r.description,
		Body:        r.body,
		Category:    r.category,
		Tags:        slices.Clone(r.tags),
	}
}

// VisibleTo reports whether requesterID may see the record.
// An empty requesterID is an unauthenticated caller.
func (r *Record) VisibleTo(requesterID string) bool {
	if !r.private {
		return true
	}
	return requesterID != "" && requesterID == r.ownerID
}

// Filter is the equality filter understood by record stores.
// OwnerID is only meaningful together with IsPrivate.
type Filter struct {
	IsPrivate bool
	OwnerID   string
}

// Public selects every public record.
func Public() Filter { return Filter{} }

// PrivateOf selects the private records owned by ownerID.
func PrivateOf(ownerID string) Filter { return Filter{IsPrivate: true, OwnerID: ownerID} }

// Matches reports whether r satisfies the filter.
func (f Filter) Matches(r *Record) bool {
	if r.private != f.IsPrivate {
		return false
	}
	if f.OwnerID != "" && r.ownerID != f.OwnerID {
		return false
	}
	return true
}
