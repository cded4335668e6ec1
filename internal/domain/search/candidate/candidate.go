package candidate

import "github.com/kailas-cloud/promptsearch/internal/domain/search/field"

// Candidate is the projected, searchable view of a prompt. It carries only
// what the matcher needs; the full record is not retained past projection.
type Candidate struct {
	ID          string
	Title       string
	Description string
	Body        string
	Category    string
	Tags        []string
}

// Values returns the field value(s). Scalar fields yield a single element,
// tags yield every element.
func (c *Candidate) Values(f field.Name) []string {
	switch f {
	case field.Title:
		return []string{c.Title}
	case field.Description:
		return []string{c.Description}
	case field.Body:
		return []string{c.Body}
	case field.Category:
		return []string{c.Category}
	case field.Tags:
		return c.Tags
	}
	return nil
}
