package prompt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	domprompt "github.com/kailas-cloud/promptsearch/internal/domain/prompt"
)

// Hash field names.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldBody        = "body"
	fieldCategory    = "category"
	fieldTags        = "tags"
	fieldIsPrivate   = "is_private"
	fieldOwnerID     = "owner_id"
	fieldCreatedAt   = "created_at"
)

// buildHashFields converts a prompt record into a flat map for HSET.
func buildHashFields(r *domprompt.Record) (map[string]string, error) {
	tags, err := json.Marshal(r.Tags())
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	return map[string]string{
		fieldTitle:       r.Title(),
		fieldDescription: r.Description(),
		fieldBody:        r.Body(),
		fieldCategory:    r.Category(),
		fieldTags:        string(tags),
		fieldIsPrivate:   strconv.FormatBool(r.IsPrivate()),
		fieldOwnerID:     r.OwnerID(),
		fieldCreatedAt:   strconv.FormatInt(r.CreatedAt(), 10),
	}, nil
}

// parseHashFields converts a flat hash back into a prompt record.
// Missing text fields read as empty strings.
func parseHashFields(id string, m map[string]string) (domprompt.Record, error) {
	var tags []string
	if raw := strings.TrimSpace(m[fieldTags]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			return domprompt.Record{}, fmt.Errorf("parse tags: %w", err)
		}
	}

	private, err := parseBool(m[fieldIsPrivate])
	if err != nil {
		return domprompt.Record{}, err
	}

	var createdAt int64
	if raw := m[fieldCreatedAt]; raw != "" {
		createdAt, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domprompt.Record{}, fmt.Errorf("parse created_at: %w", err)
		}
	}

	return domprompt.Reconstruct(id, m[fieldOwnerID], domprompt.Fields{
		Title:       m[fieldTitle],
		Description: m[fieldDescription],
		Body:        m[fieldBody],
		Category:    m[fieldCategory],
		Tags:        tags,
	}, private, createdAt), nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false", "":
		return false, nil
	default:
		return false, fmt.Errorf("parse is_private: unexpected value %q", s)
	}
}
