package notion

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/seojinpark/nabi/internal/apperr"
)

// canonicalIDPattern matches the 36-character hyphenated hexadecimal shape
// of a Notion object ID. Anything else is treated as a human-supplied name.
var canonicalIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsCanonicalID reports whether s already looks like a canonical object ID,
// in which case name resolution can be bypassed entirely.
func IsCanonicalID(s string) bool {
	return canonicalIDPattern.MatchString(s)
}

// databaseSuffixPattern strips trailing "... 데이터베이스" / "... 데이터베이스 ID"
// noise the model sometimes appends to a database name.
var databaseSuffixPattern = regexp.MustCompile(`^(.*?)(?:\s+데이터베이스(?:\s+ID)?)?$`)

// StripDatabaseSuffix returns the bare database name from a model-supplied
// reference such as "KT 데이터베이스 ID".
func StripDatabaseSuffix(reference string) string {
	m := databaseSuffixPattern.FindStringSubmatch(reference)
	if len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(reference)
}

func (c *Client) findByName(records []map[string]any, name string) (string, bool) {
	needle := strings.ToLower(name)
	for _, record := range records {
		title := RecordTitle(record)
		if strings.Contains(strings.ToLower(title), needle) {
			id, _ := record["id"].(string)
			c.logger.Debug("resolved name",
				slog.String("name", name),
				slog.String("title", title),
				slog.String("id", id))
			return id, true
		}
	}
	return "", false
}

// FindDatabaseByName resolves a human-supplied database name to its ID.
// The match is a case-insensitive substring test against each database
// title; listing order (last-edited descending) breaks ties, first match
// wins. Returns apperr.ErrNotFound when nothing matches.
func (c *Client) FindDatabaseByName(ctx context.Context, name string) (string, error) {
	databases, err := c.ListDatabases(ctx)
	if err != nil {
		return "", err
	}
	if id, ok := c.findByName(databases, name); ok {
		return id, nil
	}
	return "", fmt.Errorf("데이터베이스 '%s' %w", name, apperr.ErrNotFound)
}

// FindPageByName resolves a human-supplied page name to its ID using the
// same substring/first-match policy as FindDatabaseByName.
func (c *Client) FindPageByName(ctx context.Context, name string) (string, error) {
	pages, err := c.ListPages(ctx)
	if err != nil {
		return "", err
	}
	if id, ok := c.findByName(pages, name); ok {
		return id, nil
	}
	return "", fmt.Errorf("페이지 '%s' %w", name, apperr.ErrNotFound)
}
