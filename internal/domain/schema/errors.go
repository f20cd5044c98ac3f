package schema

import (
	"fmt"
	"strings"
)

// DuplicateSlugError is raised by the builder functions when adding a type,
// attribute, or relationship whose slug already exists. Unlike validation
// problems this is a hard error: silently proceeding would corrupt the
// schema rather than just reject bad input.
type DuplicateSlugError struct {
	Kind string // "entity_type", "attribute", or "relationship"
	Slug string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("duplicate %s slug: %s", e.Kind, e.Slug)
}

// ValidationError carries every problem Validate found, so callers can
// surface all of them at once.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid schema: " + strings.Join(e.Problems, "; ")
}
