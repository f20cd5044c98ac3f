package entity

// ListOptions filters and pages entity listings. ParentID has three states:
// nil (no parent filter), RootParent ("entities with no parent"), or a
// concrete parent entity id.
type ListOptions struct {
	ProjectID  string
	TypeSlug   string
	ParentID   *string
	CategoryID string
	Search     string
	SortBy     string // "name", "created_at", or "updated_at"
	Limit      int
	Offset     int
}

// UpdateFields carries entity-level column updates. Nil fields are left
// unchanged; for the nullable columns an empty string clears the value.
type UpdateFields struct {
	Name            *string
	CategoryID      *string
	ParentEntityID  *string
	IsStarred       *bool
	Status          *string
	ConfidenceScore *float64
	Tags            *string
	RawResearch     *string
}

// IsEmpty reports whether the update changes nothing.
func (f UpdateFields) IsEmpty() bool {
	return f.Name == nil && f.CategoryID == nil && f.ParentEntityID == nil &&
		f.IsStarred == nil && f.Status == nil && f.ConfidenceScore == nil &&
		f.Tags == nil && f.RawResearch == nil
}
