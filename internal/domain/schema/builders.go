package schema

// AddEntityType returns a new schema with def appended. The def is
// normalized (slug derived from name when missing) before the collision
// check. Returns a DuplicateSlugError if the slug already exists.
func AddEntityType(s Schema, def EntityTypeDef) (Schema, error) {
	out := s.Clone()

	def = def.clone()
	if def.Slug == "" {
		def.Slug = Slugify(def.Name)
	}
	if def.Icon == "" {
		def.Icon = "circle"
	}
	if def.Attributes == nil {
		def.Attributes = []AttributeDef{}
	}
	for i := range def.Attributes {
		normalizeAttribute(&def.Attributes[i])
	}

	for _, t := range out.EntityTypes {
		if t.Slug == def.Slug {
			return Schema{}, &DuplicateSlugError{Kind: "entity_type", Slug: def.Slug}
		}
	}

	out.EntityTypes = append(out.EntityTypes, def)
	return out, nil
}

// AddAttribute returns a new schema with def appended to the named type.
// Returns a DuplicateSlugError on attribute slug collision; an unknown type
// slug is a no-op on the copy (Validate reports unknown slugs).
func AddAttribute(s Schema, typeSlug string, def AttributeDef) (Schema, error) {
	out := s.Clone()

	normalizeAttribute(&def)

	for i := range out.EntityTypes {
		t := &out.EntityTypes[i]
		if t.Slug != typeSlug {
			continue
		}
		for _, a := range t.Attributes {
			if a.Slug == def.Slug {
				return Schema{}, &DuplicateSlugError{Kind: "attribute", Slug: def.Slug}
			}
		}
		t.Attributes = append(t.Attributes, def)
		break
	}

	return out, nil
}

// AddRelationship returns a new schema with decl appended. Returns a
// DuplicateSlugError when a declaration with the same name already exists.
func AddRelationship(s Schema, decl RelationshipDecl) (Schema, error) {
	out := s.Clone()

	for _, r := range out.Relationships {
		if r.Name == decl.Name {
			return Schema{}, &DuplicateSlugError{Kind: "relationship", Slug: decl.Name}
		}
	}

	out.Relationships = append(out.Relationships, decl)
	return out, nil
}

func normalizeAttribute(a *AttributeDef) {
	if a.Slug == "" {
		a.Slug = Slugify(a.Name)
	}
	if a.DataType == "" {
		a.DataType = TypeText
	}
}
