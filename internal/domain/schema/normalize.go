package schema

// Normalize fills defaults on a deep copy of the schema and leaves the input
// untouched. Missing type slugs are derived from names, descriptions default
// to "", icons to "circle", attribute lists to empty; attributes get derived
// slugs, a "text" data type, and required=false.
func Normalize(s Schema) Schema {
	out := s.Clone()

	if out.Version == 0 {
		out.Version = 1
	}
	if out.EntityTypes == nil {
		out.EntityTypes = []EntityTypeDef{}
	}
	if out.Relationships == nil {
		out.Relationships = []RelationshipDecl{}
	}

	for i := range out.EntityTypes {
		t := &out.EntityTypes[i]
		if t.Slug == "" {
			t.Slug = Slugify(t.Name)
		}
		if t.Icon == "" {
			t.Icon = "circle"
		}
		if t.Attributes == nil {
			t.Attributes = []AttributeDef{}
		}
		for j := range t.Attributes {
			a := &t.Attributes[j]
			if a.Slug == "" {
				a.Slug = Slugify(a.Name)
			}
			if a.DataType == "" {
				a.DataType = TypeText
			}
		}
	}

	return out
}
