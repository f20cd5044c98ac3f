package schema

import "fmt"

// Validate checks schema structure and accumulates every problem rather than
// failing fast. It returns true with an empty list for a well-formed schema.
func Validate(s Schema) (bool, []string) {
	var problems []string

	if len(s.EntityTypes) == 0 {
		problems = append(problems, "schema must declare at least one entry in entity_types")
		return false, problems
	}

	typeSlugs := make(map[string]bool, len(s.EntityTypes))
	for _, t := range s.EntityTypes {
		if t.Name == "" {
			problems = append(problems, "entity type is missing a name")
		}
		if t.Slug == "" {
			continue
		}
		if typeSlugs[t.Slug] {
			problems = append(problems, fmt.Sprintf("duplicate entity type slug %q", t.Slug))
		}
		typeSlugs[t.Slug] = true
	}

	for _, t := range s.EntityTypes {
		if t.ParentType != "" && !typeSlugs[t.ParentType] {
			problems = append(problems, fmt.Sprintf("type %q: parent_type %q is not a known type slug", t.Slug, t.ParentType))
		}

		attrSlugs := make(map[string]bool, len(t.Attributes))
		for _, a := range t.Attributes {
			if attrSlugs[a.Slug] {
				problems = append(problems, fmt.Sprintf("type %q: duplicate attribute slug %q", t.Slug, a.Slug))
			}
			attrSlugs[a.Slug] = true

			if !KnownDataType(a.DataType) {
				problems = append(problems, fmt.Sprintf("type %q attribute %q: unknown data_type %q", t.Slug, a.Slug, a.DataType))
			}
			if a.DataType == TypeEnum && len(a.EnumValues) == 0 {
				problems = append(problems, fmt.Sprintf("type %q attribute %q: enum attribute requires enum_values", t.Slug, a.Slug))
			}
		}
	}

	problems = append(problems, parentCycles(s)...)

	for _, r := range s.Relationships {
		if !typeSlugs[r.FromType] {
			problems = append(problems, fmt.Sprintf("relationship %q: from_type %q is not a known type slug", r.Name, r.FromType))
		}
		if !typeSlugs[r.ToType] {
			problems = append(problems, fmt.Sprintf("relationship %q: to_type %q is not a known type slug", r.Name, r.ToType))
		}
	}

	return len(problems) == 0, problems
}

// parentCycles walks each type's parent chain and reports every cycle once,
// keyed by the smallest slug on the cycle so the message is deterministic.
func parentCycles(s Schema) []string {
	parent := make(map[string]string, len(s.EntityTypes))
	for _, t := range s.EntityTypes {
		if t.Slug != "" && t.ParentType != "" {
			parent[t.Slug] = t.ParentType
		}
	}

	var problems []string
	reported := make(map[string]bool)
	for _, t := range s.EntityTypes {
		seen := make(map[string]bool)
		cur := t.Slug
		for cur != "" && !seen[cur] {
			seen[cur] = true
			cur = parent[cur]
		}
		if cur == "" || reported[cur] {
			continue
		}
		// cur is on a cycle; mark every member so it is reported once.
		member := cur
		min := cur
		for {
			reported[member] = true
			member = parent[member]
			if member == cur {
				break
			}
			if member < min {
				min = member
			}
		}
		problems = append(problems, fmt.Sprintf("parent_type cycle involving type %q", min))
	}
	return problems
}
