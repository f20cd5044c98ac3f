// Package schema defines the project-level entity-type vocabulary and the
// pure transforms over it. Schema values are treated as immutable: every
// transform deep-copies its input and returns a new value.
package schema

// DataType enumerates the attribute value types a project may declare.
type DataType string

const (
	TypeText     DataType = "text"
	TypeNumber   DataType = "number"
	TypeBoolean  DataType = "boolean"
	TypeCurrency DataType = "currency"
	TypeEnum     DataType = "enum"
	TypeURL      DataType = "url"
	TypeDate     DataType = "date"
	TypeJSON     DataType = "json"
	TypeImageRef DataType = "image_ref"
	TypeTags     DataType = "tags"
)

var knownDataTypes = map[DataType]bool{
	TypeText:     true,
	TypeNumber:   true,
	TypeBoolean:  true,
	TypeCurrency: true,
	TypeEnum:     true,
	TypeURL:      true,
	TypeDate:     true,
	TypeJSON:     true,
	TypeImageRef: true,
	TypeTags:     true,
}

// KnownDataType reports whether dt is a declared attribute data type.
func KnownDataType(dt DataType) bool {
	return knownDataTypes[dt]
}

// AttributeDef declares one attribute of an entity type.
type AttributeDef struct {
	Name       string   `json:"name"`
	Slug       string   `json:"slug,omitempty"`
	DataType   DataType `json:"data_type,omitempty"`
	Required   bool     `json:"required,omitempty"`
	EnumValues []string `json:"enum_values,omitempty"`
}

// EntityTypeDef declares one entity type. ParentType, when non-empty, names
// another type slug in the same schema; the types form a tree.
type EntityTypeDef struct {
	Name        string         `json:"name"`
	Slug        string         `json:"slug,omitempty"`
	Description string         `json:"description,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	ParentType  string         `json:"parent_type,omitempty"`
	Attributes  []AttributeDef `json:"attributes,omitzero"`
}

// RelationshipDecl declares an allowed semantic edge between two entity
// types. Advisory: edge creation does not enforce the declared vocabulary.
type RelationshipDecl struct {
	Name     string `json:"name"`
	FromType string `json:"from_type"`
	ToType   string `json:"to_type"`
}

// Schema is a project's full entity-type vocabulary.
type Schema struct {
	Version       int                `json:"version,omitempty"`
	EntityTypes   []EntityTypeDef    `json:"entity_types"`
	Relationships []RelationshipDecl `json:"relationships,omitzero"`
}

// Clone returns a deep copy of the schema.
func (s Schema) Clone() Schema {
	out := Schema{
		Version:       s.Version,
		EntityTypes:   make([]EntityTypeDef, len(s.EntityTypes)),
		Relationships: append([]RelationshipDecl(nil), s.Relationships...),
	}
	for i, t := range s.EntityTypes {
		out.EntityTypes[i] = t.clone()
	}
	return out
}

func (t EntityTypeDef) clone() EntityTypeDef {
	out := t
	out.Attributes = make([]AttributeDef, len(t.Attributes))
	for i, a := range t.Attributes {
		out.Attributes[i] = a
		out.Attributes[i].EnumValues = append([]string(nil), a.EnumValues...)
	}
	return out
}
