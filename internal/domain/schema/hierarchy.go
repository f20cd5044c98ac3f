package schema

// TypeNode is one node of the type hierarchy tree.
type TypeNode struct {
	Type     EntityTypeDef `json:"type"`
	Children []TypeNode    `json:"children"`
}

// TypeDef returns the type with the given slug, or nil.
func TypeDef(s Schema, slug string) *EntityTypeDef {
	for i := range s.EntityTypes {
		if s.EntityTypes[i].Slug == slug {
			def := s.EntityTypes[i].clone()
			return &def
		}
	}
	return nil
}

// RootTypes returns the types with no parent, in declaration order.
func RootTypes(s Schema) []EntityTypeDef {
	var roots []EntityTypeDef
	for _, t := range s.EntityTypes {
		if t.ParentType == "" {
			roots = append(roots, t.clone())
		}
	}
	return roots
}

// ChildTypes returns the types whose parent_type is parentSlug.
func ChildTypes(s Schema, parentSlug string) []EntityTypeDef {
	var children []EntityTypeDef
	for _, t := range s.EntityTypes {
		if t.ParentType != "" && t.ParentType == parentSlug {
			children = append(children, t.clone())
		}
	}
	return children
}

// Hierarchy builds the recursive {type, children} tree from the roots down.
// A visited set guards traversal so a cyclic (not yet validated) schema
// yields a truncated tree instead of hanging.
func Hierarchy(s Schema) []TypeNode {
	visited := make(map[string]bool, len(s.EntityTypes))
	var nodes []TypeNode
	for _, root := range RootTypes(s) {
		nodes = append(nodes, buildNode(s, root, visited))
	}
	return nodes
}

func buildNode(s Schema, t EntityTypeDef, visited map[string]bool) TypeNode {
	visited[t.Slug] = true
	node := TypeNode{Type: t, Children: []TypeNode{}}
	for _, child := range ChildTypes(s, t.Slug) {
		if visited[child.Slug] {
			continue
		}
		node.Children = append(node.Children, buildNode(s, child, visited))
	}
	return node
}
