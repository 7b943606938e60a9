package typedcontent

import (
	"fmt"
)

// MetadataCategory is the domain type for annotation categories.
type MetadataCategory string

// Metadata category constants (typed).
const (
	CategoryOriginator MetadataCategory = "originator"
	CategoryAttribute  MetadataCategory = "attribute"
	CategoryRelation   MetadataCategory = "relation"
)

// MetadataRelationship qualifies a relation annotation.
type MetadataRelationship string

// Metadata relationship constants (typed).
const (
	RelationshipIs  MetadataRelationship = "is"
	RelationshipHas MetadataRelationship = "has"
)

// MetadataItem is one node in an annotation tree. Nodes reference only
// their parent; a parent may be shared by any number of children. Items
// are treated as immutable once constructed: new trees are built by
// creating nodes that point at existing ones, never by editing in place.
//
// Relationship is meaningful only when Category is CategoryRelation and
// is empty otherwise; the constructors enforce this.
type MetadataItem struct {
	Value        string               `json:"value"`
	Category     MetadataCategory     `json:"category"`
	Relationship MetadataRelationship `json:"relationship,omitempty"`
	Parent       *MetadataItem        `json:"parent,omitempty"`
}

// NewOriginator creates a root annotation naming where content came from.
func NewOriginator(value string) *MetadataItem {
	return &MetadataItem{
		Value:    value,
		Category: CategoryOriginator,
	}
}

// NewAttribute creates an attribute annotation. Parent may be nil.
func NewAttribute(value string, parent *MetadataItem) *MetadataItem {
	return &MetadataItem{
		Value:    value,
		Category: CategoryAttribute,
		Parent:   parent,
	}
}

// NewRelation creates a relation annotation qualified by rel. Parent may
// be nil. Unknown relationships are rejected.
func NewRelation(rel MetadataRelationship, value string, parent *MetadataItem) (*MetadataItem, error) {
	switch rel {
	case RelationshipIs, RelationshipHas:
	default:
		return nil, fmt.Errorf("invalid metadata relationship %q", rel)
	}

	return &MetadataItem{
		Value:        value,
		Category:     CategoryRelation,
		Relationship: rel,
		Parent:       parent,
	}, nil
}

// Validate checks that the category and relationship combination is well
// formed. Items built through the constructors always pass; items decoded
// from external input may not.
func (m *MetadataItem) Validate() error {
	switch m.Category {
	case CategoryOriginator, CategoryAttribute:
		if m.Relationship != "" {
			return fmt.Errorf("%s metadata cannot carry relationship %q", m.Category, m.Relationship)
		}
	case CategoryRelation:
		if m.Relationship != RelationshipIs && m.Relationship != RelationshipHas {
			return fmt.Errorf("relation metadata requires relationship 'is' or 'has', got %q", m.Relationship)
		}
	default:
		return fmt.Errorf("unknown metadata category %q", m.Category)
	}
	return nil
}

// Root walks parent references to the top of the chain.
func (m *MetadataItem) Root() *MetadataItem {
	node := m
	for node.Parent != nil {
		node = node.Parent
	}
	return node
}

// Depth counts parent hops from this node to its root. A root has depth 0.
func (m *MetadataItem) Depth() int {
	depth := 0
	for node := m; node.Parent != nil; node = node.Parent {
		depth++
	}
	return depth
}
