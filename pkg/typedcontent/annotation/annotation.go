// Package annotation persists metadata trees alongside stored content,
// keyed by content identifier. Records flatten the linked MetadataItem
// nodes for storage; BuildTree links them back together.
package annotation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/candell/typed-content/pkg/typedcontent"
)

// Error types
var (
	// ErrRecordNotFound indicates an annotation record was not found
	ErrRecordNotFound = errors.New("annotation record not found")

	// ErrInvalidMetadata indicates a metadata chain that fails validation
	ErrInvalidMetadata = errors.New("invalid metadata")
)

// Record is a persisted metadata node attached to a content identifier.
// ParentID references another record of the same identifier, mirroring
// the child-to-parent links of MetadataItem.
type Record struct {
	ID           uuid.UUID                         `json:"id"`
	Identifier   string                            `json:"identifier"`
	Value        string                            `json:"value"`
	Category     typedcontent.MetadataCategory     `json:"category"`
	Relationship typedcontent.MetadataRelationship `json:"relationship,omitempty"`
	ParentID     *uuid.UUID                        `json:"parent_id,omitempty"`
	CreatedAt    time.Time                         `json:"created_at"`
}

// Repository defines the interface for annotation persistence
type Repository interface {
	// Save persists a record. Records are immutable; saving an existing ID
	// is an error.
	Save(ctx context.Context, record *Record) error

	// Get returns the record with the given ID
	Get(ctx context.Context, id uuid.UUID) (*Record, error)

	// ListByIdentifier returns all records attached to a content
	// identifier, parents before children
	ListByIdentifier(ctx context.Context, identifier string) ([]*Record, error)
}

// Service attaches metadata trees to stored content and reads them back
type Service struct {
	repo Repository
}

// NewService creates a new annotation service
func NewService(repo Repository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("annotation repository is required")
	}
	return &Service{repo: repo}, nil
}

// Attach persists the chain from leaf up to its root as records attached
// to the given identifier. Parents are saved before children so listing
// order preserves the links. It returns the created records, root first.
func (s *Service) Attach(ctx context.Context, identifier string, leaf *typedcontent.MetadataItem) ([]*Record, error) {
	if leaf == nil {
		return nil, fmt.Errorf("%w: metadata item is required", ErrInvalidMetadata)
	}
	if _, err := typedcontent.ParseIdentifier(identifier); err != nil {
		return nil, err
	}

	// Collect the chain root-first.
	var chain []*typedcontent.MetadataItem
	for node := leaf; node != nil; node = node.Parent {
		if err := node.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidMetadata, err)
		}
		chain = append([]*typedcontent.MetadataItem{node}, chain...)
	}

	now := time.Now().UTC()
	records := make([]*Record, 0, len(chain))
	var parentID *uuid.UUID

	for _, node := range chain {
		record := &Record{
			ID:           uuid.New(),
			Identifier:   identifier,
			Value:        node.Value,
			Category:     node.Category,
			Relationship: node.Relationship,
			ParentID:     parentID,
			CreatedAt:    now,
		}
		if err := s.repo.Save(ctx, record); err != nil {
			return nil, fmt.Errorf("save annotation: %w", err)
		}
		records = append(records, record)
		id := record.ID
		parentID = &id
	}

	return records, nil
}

// List returns all records attached to a content identifier
func (s *Service) List(ctx context.Context, identifier string) ([]*Record, error) {
	if _, err := typedcontent.ParseIdentifier(identifier); err != nil {
		return nil, err
	}
	return s.repo.ListByIdentifier(ctx, identifier)
}

// BuildTree reconstructs the MetadataItem chain ending at leafID from a
// record set, following ParentID links. Records with broken links or
// invalid categories are rejected.
func BuildTree(records []*Record, leafID uuid.UUID) (*typedcontent.MetadataItem, error) {
	byID := make(map[uuid.UUID]*Record, len(records))
	for _, record := range records {
		byID[record.ID] = record
	}

	leaf, ok := byID[leafID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, leafID)
	}

	var build func(record *Record, hops int) (*typedcontent.MetadataItem, error)
	build = func(record *Record, hops int) (*typedcontent.MetadataItem, error) {
		if hops > len(records) {
			return nil, fmt.Errorf("annotation parent links form a cycle at %s", record.ID)
		}

		var parent *typedcontent.MetadataItem
		if record.ParentID != nil {
			parentRecord, ok := byID[*record.ParentID]
			if !ok {
				return nil, fmt.Errorf("%w: parent %s of %s", ErrRecordNotFound, record.ParentID, record.ID)
			}
			var err error
			parent, err = build(parentRecord, hops+1)
			if err != nil {
				return nil, err
			}
		}

		return itemFromRecord(record, parent)
	}

	return build(leaf, 0)
}

// itemFromRecord rebuilds one MetadataItem node, validating the stored
// category and relationship.
func itemFromRecord(record *Record, parent *typedcontent.MetadataItem) (*typedcontent.MetadataItem, error) {
	switch record.Category {
	case typedcontent.CategoryOriginator, typedcontent.CategoryAttribute:
		if record.Relationship != "" {
			return nil, fmt.Errorf("annotation %s: relationship set on %s category", record.ID, record.Category)
		}
		return &typedcontent.MetadataItem{
			Value:    record.Value,
			Category: record.Category,
			Parent:   parent,
		}, nil
	case typedcontent.CategoryRelation:
		item, err := typedcontent.NewRelation(record.Relationship, record.Value, parent)
		if err != nil {
			return nil, fmt.Errorf("annotation %s: %w", record.ID, err)
		}
		return item, nil
	default:
		return nil, fmt.Errorf("annotation %s: unknown category %q", record.ID, record.Category)
	}
}
