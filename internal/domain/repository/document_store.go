// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"time"

	"tastelocal/internal/document"

	"github.com/pkg/errors"
)

// Logical collections of the document store.
const (
	CollectionBusinesses = "businesses"
	CollectionUsers      = "users"
)

// Domain-specific errors for document persistence.
var (
	// ErrDocumentNotFound is returned by Get and Update when no document has the id.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrDocumentExists is returned by Create when the id is taken.
	ErrDocumentExists = errors.New("document already exists")
)

// Document is one stored record. UpdateTime is the store's version of the
// document; later writes always carry later times.
type Document struct {
	ID         string
	Data       document.Map
	UpdateTime time.Time
}

// SnapshotFunc receives the current document on every change, or nil when the
// document does not exist.
type SnapshotFunc func(doc *Document)

// DocumentStore is a schemaless store of keyed documents grouped in collections.
type DocumentStore interface {
	// Get returns the document, or ErrDocumentNotFound.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Create writes a new document. Data must already be cleaned.
	Create(ctx context.Context, collection, id string, data document.Map) (time.Time, error)

	// Update merges fields into an existing document. Each key replaces the whole
	// top-level field; keys not present are left untouched. It returns the new
	// update time.
	Update(ctx context.Context, collection, id string, fields document.Map) (time.Time, error)

	// Subscribe calls onChange once with the current state and again after every
	// change by any writer until the returned function is called or ctx ends.
	// Calls are never concurrent for one subscription.
	Subscribe(ctx context.Context, collection, id string, onChange SnapshotFunc) (unsubscribe func(), err error)

	// QueryAll returns every document in the collection.
	QueryAll(ctx context.Context, collection string) ([]*Document, error)

	// QueryByField returns the documents whose top-level field equals value.
	QueryByField(ctx context.Context, collection, field string, value any) ([]*Document, error)

	// Close releases the client.
	Close() error
}
