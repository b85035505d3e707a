package docstore

import (
	"context"
	"errors"
	"fmt"
)

// Document is a schemaless record. The store performs no field validation;
// presence and typing are the caller's responsibility.
type Document = map[string]any

// ErrNotFound is returned when a referenced document is absent.
var ErrNotFound = errors.New("document not found")

// RemoteError wraps a failed remote operation. Callers treat it as transient:
// the operation is not committed, though earlier steps of a multi-write
// workflow may already have landed.
type RemoteError struct {
	Op         string
	Collection string
	ID         string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("docstore %s %s/%s: %v", e.Op, e.Collection, e.ID, e.Err)
	}
	return fmt.Sprintf("docstore %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Store is the document-oriented remote collaborator. Operations are blocking
// and context-bound; callers that need asynchrony run them in goroutines and
// hand completions back through the dispatch loop before touching shared state.
type Store interface {
	// Get returns the document or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)
	// List returns every document in the collection.
	List(ctx context.Context, collection string) ([]Document, error)
	// Query returns documents whose field equals value.
	Query(ctx context.Context, collection, field string, value any) ([]Document, error)
	// Set creates or fully replaces a document.
	Set(ctx context.Context, collection, id string, doc Document) error
	// Update merges the given fields into an existing document;
	// ErrNotFound if the document is absent.
	Update(ctx context.Context, collection, id string, fields Document) error
	// Delete removes a document. Deleting an absent document is not an error.
	Delete(ctx context.Context, collection, id string) error
}
