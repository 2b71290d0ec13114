package lsp

import (
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Document is an open text document.
type Document struct {
	URI        protocol.DocumentUri
	LanguageID string
	Version    int32
	Text       string
}

// DocumentManager tracks the documents the client has opened.
type DocumentManager struct {
	mu        sync.RWMutex
	documents map[protocol.DocumentUri]*Document
}

// NewDocumentManager creates an empty document manager.
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{
		documents: make(map[protocol.DocumentUri]*Document),
	}
}

// Open stores a newly opened document, replacing any previous version.
func (dm *DocumentManager) Open(uri protocol.DocumentUri, languageID string, version int32, text string) *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc := &Document{
		URI:        uri,
		LanguageID: languageID,
		Version:    version,
		Text:       text,
	}
	dm.documents[uri] = doc
	return doc
}

// Update replaces the text of an open document. It returns nil if the
// document is not open.
func (dm *DocumentManager) Update(uri protocol.DocumentUri, version int32, text string) *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, ok := dm.documents[uri]
	if !ok {
		return nil
	}
	// Documents are replaced rather than mutated so readers holding the
	// previous version are unaffected.
	updated := &Document{
		URI:        uri,
		LanguageID: doc.LanguageID,
		Version:    version,
		Text:       text,
	}
	dm.documents[uri] = updated
	return updated
}

// Apply applies LSP content changes in order and stores the result.
func (dm *DocumentManager) Apply(uri protocol.DocumentUri, version int32, changes []any) *Document {
	doc, ok := dm.Get(uri)
	if !ok {
		return nil
	}

	text := doc.Text
	for _, change := range changes {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			start, end := c.Range.IndexesIn(text)
			if start > end {
				start, end = end, start
			}
			text = text[:start] + c.Text + text[end:]
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		}
	}
	return dm.Update(uri, version, text)
}

// Close forgets a document.
func (dm *DocumentManager) Close(uri protocol.DocumentUri) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	delete(dm.documents, uri)
}

// Get returns an open document.
func (dm *DocumentManager) Get(uri protocol.DocumentUri) (*Document, bool) {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	doc, ok := dm.documents[uri]
	return doc, ok
}

// GetAll returns every open document.
func (dm *DocumentManager) GetAll() []*Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	docs := make([]*Document, 0, len(dm.documents))
	for _, doc := range dm.documents {
		docs = append(docs, doc)
	}
	return docs
}

// Count returns the number of open documents.
func (dm *DocumentManager) Count() int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	return len(dm.documents)
}
