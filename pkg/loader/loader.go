package loader

import (
	"context"
)

// DocumentFile represents a text document that can be processed into a
// co-occurrence network. It carries the document location and the loader
// that knows how to retrieve its content.
type DocumentFile struct {
	ID     string
	Path   string
	Loader DocumentLoader
}

// NewDocumentFileParams defines the input parameters for creating a new
// DocumentFile instance.
type NewDocumentFileParams struct {
	ID     string
	Path   string
	Loader DocumentLoader
}

// NewDocumentFile creates a new DocumentFile using the provided parameters.
func NewDocumentFile(params NewDocumentFileParams) DocumentFile {
	return DocumentFile{
		ID:     params.ID,
		Path:   params.Path,
		Loader: params.Loader,
	}
}

// GetText retrieves the raw text content of the document using its Loader.
//
// Example:
//
//	text, err := file.GetText(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(string(text))
func (f *DocumentFile) GetText(ctx context.Context) ([]byte, error) {
	return f.Loader.GetFileText(ctx, *f)
}

// DocumentLoader defines the interface for loading the contents of a
// DocumentFile. Implementations may load documents from disk, object
// storage, or the web.
type DocumentLoader interface {
	GetFileText(ctx context.Context, file DocumentFile) ([]byte, error)
}

// CacheKey generates a unique cache key for a DocumentFile based on its ID and path.
func CacheKey(file DocumentFile) string {
	return file.ID + ":" + file.Path
}
