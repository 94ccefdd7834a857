package driven

import (
	"context"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// ExportLoader parses chat export files into corpus form.
type ExportLoader interface {
	// LoadExport reads and parses the export at path. Conversations
	// arrive in file order; messages keep their in-conversation order.
	LoadExport(ctx context.Context, path string) (*domain.Corpus, error)
}
