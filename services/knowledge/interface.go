// File: services/knowledge/interface.go
package knowledge

import (
	"context"

	"hebelki/models"
)

// Searcher queries the external hybrid-search collaborator for business
// documents (FAQ, policies, service descriptions). Ingestion, embeddings and
// ranking live in that service, not here.
type Searcher interface {
	Search(ctx context.Context, businessID, query string, limit int) ([]models.KnowledgeHit, error)
}
