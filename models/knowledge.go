package models

// KnowledgeHit is one result from the external hybrid-search collaborator.
// Ingestion, embeddings and ranking live outside this codebase.
type KnowledgeHit struct {
	DocumentID string  `json:"documentId"`
	Title      string  `json:"title"`
	Snippet    string  `json:"snippet"`
	Score      float64 `json:"score"`
}
