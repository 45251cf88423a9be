package models

// Chunk is one page of extracted document text with its provenance
type Chunk struct {
	Content    string
	Source     string
	PageNumber int
}
