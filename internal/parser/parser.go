package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"

	"pdf-rag-chat/internal/models"
)

// ParsePDF extracts one chunk per page from an in-memory PDF. Page text is
// kept verbatim, blank pages included. Any failure aborts the whole document.
func ParsePDF(source string, data []byte) (chunks []models.Chunk, err error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", models.ErrIngestion)
	}

	// the pdf reader panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			chunks = nil
			err = fmt.Errorf("%w: %v", models.ErrIngestion, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrIngestion, err)
	}

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", models.ErrIngestion, i, err)
		}
		if strings.TrimSpace(pageText) == "" {
			log.Debug().Str("source", source).Int("page", i).Msg("Page has no extractable text")
		}
		chunks = append(chunks, models.Chunk{
			Content:    pageText,
			Source:     source,
			PageNumber: i,
		})
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: document has no pages", models.ErrIngestion)
	}
	return chunks, nil
}
