package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-rag-chat/internal/models"
	"pdf-rag-chat/internal/testutil"
)

func TestParsePDF_OneChunkPerPage(t *testing.T) {
	data := testutil.MakePDF(t, "Alpha page", "Bravo page", "Charlie page")

	chunks, err := ParsePDF("doc.pdf", data)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	for i, want := range []string{"Alpha", "Bravo", "Charlie"} {
		assert.Equal(t, i+1, chunks[i].PageNumber)
		assert.Equal(t, "doc.pdf", chunks[i].Source)
		assert.Contains(t, chunks[i].Content, want)
	}
}

func TestParsePDF_KeepsBlankPages(t *testing.T) {
	data := testutil.MakePDF(t, "First", "", "Third")

	chunks, err := ParsePDF("doc.pdf", data)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	for i, c := range chunks {
		assert.Equal(t, i+1, c.PageNumber)
	}
	assert.Empty(t, strings.TrimSpace(chunks[1].Content))
	assert.Contains(t, chunks[2].Content, "Third")
}

func TestParsePDF_NoTextAtAll(t *testing.T) {
	chunks, err := ParsePDF("scan.pdf", testutil.MakePDF(t, "", ""))
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, 1, chunks[0].PageNumber)
	assert.Equal(t, 2, chunks[1].PageNumber)
}

func TestParsePDF_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "not a pdf", data: []byte("hello, this is plain text")},
		{name: "truncated", data: testutil.MakePDF(t, "Cut short")[:200]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := ParsePDF("bad.pdf", tt.data)
			assert.ErrorIs(t, err, models.ErrIngestion)
			assert.Nil(t, chunks)
		})
	}
}
