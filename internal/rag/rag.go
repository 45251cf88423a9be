package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"

	"pdf-rag-chat/internal/models"
	"pdf-rag-chat/internal/parser"
)

// VectorIndex is the insert/search contract the pipeline needs
type VectorIndex interface {
	Insert(ctx context.Context, chunks []models.Chunk) error
	Search(ctx context.Context, query string, k int) ([]models.Chunk, error)
	Empty() bool
}

// Completer is the streaming chat-completion call of a language model
type Completer interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

type RAG struct {
	index VectorIndex
	llm   Completer
}

func NewRAG(index VectorIndex, llm Completer) *RAG {
	return &RAG{index: index, llm: llm}
}

// Ingest parses a PDF and inserts one chunk per page. The index is left
// untouched when parsing fails.
func (r *RAG) Ingest(ctx context.Context, filename string, data []byte) (int, error) {
	logger := zerolog.Ctx(ctx)

	chunks, err := parser.ParsePDF(filename, data)
	if err != nil {
		return 0, err
	}
	logger.Debug().Str("file", filename).Int("pages", len(chunks)).Msg("Parsed document")

	if err := r.index.Insert(ctx, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// Answer retrieves grounding chunks for query and streams the model's reply.
// Validation and retrieval errors are returned before any fragment is sent.
// Once streaming starts, an upstream failure or an undecodable history is
// delivered as a final "Error: ..." fragment and the channel is closed normally.
func (r *RAG) Answer(ctx context.Context, query string, history models.History) (<-chan string, error) {
	logger := zerolog.Ctx(ctx)

	if query == "" {
		return nil, models.ErrMissingQuery
	}
	if r.index.Empty() {
		return nil, models.ErrEmptyIndex
	}

	results, err := r.index.Search(ctx, query, models.DefaultTopK)
	if err != nil {
		return nil, err
	}
	grounding := Grounding(results)
	logger.Debug().Int("matches", len(results)).Str("context", grounding).Msg("Retrieved context")

	out := make(chan string)
	go func() {
		defer close(out)

		if history.Err != nil {
			logger.Warn().Err(history.Err).Msg("Unusable message history")
			sendError(ctx, out, history.Err)
			return
		}
		messages := BuildMessages(grounding, history.Turns, query)

		_, err := r.llm.GenerateContent(ctx, messages,
			llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
				if len(chunk) == 0 {
					return nil
				}
				select {
				case out <- string(chunk):
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			}),
		)
		if err == nil {
			return
		}
		if ctx.Err() != nil {
			logger.Info().Err(err).Msg("Client went away, stopped streaming")
			return
		}

		logger.Error().Err(err).Msg("Completion stream failed")
		sendError(ctx, out, err)
	}()
	return out, nil
}

func sendError(ctx context.Context, out chan<- string, err error) {
	select {
	case out <- models.ErrorFragmentPrefix + err.Error():
	case <-ctx.Done():
	}
}

// Grounding joins chunk texts with single spaces, in the order given
func Grounding(chunks []models.Chunk) string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	return strings.Join(texts, " ")
}

// BuildMessages assembles [system(grounding)] + history + [user(query)].
// History is forwarded verbatim, roles included.
func BuildMessages(grounding string, history []models.Turn, query string) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, len(history)+2)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, fmt.Sprintf(models.SystemPromptTemplate, grounding)))
	for _, turn := range history {
		messages = append(messages, llms.TextParts(roleType(turn.Role), turn.Content))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, query))
	return messages
}

func roleType(role string) llms.ChatMessageType {
	switch role {
	case models.RoleSystem:
		return llms.ChatMessageTypeSystem
	case models.RoleUser:
		return llms.ChatMessageTypeHuman
	case models.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageType(role)
	}
}
