package testutil

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// Embedder maps known strings to fixed vectors. Any other text gets a
// deterministic vector derived from its hash.
type Embedder struct {
	Vectors map[string][]float32
	Err     error
}

func (e *Embedder) vector(text string) []float32 {
	if v, ok := e.Vectors[text]; ok {
		return v
	}
	h := fnv.New32a()
	h.Write([]byte(text))
	sum := h.Sum32()
	return []float32{0.05, 0.05, 1 + float32(sum%97)/97}
}

func (e *Embedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = e.vector(t)
	}
	return out, nil
}

func (e *Embedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	return e.vector(text), nil
}

// Completer streams Fragments through the streaming callback, then fails
// with Err if set. It records the messages of the last call.
type Completer struct {
	Fragments []string
	Err       error

	mu       sync.Mutex
	messages []llms.MessageContent
	calls    int
}

func (c *Completer) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	c.mu.Lock()
	c.messages = messages
	c.calls++
	c.mu.Unlock()

	opts := llms.CallOptions{}
	for _, o := range options {
		o(&opts)
	}
	if opts.StreamingFunc == nil {
		return nil, errors.New("streaming func not set")
	}

	var full string
	for _, f := range c.Fragments {
		if err := opts.StreamingFunc(ctx, []byte(f)); err != nil {
			return nil, err
		}
		full += f
	}
	if c.Err != nil {
		return nil, c.Err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: full}}}, nil
}

// Messages returns what the last GenerateContent call received
func (c *Completer) Messages() []llms.MessageContent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.messages
}

// Calls returns how many times GenerateContent ran
func (c *Completer) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
