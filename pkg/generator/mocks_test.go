package generator

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// --- Mocks ---

type recordedCall struct {
	Model  string
	Parts  []*genai.Part
	Config *genai.GenerateContentConfig
}

// hasImage は呼び出しに指定のバイト列の画像パートが含まれるかを返します。
func (c recordedCall) hasImage(data string) bool {
	for _, p := range c.Parts {
		if p.InlineData != nil && string(p.InlineData.Data) == data {
			return true
		}
	}
	return false
}

type mockAI struct {
	GenerateContentFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

	mu    sync.Mutex
	calls []recordedCall
}

func (m *mockAI) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.mu.Lock()
	var parts []*genai.Part
	for _, c := range contents {
		parts = append(parts, c.Parts...)
	}
	m.calls = append(m.calls, recordedCall{Model: model, Parts: parts, Config: config})
	m.mu.Unlock()

	if m.GenerateContentFunc == nil {
		return nil, fmt.Errorf("GenerateContentFunc is not set")
	}
	return m.GenerateContentFunc(ctx, model, contents, config)
}

func (m *mockAI) Calls() []recordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedCall(nil), m.calls...)
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{{Text: text}}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func imageResponse(data, mimeType string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "here you go"},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: []byte(data)}},
			}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func noImageResponse(reason genai.FinishReason) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{{Text: "I cannot draw that"}}},
			FinishReason: reason,
		}},
	}
}

// sleepRecorder は待機時間を記録するだけで実際には待ちません。
type sleepRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *sleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.delays = append(s.delays, d)
	s.mu.Unlock()
	return ctx.Err()
}

func newTestClient(t *testing.T, ai *mockAI) (*Client, *sleepRecorder) {
	t.Helper()
	sleeper := &sleepRecorder{}
	var mu sync.Mutex
	seq := 0
	c, err := NewClient(ai, Config{
		Sleep: sleeper.Sleep,
		NewID: func() string {
			mu.Lock()
			defer mu.Unlock()
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
	})
	require.NoError(t, err)
	return c, sleeper
}
