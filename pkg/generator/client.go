package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/go-redset-kit/pkg/domain"
	"github.com/shouni/go-redset-kit/pkg/prompts"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Config は Client の設定です。ゼロ値の項目には既定値が入ります。
type Config struct {
	TextModel           string
	ImageModel          string
	ImageSize           string
	PlanTemperature     float32
	PlanMaxOutputTokens int32

	// RateInterval が正で Limiter が nil のとき、この間隔のリミッターを作ります。
	RateInterval time.Duration
	Limiter      *rate.Limiter

	// Sleep はリトライ間の待機です。nil なら ctx を尊重する time.Timer 待機を使います。
	Sleep func(ctx context.Context, d time.Duration) error
	// NewID は PlanItem とコンセプト候補の ID 採番です。nil なら UUID を使います。
	NewID func() string
}

// Client は分析・プラン・画像・編集の各呼び出しと、その後処理を担当します。
type Client struct {
	ai       ContentGenerator
	composer *prompts.Composer
	cfg      Config
}

// NewClient は Client を初期化します。
func NewClient(ai ContentGenerator, cfg Config) (*Client, error) {
	if ai == nil {
		return nil, fmt.Errorf("ai (ContentGenerator) is required")
	}
	composer, err := prompts.NewComposer()
	if err != nil {
		return nil, fmt.Errorf("プロンプトコンポーザーの初期化に失敗しました: %w", err)
	}

	if cfg.TextModel == "" {
		cfg.TextModel = DefaultTextModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultImageModel
	}
	if cfg.ImageSize == "" {
		cfg.ImageSize = ImageSize1K
	}
	if cfg.PlanTemperature == 0 {
		cfg.PlanTemperature = DefaultPlanTemperature
	}
	if cfg.PlanMaxOutputTokens == 0 {
		cfg.PlanMaxOutputTokens = DefaultPlanMaxOutputTokens
	}
	if cfg.Limiter == nil && cfg.RateInterval > 0 {
		cfg.Limiter = rate.NewLimiter(rate.Every(cfg.RateInterval), 2)
	}
	if cfg.Sleep == nil {
		cfg.Sleep = sleepContext
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}

	return &Client{ai: ai, composer: composer, cfg: cfg}, nil
}

// NewGeminiClient は API キーから Gemini API 用の ContentGenerator を作ります。
// キーが空の場合は呼び出しを行わずに domain.ErrMissingAPIKey を返します。
func NewGeminiClient(ctx context.Context, apiKey string) (ContentGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, domain.ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Gemini クライアントの初期化に失敗しました: %w", err)
	}
	return client.Models, nil
}

// ImageResult は生成または編集された画像1枚です。
type ImageResult struct {
	Data     []byte
	MIMEType string
}

func (c *Client) wait(ctx context.Context) error {
	if c.cfg.Limiter == nil {
		return nil
	}
	if err := c.cfg.Limiter.Wait(ctx); err != nil {
		return fmt.Errorf("リミッター待機中にエラーが発生しました: %w", err)
	}
	return nil
}

// generateJSON はスキーマ付きのテキスト呼び出しを行い、応答テキストを返します。
func (c *Client) generateJSON(ctx context.Context, label string, p *prompts.Prompt, temperature *float32, maxTokens int32) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: jsonMIMEType,
		ResponseSchema:   p.Schema,
		Temperature:      temperature,
		MaxOutputTokens:  maxTokens,
	}
	if p.System != "" {
		config.SystemInstruction = genai.NewContentFromText(p.System, genai.RoleUser)
	}

	logParts(ctx, label, c.cfg.TextModel, p.Parts)
	resp, err := c.ai.GenerateContent(ctx, c.cfg.TextModel, []*genai.Content{genai.NewContentFromParts(p.Parts, genai.RoleUser)}, config)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", fmt.Errorf("empty response")
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty text in response")
	}
	return text, nil
}

// generateImage は画像生成呼び出しを1回だけ行います。画像が含まれなければ domain.ErrNoImageData です。
func (c *Client) generateImage(ctx context.Context, label string, p *prompts.Prompt, aspectRatio string) (*ImageResult, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
		ImageConfig: &genai.ImageConfig{
			AspectRatio: aspectRatio,
			ImageSize:   c.cfg.ImageSize,
		},
	}
	if p.System != "" {
		config.SystemInstruction = genai.NewContentFromText(p.System, genai.RoleUser)
	}

	logParts(ctx, label, c.cfg.ImageModel, p.Parts)
	resp, err := c.ai.GenerateContent(ctx, c.cfg.ImageModel, []*genai.Content{genai.NewContentFromParts(p.Parts, genai.RoleUser)}, config)
	if err != nil {
		return nil, err
	}
	return extractImage(resp)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// logParts は画像をサイズだけに要約し、長いテキストを切り詰めてリクエストを記録します。
func logParts(ctx context.Context, label, model string, parts []*genai.Part) {
	if !slog.Default().Enabled(ctx, slog.LevelDebug) {
		return
	}
	slog.DebugContext(ctx, "モデル呼び出し", "call", label, "model", model, "parts", redactParts(parts))
}

func redactParts(parts []*genai.Part) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		switch {
		case p == nil:
			continue
		case p.InlineData != nil:
			out = append(out, fmt.Sprintf("[image %s, %d bytes]", p.InlineData.MIMEType, len(p.InlineData.Data)))
		default:
			out = append(out, truncate(p.Text, maxLogText))
		}
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "...(truncated)"
}
