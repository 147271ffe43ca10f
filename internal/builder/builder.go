package builder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-redset-kit/internal/config"
	"github.com/shouni/go-redset-kit/pkg/generator"
	"github.com/shouni/go-redset-kit/pkg/publisher"
	"github.com/shouni/go-redset-kit/pkg/session"

	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// BuildAppContext は Gemini クライアントと GCS/ローカル兼用の入出力から Publisher までを組み立てます。
func BuildAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	ai, err := generator.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}

	gcsFactory, err := gcsfactory.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}
	reader, err := gcsFactory.InputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.OutputWriter()
	if err != nil {
		return nil, err
	}
	return BuildAppContextWith(ai, cfg, reader, writer)
}

// BuildAppContextWith は与えられた ContentGenerator と入出力で AppContext を組み立てます。
func BuildAppContextWith(ai generator.ContentGenerator, cfg *config.Config, reader remoteio.InputReader, writer remoteio.OutputWriter) (*AppContext, error) {
	gen, err := InitializeGenerator(ai, cfg)
	if err != nil {
		return nil, err
	}

	archive := publisher.NewArchiveWriter(cfg.Options.JPEGQuality)
	pub := publisher.NewPublisher(writer, archive)
	sessions := session.NewStore(cfg.SessionTTL)

	appCtx := NewAppContext(cfg, gen, reader, writer, sessions, archive, pub)
	return &appCtx, nil
}

// InitializeGenerator は設定値から generator.Client を初期化します。
func InitializeGenerator(ai generator.ContentGenerator, cfg *config.Config) (*generator.Client, error) {
	gen, err := generator.NewClient(ai, generator.Config{
		TextModel:    cfg.GeminiModel,
		ImageModel:   cfg.GeminiImageModel,
		ImageSize:    cfg.ImageSize,
		RateInterval: cfg.RateInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("生成クライアントの初期化に失敗しました: %w", err)
	}

	slog.Debug("生成クライアントを初期化しました",
		"text_model", cfg.GeminiModel,
		"image_model", cfg.GeminiImageModel,
		"image_size", cfg.ImageSize,
		"rate_interval", cfg.RateInterval)
	return gen, nil
}
