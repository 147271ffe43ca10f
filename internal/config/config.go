package config

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/shouni/go-redset-kit/pkg/generator"
	"github.com/shouni/go-redset-kit/pkg/publisher"
	"github.com/shouni/go-redset-kit/pkg/session"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultOutputDir    = "output"
	DefaultRateInterval = 2 * time.Second
	DefaultLogLevel     = "info"
)

// Config は環境変数から読み込むアプリケーション全体の設定なのだ。
type Config struct {
	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string
	ImageSize        string
	RateInterval     time.Duration
	OutputDir        string
	SessionTTL       time.Duration

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	return &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", generator.DefaultTextModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", generator.DefaultImageModel),
		ImageSize:        envutil.GetEnv("IMAGE_SIZE", generator.ImageSize1K),
		RateInterval:     envDuration("RATE_INTERVAL", DefaultRateInterval),
		OutputDir:        envutil.GetEnv("OUTPUT_DIR", DefaultOutputDir),
		SessionTTL:       envDuration("SESSION_TTL", session.DefaultTTL),
	}
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	BriefFile string // --brief

	// 出力関連
	OutputDir   string // --output-dir
	ArchiveName string // --archive-name
	Unpack      bool   // --unpack
	JPEGQuality int    // --jpeg-quality

	// ブリーフの上書き
	Archetype      string // --archetype
	OutputLanguage string // --language
	AspectRatio    string // --aspect-ratio
	SkipConcept    bool   // --skip-concept
	ConceptSelect  int    // --concept-select

	// AI挙動設定
	AIModel    string // --model
	ImageModel string // --image-model
	ImageSize  string // --image-size

	LogLevel string // --log-level
}

// Apply は空でないフラグ値で環境変数由来の設定を上書きするのだ。
func (c *Config) Apply(opts GenerateOptions) {
	if opts.AIModel != "" {
		c.GeminiModel = opts.AIModel
	}
	if opts.ImageModel != "" {
		c.GeminiImageModel = opts.ImageModel
	}
	if opts.ImageSize != "" {
		c.ImageSize = opts.ImageSize
	}
	if opts.OutputDir != "" {
		c.OutputDir = opts.OutputDir
	}
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = publisher.DefaultJPEGQuality
	}
	c.Options = opts
}

// envDuration は "90s" 形式か秒数の整数を受け付けるのだ。読めない値は既定値に戻すのだ。
func envDuration(key string, def time.Duration) time.Duration {
	raw := envutil.GetEnv(key, "")
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if sec, err := strconv.Atoi(raw); err == nil {
		return time.Duration(sec) * time.Second
	}
	slog.Warn("環境変数の値を解釈できないので既定値を使うのだ", "key", key, "value", raw, "default", def)
	return def
}
