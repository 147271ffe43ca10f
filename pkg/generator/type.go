package generator

import "time"

const (
	// DefaultTextModel は分析・プラン生成に使う既定のモデルです。
	DefaultTextModel = "gemini-3-pro-preview"
	// DefaultImageModel は画像生成・編集に使う既定のモデルです。
	DefaultImageModel = "gemini-3-pro-image-preview"

	// ImageSize1K は標準的な解像度の設定（1024x1024相当）です。
	ImageSize1K = "1K"
	// ImageSize2K は高解像度の設定（2048x2048相当）です。
	ImageSize2K = "2K"
	// ImageSize4K は超高解像度の設定（4096x4096相当）です。
	ImageSize4K = "4K"

	// DefaultPlanTemperature と DefaultPlanMaxOutputTokens はプラン生成呼び出しの既定値です。
	DefaultPlanTemperature     float32 = 1.0
	DefaultPlanMaxOutputTokens int32   = 8192

	// continuityAttempts は直前画像つきで試行する回数です。すべて失敗すると直前画像なしで1回だけ試行します。
	continuityAttempts = 3
	// retryBaseDelay は失敗した試行の後に待つ時間の単位です（2秒 × 試行回数）。
	retryBaseDelay = 2 * time.Second

	// conceptCandidates はコンセプト画像を並行生成する枚数です。
	conceptCandidates = 2

	jsonMIMEType = "application/json"
	maxLogText   = 5000
)
