package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/shouni/go-redset-kit/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// opts はすべてのサブコマンドで共有するフラグの値なのだ。
var opts config.GenerateOptions

// needsAPIKey は Gemini API を呼ぶコマンドに付ける注釈なのだ。
const needsAPIKey = "needs-api-key"

var rootCmd = &cobra.Command{
	Use:   "redset",
	Short: "参照画像とトピックから、統一感のある画像セットを生成するのだ。",
	Long: `トピックと参照画像を記述したブリーフ（YAML）から、
コンセプト・プラン・画像生成・編集・zip 書き出しまでを実行するのだ。`,
	SilenceUsage:      true,
	PersistentPreRunE: preRunAppE,
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- 入力 ---
	rootCmd.PersistentFlags().StringVarP(&opts.BriefFile, "brief", "b", "", "ブリーフ（YAML）のパス（ローカル or gs://...）なのだ。")

	// --- 出力 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", "", "出力先ディレクトリ（ローカル or gs://...）なのだ（未指定なら OUTPUT_DIR）。")

	// --- ブリーフの上書き ---
	rootCmd.PersistentFlags().StringVarP(&opts.Archetype, "archetype", "a", "", "アーキタイプ（social / slides / comic）なのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.OutputLanguage, "language", "l", "", "画像内の文字に使う言語なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.AspectRatio, "aspect-ratio", "", "アスペクト比（例: 3:4）なのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", "", "テキスト生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", "", "画像生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageSize, "image-size", "", "画像サイズ（1K / 2K / 4K）なのだ。")

	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", config.DefaultLogLevel, "ログレベル（debug / info / warn / error）なのだ。")
}

// preRunAppE は、ロガーを設定し、API を呼ぶコマンドでは必須の環境変数をチェックするのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	setupLogger(opts.LogLevel)

	if cmd.Annotations[needsAPIKey] == "" {
		return nil
	}
	if strings.TrimSpace(os.Getenv("GEMINI_API_KEY")) == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}
	return nil
}

func setupLogger(level string) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		lv = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv})))
}

// loadConfig は環境変数の設定にフラグの値を重ねるのだ。
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	cfg.Apply(opts)
	return cfg
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	_ = godotenv.Load()

	addAppFlags(rootCmd)
	rootCmd.AddCommand(runCmd, planCmd, conceptCmd, rolesCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
