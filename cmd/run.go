package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-redset-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// runCmd は、コンセプトから書き出しまでを通しで実行するのだ。
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "画像セットを生成して zip に書き出すのだ。",
	Long: `ブリーフを読み込み、（指定があれば）コンセプト候補を作ってから、
プラン生成・画像の順次生成・編集を行い、zip に書き出すのだ。`,
	Annotations: map[string]string{needsAPIKey: "true"},
	RunE:        runCommand,
}

func init() {
	runCmd.Flags().StringVar(&opts.ArchiveName, "archive-name", "", "zip のファイル名なのだ。")
	runCmd.Flags().BoolVar(&opts.Unpack, "unpack", false, "zip とは別に画像とプラン一覧も保存するのだ。")
	runCmd.Flags().IntVar(&opts.JPEGQuality, "jpeg-quality", 0, "書き出す JPEG の品質（1-100）なのだ。")
	runCmd.Flags().BoolVar(&opts.SkipConcept, "skip-concept", false, "ブリーフの指定に関わらずコンセプト工程を飛ばすのだ。")
	runCmd.Flags().IntVar(&opts.ConceptSelect, "concept-select", 0, "採用するコンセプト候補の番号（1 始まり）なのだ。")
}

func runCommand(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	slog.Info("画像セット生成パイプラインを起動するのだ！",
		"brief", opts.BriefFile,
		"text_model", cfg.GeminiModel,
		"image_model", cfg.GeminiImageModel,
		"output", cfg.OutputDir)

	res, err := pipeline.Execute(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！", "archive", res.ArchivePath, "images", len(res.ImagePaths))
	return nil
}
