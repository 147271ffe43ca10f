package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-redset-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// planCmd は、プラン（JSON）の生成のみを実行するのだ。
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "プラン（JSON）のみを生成して保存するのだ。",
	Long: `ブリーフを解析し、各画像の役割・構図・コピーを並べたプランを
JSON形式で出力するのだ。画像生成は行わないのだよ。`,
	Annotations: map[string]string{needsAPIKey: "true"},
	RunE:        planCommand,
}

func planCommand(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	// plan コマンドではコンセプト工程を使わないのだ
	cfg.Options.SkipConcept = true

	slog.Info("プラン生成モードを起動するのだ！", "brief", opts.BriefFile, "text_model", cfg.GeminiModel)

	path, err := pipeline.ExecutePlan(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("プラン生成中にエラーが発生したのだ: %w", err)
	}

	slog.Info("プランの生成が完了したのだ！", "output_file", path)
	return nil
}
