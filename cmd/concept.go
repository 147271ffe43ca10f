package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-redset-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// conceptCmd は、コンセプト候補の画像と分析だけを生成するのだ。
var conceptCmd = &cobra.Command{
	Use:   "concept",
	Short: "コンセプト候補の画像を生成して保存するのだ。",
	Long: `参照画像とトピックを融合したコンセプト画像を2枚生成するのだ。
気に入った候補は --concept-select で run に渡すか、参照画像としてブリーフに加えるのだよ。`,
	Annotations: map[string]string{needsAPIKey: "true"},
	RunE:        conceptCommand,
}

func conceptCommand(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	slog.Info("コンセプト生成モードを起動するのだ！", "brief", opts.BriefFile, "image_model", cfg.GeminiImageModel)

	paths, err := pipeline.ExecuteConcept(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("コンセプト生成中にエラーが発生したのだ: %w", err)
	}

	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
