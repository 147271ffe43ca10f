package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-redset-kit/internal/brief"
	"github.com/shouni/go-redset-kit/internal/builder"
	"github.com/shouni/go-redset-kit/internal/config"
	"github.com/shouni/go-redset-kit/pkg/catalog"
	"github.com/shouni/go-redset-kit/pkg/domain"
	"github.com/shouni/go-redset-kit/pkg/generator"
	"github.com/shouni/go-redset-kit/pkg/publisher"
	"github.com/shouni/go-redset-kit/pkg/workflow"
)

const (
	// PlanJSONName は plan コマンドが保存するプランのファイル名なのだ。
	PlanJSONName = "plan.json"
	// ConceptJSONName は concept コマンドが保存する分析結果のファイル名なのだ。
	ConceptJSONName = "concept.json"
)

// Execute はブリーフを読み込み、コンセプトからプラン・画像生成・編集・書き出しまでを通しで実行するのだ。
func Execute(ctx context.Context, cfg *config.Config) (publisher.PublishResult, error) {
	appCtx, b, err := setup(ctx, cfg)
	if err != nil {
		return publisher.PublishResult{}, err
	}
	return Run(ctx, appCtx, b)
}

// ExecutePlan はプランまでを作って保存するのだ。画像は生成しないのだ。
func ExecutePlan(ctx context.Context, cfg *config.Config) (string, error) {
	appCtx, b, err := setup(ctx, cfg)
	if err != nil {
		return "", err
	}
	return RunPlan(ctx, appCtx, b)
}

// ExecuteConcept はコンセプト候補を生成して保存するのだ。
func ExecuteConcept(ctx context.Context, cfg *config.Config) ([]string, error) {
	appCtx, b, err := setup(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return RunConcept(ctx, appCtx, b)
}

// Run は組み立て済みの AppContext で通しの工程を実行するのだ。
// 一部の画像の生成や編集に失敗しても、完成した画像があれば書き出すのだ。
func Run(ctx context.Context, appCtx *builder.AppContext, b *brief.Brief) (publisher.PublishResult, error) {
	ctrl, err := prepare(ctx, appCtx, b)
	if err != nil {
		return publisher.PublishResult{}, err
	}
	defer appCtx.Sessions.Delete(ctrl.Session().ID())

	if err := runPlanStep(ctx, ctrl, b); err != nil {
		return publisher.PublishResult{}, err
	}

	slog.Info("Phase 2: 画像生成を開始するのだ...", "items", len(ctrl.Plan()))
	genErr := ctrl.RunGeneration(ctx, func(p workflow.Progress) {
		if p.Err != nil {
			slog.Warn("画像を生成できなかったのだ", "index", p.Index, "total", p.Total, "role", p.Image.PlanItem.Role)
			return
		}
		slog.Info("画像を生成したのだ", "index", p.Index, "total", p.Total, "role", p.Image.PlanItem.Role)
	})
	if genErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return publisher.PublishResult{}, fmt.Errorf("画像生成が中断されたのだ: %w", ctxErr)
		}
		slog.Warn("一部の画像を生成できなかったのだ。完成した画像だけで続けるのだ", "error", genErr)
	}

	applyEdits(ctx, ctrl, b.Edits)

	slog.Info("Phase 3: 書き出しを開始するのだ...")
	opts := publisher.Options{
		OutputDir:   appCtx.Config.OutputDir,
		ArchiveName: appCtx.Options.ArchiveName,
		Unpack:      appCtx.Options.Unpack,
	}
	res, err := appCtx.Publisher.Publish(ctx, ctrl.Images(), ctrl.Manifest(), opts)
	if err != nil {
		return res, fmt.Errorf("書き出しに失敗したのだ: %w", errors.Join(err, genErr))
	}
	return res, nil
}

// RunPlan はプランを作り、分析とプランを JSON で保存したパスを返すのだ。
func RunPlan(ctx context.Context, appCtx *builder.AppContext, b *brief.Brief) (string, error) {
	ctrl, err := prepare(ctx, appCtx, b)
	if err != nil {
		return "", err
	}
	defer appCtx.Sessions.Delete(ctrl.Session().ID())

	if err := runPlanStep(ctx, ctrl, b); err != nil {
		return "", err
	}

	out := struct {
		Topic    string               `json:"topic"`
		Analysis *domain.PlanAnalysis `json:"analysis"`
		Plan     domain.Plan          `json:"plan"`
	}{Topic: b.Topic, Analysis: ctrl.Analysis(), Plan: ctrl.Plan()}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("プランの JSON 化に失敗したのだ: %w", err)
	}
	assets := publisher.NewAssetManager(appCtx.Writer, appCtx.Config.OutputDir)
	return assets.Save(ctx, PlanJSONName, data, "application/json")
}

// RunConcept はコンセプト候補の画像と分析結果を保存し、保存したパスを返すのだ。
func RunConcept(ctx context.Context, appCtx *builder.AppContext, b *brief.Brief) ([]string, error) {
	ctrl, err := prepare(ctx, appCtx, b)
	if err != nil {
		return nil, err
	}
	defer appCtx.Sessions.Delete(ctrl.Session().ID())

	res, err := ctrl.GenerateConcepts(ctx)
	if err != nil {
		return nil, err
	}

	assets := publisher.NewAssetManager(appCtx.Writer, appCtx.Config.OutputDir)
	var paths []string
	for i, cand := range res.Candidates {
		p, err := assets.Save(ctx, fmt.Sprintf("concept_%02d%s", i+1, extension(cand.MIMEType)), cand.Data, cand.MIMEType)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}

	summary := struct {
		Analysis     string   `json:"analysis"`
		Roles        []string `json:"roles"`
		ArtDirection string   `json:"art_direction,omitempty"`
		Candidates   []string `json:"candidates"`
	}{Analysis: res.Analysis, Roles: res.Roles, ArtDirection: res.ArtDirection, Candidates: paths}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return paths, fmt.Errorf("コンセプトの JSON 化に失敗したのだ: %w", err)
	}
	p, err := assets.Save(ctx, ConceptJSONName, data, "application/json")
	if err != nil {
		return paths, err
	}
	return append(paths, p), nil
}

// ApplyOverrides は CLI フラグで指定された値でブリーフを上書きするのだ。
func ApplyOverrides(b *brief.Brief, opts config.GenerateOptions) error {
	if opts.Archetype != "" {
		b.Archetype = catalog.Kind(opts.Archetype)
	}
	if opts.OutputLanguage != "" {
		b.Language = opts.OutputLanguage
	}
	if opts.AspectRatio != "" {
		b.AspectRatio = opts.AspectRatio
	}
	if opts.SkipConcept {
		b.Concept.Enabled = false
	}
	if opts.ConceptSelect > 0 {
		b.Concept.Select = opts.ConceptSelect
	}
	return b.Validate()
}

func setup(ctx context.Context, cfg *config.Config) (*builder.AppContext, *brief.Brief, error) {
	if cfg.Options.BriefFile == "" {
		return nil, nil, fmt.Errorf("ブリーフファイル（--brief）を指定してほしいのだ")
	}
	appCtx, err := builder.BuildAppContext(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	b, err := brief.Load(ctx, appCtx.Reader, cfg.Options.BriefFile)
	if err != nil {
		return nil, nil, err
	}
	if err := ApplyOverrides(b, cfg.Options); err != nil {
		return nil, nil, err
	}
	return appCtx, b, nil
}

// prepare は新しいセッションの Controller にブリーフと参照画像を登録するのだ。
func prepare(ctx context.Context, appCtx *builder.AppContext, b *brief.Brief) (*workflow.Controller, error) {
	ctrl := appCtx.NewController()
	err := ctrl.SetBrief(workflow.Brief{
		Topic:          b.Topic,
		Archetype:      b.Archetype,
		OutputLanguage: b.Language,
		AspectRatio:    b.AspectRatio,
	})
	if err != nil {
		return nil, err
	}

	refs, err := b.LoadReferences(ctx, appCtx.Reader)
	if err != nil {
		return nil, err
	}
	for _, r := range refs {
		if _, err := ctrl.AddReference(r.Data, r.MIMEType, r.Material, r.Style); err != nil {
			return nil, fmt.Errorf("参照画像 '%s' の登録に失敗したのだ: %w", r.Path, err)
		}
	}
	slog.Info("ブリーフを読み込んだのだ", "topic", b.Topic, "archetype", b.Archetype, "references", len(refs))
	return ctrl, nil
}

// runPlanStep はブリーフの指定に従い、コンセプトを経由するか直接プランを作るのだ。
func runPlanStep(ctx context.Context, ctrl *workflow.Controller, b *brief.Brief) error {
	if !b.Concept.Enabled {
		slog.Info("Phase 1: プランを生成するのだ...")
		return ctrl.UsePlanWithoutConcept(ctx)
	}

	slog.Info("Phase 0: コンセプト候補を生成するのだ...")
	res, err := ctrl.GenerateConcepts(ctx)
	if err != nil {
		return err
	}
	chosen, err := pickCandidate(res, b.ConceptIndex())
	if err != nil {
		return err
	}
	slog.Info("Phase 1: コンセプトを確定してプランを生成するのだ...", "candidate", chosen)
	return ctrl.ConfirmConcept(ctx, chosen)
}

func pickCandidate(res *generator.ConceptResult, index int) (string, error) {
	if index < 0 || index >= len(res.Candidates) {
		return "", fmt.Errorf("%w: コンセプト候補 %d（全 %d 件）", domain.ErrInvalidIndex, index+1, len(res.Candidates))
	}
	return res.Candidates[index].ID, nil
}

// applyEdits は Order で指定された画像に編集を順に適用するのだ。失敗しても元の画像は残るのだ。
func applyEdits(ctx context.Context, ctrl *workflow.Controller, edits []brief.Edit) {
	for _, e := range edits {
		index := -1
		for i, img := range ctrl.Images() {
			if img.PlanItem.Order == e.Order {
				index = i
				break
			}
		}
		if index < 0 {
			slog.Warn("編集対象の画像が見つからないのだ", "order", e.Order)
			continue
		}
		if err := ctrl.EditImage(ctx, index, e.Instruction); err != nil {
			slog.Warn("編集に失敗したので元の画像のままにするのだ", "order", e.Order, "error", err)
			continue
		}
		slog.Info("画像を編集したのだ", "order", e.Order, "instruction", e.Instruction)
	}
}

func extension(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
