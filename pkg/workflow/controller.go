package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/shouni/go-redset-kit/pkg/catalog"
	"github.com/shouni/go-redset-kit/pkg/domain"
	"github.com/shouni/go-redset-kit/pkg/generator"
	"github.com/shouni/go-redset-kit/pkg/prompts"
	"github.com/shouni/go-redset-kit/pkg/session"
)

// Controller は1セッション分の制作状態（参照画像・コンセプト・プラン・生成画像）と工程の遷移を管理します。
// モデル呼び出しの間はロックを保持しないため、画像単位の再生成や編集は一括生成と並行して実行できます。
type Controller struct {
	gen     Generator
	archive Archiver
	sess    *session.Session

	mu        sync.Mutex
	step      Step
	brief     Brief
	archetype catalog.Archetype
	refs      []domain.ReferenceImage
	// planRefs はプラン生成時に送った参照画像で、以降の画像生成はこれを使います。
	planRefs     []domain.ReferenceImage
	conceptRefID string
	concept      *generator.ConceptResult
	analysis     *domain.PlanAnalysis
	plan         domain.Plan
	images       []domain.GeneratedImage
	started      map[string]bool
	running      bool
	// epoch はプランの作り直しやリセットのたびに進み、古い呼び出し結果の書き戻しを防ぎます。
	epoch uint64

	stop atomic.Bool
}

// NewController は Controller を初期化します。sess が nil なら新しいセッションを作ります。
func NewController(gen Generator, archive Archiver, sess *session.Session) *Controller {
	if sess == nil {
		sess = session.New()
	}
	return &Controller{
		gen:     gen,
		archive: archive,
		sess:    sess,
		step:    StepInput,
		started: make(map[string]bool),
	}
}

// Session は編集時に参照されるセッションを返します。
func (c *Controller) Session() *session.Session {
	return c.sess
}

// SetBrief はトピックと出力条件を設定します。一括生成中は変更できません。
func (c *Controller) SetBrief(b Brief) error {
	if strings.TrimSpace(b.Topic) == "" {
		return fmt.Errorf("トピックが空です")
	}
	a, err := catalog.Lookup(b.Archetype)
	if err != nil {
		return err
	}
	b.Archetype = a.Kind
	if b.AspectRatio == "" {
		b.AspectRatio = a.DefaultAspectRatio
	}
	if b.OutputLanguage == "" {
		b.OutputLanguage = prompts.DefaultOutputLanguage
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return fmt.Errorf("%w: 一括生成中はブリーフを変更できません", domain.ErrStepOrder)
	}
	c.brief = b
	c.archetype = a
	return nil
}

// Brief は現在のブリーフを返します。
func (c *Controller) Brief() Brief {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.brief
}

// AddReference は参照画像を末尾に追加し、そのコピーを返します。MIME タイプが空ならバイト列から推定します。
// プランができた後は参照画像を変更できません。
func (c *Controller) AddReference(data []byte, mimeType string, material, style bool) (domain.ReferenceImage, error) {
	if len(data) == 0 {
		return domain.ReferenceImage{}, fmt.Errorf("参照画像が空です")
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	ref := domain.NewReferenceImage(data, mimeType, material, style)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireNoPlanLocked(); err != nil {
		return domain.ReferenceImage{}, err
	}
	c.refs = append(c.refs, ref)
	return ref.Clone(), nil
}

// SetReferenceUsage は参照画像の使い道フラグを変更します。
func (c *Controller) SetReferenceUsage(id string, material, style bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireNoPlanLocked(); err != nil {
		return err
	}
	ref := domain.References(c.refs).FindByID(id)
	if ref == nil {
		return fmt.Errorf("%w: 参照画像 %q が見つかりません", domain.ErrInvalidIndex, id)
	}
	ref.UsableAsMaterial = material
	ref.UsableAsStyle = style
	return nil
}

// References は参照画像のコピーを現在の順序で返します。
func (c *Controller) References() []domain.ReferenceImage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.References(c.refs).Clone()
}

// GenerateConcepts はコンセプト候補を生成し、コンセプト工程へ進みます。
func (c *Controller) GenerateConcepts(ctx context.Context) (*generator.ConceptResult, error) {
	c.mu.Lock()
	if err := c.requireBriefLocked(); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	req := generator.ConceptRequest{
		Topic:       c.brief.Topic,
		References:  domain.References(c.refs).Clone(),
		Archetype:   c.archetype,
		AspectRatio: c.brief.AspectRatio,
	}
	c.mu.Unlock()

	res, err := c.gen.GenerateConcept(ctx, req)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.concept = res
	c.step = StepConcept
	return cloneConcept(res), nil
}

// Concept は直近のコンセプト生成結果を返します。まだなければ nil です。
func (c *Controller) Concept() *generator.ConceptResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneConcept(c.concept)
}

// ConfirmConcept は選んだ候補を参照画像の先頭に置いてプランを生成します。
// 候補が参照画像に加わるのはプラン生成に成功したときだけで、以前に確定した候補とは入れ替わります。
func (c *Controller) ConfirmConcept(ctx context.Context, candidateID string) error {
	c.mu.Lock()
	if c.concept == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: コンセプトが生成されていません", domain.ErrStepOrder)
	}
	chosen := domain.References(c.concept.Candidates).FindByID(candidateID)
	if chosen == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: コンセプト候補 %q が見つかりません", domain.ErrInvalidIndex, candidateID)
	}
	candidate := chosen.Clone()
	c.mu.Unlock()

	return c.runPlan(ctx, &candidate)
}

// UsePlanWithoutConcept はコンセプトを使わずにプランを生成します。
func (c *Controller) UsePlanWithoutConcept(ctx context.Context) error {
	c.mu.Lock()
	c.concept = nil
	c.mu.Unlock()
	return c.runPlan(ctx, nil)
}

// RegeneratePlan は現在の参照画像とブリーフでプランを作り直します。生成済みの画像は破棄されます。
func (c *Controller) RegeneratePlan(ctx context.Context) error {
	c.mu.Lock()
	hasPlan := len(c.plan) > 0
	c.mu.Unlock()
	if !hasPlan {
		return fmt.Errorf("%w: プランがまだありません", domain.ErrStepOrder)
	}
	return c.runPlan(ctx, nil)
}

// runPlan はプランを生成します。candidate があれば参照画像の先頭に置いたものを送り、成功時にだけ c.refs に反映します。
func (c *Controller) runPlan(ctx context.Context, candidate *domain.ReferenceImage) error {
	c.mu.Lock()
	if err := c.requireBriefLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("%w: 一括生成中はプランを作り直せません", domain.ErrStepOrder)
	}
	refs := domain.References(c.refs).Clone()
	if candidate != nil {
		refs = withConcept(refs, *candidate, c.conceptRefID)
	}
	req := generator.PlanRequest{
		Topic:          c.brief.Topic,
		References:     refs,
		Archetype:      c.archetype,
		OutputLanguage: c.brief.OutputLanguage,
		AspectRatio:    c.brief.AspectRatio,
	}
	if c.concept != nil {
		req.ArtDirection = c.concept.ArtDirection
	}
	c.mu.Unlock()

	res, err := c.gen.GeneratePlan(ctx, c.sess, req)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if candidate != nil {
		c.refs = withConcept(c.refs, *candidate, c.conceptRefID)
		c.conceptRefID = candidate.ID
	}
	c.planRefs = domain.References(req.References).Clone()
	c.analysis = res.Analysis
	c.plan = res.Plan
	c.images = nil
	c.started = make(map[string]bool)
	c.epoch++
	c.step = StepPlanReview
	slog.Info("プランを確定しました", "items", len(res.Plan))
	return nil
}

// UpdatePlanItem はプラン項目を部分更新します。その項目の生成が始まった後は domain.ErrItemLocked、
// 役割がカタログにない場合や表紙の位置が崩れる場合は domain.ErrInvalidPlanEdit です。
func (c *Controller) UpdatePlanItem(id string, upd PlanItemUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started[id] {
		return fmt.Errorf("%w: %s", domain.ErrItemLocked, id)
	}
	i := c.plan.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: プラン項目 %q が見つかりません", domain.ErrInvalidIndex, id)
	}
	if err := upd.validateRole(c.archetype, i, c.plan[i].Role); err != nil {
		return err
	}
	upd.apply(&c.plan[i])
	return nil
}

// MovePlanItem はプラン項目を並べ替え、Order を振り直します。生成開始後は並べ替えできません。
func (c *Controller) MovePlanItem(from, to int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running || len(c.started) > 0 {
		return fmt.Errorf("%w: 生成開始後は並べ替えできません", domain.ErrItemLocked)
	}
	moved, err := c.plan.Move(from, to)
	if err != nil {
		return err
	}
	c.plan = moved
	return nil
}

// Plan はプランのコピーを返します。
func (c *Controller) Plan() domain.Plan {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.plan.Clone()
}

// Analysis はプラン分析のコピーを返します。
func (c *Controller) Analysis() *domain.PlanAnalysis {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.analysis.Clone()
}

// Images は生成画像のコピーをプラン順で返します。
func (c *Controller) Images() []domain.GeneratedImage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.GeneratedImage, len(c.images))
	for i, img := range c.images {
		out[i] = img.Clone()
	}
	return out
}

// Step は現在の工程を返します。
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Reset は一括生成を止め、トピックと制作状態を破棄して入力工程に戻ります。
// アーキタイプと出力条件は次の制作でも使えるよう残します。
func (c *Controller) Reset() {
	c.stop.Store(true)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.brief.Topic = ""
	c.refs = nil
	c.planRefs = nil
	c.conceptRefID = ""
	c.concept = nil
	c.analysis = nil
	c.plan = nil
	c.images = nil
	c.started = make(map[string]bool)
	c.epoch++
	c.step = StepInput
}

func (c *Controller) requireBriefLocked() error {
	if strings.TrimSpace(c.brief.Topic) == "" {
		return fmt.Errorf("%w: ブリーフが設定されていません", domain.ErrStepOrder)
	}
	return nil
}

func (c *Controller) requireNoPlanLocked() error {
	if len(c.plan) > 0 {
		return fmt.Errorf("%w: プラン作成後は参照画像を変更できません", domain.ErrStepOrder)
	}
	return nil
}

// withConcept は candidate を先頭に置き、同じ候補と以前に確定した候補 prevID を除いた参照画像を返します。
func withConcept(refs []domain.ReferenceImage, candidate domain.ReferenceImage, prevID string) []domain.ReferenceImage {
	out := []domain.ReferenceImage{candidate.Clone()}
	for _, r := range refs {
		if r.ID == candidate.ID || (prevID != "" && r.ID == prevID) {
			continue
		}
		out = append(out, r.Clone())
	}
	return out
}

func cloneConcept(r *generator.ConceptResult) *generator.ConceptResult {
	if r == nil {
		return nil
	}
	c := *r
	c.Roles = append([]string(nil), r.Roles...)
	c.Candidates = domain.References(r.Candidates).Clone()
	return &c
}
