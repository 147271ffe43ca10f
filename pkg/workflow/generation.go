package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-redset-kit/pkg/domain"
	"github.com/shouni/go-redset-kit/pkg/generator"
)

// RunGeneration はプランの全項目を先頭から順に1件ずつ生成します。
// 各項目は直前の項目の完成画像を連続性の参照として受け取ります。失敗した項目は pending のまま残して先に進み、
// 最後にすべての失敗をまとめたエラーを返します。Stop が呼ばれると次の項目に進む前に終了します。
func (c *Controller) RunGeneration(ctx context.Context, onProgress func(Progress)) error {
	c.mu.Lock()
	if len(c.plan) == 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: プランがありません", domain.ErrStepOrder)
	}
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("%w: 一括生成はすでに実行中です", domain.ErrStepOrder)
	}
	c.running = true
	c.stop.Store(false)
	c.step = StepGenerating
	if len(c.images) != len(c.plan) {
		c.images = make([]domain.GeneratedImage, len(c.plan))
		for i, item := range c.plan {
			c.images[i] = domain.NewPendingImage(item)
		}
	}
	epoch := c.epoch
	total := len(c.plan)
	c.mu.Unlock()

	var errs []error
	for i := 0; i < total; i++ {
		if c.stop.Load() {
			slog.Info("一括生成を停止しました", "done", i, "total", total)
			break
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		req, ok := c.beginItem(epoch, i)
		if !ok {
			continue
		}

		res, err := c.gen.GenerateImageFromPlan(ctx, req)
		img, current := c.finishItem(epoch, i, res, err, nil)
		if !current {
			break
		}
		if err != nil {
			slog.Error("画像生成に失敗しました", "item", i+1, "role", req.Item.Role, "error", err)
			errs = append(errs, fmt.Errorf("item %d (%s): %w", i+1, req.Item.Role, err))
		}
		if onProgress != nil {
			onProgress(Progress{Index: i + 1, Total: total, Image: img, Err: err})
		}
	}

	c.mu.Lock()
	c.running = false
	if c.epoch == epoch {
		c.step = StepEditor
	}
	c.mu.Unlock()

	return errors.Join(errs...)
}

// Stop は一括生成に、現在の項目の後で停止するよう指示します。
func (c *Controller) Stop() {
	c.stop.Store(true)
}

// RegenerateImage は index 番目（0 始まり）の画像を1枚だけ作り直します。
// 直前の項目の現在の画像を連続性の参照に使い、成功すると編集履歴は空になります。失敗した場合は元の状態に戻します。
func (c *Controller) RegenerateImage(ctx context.Context, index int) error {
	c.mu.Lock()
	if index < 0 || index >= len(c.images) {
		c.mu.Unlock()
		return fmt.Errorf("%w: image %d (len=%d)", domain.ErrInvalidIndex, index, len(c.images))
	}
	epoch := c.epoch
	prior := c.images[index].Clone()
	c.mu.Unlock()

	req, ok := c.beginItem(epoch, index)
	if !ok {
		return fmt.Errorf("%w: image %d は生成中です", domain.ErrStepOrder, index)
	}

	res, err := c.gen.GenerateImageFromPlan(ctx, req)
	c.finishItem(epoch, index, res, err, &prior)
	return err
}

// EditImage は index 番目（0 始まり）の完成画像に編集指示を適用します。
// 呼び出し中は generating 状態とし、失敗した場合は編集前の状態に戻します。
func (c *Controller) EditImage(ctx context.Context, index int, instruction string) error {
	if strings.TrimSpace(instruction) == "" {
		return fmt.Errorf("%w: 編集指示が空です", domain.ErrEditFailed)
	}

	c.mu.Lock()
	if index < 0 || index >= len(c.images) {
		c.mu.Unlock()
		return fmt.Errorf("%w: image %d (len=%d)", domain.ErrInvalidIndex, index, len(c.images))
	}
	target := c.images[index]
	if target.Status == domain.StatusGenerating {
		c.mu.Unlock()
		return fmt.Errorf("%w: image %d は生成中です", domain.ErrStepOrder, index)
	}
	if !target.HasData() {
		c.mu.Unlock()
		return fmt.Errorf("%w: image %d はまだ生成されていません", domain.ErrStepOrder, index)
	}
	epoch := c.epoch
	prior := target.Clone()
	c.images[index].Status = domain.StatusGenerating
	c.mu.Unlock()

	res, err := c.gen.EditImage(ctx, c.sess, prior.Data, prior.MIMEType, instruction)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch || index >= len(c.images) || c.images[index].ID != prior.ID {
		return err
	}
	if err != nil {
		c.images[index] = prior
		return err
	}
	edited := prior.Clone()
	edited.ApplyEdit(res.Data, res.MIMEType, instruction)
	c.images[index] = edited
	return nil
}

// beginItem は index 番目の項目を generating にし、画像生成リクエストを組み立てます。
// すでに generating の項目、または古い世代の呼び出しなら false を返します。
func (c *Controller) beginItem(epoch uint64, index int) (generator.ImageRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch || index >= len(c.images) || c.images[index].Status == domain.StatusGenerating {
		return generator.ImageRequest{}, false
	}

	item := c.plan[index].Clone()
	c.images[index].PlanItem = item.Clone()
	c.started[item.ID] = true
	c.images[index].Status = domain.StatusGenerating

	req := generator.ImageRequest{
		Item:           item,
		References:     domain.References(c.planRefs).Clone(),
		Analysis:       c.analysis.Clone(),
		Archetype:      c.archetype,
		OutputLanguage: c.brief.OutputLanguage,
		AspectRatio:    c.brief.AspectRatio,
	}
	if index > 0 && c.images[index-1].HasData() {
		prev := c.images[index-1]
		req.PreviousImage = append([]byte(nil), prev.Data...)
		req.PreviousMIMEType = prev.MIMEType
	}
	return req, true
}

// finishItem は呼び出し結果を index 番目に書き戻し、書き戻した画像と、世代が変わっていないかを返します。
// 失敗時、prior があればその状態に、なければ pending に戻します。
func (c *Controller) finishItem(epoch uint64, index int, res *generator.ImageResult, err error, prior *domain.GeneratedImage) (domain.GeneratedImage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch || index >= len(c.images) {
		return domain.GeneratedImage{}, false
	}

	cur := c.images[index]
	switch {
	case err == nil:
		c.images[index] = domain.NewCompletedImage(cur.PlanItem, res.Data, res.MIMEType)
	case prior != nil:
		c.images[index] = prior.Clone()
	default:
		cur.Status = domain.StatusPending
		c.images[index] = cur
	}
	return c.images[index].Clone(), true
}
