package workflow

import (
	"fmt"
	"io"
	"time"

	"github.com/shouni/go-redset-kit/pkg/domain"
	"github.com/shouni/go-redset-kit/pkg/publisher"
)

// Manifest は現在のブリーフと分析から書き出し用のメタデータを作ります。Items は書き出し時に埋まります。
func (c *Controller) Manifest() publisher.Manifest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return publisher.Manifest{
		Topic:          c.brief.Topic,
		Archetype:      c.brief.Archetype,
		OutputLanguage: c.brief.OutputLanguage,
		AspectRatio:    c.brief.AspectRatio,
		Analysis:       c.analysis.Clone(),
		ExportedAt:     time.Now(),
	}
}

// Export は完成済みの画像を zip として w に書き出し、書き出し工程へ進みます。
func (c *Controller) Export(w io.Writer) error {
	if c.archive == nil {
		return fmt.Errorf("書き出し先が設定されていません")
	}
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("%w: 一括生成中は書き出せません", domain.ErrStepOrder)
	}
	c.mu.Unlock()

	m := c.Manifest()
	if err := c.archive.Write(w, c.Images(), m); err != nil {
		return err
	}

	c.mu.Lock()
	c.step = StepExport
	c.mu.Unlock()
	return nil
}
