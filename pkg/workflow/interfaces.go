package workflow

import (
	"context"
	"io"

	"github.com/shouni/go-redset-kit/pkg/domain"
	"github.com/shouni/go-redset-kit/pkg/generator"
	"github.com/shouni/go-redset-kit/pkg/publisher"
	"github.com/shouni/go-redset-kit/pkg/session"
)

// Generator はコントローラーが利用する生成呼び出しの契約です。*generator.Client がこれを満たします。
type Generator interface {
	GenerateConcept(ctx context.Context, req generator.ConceptRequest) (*generator.ConceptResult, error)
	GeneratePlan(ctx context.Context, sess *session.Session, req generator.PlanRequest) (*generator.PlanResult, error)
	GenerateImageFromPlan(ctx context.Context, req generator.ImageRequest) (*generator.ImageResult, error)
	EditImage(ctx context.Context, sess *session.Session, image []byte, mimeType, instruction string) (*generator.ImageResult, error)
}

// Archiver は書き出しの契約です。*publisher.ArchiveWriter がこれを満たします。
type Archiver interface {
	Write(w io.Writer, images []domain.GeneratedImage, m publisher.Manifest) error
}

var (
	_ Generator = (*generator.Client)(nil)
	_ Archiver  = (*publisher.ArchiveWriter)(nil)
)
