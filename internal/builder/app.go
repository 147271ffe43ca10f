package builder

import (
	"github.com/shouni/go-redset-kit/internal/config"
	"github.com/shouni/go-redset-kit/pkg/generator"
	"github.com/shouni/go-redset-kit/pkg/publisher"
	"github.com/shouni/go-redset-kit/pkg/session"
	"github.com/shouni/go-redset-kit/pkg/workflow"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各フローに渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config    *config.Config           // Configは、環境変数とフラグから組み立てた設定です。
	Options   config.GenerateOptions   // Optionsは、コマンドラインから渡された実行時の設定です。
	Generator *generator.Client        // Generatorは、分析・プラン・画像・編集の呼び出しを担当します。
	Reader    remoteio.InputReader     // Readerは、ブリーフと参照画像の読み込みに使用する入力元です。
	Writer    remoteio.OutputWriter    // Writerは、生成された内容を保存するための出力先です。
	Sessions  *session.Store           // Sessionsは、編集時に参照するセッションの保管庫です。
	Archive   *publisher.ArchiveWriter // Archiveは、zip への書き出しを担当します。
	Publisher *publisher.Publisher     // Publisherは、書き出し結果を出力先へ保存します。
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	gen *generator.Client,
	reader remoteio.InputReader,
	writer remoteio.OutputWriter,
	sessions *session.Store,
	archive *publisher.ArchiveWriter,
	pub *publisher.Publisher,
) AppContext {
	return AppContext{
		Config:    cfg,
		Options:   cfg.Options,
		Generator: gen,
		Reader:    reader,
		Writer:    writer,
		Sessions:  sessions,
		Archive:   archive,
		Publisher: pub,
	}
}

// NewController は新しいセッションを払い出し、それに紐づいた Controller を作ります。
func (a *AppContext) NewController() *workflow.Controller {
	return workflow.NewController(a.Generator, a.Archive, a.Sessions.New())
}
