package bootstrap

import (
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	evaluatorDomain "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/evaluator"
	publisherv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/signal-publisher/v1"
	signalPublisher "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/publisher/signal"
	evaluatorUc "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/usecase/evaluator"
)

// Usecase is the usecase for the strategy engine.
type Usecase struct {
	EvaluatorUsecase evaluatorDomain.Usecase
	Publisher        publisherv1.SignalPublisher
}

// registerUsecase registers the usecase.
func (b *Bootstrap) registerUsecase() {
	if b.signalWriter != nil {
		b.Usecase.Publisher = signalPublisher.NewPublisher(b.signalWriter, b.Logger)
	} else {
		b.Usecase.Publisher = signalPublisher.Noop{}
	}

	b.Usecase.EvaluatorUsecase = evaluatorUc.NewUsecase(
		b.Strategies,
		b.Repository.TickRepository,
		b.Repository.SignalRepository,
		b.Usecase.Publisher,
		postgresql.NewTransaction(b.DB),
		b.Retry,
		b.Logger,
	)
}
