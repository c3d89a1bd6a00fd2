package messages

import (
	"context"

	"github.com/NeilDarach/msg-q/internal/queue"
	"github.com/NeilDarach/msg-q/internal/runtime"
	logpkg "github.com/NeilDarach/msg-q/pkg/log"
)

// Service unites store operations behind one contract consumed by the
// transport adapters.
type Service struct {
	rt     *runtime.Runtime
	logger logpkg.Logger
}

// New creates a messages service with a default logger.
func New(rt *runtime.Runtime) *Service {
	logger := logpkg.NewLogger(logpkg.WithLevel(logpkg.InfoLevel))
	return NewWithLogger(rt, logger.WithComponent("messages"))
}

// NewWithLogger creates a messages service with a custom logger.
func NewWithLogger(rt *runtime.Runtime, logger logpkg.Logger) *Service {
	if logger == nil {
		logger = logpkg.NewLogger(logpkg.WithLevel(logpkg.InfoLevel)).WithComponent("messages")
	}
	return &Service{rt: rt, logger: logger}
}

// CreateMessage appends a new message to the named queue.
func (s *Service) CreateMessage(_ context.Context, name queue.QueueName, req queue.CreateMessageRequest) (queue.Message, error) {
	msg, err := s.rt.Store().CreateMessage(name, req)
	if err != nil {
		s.logger.Error("create message failed",
			logpkg.Str("queue", name.String()),
			logpkg.Err(err),
		)
		return queue.Message{}, err
	}
	s.logger.Debug("created message",
		logpkg.Str("queue", name.String()),
		logpkg.Str("id", msg.ID.String()),
		logpkg.Uint64("position", msg.Position),
	)
	return msg, nil
}

// Select runs one retrieval action against the store. It subsumes peek,
// take, lease, ack, and release via the options' action field.
func (s *Service) Select(_ context.Context, opts queue.SelectOptions) (queue.Message, error) {
	msg, err := s.rt.Store().Select(opts)
	if err != nil {
		s.logger.Debug("select found nothing",
			logpkg.Str("queue", opts.QueueName.String()),
			logpkg.Str("action", opts.Action.String()),
			logpkg.Err(err),
		)
		return queue.Message{}, err
	}
	s.logger.Debug("selected message",
		logpkg.Str("queue", opts.QueueName.String()),
		logpkg.Str("action", opts.Action.String()),
		logpkg.Str("id", msg.ID.String()),
	)
	return msg, nil
}

// Summary reports the depth of the queue named by opts. The options must
// carry the info action.
func (s *Service) Summary(_ context.Context, opts queue.SelectOptions) (queue.QueueSummary, error) {
	if opts.Action != queue.ActionInfo {
		return queue.QueueSummary{}, &queue.InvalidParameterError{Field: "action"}
	}
	return s.rt.Store().Summary(opts.QueueName)
}

// SummaryAll reports the depth of every known queue.
func (s *Service) SummaryAll(_ context.Context) []queue.QueueSummary {
	return s.rt.Store().SummaryAll()
}

// ListQueues returns every known queue name in sorted order.
func (s *Service) ListQueues(_ context.Context) []queue.QueueName {
	return s.rt.Store().ListQueues()
}
