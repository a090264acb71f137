package error_notificator

import (
	"context"

	"github.com/Vovarama1992/go-utils/logger"
)

type Service struct {
	infra Notificator
	log   *logger.ZapLogger
}

func NewService(infra Notificator, log *logger.ZapLogger) *Service {
	return &Service{infra: infra, log: log}
}

func (s *Service) Notify(ctx context.Context, source string, err error, details string) error {
	s.log.Log(logger.LogEntry{
		Level:   "error",
		Message: source + ": " + details,
		Error:   err,
		Service: "file_converter",
	})
	if s.infra == nil {
		return nil
	}
	return s.infra.Notify(ctx, source, err, details)
}
