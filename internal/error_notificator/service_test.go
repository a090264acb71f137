package error_notificator

import (
	"context"
	"errors"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type captureInfra struct {
	source  string
	err     error
	details string
}

func (c *captureInfra) Notify(_ context.Context, source string, err error, details string) error {
	c.source, c.err, c.details = source, err, details
	return nil
}

func TestServiceForwards(t *testing.T) {
	infra := &captureInfra{}
	svc := NewService(infra, logger.NewZapLogger(zap.NewNop().Sugar()))

	boom := errors.New("boom")
	assert.NoError(t, svc.Notify(context.Background(), "s3", boom, "upload page_1.png"))
	assert.Equal(t, "s3", infra.source)
	assert.Equal(t, boom, infra.err)
	assert.Equal(t, "upload page_1.png", infra.details)
}

func TestInfraWithoutBotIsNoop(t *testing.T) {
	assert.NoError(t, NewInfra(nil, 0).Notify(context.Background(), "x", errors.New("e"), ""))
}
