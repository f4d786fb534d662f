package sentry

import (
	"context"
	"errors"
	"testing"

	"github.com/ledgerline/invoice-service/internal/config"
	"github.com/ledgerline/invoice-service/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestModule_ProvidesServiceAndRunsHooks(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := config.GetDefaultConfig()

	var svc *Service
	app := fxtest.New(t,
		fx.Supply(cfg, logger.NewWithZap(zap.New(core))),
		Module(),
		fx.Populate(&svc),
	)
	app.RequireStart()
	app.RequireStop()

	require.NotNil(t, svc)
	assert.False(t, svc.Enabled())
	assert.Equal(t, 1, logs.FilterMessage("Sentry is disabled").Len())
}

func TestService_DisabledIsNoop(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Sentry.Enabled = false
	svc := NewSentryService(cfg, logger.NewNoopLogger())

	assert.False(t, svc.Enabled())
	assert.True(t, svc.Flush(1))

	ctx := context.Background()
	span, spanCtx := svc.StartDBSpan(ctx, "invoice.create", map[string]interface{}{"customer": "Acme"})
	assert.Nil(t, span)
	assert.Equal(t, ctx, spanCtx)

	assert.NotPanics(t, func() {
		svc.CaptureException(ctx, errors.New("boom"))
		FinishSpan(span, errors.New("boom"))
	})
}

func TestService_NilIsDisabled(t *testing.T) {
	var svc *Service
	assert.False(t, svc.Enabled())
}
