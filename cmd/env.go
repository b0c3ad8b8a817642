package cmd

import (
	"context"

	"go.uber.org/zap"

	"github.com/jj-sm/html2wikijs/config"
)

type envKey struct{}

// env is the per-run state shared by all commands.
type env struct {
	cfg      *config.Config
	log      *zap.Logger
	closeLog func() error
}

// close releases the logger. It is safe on a nil env.
func (e *env) close() error {
	if e == nil || e.closeLog == nil {
		return nil
	}
	err := e.closeLog()
	e.closeLog = nil
	return err
}

func withEnv(ctx context.Context, e *env) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, envKey{}, e)
}

func envFrom(ctx context.Context) *env {
	if ctx == nil {
		return nil
	}
	e, _ := ctx.Value(envKey{}).(*env)
	return e
}
