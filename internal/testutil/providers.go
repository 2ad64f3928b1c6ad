package testutil

import (
	"context"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/bootstrap"
)

// GoodProvider returns the provided bootstrap with no error.
type GoodProvider struct {
	Bootstrap bootstrap.Bootstrap
}

func (p GoodProvider) FetchBootstrap(ctx context.Context) (bootstrap.Bootstrap, error) {
	_ = ctx
	return p.Bootstrap, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchBootstrap(ctx context.Context) (bootstrap.Bootstrap, error) {
	return bootstrap.Bootstrap{}, p.Err
}
