package mock

import (
	"context"

	"github.com/playbookos/ingest"
)

var _ ingest.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of ingest.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
