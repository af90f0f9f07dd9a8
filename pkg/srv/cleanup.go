package srv

import "context"

// cleanupService runs a function at shutdown and nothing at start. Used
// to hook resource teardown (scheduler loop, listeners) into the same
// lifecycle as real services.
type cleanupService struct {
	cleanup func() error
}

func (c *cleanupService) Start(ctx context.Context) error {
	return nil
}

func (c *cleanupService) Shutdown(ctx context.Context) error {
	if c.cleanup != nil {
		return c.cleanup()
	}
	return nil
}

func NewCleanup(fn func() error) Service {
	return &cleanupService{cleanup: fn}
}
