package port

import "context"

// ReadinessCheck is implemented by every external dependency the api needs to serve traffic
type ReadinessCheck interface {
	Name() string
	IsReady(ctx context.Context) error
}
