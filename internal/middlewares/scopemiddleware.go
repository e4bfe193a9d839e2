package middlewares

import (
	"context"

	"github.com/The127/ioc"
	"github.com/the127/tusk/internal/utils"
)

type scopeKeyType string

// RunInScope runs fn with a fresh dependency scope in its context and closes
// the scope afterwards.
func RunInScope(ctx context.Context, root *ioc.DependencyProvider, fn func(ctx context.Context) error) error {
	scope := root.NewScope()
	defer utils.PanicOnError(scope.Close, "closing scope")

	return fn(ContextWithScope(ctx, scope))
}

func ContextWithScope(ctx context.Context, scope *ioc.DependencyProvider) context.Context {
	return context.WithValue(ctx, scopeKeyType("scope"), scope)
}

func GetScope(ctx context.Context) *ioc.DependencyProvider {
	return ctx.Value(scopeKeyType("scope")).(*ioc.DependencyProvider)
}
