package middleware

import (
	"context"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

type actorKey struct{}

// WithActor кладёт аутентифицированного пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext пользователь из контекста; false для публичных маршрутов
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}
