package service

import "context"

type actorKey struct{}

// WithActor attaches the authenticated username to ctx so activity entries
// can be attributed without threading it through every call.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorKey{}, username)
}

func ActorFromContext(ctx context.Context) string {
	s, _ := ctx.Value(actorKey{}).(string)
	return s
}
