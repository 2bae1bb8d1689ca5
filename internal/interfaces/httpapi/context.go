package httpapi

import (
	"context"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/user"
)

// The principal rides the request context under the domain key so the
// usecase layer can read capabilities without knowing about HTTP.
func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return user.NewContext(ctx, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	return user.FromContext(ctx)
}
