package sync

import (
	"context"

	"github.com/iudanet/novelsync/internal/models"
)

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, conflicts []models.Conflict) ([]models.Resolution, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, conflicts []models.Conflict) ([]models.Resolution, error) {
	return f(ctx, conflicts)
}

// Always resolves every conflict with the same choice.
func Always(choice models.Choice) Resolver {
	return ResolverFunc(func(_ context.Context, conflicts []models.Conflict) ([]models.Resolution, error) {
		out := make([]models.Resolution, 0, len(conflicts))
		for _, c := range conflicts {
			out = append(out, models.Resolution{ConflictID: c.ID, Choice: choice})
		}
		return out, nil
	})
}

var (
	// RemoteWins takes the remote copy of every conflicting entity.
	RemoteWins = Always(models.ChoiceRemote)
	// LocalWins keeps the local copy of every conflicting entity.
	LocalWins = Always(models.ChoiceLocal)
	// NewestWins takes the copy with the later edit timestamp.
	NewestWins Resolver = ResolverFunc(func(_ context.Context, conflicts []models.Conflict) ([]models.Resolution, error) {
		out := make([]models.Resolution, 0, len(conflicts))
		for _, c := range conflicts {
			out = append(out, models.Resolution{ConflictID: c.ID, Choice: c.Suggested})
		}
		return out, nil
	})
)
