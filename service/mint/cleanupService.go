package mintsvc

import (
	"context"
	"time"

	cooldownrepo "github.com/vmmuthu31/EzhuthAI/repository/cooldown"

	"github.com/vmmuthu31/EzhuthAI/model"
)

type Cleaner interface {
	PruneExpiredCooldowns(ctx context.Context) (int64, error)
}

type cleaner struct {
	cd cooldownrepo.Repo
}

func NewCleaner(cd cooldownrepo.Repo) Cleaner { return &cleaner{cd: cd} }

func (c *cleaner) PruneExpiredCooldowns(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-model.CooldownPeriod)
	return c.cd.PruneBefore(ctx, cutoff)
}
