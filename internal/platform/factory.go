package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/myagri/pkg/core"
)

// New builds a ready to use service:
//
//	svc, err := myagri.New("./farm", myagri.WithSeed(catalog.Activities()))
//
// The uri is adapter-specific (a directory for "fs"). Records already in the
// repository are loaded most recent first; an empty repository receives the
// WithSeed records.
func New(uri string, opts ...Option) (*core.Service, error) {
	ctx := context.Background()
	o := newOptions(opts)

	repo, err := initRepository(ctx, uri, o)
	if err != nil {
		return nil, err
	}

	var storeOpts []core.StoreOption
	if o.clock != nil {
		storeOpts = append(storeOpts, core.WithClock(o.clock))
	}
	svcOpts := []core.ServiceOption{
		core.WithStore(core.NewStore(storeOpts...)),
		core.WithEventBuffer(o.eventBuffer),
	}
	if o.logger != nil {
		svcOpts = append(svcOpts, core.WithServiceLogger(o.logger))
	}
	service := core.NewService(repo, svcOpts...)

	if err := service.Load(ctx); err != nil {
		return nil, err
	}

	if len(o.seed) > 0 && len(service.Records()) == 0 && !o.readOnly {
		seed := make([]core.Record, len(o.seed))
		for i, r := range o.seed {
			seed[i] = r.Clone()
		}
		core.SortRecent(seed)
		if err := service.Seed(ctx, seed); err != nil {
			return nil, fmt.Errorf("failed to seed store: %w", err)
		}
	}

	return service, nil
}
