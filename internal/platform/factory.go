package platform

import (
	"github.com/hydropump/hydropump/pkg/adapters/fs"
	"github.com/hydropump/hydropump/pkg/adapters/memory"
	"github.com/hydropump/hydropump/pkg/core"
)

// New wires a backend and the domain service together.
//
//	svc, err := hydropump.New("./store", hydropump.WithFormat("yaml"))
//
// The root argument is backend-specific (directory for the filesystem
// backend, ignored for injected or in-memory backends).
func New(root string, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	backend := o.backend
	if backend == nil {
		if o.memory {
			backend = memory.New()
		} else {
			b, err := fs.New(fs.Config{
				Root:      root,
				Extension: o.format,
				MustExist: o.must,
				Logger:    o.logger,
			})
			if err != nil {
				return nil, err
			}
			backend = b
		}
	}

	var storeOpts []core.StoreOption
	if o.idFunc != nil {
		storeOpts = append(storeOpts, core.WithIDFunc(o.idFunc))
	}
	if o.clock != nil {
		storeOpts = append(storeOpts, core.WithClock(o.clock))
	}

	return core.NewService(backend, storeOpts...), nil
}
