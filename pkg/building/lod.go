package building

import (
	"fmt"

	"github.com/alitto/pond/v2"
)

// GenerateLODs regenerates the whole building once per entry of
// p.GridResolutions. Levels are independent regenerations, not decimations of
// LOD0, so a coarser level is not a spatial subset of a finer one.
//
// With workers > 1 the levels are built concurrently, each worker owning its
// own layout. The result is always ordered by LOD level.
func GenerateLODs(p Params, workers int) ([]*Layout, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if workers <= 1 || len(p.GridResolutions) == 1 {
		layouts := make([]*Layout, 0, len(p.GridResolutions))
		for lod, grid := range p.GridResolutions {
			l, err := generate(p, grid, lod)
			if err != nil {
				return nil, fmt.Errorf("LOD%d: %w", lod, err)
			}
			layouts = append(layouts, l)
		}
		return layouts, nil
	}

	pool := pond.NewResultPool[*Layout](workers)
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for lod, grid := range p.GridResolutions {
		lod, grid := lod, grid
		group.SubmitErr(func() (*Layout, error) {
			l, err := generate(p, grid, lod)
			if err != nil {
				return nil, fmt.Errorf("LOD%d: %w", lod, err)
			}
			return l, nil
		})
	}

	// Results come back in submission order.
	layouts, err := group.Wait()
	if err != nil {
		return nil, err
	}
	return layouts, nil
}
