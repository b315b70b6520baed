// Package iopreschools loads the preschool centre listing and counts
// centres per Master Plan subzone. This is an impure I/O package: it
// reads the ECDA listing and the subzone boundaries, resolves postal
// codes through the OneMap API, and caches the geocoded listing on
// disk so later runs skip the API entirely.
package iopreschools

import (
	"context"
	"log/slog"
	"os"

	"github.com/cheggaaa/pb/v3"
	geom "github.com/twpayne/go-geom"
	"golang.org/x/sync/errgroup"

	"github.com/chuawjk/ecda/pkg/config"
	"github.com/chuawjk/ecda/pkg/sources"
)

// preschools implements the Preschools interface.
type preschools struct {
	cfg *config.Config
}

// New creates a new Preschools loader.
func New(cfg *config.Config) sources.Preschools {
	return &preschools{cfg: cfg}
}

// Load returns the number of centres per subzone. The geocoded listing
// written by a previous run is reused when present, otherwise the raw
// listing is geocoded first.
func (l *preschools) Load(ctx context.Context) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	centres, err := l.processedCentres(ctx)
	if err != nil {
		return nil, err
	}

	subzones, err := loadSubzones(l.cfg.Data.SubzonesFile)
	if err != nil {
		return nil, err
	}

	counts := countCentres(subzones, centres)
	slog.Info("Counted centres per subzone",
		"centres", len(centres),
		"subzones", len(counts),
	)
	return counts, nil
}

// Geocode resolves every centre postal code anew and rewrites the
// processed listing.
func (l *preschools) Geocode(ctx context.Context) (*sources.GeocodeReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report, _, err := l.geocodeListing(ctx)
	return report, err
}

// processedCentres returns geocoded centres, reusing the processed
// listing when one exists on disk.
func (l *preschools) processedCentres(ctx context.Context) ([]centre, error) {
	processed := l.cfg.Data.ProcessedCentresFile
	if _, err := os.Stat(processed); err == nil {
		slog.Info("Using geocoded centre listing", "file", processed)
		return readCentres(processed)
	}

	report, centres, err := l.geocodeListing(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("Geocoded centre listing",
		"file", report.Output,
		"centres", report.Total,
		"missing", report.Missing,
	)
	return centres, nil
}

// geocodeListing reads the raw listing, resolves postal codes through
// OneMap and writes the processed listing next to the raw one.
func (l *preschools) geocodeListing(
	ctx context.Context,
) (*sources.GeocodeReport, []centre, error) {
	centres, err := readCentres(l.cfg.Data.CentresFile)
	if err != nil {
		return nil, nil, err
	}

	geo, err := newGeocoder(l.cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := l.resolveCentres(ctx, geo, centres); err != nil {
		return nil, nil, err
	}

	out := l.cfg.Data.ProcessedCentresFile
	if err := writeCentres(out, centres); err != nil {
		return nil, nil, err
	}

	report := &sources.GeocodeReport{Total: len(centres), Output: out}
	for i := range centres {
		if !centres[i].hasLocation {
			report.Missing++
		}
	}
	return report, centres, nil
}

// resolveCentres fills in coordinates for all centres concurrently.
// Workers write to distinct indices, so no locking is needed.
func (l *preschools) resolveCentres(
	ctx context.Context,
	geo *geocoder,
	centres []centre,
) error {
	chIn := make(chan int)

	g, ctx := errgroup.WithContext(ctx)

	bar := pb.Full.Start(len(centres))
	bar.Set("prefix", "Geocoding centres: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	jobs := l.cfg.JobsNumber
	if jobs < 1 {
		jobs = 1
	}
	for range jobs {
		g.Go(func() error {
			for i := range chIn {
				loc, err := geo.lookup(ctx, centres[i].postal)
				if err != nil {
					return err
				}
				if loc.found {
					centres[i].lat = loc.lat
					centres[i].lng = loc.lng
					centres[i].hasLocation = true
				}
				bar.Increment()
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(chIn)
		for i := range centres {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- i:
			}
		}
		return nil
	})

	return g.Wait()
}

// countCentres assigns each located centre to the first subzone whose
// boundary contains it. Every subzone is present in the result, zero
// when it hosts no centre.
func countCentres(subzones []subzone, centres []centre) map[string]int {
	counts := make(map[string]int, len(subzones))
	for i := range subzones {
		counts[subzones[i].name] = 0
	}

	for _, c := range centres {
		if !c.hasLocation {
			continue
		}
		// GeoJSON coordinates put longitude first
		pt := geom.Coord{c.lng, c.lat}
		for i := range subzones {
			if subzones[i].containsPoint(pt) {
				counts[subzones[i].name]++
				break
			}
		}
	}
	return counts
}
