package pipeline

import (
	"context"
	"math/rand"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// RunBatch runs every path through Run on at most Config.Workers goroutines
// and returns one Result per path, in input order.
//
// A failing file is recorded in its Result and the batch continues.
// Cancellation is observed between files: files not yet started when ctx is
// done get ctx.Err() as their error, and RunBatch returns ctx.Err() after
// the running files finish. Augmentation for path i draws from a source
// seeded with Config.Augment.Seed+i, so results do not depend on scheduling.
func (p *Processor) RunBatch(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	p.log.WithFields(logrus.Fields{
		"function": "RunBatch",
		"files":    len(paths),
		"workers":  p.cfg.Workers,
	}).Info("Starting batch")

	var g errgroup.Group
	g.SetLimit(p.cfg.Workers)

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(paths); j++ {
				results[j] = Result{Path: paths[j], Err: err}
			}

			break
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Path: path, Err: err}
				return nil
			}

			done := p.metrics.TrackActive(ctx)
			defer done()

			var rng *rand.Rand
			if p.cfg.Steps.Augment {
				rng = rand.New(rand.NewSource(p.cfg.Augment.Seed + int64(i)))
			}

			res := p.Run(ctx, path, rng)
			p.logResult(res)
			results[i] = res

			return nil
		})
	}

	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	p.log.WithFields(logrus.Fields{
		"function": "RunBatch",
		"files":    len(paths),
		"failed":   failed,
	}).Info("Batch finished")

	return results, ctx.Err()
}

func (p *Processor) logResult(res Result) {
	fields := logrus.Fields{
		"function": "RunBatch",
		"path":     res.Path,
		"elapsed":  res.Elapsed.String(),
	}

	if res.Err != nil {
		fields["error"] = res.Err.Error()
		p.log.WithFields(fields).Warn("Skipping file")

		return
	}

	fields["original_rate"] = res.OriginalRate
	fields["samples"] = len(res.Signal.Samples)

	if len(res.Augmented) > 0 {
		fields["augmented"] = res.Augmented
	}

	p.log.WithFields(fields).Debug("File processed")
}
