package colorspace

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ToHSLBatch inverts every triple independently. Rows are distributed among
// configured number of workers, context is checked before each row.
func (c *Converter) ToHSLBatch(ctx context.Context, rgb []Triple) ([]Triple, error) {
	out := make([]Triple, len(rgb))
	err := c.forEach(ctx, len(rgb), func(i int) {
		out[i] = c.ToHSL(rgb[i])
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToHSLArray inverts every row of RGB array, output has the same shape.
func (c *Converter) ToHSLArray(ctx context.Context, rgb Array) (Array, error) {
	out := rgb.like()
	err := c.forEach(ctx, rgb.Rows(), func(i int) {
		out.setRow(i, c.ToHSL(rgb.Row(i)))
	})
	if err != nil {
		return Array{}, err
	}
	return out, nil
}

func (c *Converter) forEach(ctx context.Context, n int, fn func(i int)) error {
	if c.workers <= 1 || n < 2 {
		for i := range n {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i)
		}
		return nil
	}

	c.log.Debug("Batch conversion", zap.Int("rows", n), zap.Int("workers", c.workers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// loop may have stopped early without any goroutine noticing
	return ctx.Err()
}
