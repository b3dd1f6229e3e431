// Package sweep 能量扫描调度与电流汇总
package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"twodct/band"
	"twodct/maths"
	"twodct/metrics"
	"twodct/transport"
	"twodct/types"
)

// Dispatcher 固定大小工作池，按能量索引并行求解
type Dispatcher struct {
	Engine  *transport.Engine
	Threads int
	Logger  logrus.FieldLogger
	Metrics *metrics.SweepMetrics
}

func (d *Dispatcher) logger() logrus.FieldLogger {
	if d.Logger == nil {
		return logrus.StandardLogger()
	}
	return d.Logger
}

// Run 对每个能量点求解一次，结果按能量索引排列。
// 单点失败记录在结果中不会中断扫描；ctx 取消后剩余能量点不再调度，
// 其结果携带 ctx.Err()。
func (d *Dispatcher) Run(ctx context.Context, energies []float64, data *band.Data, lengths []float64) ([]transport.PointResult, error) {
	if err := data.Validate(d.Engine.Block, len(energies)); err != nil {
		return nil, err
	}
	if len(lengths) != data.NumLayers() {
		return nil, fmt.Errorf("%d layer lengths for %d mode layers: %w", len(lengths), data.NumLayers(), maths.ErrDimension)
	}
	threads := d.Threads
	if threads < 1 {
		threads = 1
	}
	log := d.logger().WithField("kx", data.Kx)

	results := make([]transport.PointResult, len(energies))
	var g errgroup.Group
	g.SetLimit(threads)
	for idx, energy := range energies {
		if err := ctx.Err(); err != nil {
			for i := idx; i < len(energies); i++ {
				results[i] = cancelled(i, energies[i], err)
			}
			break
		}
		task := transport.Task{Index: idx, Energy: energy, Kx: data.Kx, Modes: data, Lengths: lengths}
		g.Go(func() error {
			start := time.Now()
			res := d.Engine.Solve(task)
			d.Metrics.ObservePoint(res, time.Since(start))
			if res.Err != nil {
				log.WithFields(logrus.Fields{"energy_idx": task.Index, "energy": task.Energy}).
					WithError(res.Err).Warn("energy point failed")
			}
			results[task.Index] = res
			return nil
		})
	}
	_ = g.Wait()
	return results, ctx.Err()
}

func cancelled(idx int, energy float64, err error) transport.PointResult {
	res := transport.PointResult{Index: idx, Energy: energy, Err: err}
	for _, v := range types.Valleys {
		res.Status[v] = transport.StatusFailed
	}
	return res
}
