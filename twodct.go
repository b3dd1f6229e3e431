// Package twodct 二维异质结谷输运计算：对每个作业、每个 kx 读取模式数据，
// 并行扫描能量求透射/反射，输出 PTR 结果并汇总费米加权的谷电流与极化。
package twodct

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"twodct/band"
	"twodct/config"
	"twodct/device"
	"twodct/fermi"
	"twodct/material"
	"twodct/metrics"
	"twodct/report"
	"twodct/sweep"
	"twodct/transport"
	"twodct/types"
)

// Solver 全器件求解器
type Solver struct {
	Setup   *config.Setup
	Jobs    []device.Job
	Source  band.Source
	Writer  *report.Writer // 为 nil 时不写文件
	Bands   bool           // 同时写出每层能带 CSV
	Logger  logrus.FieldLogger
	Metrics *metrics.SweepMetrics

	ham      material.Hamiltonian
	op       material.CurrentOperator
	energies []float64
	kxs      []float64
}

// Option 求解器选项
type Option func(*Solver)

// WithLogger 设置日志
func WithLogger(l logrus.FieldLogger) Option { return func(s *Solver) { s.Logger = l } }

// WithWriter 设置输出
func WithWriter(w *report.Writer) Option { return func(s *Solver) { s.Writer = w } }

// WithBands 输出能带 CSV
func WithBands(on bool) Option { return func(s *Solver) { s.Bands = on } }

// WithMetrics 设置指标
func WithMetrics(m *metrics.SweepMetrics) Option { return func(s *Solver) { s.Metrics = m } }

// WithCurrentOperator 替换输运使用的电流算符（费米权重仍用设置中的体哈密顿量）
func WithCurrentOperator(op material.CurrentOperator) Option {
	return func(s *Solver) { s.op = op }
}

// NewSolver 校验设置并准备扫描网格
func NewSolver(setup *config.Setup, jobs []device.Job, src band.Source, opts ...Option) (*Solver, error) {
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	s := &Solver{Setup: setup, Jobs: jobs, Source: src}
	for _, o := range opts {
		o(s)
	}
	if s.Logger == nil {
		s.Logger = logrus.StandardLogger()
	}
	var err error
	if s.ham, err = setup.Hamiltonian(); err != nil {
		return nil, err
	}
	if s.op == nil {
		s.op = s.ham
	}
	if s.energies, err = setup.Energies(); err != nil {
		return nil, err
	}
	if s.kxs, err = setup.KxSweep(); err != nil {
		return nil, err
	}
	return s, nil
}

// JobResult 单个作业的结果
type JobResult struct {
	Job     string
	Device  *device.Device
	Records []*report.Record
	Totals  sweep.Totals
}

// Run 依次计算全部作业
func (s *Solver) Run(ctx context.Context) ([]*JobResult, error) {
	t0 := time.Now()
	out := make([]*JobResult, 0, len(s.Jobs))
	for _, job := range s.Jobs {
		res, err := s.RunJob(ctx, job)
		if err != nil {
			return out, fmt.Errorf("job %q: %w", job.Name, err)
		}
		out = append(out, res)
	}
	s.Logger.WithField("elapsed", time.Since(t0)).Info("calculation complete")
	return out, nil
}

// RunJob 计算单个作业的全部 kx
func (s *Solver) RunJob(ctx context.Context, job device.Job) (*JobResult, error) {
	bias := s.Setup.Bias()
	dev, err := device.Build(job, bias, s.Setup.LeadInclude)
	if err != nil {
		return nil, err
	}
	engine, err := transport.NewEngine(s.op, transport.Options{LiteralChannelAveraging: s.Setup.LiteralChannelAveraging})
	if err != nil {
		return nil, err
	}
	dispatcher := &sweep.Dispatcher{
		Engine:  engine,
		Threads: s.Setup.CPUThreads,
		Logger:  s.Logger.WithField("job", job.Name),
		Metrics: s.Metrics,
	}
	in := dev.Incident()
	agg := &sweep.Aggregator{
		Fermi: &fermi.Evaluator{
			Ham:   s.ham,
			Temp:  s.Setup.Temp,
			Ef:    s.Setup.Ef,
			DkAmp: s.Setup.DkAmp,
			DkAng: s.Setup.DkAng,
		},
		Gap: in.Gap,
		V:   in.V,
	}

	res := &JobResult{Job: job.Name, Device: dev}
	for _, kx := range s.kxs {
		log := s.Logger.WithFields(logrus.Fields{"job": job.Name, "kx": kx})
		log.Info("current job")

		start := time.Now()
		data, err := s.Source.Modes(ctx, job.Name, kx)
		if err != nil {
			return res, fmt.Errorf("kx %g: mode data: %w", kx, err)
		}
		log.WithField("elapsed", time.Since(start)).Debug("mode data loaded")

		start = time.Now()
		points, err := dispatcher.Run(ctx, s.energies, data, dev.Lengths())
		if err != nil {
			return res, fmt.Errorf("kx %g: %w", kx, err)
		}
		log.WithField("elapsed", time.Since(start)).Info("transmission done")

		rec := report.NewRecord(job.Name, kx, points)
		res.Records = append(res.Records, rec)
		if s.Writer != nil {
			if _, err := s.Writer.SavePTR(rec, bias); err != nil {
				return res, err
			}
			if s.Bands {
				if err := s.Writer.SaveBands(job.Name, bias, s.energies, data); err != nil {
					return res, err
				}
			}
		}
		agg.Add(kx, points)
		s.Metrics.KxDone()
	}

	res.Totals = agg.Totals()
	if err := agg.Err(); err != nil {
		s.Logger.WithError(err).Warn("fermi weights failed for some points")
	}
	fields := logrus.Fields{
		"job":     job.Name,
		"J+K":     res.Totals.J[types.ValleyKp],
		"J-K":     res.Totals.J[types.ValleyKn],
		"skipped": res.Totals.Skipped,
	}
	if res.Totals.PolarizationDefined {
		fields["P"] = res.Totals.P
		s.Logger.WithFields(fields).Info("valley currents")
	} else {
		s.Logger.WithFields(fields).WithError(sweep.ErrUndefinedPolarization).Warn("valley currents")
	}
	return res, nil
}

// MemorySource 内存中的模式数据（按作业名与 kx 索引）
type MemorySource map[string]map[float64]*band.Data

// ErrNoModes 模式数据不存在
var ErrNoModes = errors.New("twodct: no mode data")

// Modes 实现 band.Source
func (m MemorySource) Modes(ctx context.Context, job string, kx float64) (*band.Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d, ok := m[job][kx]
	if !ok {
		return nil, fmt.Errorf("job %q kx %g: %w", job, kx, ErrNoModes)
	}
	return d, nil
}
