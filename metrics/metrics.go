// Package metrics 能量扫描的 Prometheus 指标
//
// 指标包括：
// - 按谷与状态统计的能量点数
// - 单个能量点的求解耗时
// - 已完成的 kx 扫描数
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"twodct/transport"
	"twodct/types"
)

const namespace = "twodct"

// SweepMetrics 扫描指标集合；nil 指针上的方法均为空操作
type SweepMetrics struct {
	Points       *prometheus.CounterVec
	PointSeconds prometheus.Histogram
	KxCompleted  prometheus.Counter
}

// New 创建并注册指标（reg 为 nil 时不注册）
func New(reg prometheus.Registerer) *SweepMetrics {
	m := &SweepMetrics{
		Points: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_total",
			Help:      "Energy points solved, by valley and status.",
		}, []string{"valley", "status"}),
		PointSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "point_duration_seconds",
			Help:      "Time to solve one energy point for both valleys.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		KxCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kx_completed_total",
			Help:      "Completed kx sweeps.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Points, m.PointSeconds, m.KxCompleted)
	}
	return m
}

// ObservePoint 记录一个能量点
func (m *SweepMetrics) ObservePoint(res transport.PointResult, d time.Duration) {
	if m == nil {
		return
	}
	for _, v := range types.Valleys {
		m.Points.WithLabelValues(v.String(), res.Status[v].String()).Inc()
	}
	m.PointSeconds.Observe(d.Seconds())
}

// KxDone 记录一次 kx 扫描完成
func (m *SweepMetrics) KxDone() {
	if m == nil {
		return
	}
	m.KxCompleted.Inc()
}
