package transport

import (
	"errors"
	"fmt"

	"twodct/band"
	"twodct/material"
	"twodct/types"
)

// Status 单谷求解状态
type Status int

// 状态常量定义
const (
	StatusSolved     Status = iota // 正常求解（含物理上的零透射）
	StatusDegenerate               // 传播通道数不为 2，按约定记 (0,0)
	StatusFailed                   // 数值失败，见 PointResult.Err
)

// String 返回状态名称
func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "solved"
	case StatusDegenerate:
		return "degenerate"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Task 单个能量点的求解任务（只读）
type Task struct {
	Index   int        // 能量索引
	Energy  float64    // 能量 (meV)
	Kx      float64    // 纵向动量
	Modes   *band.Data // 全器件模式数据（共享只读）
	Lengths []float64  // 层长 (nm)
}

// PointResult 单个能量点的结果
type PointResult struct {
	Index  int
	Energy float64
	T      [types.NumValleys]float64
	R      [types.NumValleys]float64
	Status [types.NumValleys]Status

	Ky       [types.NumValleys]complex128 // 入射层传播通道波矢（用于费米权重）
	Velocity [types.NumValleys]float64    // 入射层传播通道群速度

	Err error
}

// Solved 谷 v 是否得到有效结果
func (r PointResult) Solved(v types.Valley) bool { return r.Status[v] == StatusSolved }

// Engine 转移矩阵求解引擎
type Engine struct {
	Op      material.CurrentOperator
	Block   int
	Options Options
}

// NewEngine 创建引擎并校验块大小（正偶数）
func NewEngine(op material.CurrentOperator, opts Options) (*Engine, error) {
	m := op.BlockSize()
	if m <= 0 || m%2 != 0 {
		return nil, fmt.Errorf("block size %d: %w", m, ErrBlockSize)
	}
	return &Engine{Op: op, Block: m, Options: opts}, nil
}

// Solve 求解单个能量点两个谷的透射与反射
func (e *Engine) Solve(task Task) PointResult {
	res := PointResult{Index: task.Index, Energy: task.Energy}
	d := task.Modes
	if d.NumLayers() == 0 {
		res.Err = fmt.Errorf("energy %d: %d layers: %w", task.Index, d.NumLayers(), ErrEmptyStack)
		res.Status = [types.NumValleys]Status{StatusFailed, StatusFailed}
		return res
	}
	last := d.NumLayers() - 1
	mask := ClassifyIncident(d.Stacked(0, task.Index))

	var errs []error
	for _, v := range types.Valleys {
		in := d.At(0, task.Index, v)
		ch := e.incidentChannel(mask.Valley(v, e.Block))
		res.Ky[v] = in.Val[ch]
		res.Velocity[v] = in.GroupVelocity(ch)

		if !mask.WellDefined(v, e.Block) {
			res.Status[v] = StatusDegenerate
			continue
		}
		t, r, err := e.valley(task, v, mask.Valley(v, e.Block), last)
		if err != nil {
			res.Status[v] = StatusFailed
			errs = append(errs, fmt.Errorf("energy %d valley %s: %w", task.Index, v, err))
			continue
		}
		res.T[v], res.R[v], res.Status[v] = t, r, StatusSolved
	}
	res.Err = errors.Join(errs...)
	return res
}

// incidentChannel 用于费米权重的入射通道：最后一个传播通道，缺省为块内最后一个奇数位置
func (e *Engine) incidentChannel(mask IncidentMask) int {
	if ch := mask.Channels(); len(ch) > 0 {
		return ch[len(ch)-1]
	}
	return e.Block - 1
}

func (e *Engine) valley(task Task, v types.Valley, mask IncidentMask, last int) (float64, float64, error) {
	d := task.Modes
	layers := make([]*band.ModeSet, d.NumLayers())
	for l := range layers {
		layers[l] = d.At(l, task.Index, v)
	}
	jr := LocalCurrent(e.Op, task.Kx, layers[0], types.LeadLength)
	jt := LocalCurrent(e.Op, task.Kx, layers[last], types.LeadLength)
	chain, err := BuildChain(e.Op, task.Kx, layers, task.Lengths)
	if err != nil {
		return 0, 0, err
	}
	return CurrentRatio(mask, chain.T, chain.Jinc, jt, jr, e.Options)
}
