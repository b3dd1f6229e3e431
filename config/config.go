// Package config 读取扫描设置与作业文件
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"twodct/device"
	"twodct/material"
)

// 错误定义
var (
	ErrUnsupportedConfiguration = errors.New("config: unsupported configuration")
	ErrInvalidJob               = errors.New("config: invalid job description")
)

// EnvPrefix 环境变量前缀（如 TWODCT_CPU_THREADS）
const EnvPrefix = "TWODCT"

// Setup 扫描设置
type Setup struct {
	E0  float64 `mapstructure:"e0"`  // 能量起点 (meV)
	En  float64 `mapstructure:"en"`  // 能量终点（不含）
	DE  float64 `mapstructure:"de"`  // 能量步长
	Kx0 float64 `mapstructure:"kx0"` // kx 起点
	Kxn float64 `mapstructure:"kxn"` // kx 终点（不含）
	DKx float64 `mapstructure:"dkx"` // kx 步长，0 表示只取 kx0

	V1 float64 `mapstructure:"v1"` // 入射端电势 (meV)
	V2 float64 `mapstructure:"v2"` // 出射端电势 (meV)

	Temp  float64 `mapstructure:"temp"`   // 温度 (K)
	Ef    float64 `mapstructure:"ef"`     // 费米能 (meV)
	DkAmp float64 `mapstructure:"dk_amp"` // 漂移波矢幅度
	DkAng float64 `mapstructure:"dk_ang"` // 漂移方向 (度)

	CPUThreads  int    `mapstructure:"cpu_threads"`
	Direction   string `mapstructure:"direction"`
	HType       string `mapstructure:"h_type"`
	Lattice     string `mapstructure:"lattice"`
	Material    string `mapstructure:"material"`
	LeadInclude bool   `mapstructure:"lead_include"`
	Warp        bool   `mapstructure:"warp"`

	LiteralChannelAveraging bool `mapstructure:"literal_channel_averaging"`
}

// SetDefaults 默认设置
func SetDefaults(v *viper.Viper) {
	v.SetDefault("e0", 0.0)
	v.SetDefault("en", 10.0)
	v.SetDefault("de", 1.0)
	v.SetDefault("kx0", 0.0)
	v.SetDefault("kxn", 0.0)
	v.SetDefault("dkx", 0.0)
	v.SetDefault("v1", 0.0)
	v.SetDefault("v2", 0.0)
	v.SetDefault("temp", 0.0)
	v.SetDefault("ef", 0.0)
	v.SetDefault("dk_amp", 0.0)
	v.SetDefault("dk_ang", 0.0)
	v.SetDefault("cpu_threads", 1)
	v.SetDefault("direction", "Zigzag")
	v.SetDefault("h_type", material.HTypeLinearize)
	v.SetDefault("lattice", "MLG")
	v.SetDefault("material", "Graphene")
	v.SetDefault("lead_include", true)
	v.SetDefault("warp", true)
	v.SetDefault("literal_channel_averaging", false)
}

// Load 读取设置文件（path 为空时只用默认值与环境变量）并校验
func Load(v *viper.Viper, path string) (*Setup, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read setup: %w", err)
		}
	}
	var s Setup
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal setup: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate 在任何计算之前拒绝不支持的设置
func (s *Setup) Validate() error {
	if _, err := s.Hamiltonian(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedConfiguration, err)
	}
	if s.CPUThreads < 1 {
		return fmt.Errorf("%w: cpu_threads %d", ErrUnsupportedConfiguration, s.CPUThreads)
	}
	if s.DE <= 0 {
		return fmt.Errorf("%w: energy step %g", ErrUnsupportedConfiguration, s.DE)
	}
	if s.DKx < 0 {
		return fmt.Errorf("%w: kx step %g", ErrUnsupportedConfiguration, s.DKx)
	}
	return nil
}

// Hamiltonian 按晶向、类型与材料构造哈密顿量；warp 关闭时去掉三角翘曲
func (s *Setup) Hamiltonian() (material.Hamiltonian, error) {
	m, err := material.Lookup(s.Material)
	if err != nil {
		return nil, err
	}
	if !s.Warp {
		m = m.WithoutWarp()
	}
	return material.NewHamiltonian(material.Options{Direction: s.Direction, HType: s.HType, Material: m})
}

// Energies 能量网格 (meV)
func (s *Setup) Energies() ([]float64, error) { return device.Arange(s.E0, s.En, s.DE) }

// KxSweep kx 网格
func (s *Setup) KxSweep() ([]float64, error) { return device.KxGrid(s.Kx0, s.Kxn, s.DKx) }

// Bias 器件两端电势差 V2-V1 (meV)
func (s *Setup) Bias() float64 { return s.V2 - s.V1 }

// jobFile 作业文件：每个作业按区域给出带隙、长度与细分
type jobFile struct {
	Jobs []struct {
		Name   string    `yaml:"name"`
		Gap    []float64 `yaml:"gap"`
		Length []float64 `yaml:"length"`
		Mesh   []int     `yaml:"mesh"`
	} `yaml:"jobs"`
}

// LoadJobs 读取作业文件
func LoadJobs(path string) ([]device.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseJobs(data)
}

// ParseJobs 解析作业 YAML
func ParseJobs(data []byte) ([]device.Job, error) {
	var f jobFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}
	if len(f.Jobs) == 0 {
		return nil, fmt.Errorf("%w: no jobs", ErrInvalidJob)
	}
	jobs := make([]device.Job, 0, len(f.Jobs))
	for _, j := range f.Jobs {
		n := len(j.Gap)
		if j.Name == "" || n == 0 || len(j.Length) != n || len(j.Mesh) != n {
			return nil, fmt.Errorf("%w: job %q has %d gaps, %d lengths, %d meshes",
				ErrInvalidJob, j.Name, n, len(j.Length), len(j.Mesh))
		}
		job := device.Job{Name: j.Name, Regions: make([]device.Region, n)}
		for i := range job.Regions {
			job.Regions[i] = device.Region{Gap: j.Gap[i], Length: j.Length[i], Mesh: j.Mesh[i]}
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// NewLogger 文本格式日志
func NewLogger(level string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}
	logger.SetLevel(lvl)
	return logger, nil
}
