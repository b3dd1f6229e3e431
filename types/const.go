package types

// 默认参数常量定义
var (
	IncidentTolerance     = 1e-8   // 传播态判定容差（|Im ky| <= 容差）
	ConservationTolerance = 1e-6   // 电流守恒容差（T+R 与 1 的偏差）
	LeadLength            = 1000.0 // 入射/出射半无限区的名义衰减长度（nm）
	FermiStepTemperature  = 10.0   // 低于该温度（K）使用零温阶跃分布
	DefaultBlockSize      = 4      // 单谷模式数
)
