package entities

import "time"

// PerformanceSample is one frame's worth of timing data reported by the runtime.
type PerformanceSample struct {
	Draw      time.Duration `json:"draw"`
	Update    time.Duration `json:"update"`
	CacheSize int           `json:"cache_size"`
	IsGPUPath bool          `json:"is_gpu_path"`
}

// Total is the combined draw and update time of the frame.
func (s PerformanceSample) Total() time.Duration {
	return s.Draw + s.Update
}
