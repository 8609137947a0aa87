package entity

// BenchmarkEstimate synthetic benchmark figures derived from component scores
type BenchmarkEstimate struct {
	FPS1080p              int     `json:"fps_1080p"`
	FPS1440p              int     `json:"fps_1440p"`
	FPS4K                 int     `json:"fps_4k"`
	CinebenchScore        int     `json:"cinebench_score"`
	ExportSpeedMultiplier float64 `json:"export_speed_multiplier"`
	DiskThroughputMBs     *int    `json:"disk_throughput_mbs"`
	RAMBandwidthGBs       *int    `json:"ram_bandwidth_gbs"`
	PowerDrawWatts        float64 `json:"power_draw_watts"`
	OverallRating         float64 `json:"overall_rating"` // 1-10
	VRAMGB                float64 `json:"vram_gb"`
}
