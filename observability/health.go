package observability

import (
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"
)

// HealthReport aggregates process and runtime metrics for the health endpoint.
type HealthReport struct {
	Status       string  `json:"status"`
	Uptime       string  `json:"uptime"`
	PID          int     `json:"pid"`
	PIDStatus    string  `json:"pid_status,omitempty"`
	CPUPercent   float64 `json:"cpu_percent"`
	RSSBytes     uint64  `json:"rss_bytes"`
	AllocMemMb   uint64  `json:"alloc_mem_mb"`
	NumGoroutine int     `json:"num_goroutine"`
	NumGC        uint32  `json:"num_gc"`
	LiveSessions int     `json:"live_sessions"`
}

// HealthMonitor samples the server's own process. Session counts come from
// the caller so this package stays free of transport concerns.
type HealthMonitor struct {
	log       *slog.Logger
	startedAt time.Time
	self      *process.Process
}

func NewHealthMonitor(log *slog.Logger) *HealthMonitor {
	self, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("Unable to open own process for monitoring", "err", err)
	}
	return &HealthMonitor{
		log:       log,
		startedAt: time.Now(),
		self:      self,
	}
}

func (m *HealthMonitor) Report(liveSessions int) HealthReport {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	report := HealthReport{
		Status:       "ok",
		Uptime:       time.Since(m.startedAt).Round(time.Second).String(),
		PID:          os.Getpid(),
		AllocMemMb:   mem.Alloc / 1024 / 1024,
		NumGoroutine: runtime.NumGoroutine(),
		NumGC:        mem.NumGC,
		LiveSessions: liveSessions,
	}

	if m.self == nil {
		return report
	}

	if status, err := m.self.Status(); err == nil {
		report.PIDStatus = status
	} else {
		m.log.Debug("Error while finding process status", "err", err)
	}
	if cpu, err := m.self.CPUPercent(); err == nil {
		report.CPUPercent = cpu
	} else {
		m.log.Debug("Error while finding process cpu usage", "err", err)
	}
	if memInfo, err := m.self.MemoryInfo(); err == nil {
		report.RSSBytes = memInfo.RSS
	} else {
		m.log.Debug("Error while finding process ram usage", "err", err)
	}
	return report
}
