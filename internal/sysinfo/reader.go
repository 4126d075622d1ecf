package sysinfo

import (
	"os"
	"runtime"
	"time"

	"github.com/prometheus/procfs"

	apiv1 "github.com/Sameer-kulkarni-sk/ACS-GCP/api/v1"
)

// Reader collects process and system statistics.
type Reader struct {
	fs       procfs.FS
	fsErr    error
	hostname string
	started  time.Time
	now      func() time.Time
}

// NewReader creates a Reader rooted at the default procfs mount.
func NewReader() *Reader {
	fs, err := procfs.NewDefaultFS()
	return newReader(fs, err)
}

func newReader(fs procfs.FS, fsErr error) *Reader {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	return &Reader{
		fs:       fs,
		fsErr:    fsErr,
		hostname: hostname,
		started:  time.Now(),
		now:      time.Now,
	}
}

// Process returns memory, uptime and CPU figures for the current process.
func (r *Reader) Process() apiv1.ProcessStats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	stats := apiv1.ProcessStats{
		UptimeSeconds: r.now().Sub(r.started).Seconds(),
		Memory: apiv1.MemoryStats{
			HeapUsed:  ms.HeapAlloc,
			HeapTotal: ms.HeapSys,
			External:  ms.Sys - ms.HeapSys,
		},
		CPUCores:  runtime.NumCPU(),
		GoVersion: runtime.Version(),
	}

	if r.fsErr != nil {
		return stats
	}
	proc, err := r.fs.Self()
	if err != nil {
		return stats
	}
	stat, err := proc.Stat()
	if err != nil {
		return stats
	}
	stats.Memory.RSS = uint64(stat.ResidentMemory())
	if start, err := stat.StartTime(); err == nil && start > 0 {
		stats.UptimeSeconds = float64(r.now().UnixNano())/1e9 - start
	}
	return stats
}

// System returns host-level figures.
func (r *Reader) System() apiv1.SystemStats {
	stats := apiv1.SystemStats{
		Hostname: r.hostname,
		Platform: runtime.GOOS,
		Arch:     runtime.GOARCH,
		CPUModel: "unknown",
	}
	if r.fsErr != nil {
		return stats
	}

	if load, err := r.fs.LoadAvg(); err == nil {
		stats.LoadAverage = [3]float64{load.Load1, load.Load5, load.Load15}
	}
	if st, err := r.fs.Stat(); err == nil && st.BootTime > 0 {
		stats.UptimeSeconds = float64(r.now().Unix() - int64(st.BootTime))
	}
	if cpus, err := r.fs.CPUInfo(); err == nil && len(cpus) > 0 && cpus[0].ModelName != "" {
		stats.CPUModel = cpus[0].ModelName
	}
	return stats
}
