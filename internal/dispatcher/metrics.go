package dispatcher

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dshills/paper/internal/dispatcher/handler"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	actionMetrics map[string]*ActionMetrics

	totalDispatches uint64
	totalErrors     uint64
	totalNoOps      uint64
	totalCancelled  uint64
	totalPanics     uint64

	totalDuration time.Duration
}

// ActionMetrics holds metrics for a specific action.
type ActionMetrics struct {
	Name          string
	DispatchCount uint64
	ErrorCount    uint64
	NoOpCount     uint64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	LastStatus    handler.ResultStatus
	LastDispatch  time.Time
}

// AverageDuration returns the mean dispatch duration of the action.
func (am *ActionMetrics) AverageDuration() time.Duration {
	if am.DispatchCount == 0 {
		return 0
	}
	return am.TotalDuration / time.Duration(am.DispatchCount)
}

// NamespaceStats aggregates the actions sharing a namespace prefix.
type NamespaceStats struct {
	Namespace     string
	DispatchCount uint64
	ErrorCount    uint64
	NoOpCount     uint64
	TotalDuration time.Duration
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		actionMetrics: make(map[string]*ActionMetrics),
	}
}

// RecordDispatch records a dispatch event.
func (m *Metrics) RecordDispatch(actionName string, duration time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration

	am := m.actionMetrics[actionName]
	if am == nil {
		am = &ActionMetrics{
			Name:        actionName,
			MinDuration: duration,
			MaxDuration: duration,
		}
		m.actionMetrics[actionName] = am
	}

	am.DispatchCount++
	am.TotalDuration += duration
	am.LastStatus = status
	am.LastDispatch = time.Now()
	am.MinDuration = min(am.MinDuration, duration)
	am.MaxDuration = max(am.MaxDuration, duration)

	switch status {
	case handler.StatusError:
		m.totalErrors++
		am.ErrorCount++
	case handler.StatusNoOp:
		m.totalNoOps++
		am.NoOpCount++
	case handler.StatusCancelled:
		m.totalCancelled++
	}
}

// RecordPanic records a panic recovery. The dispatch itself is recorded
// separately as an error.
func (m *Metrics) RecordPanic(actionName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalPanics++
}

// TotalDispatches returns the total number of dispatches.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalErrors returns the total number of errors.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// TotalNoOps returns the number of dispatches that changed nothing.
func (m *Metrics) TotalNoOps() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalNoOps
}

// TotalCancelled returns the number of dispatches cancelled by hooks.
func (m *Metrics) TotalCancelled() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalCancelled
}

// TotalPanics returns the total number of panics recovered.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// AverageDuration returns the average dispatch duration.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalDispatches == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalDispatches)
}

// ActionStats returns a copy of the metrics for an action, or nil.
func (m *Metrics) ActionStats(actionName string) *ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	am := m.actionMetrics[actionName]
	if am == nil {
		return nil
	}
	c := *am
	return &c
}

// MostFrequent returns up to n actions ordered by dispatch count.
func (m *Metrics) MostFrequent(n int) []ActionMetrics {
	m.mu.RLock()
	all := make([]ActionMetrics, 0, len(m.actionMetrics))
	for _, am := range m.actionMetrics {
		all = append(all, *am)
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].DispatchCount != all[j].DispatchCount {
			return all[i].DispatchCount > all[j].DispatchCount
		}
		return all[i].Name < all[j].Name
	})
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

// Namespaces aggregates the per-action metrics by namespace, sorted by name.
func (m *Metrics) Namespaces() []NamespaceStats {
	m.mu.RLock()
	byNS := make(map[string]*NamespaceStats)
	for name, am := range m.actionMetrics {
		ns := name
		if idx := strings.IndexByte(name, '.'); idx > 0 {
			ns = name[:idx]
		}
		s := byNS[ns]
		if s == nil {
			s = &NamespaceStats{Namespace: ns}
			byNS[ns] = s
		}
		s.DispatchCount += am.DispatchCount
		s.ErrorCount += am.ErrorCount
		s.NoOpCount += am.NoOpCount
		s.TotalDuration += am.TotalDuration
	}
	m.mu.RUnlock()

	out := make([]NamespaceStats, 0, len(byNS))
	for _, s := range byNS {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Namespace < out[j].Namespace })
	return out
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actionMetrics = make(map[string]*ActionMetrics)
	m.totalDispatches = 0
	m.totalErrors = 0
	m.totalNoOps = 0
	m.totalCancelled = 0
	m.totalPanics = 0
	m.totalDuration = 0
}
