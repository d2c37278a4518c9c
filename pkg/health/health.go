// Package health serves liveness and readiness probes for a process holding
// collision worlds. Worlds are not safe for concurrent use, so checks read
// snapshots that the owning goroutine records with Monitor.Record.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/opd-ai/collide2d/pkg/collision"
)

// HealthCheck defines the interface for individual health checks.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check performs the health check and returns an error if unhealthy
	Check(ctx context.Context) error
}

// HealthStatus represents the overall health status of the process.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// ComponentHealth represents the health status of an individual component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker manages and executes health checks.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates a new health checker instance.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// AddCheck registers a health check, replacing any check with the same name.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a health check by name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth runs every check. The overall status is "healthy" only if all pass.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := HealthStatus{
		Status: "healthy",
		Checks: make(map[string]ComponentHealth, len(hc.checks)),
	}
	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = "unhealthy"
			status.Checks[name] = ComponentHealth{Status: "unhealthy", Message: err.Error()}
			continue
		}
		status.Checks[name] = ComponentHealth{Status: "healthy"}
	}
	return status
}

// LivenessHandler answers 200 while the process can serve requests.
func (hc *HealthChecker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ReadinessHandler answers 200 when every check passes and 503 otherwise.
func (hc *HealthChecker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := hc.CheckHealth(ctx)
	code := http.StatusOK
	if health.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, health)
}

// WorldSnapshot is a copy of a world's counters taken by its owner
type WorldSnapshot struct {
	Name     string          `json:"name"`
	Shapes   int             `json:"shapes"`
	Cells    int             `json:"cells"`
	Stats    collision.Stats `json:"stats"`
	Recorded time.Time       `json:"recorded"`
}

// Monitor holds the latest snapshot of each named world
type Monitor struct {
	mu        sync.RWMutex
	ready     bool
	snapshots map[string]WorldSnapshot
	now       func() time.Time
}

// NewMonitor creates an empty monitor
func NewMonitor() *Monitor {
	return &Monitor{
		snapshots: make(map[string]WorldSnapshot),
		now:       time.Now,
	}
}

// Record snapshots world under name. Call it from the goroutine using the world.
func (m *Monitor) Record(name string, world *collision.World) {
	snap := WorldSnapshot{
		Name:   name,
		Shapes: world.ShapeCount(),
		Cells:  world.CellCount(),
		Stats:  world.Stats(),
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snap.Recorded = m.now()
	m.snapshots[name] = snap
}

// Forget drops the snapshot of a world
func (m *Monitor) Forget(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, name)
}

// SetReady marks the collision manager as set up or torn down
func (m *Monitor) SetReady(ready bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ready = ready
}

// Ready reports the value last passed to SetReady
func (m *Monitor) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

// Snapshot returns the latest snapshot recorded for name
func (m *Monitor) Snapshot(name string) (WorldSnapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.snapshots[name]
	return snap, ok
}

// Snapshots returns every snapshot ordered by world name
func (m *Monitor) Snapshots() []WorldSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]WorldSnapshot, 0, len(m.snapshots))
	for _, snap := range m.snapshots {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// StatsHandler writes every world snapshot as JSON
func (m *Monitor) StatsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ready":  m.Ready(),
		"worlds": m.Snapshots(),
	})
}

// ManagerHealthCheck fails until the collision manager is marked ready.
type ManagerHealthCheck struct {
	monitor *Monitor
}

// NewManagerHealthCheck creates a health check for the collision manager.
func NewManagerHealthCheck(monitor *Monitor) *ManagerHealthCheck {
	return &ManagerHealthCheck{monitor: monitor}
}

// Name returns the name of this health check.
func (c *ManagerHealthCheck) Name() string {
	return "collision_manager"
}

// Check verifies that the manager is set up.
func (c *ManagerHealthCheck) Check(ctx context.Context) error {
	if !c.monitor.Ready() {
		return fmt.Errorf("collision manager is not set up")
	}
	return nil
}

// WorldHealthCheck verifies the latest snapshot of one world.
type WorldHealthCheck struct {
	monitor *Monitor
	world   string
	maxAge  time.Duration
}

// NewWorldHealthCheck creates a check for the named world. A positive maxAge
// also fails the check when the snapshot is older than that.
func NewWorldHealthCheck(monitor *Monitor, world string, maxAge time.Duration) *WorldHealthCheck {
	return &WorldHealthCheck{monitor: monitor, world: world, maxAge: maxAge}
}

// Name returns the name of this health check.
func (c *WorldHealthCheck) Name() string {
	return "world_" + c.world
}

// Check fails when the world was never recorded, when its snapshot is stale,
// or when it holds shapes but no grid cells.
func (c *WorldHealthCheck) Check(ctx context.Context) error {
	snap, ok := c.monitor.Snapshot(c.world)
	if !ok {
		return fmt.Errorf("world %q has not been recorded", c.world)
	}
	if c.maxAge > 0 {
		if age := c.monitor.now().Sub(snap.Recorded); age > c.maxAge {
			return fmt.Errorf("world %q snapshot is %s old (max %s)", c.world, age, c.maxAge)
		}
	}
	if snap.Shapes > 0 && snap.Cells == 0 {
		return fmt.Errorf("world %q holds %d shapes but no grid cells", c.world, snap.Shapes)
	}
	return nil
}

// MemoryHealthCheck implements HealthCheck for memory usage monitoring.
type MemoryHealthCheck struct {
	maxMemoryMB    int64
	getMemoryUsage func() int64
}

// NewMemoryHealthCheck creates a health check for memory usage.
func NewMemoryHealthCheck(maxMemoryMB int64, getMemoryUsage func() int64) *MemoryHealthCheck {
	return &MemoryHealthCheck{
		maxMemoryMB:    maxMemoryMB,
		getMemoryUsage: getMemoryUsage,
	}
}

// Name returns the name of this health check.
func (m *MemoryHealthCheck) Name() string {
	return "memory"
}

// Check verifies that memory usage is within acceptable limits.
func (m *MemoryHealthCheck) Check(ctx context.Context) error {
	currentMB := m.getMemoryUsage()
	if currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// CurrentMemoryMB returns the heap bytes in use, in megabytes.
func CurrentMemoryMB() int64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.Alloc / 1024 / 1024)
}
