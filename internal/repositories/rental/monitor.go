package rental

import (
	"context"
	"sync"
	"time"

	"gitlab.com/cptmarket/rental-router/internal/interfaces"
	"go.uber.org/atomic"
)

const probeTimeout = 5 * time.Second

// NodeMonitor tracks node reachability so read paths can short-circuit to a
// safe default instead of throwing when no node is reachable. A single
// instance is shared by all operations of the process.
type NodeMonitor struct {
	// config
	interval time.Duration

	// state
	mutex     sync.Mutex
	lastCheck time.Time
	available *atomic.Bool

	// deps
	client EthereumClient
	log    interfaces.ILogger
}

func NewNodeMonitor(client EthereumClient, interval time.Duration, log interfaces.ILogger) *NodeMonitor {
	return &NodeMonitor{
		interval:  interval,
		available: atomic.NewBool(true),
		client:    client,
		log:       log,
	}
}

// CheckAvailability returns the cached flag when called again within the
// re-check interval; otherwise it performs a single liveness probe. State
// transitions are logged exactly once to avoid log spam.
func (m *NodeMonitor) CheckAvailability(ctx context.Context) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if time.Since(m.lastCheck) < m.interval {
		return m.available.Load()
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	_, err := m.client.BlockNumber(probeCtx)
	m.lastCheck = time.Now()

	if err != nil {
		if m.available.CAS(true, false) {
			m.log.Warnf("ethereum node became unreachable: %s", err)
		}
		return false
	}

	if m.available.CAS(false, true) {
		m.log.Infof("ethereum node connection recovered")
	}
	return true
}

// IsAvailable returns the last known state without forcing a probe
func (m *NodeMonitor) IsAvailable() bool {
	return m.available.Load()
}
