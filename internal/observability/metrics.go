package observability

import (
	"sort"
	"strconv"
	"sync"
)

// Metrics keeps in-memory request and error counters for the stub API.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]int64
	errors   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]int64),
		errors:   make(map[string]int64),
	}
}

// RecordRequest increments the counter for a method/path/status combination.
func (m *Metrics) RecordRequest(method, path string, status int) {
	if m == nil {
		return
	}
	key := method + " " + path + " " + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[key]++
}

// RecordError increments the counter for a domain error code.
func (m *Metrics) RecordError(code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[code]++
}

// CounterRow is one entry of a metrics snapshot.
type CounterRow struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// Snapshot returns the current counters sorted by key.
func (m *Metrics) Snapshot() (requests, errors []CounterRow) {
	if m == nil {
		return nil, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedRows(m.requests), sortedRows(m.errors)
}

func sortedRows(counts map[string]int64) []CounterRow {
	rows := make([]CounterRow, 0, len(counts))
	for key, count := range counts {
		rows = append(rows, CounterRow{Key: key, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}
