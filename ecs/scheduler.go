package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// ErrorHandler receives errors produced while flushing a system's commands.
type ErrorHandler func(system string, err error)

type systemEntry struct {
	name   string
	system System
	stats  systemStatsInternal
}

// Scheduler manages and executes systems in order.
// The commands queued by a system are applied before the next system runs.
type Scheduler struct {
	storage *Storage
	entries []*systemEntry
	onError ErrorHandler
	running bool
	frames  int64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
		entries: make([]*systemEntry, 0),
	}
}

// Storage returns the storage the scheduler runs against.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// SetErrorHandler installs the callback for command flush errors.
func (s *Scheduler) SetErrorHandler(handler ErrorHandler) {
	s.onError = handler
}

// Register adds a system to the scheduler under its type name and initializes
// its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	s.RegisterNamed(systemName(system), system)
}

// RegisterNamed adds a system under an explicit name.
func (s *Scheduler) RegisterNamed(name string, system System) {
	if s.running {
		panic(ErrSchedulerRunning)
	}
	s.initializeQueries(system)
	s.entries = append(s.entries, &systemEntry{
		name:   name,
		system: system,
		stats:  systemStatsInternal{minDuration: time.Duration(1<<63 - 1)},
	})
}

// Remove drops the first system registered under name. Returns false if none matched.
func (s *Scheduler) Remove(name string) bool {
	if s.running {
		panic(ErrSchedulerRunning)
	}
	for i, entry := range s.entries {
		if entry.name == name {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Names returns the registered system names in execution order.
func (s *Scheduler) Names() []string {
	names := make([]string, len(s.entries))
	for i, entry := range s.entries {
		names[i] = entry.name
	}
	return names
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

func (s *Scheduler) initializeQueries(system System) {
	if seq, ok := system.(*Sequence); ok {
		for _, child := range seq.Systems {
			s.initializeQueries(child)
		}
		return
	}

	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return
	}

	systemType := systemValue.Type()

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		fieldType := systemType.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()

		// Query and Singleton fields share the same Init(*Storage) signature
		if strings.HasPrefix(typeName, "Query[") || strings.HasPrefix(typeName, "Singleton[") {
			initMethod := field.Addr().MethodByName("Init")
			if !initMethod.IsValid() {
				panic("Init method not found on field: " + fieldType.Name)
			}

			initMethod.Call([]reflect.Value{
				reflect.ValueOf(s.storage),
			})
		}
	}
}

// Once executes all registered systems once with the given delta time.
func (s *Scheduler) Once(dt float64) {
	if s.running {
		panic(ErrSchedulerRunning)
	}
	s.running = true
	defer func() { s.running = false }()

	frame := newUpdateFrame(dt, s.storage, s.onError)

	for _, entry := range s.entries {
		frame.system = entry.name

		start := time.Now()
		entry.system.Execute(frame)
		frame.Flush()
		duration := time.Since(start)

		stats := &entry.stats
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.frames++
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.entries),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.entries)),
	}

	var totalExecs int64
	for i, entry := range s.entries {
		internal := entry.stats
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           entry.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
