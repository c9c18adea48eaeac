package ecs

import (
	"cmp"
	"slices"
	"time"
)

// SchedulerStats provides statistics about system execution.
type SchedulerStats struct {
	SystemCount     int
	TotalTicks      int64
	TotalExecutions int64
	TotalErrors     int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Priority       int
	Enabled        bool
	ExecutionCount int64
	ErrorCount     int64
	LastError      error
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// WorldStats summarizes the contents of a World.
type WorldStats struct {
	EntityCount    int
	ComponentCount int
	PrefabCount    int
	SystemCount    int
	KindBreakdown  []KindStats
}

// KindStats counts the components of one kind.
type KindStats struct {
	Kind  Kind
	Count int
}

// Stats returns statistics about system execution, in execution order.
func (w *World) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(w.scheduler.systems),
		TotalTicks:  w.scheduler.totalTicks,
		Systems:     make([]SystemStats, len(w.scheduler.systems)),
	}

	for i, entry := range w.scheduler.systems {
		internal := entry.stats

		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           entry.name,
			Priority:       entry.priority,
			Enabled:        entry.enabled(),
			ExecutionCount: internal.executionCount,
			ErrorCount:     internal.errorCount,
			LastError:      internal.lastError,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}

		stats.TotalExecutions += internal.executionCount
		stats.TotalErrors += internal.errorCount
	}

	return stats
}

// CollectStats counts entities, components per kind, prefabs and systems.
func (w *World) CollectStats() WorldStats {
	counts := make(map[Kind]int)

	stats := WorldStats{
		EntityCount: w.entities.Len(),
		PrefabCount: len(w.prefabs),
		SystemCount: len(w.scheduler.systems),
	}

	w.entities.ForEach(func(_ EntityId, entity *Entity) bool {
		for _, kind := range entity.kinds {
			counts[kind]++
			stats.ComponentCount++
		}
		return true
	})

	for kind, count := range counts {
		stats.KindBreakdown = append(stats.KindBreakdown, KindStats{Kind: kind, Count: count})
	}

	slices.SortFunc(stats.KindBreakdown, func(a, b KindStats) int {
		return cmp.Compare(a.Kind, b.Kind)
	})

	return stats
}
