package ecs

import (
	"cmp"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"time"

	"github.com/rotisserie/eris"
)

type systemState int

const (
	systemActive systemState = iota
	systemDestroyed
)

type systemStatsInternal struct {
	executionCount int64
	errorCount     int64
	lastError      error
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// scheduledSystem caches the capabilities of a system at registration time.
type scheduledSystem struct {
	system    System
	name      string
	priority  int
	seq       uint64
	toggle    Toggleable
	destroyer Destroyer
	state     systemState
	stats     systemStatsInternal
}

func newScheduledSystem(system System, seq uint64) *scheduledSystem {
	entry := &scheduledSystem{
		system: system,
		name:   systemName(system),
		seq:    seq,
		stats: systemStatsInternal{
			minDuration: time.Duration(1<<63 - 1),
		},
	}

	if p, ok := system.(Prioritized); ok {
		entry.priority = p.Priority()
	}

	if t, ok := system.(Toggleable); ok {
		entry.toggle = t
	}

	if d, ok := system.(Destroyer); ok {
		entry.destroyer = d
	}

	return entry
}

func (s *scheduledSystem) enabled() bool {
	return s.state == systemActive && (s.toggle == nil || s.toggle.Enabled())
}

func (s *scheduledSystem) update(dt float64, w *World) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.Wrapf(ErrSystemPanic, "%v", r)
		}
	}()

	return s.system.Update(dt, w)
}

// scheduler keeps systems ordered by ascending priority, ties broken by registration order.
type scheduler struct {
	systems []*scheduledSystem
	nextSeq uint64
	running bool

	totalTicks int64
}

func (s *scheduler) add(system System) *scheduledSystem {
	entry := newScheduledSystem(system, s.nextSeq)
	s.nextSeq++

	s.systems = append(s.systems, entry)
	slices.SortStableFunc(s.systems, func(a, b *scheduledSystem) int {
		return cmp.Or(cmp.Compare(a.priority, b.priority), cmp.Compare(a.seq, b.seq))
	})

	return entry
}

func (s *scheduler) find(system System) (*scheduledSystem, int) {
	for idx, entry := range s.systems {
		if entry.system == system {
			return entry, idx
		}
	}
	return nil, -1
}

func (s *scheduler) remove(system System) *scheduledSystem {
	entry, idx := s.find(system)
	if entry == nil {
		return nil
	}

	s.systems = slices.Delete(s.systems, idx, idx+1)
	return entry
}

// once executes every enabled system with the given delta time.
func (s *scheduler) once(dt float64, w *World) {
	s.running = true
	defer func() { s.running = false }()

	s.totalTicks++

	for _, entry := range s.systems {
		if !entry.enabled() {
			continue
		}

		start := time.Now()
		err := entry.update(dt, w)
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

		if err != nil {
			stats.errorCount++
			stats.lastError = err

			w.logger.Error("System update failed",
				slog.String("system", entry.name),
				slog.Any("error", err))
		}
	}
}

func systemName(system System) string {
	if named, ok := system.(Named); ok {
		return named.Name()
	}

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	if name := systemType.Name(); name != "" {
		return name
	}

	return fmt.Sprintf("%T", system)
}
