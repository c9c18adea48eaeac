package debugui

import (
	"github.com/plus3/scenery/ecs"
)

type EntityBrowser struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.EntityId
	hasSelection       bool
	filterText         string
	filterKind         *ecs.Kind
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspector struct {
	selectedEntityId ecs.EntityId
	lastError        error
}

type KindViewer struct {
	cache        *KindViewerCache
	selectedKind *ecs.Kind
}

type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebugger struct {
	selectedKinds map[ecs.Kind]bool
}
