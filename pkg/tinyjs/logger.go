package tinyjs

import "go.uber.org/zap"

// newDefaultLogger builds the silent-by-default logger an Engine falls
// back to when the host never supplies WithLogger (spec.md's "engine
// core never prints by itself" boundary, §4.2): embedding stays quiet
// unless a host explicitly opts in to diagnostics.
func newDefaultLogger() *zap.Logger {
	return zap.NewNop()
}

// levelFromString maps an EngineOptions.LogLevel string onto the zap
// level a host's own logger construction would use, falling back to
// warn for an unknown name. Engine construction does not call it.
func levelFromString(s string) zap.AtomicLevel {
	lvl, err := zap.ParseAtomicLevel(s)
	if err != nil {
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return lvl
}
