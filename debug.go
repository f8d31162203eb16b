package rowan

import (
	"encoding/json"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// --- Logging ---

// logger is the package-wide logger. Misuse of the entity tree (duplicate
// adds, missing removes) is reported here as warnings rather than errors;
// the engine keeps running.
var logger = newDefaultLogger()

// newDefaultLogger builds a console logger to stderr at warn level, so
// misuse warnings are visible without any setup. Embedding applications
// replace it via SetLogger.
func newDefaultLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncoderConfig.ConsoleSeparator = "  "
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// SetLogger replaces the package logger. Passing nil installs a no-op
// logger, silencing the engine entirely.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Logger returns the package logger.
func Logger() *zap.Logger {
	return logger
}

// --- Debug mode ---

// globalDebug enables extra tree sanity checks (depth and child count
// thresholds). Off by default; flip with SetDebugMode.
var globalDebug bool

// SetDebugMode toggles debug checks for the whole package.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugMaxTreeDepth is the depth past which a tree is considered suspect.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(e *Entity) {
	depth := 0
	for p := e; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("tree depth exceeds threshold",
			zap.Int("depth", depth),
			zap.Int("threshold", debugMaxTreeDepth),
			zap.String("entity", e.Name))
	}
}

// debugMaxChildCount is the child count past which a node is considered suspect.
const debugMaxChildCount = 1000

func debugCheckChildCount(e *Entity) {
	if len(e.children) > debugMaxChildCount {
		logger.Warn("entity child count exceeds threshold",
			zap.String("entity", e.Name),
			zap.Int("children", len(e.children)),
			zap.Int("threshold", debugMaxChildCount))
	}
}

// --- Tree dump ---

// TreeNode is one node of a hierarchy snapshot: names and structure only,
// components excluded. Children is never nil, so leaves marshal as
// "children": [].
type TreeNode struct {
	Name     string     `json:"name"`
	Children []TreeNode `json:"children"`
}

// Tree returns a snapshot of the hierarchy rooted at e, for debugging and
// assertions. The snapshot is detached: mutating it does not touch the tree.
func (e *Entity) Tree() TreeNode {
	t := TreeNode{
		Name:     e.Name,
		Children: make([]TreeNode, 0, len(e.children)),
	}
	for _, child := range e.children {
		t.Children = append(t.Children, child.Tree())
	}
	return t
}

// TreeJSON returns the Tree snapshot as indented JSON. Returns "{}" if
// marshaling fails, which cannot happen for well-formed names.
func (e *Entity) TreeJSON() string {
	b, err := json.MarshalIndent(e.Tree(), "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
