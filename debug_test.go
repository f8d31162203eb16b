package rowan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// captureWarnings swaps in a buffer-backed logger for the duration of the
// test and returns the buffer.
func captureWarnings(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	var buf bytes.Buffer
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	SetLogger(zap.New(zapcore.NewCore(enc, zapcore.AddSync(&buf), zapcore.WarnLevel)))
	return &buf
}

// --- Tree snapshots ---

func TestTreeSnapshot(t *testing.T) {
	root := NewEntity("root")
	hero := NewEntity("hero")
	hud := NewEntity("hud")
	sword := NewEntity("sword")
	root.AddChild(hero)
	root.AddChild(hud)
	hero.AddChild(sword)

	tree := root.Tree()
	if tree.Name != "root" {
		t.Errorf("name = %q, want root", tree.Name)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(tree.Children))
	}
	if tree.Children[0].Name != "hero" || tree.Children[1].Name != "hud" {
		t.Errorf("child order = %q, %q", tree.Children[0].Name, tree.Children[1].Name)
	}
	if len(tree.Children[0].Children) != 1 || tree.Children[0].Children[0].Name != "sword" {
		t.Error("grandchild missing from snapshot")
	}
}

func TestTreeSnapshotLeafChildrenNotNil(t *testing.T) {
	tree := NewEntity("leaf").Tree()
	if tree.Children == nil {
		t.Error("leaf children should be an empty slice, not nil")
	}
	if len(tree.Children) != 0 {
		t.Errorf("leaf children = %d, want 0", len(tree.Children))
	}
}

func TestTreeSnapshotDetached(t *testing.T) {
	root := NewEntity("root")
	root.AddChild(NewEntity("child"))

	tree := root.Tree()
	tree.Children = append(tree.Children, TreeNode{Name: "phantom"})
	tree.Children[0].Name = "renamed"

	if root.NumChildren() != 1 {
		t.Error("mutating the snapshot should not touch the tree")
	}
	if root.ChildAt(0).Name != "child" {
		t.Error("child name should be unchanged")
	}
}

func TestTreeJSONLeaf(t *testing.T) {
	out := NewEntity("solo").TreeJSON()
	if !strings.Contains(out, `"children": []`) {
		t.Errorf("leaf should marshal with an empty children array, got:\n%s", out)
	}
	if !strings.Contains(out, `"name": "solo"`) {
		t.Errorf("name missing from dump:\n%s", out)
	}
}

func TestTreeJSONRoundtrip(t *testing.T) {
	root := NewEntity("root")
	a := NewEntity("a")
	root.AddChild(a)
	a.AddChild(NewEntity("b"))

	var back TreeNode
	if err := json.Unmarshal([]byte(root.TreeJSON()), &back); err != nil {
		t.Fatalf("dump is not valid JSON: %v", err)
	}
	if back.Name != "root" || len(back.Children) != 1 || back.Children[0].Children[0].Name != "b" {
		t.Errorf("roundtrip mismatch: %+v", back)
	}
}

// --- Logger plumbing ---

func TestSetLoggerNilInstallsNop(t *testing.T) {
	prev := Logger()
	defer SetLogger(prev)

	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger() should never return nil")
	}
	Logger().Warn("ignored")
}

// --- Debug checks ---

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	SetDebugMode(true)
	defer SetDebugMode(false)
	buf := captureWarnings(t)

	current := NewEntity("n0")
	for i := 0; i < debugMaxTreeDepth+5; i++ {
		child := NewEntity(fmt.Sprintf("depth_%d", i))
		current.AddChild(child)
		current = child
	}

	if !strings.Contains(buf.String(), "tree depth") {
		t.Errorf("expected tree depth warning, got: %q", buf.String())
	}
}

func TestDebugMode_ChildCountWarning(t *testing.T) {
	SetDebugMode(true)
	defer SetDebugMode(false)
	buf := captureWarnings(t)

	parent := NewEntity("many_children")
	for i := 0; i < debugMaxChildCount+1; i++ {
		parent.AddChild(NewEntity(fmt.Sprintf("c_%d", i)))
	}

	if !strings.Contains(buf.String(), "child count") {
		t.Errorf("expected child count warning, got: %q", buf.String())
	}
}

func TestReleaseMode_NoDepthWarnings(t *testing.T) {
	SetDebugMode(false)
	buf := captureWarnings(t)

	current := NewEntity("n0")
	for i := 0; i < debugMaxTreeDepth+5; i++ {
		child := NewEntity("n")
		current.AddChild(child)
		current = child
	}

	if strings.Contains(buf.String(), "tree depth") {
		t.Error("release mode should skip depth checks")
	}
}
