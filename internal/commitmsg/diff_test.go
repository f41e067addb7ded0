package commitmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleDiff = `diff --git a/app/service.py b/app/service.py
index 3b18e51..a9c2f4d 100644
--- a/app/service.py
+++ b/app/service.py
@@ -1,3 +1,9 @@
 import os
+def my_feature(x):
+    return x * 2
+
+class Handler:
+    pass
diff --git a/main.go b/main.go
--- a/main.go
+++ b/main.go
@@ -1 +1,3 @@
+func run() error {
+	return nil
+}
+func extra() {}


Untracked files:
  docs/guide.md
  app/new_module.py`

func TestParseDiff(t *testing.T) {
	s := ParseDiff(sampleDiff)

	assert.Equal(t, []string{"app/service.py", "main.go"}, s.Files)
	assert.Equal(t, []string{"docs/guide.md", "app/new_module.py"}, s.Untracked)
	assert.Equal(t, []string{"my_feature", "Handler", "run"}, s.Declarations, "capped at three")
	assert.Contains(t, s.Changed, "    return x * 2")
	assert.NotContains(t, s.Changed, "++ b/main.go")
}

func TestParseDiff_IgnoresIndentedDeclarations(t *testing.T) {
	s := ParseDiff("+    def helper(self):\n+        pass")
	assert.Empty(t, s.Declarations)
}

func TestParseDiff_GoMethodReceiver(t *testing.T) {
	s := ParseDiff("+func (s *Server) Start() error {")
	assert.Equal(t, []string{"Start"}, s.Declarations)
}

func TestParseDiff_Empty(t *testing.T) {
	s := ParseDiff("")
	assert.Empty(t, s.Files)
	assert.Empty(t, s.AllFiles())
}

func TestDiffSummary_AllFilesDeduplicates(t *testing.T) {
	s := DiffSummary{Files: []string{"a", "b"}, Untracked: []string{"b", "c"}}
	assert.Equal(t, []string{"a", "b", "c"}, s.AllFiles())
}
