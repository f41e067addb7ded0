package commitmsg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kilupskalvis/gitgud/internal/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const featureDiff = "diff --git a/lib.py b/lib.py\n+def my_feature(x):\n+    return x"

func TestGenerator_HeuristicOnly(t *testing.T) {
	msg := NewGenerator(nil, nil).Generate(context.Background(), featureDiff, nil)
	assert.Equal(t, "feat: implement my_feature", msg)
}

func TestGenerator_PrefersModel(t *testing.T) {
	srv := newModelServer(t, `{"type":"feat","message":"double inputs"}`, nil)

	msg := NewGenerator(newTestModel(srv.URL, 0), nil).Generate(context.Background(), featureDiff, nil)
	assert.Equal(t, "feat: double inputs", msg)
}

func TestGenerator_ModelUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	msg := NewGenerator(newTestModel(url, 0), nil).Generate(context.Background(), featureDiff, nil)
	assert.Equal(t, "feat: implement my_feature", msg)
}

func TestGenerator_ModelFailureFallsBack(t *testing.T) {
	srv := newModelServer(t, "no idea", nil)
	core, logs := observer.New(zapcore.WarnLevel)

	msg := NewGenerator(newTestModel(srv.URL, 0), zap.New(core)).Generate(context.Background(), featureDiff, nil)
	assert.True(t, strings.HasPrefix(msg, "feat: implement my_feature"))
	assert.Equal(t, 1, logs.Len())
}

func TestGenerator_NothingToDescribe(t *testing.T) {
	msg := NewGenerator(nil, nil).Generate(context.Background(), "", &models.RepositoryStatus{})
	assert.Equal(t, "", msg)
}
