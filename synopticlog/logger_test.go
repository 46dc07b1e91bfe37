package synopticlog_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/synoptic-core/synoptic/synopticlog"
)

func TestNew_WritesJSONLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := synopticlog.New(&buf, logrus.InfoLevel)
	log.Info("partition graph built", synopticlog.Fields{"nodes": 3})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "partition graph built", line["msg"])
	require.Equal(t, float64(3), line["nodes"])
}

func TestNew_RespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := synopticlog.New(&buf, logrus.InfoLevel)
	log.Debug("should not appear", nil)
	require.Empty(t, buf.String())
}

func TestNoop_DiscardsEverything(t *testing.T) {
	t.Parallel()

	log := synopticlog.Noop()
	log.Debug("x", nil)
	log.Info("x", nil)
	log.Warn("x", nil)
	log.Error("x", nil)
}
