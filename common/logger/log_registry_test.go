package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLogRegistryLevels(t *testing.T) {
	registry, err := NewLogRegistry("Fetcher=debug, *=warning")
	require.NoError(t, err)
	require.Equal(t, logrus.DebugLevel, registry.GetLogLevel("Fetcher"))
	require.Equal(t, logrus.WarnLevel, registry.GetLogLevel("Converter"))

	registry.SetDefaultLogLevel(logrus.TraceLevel)
	require.Equal(t, logrus.TraceLevel, registry.GetLogLevel("Converter"))
	require.Equal(t, logrus.DebugLevel, registry.GetLogLevel("Fetcher"))
}

func TestSetDefaultLogLevelUpdatesRegisteredLoggers(t *testing.T) {
	registry, err := NewLogRegistry("Fetcher=debug")
	require.NoError(t, err)
	fetcherLog := logrus.New()
	converterLog := logrus.New()
	registry.RegisterLogger("Fetcher", fetcherLog)
	registry.RegisterLogger("Converter", converterLog)

	registry.SetDefaultLogLevel(logrus.ErrorLevel)
	require.Equal(t, logrus.ErrorLevel, converterLog.GetLevel())
	require.Equal(t, logrus.InfoLevel, fetcherLog.GetLevel())
}

func TestLogRegistryInvalidConfig(t *testing.T) {
	_, err := NewLogRegistry("Fetcher")
	require.Error(t, err)
	_, err = NewLogRegistry("Fetcher=loud")
	require.Error(t, err)
}

func TestLogrusLogFactoryJSON(t *testing.T) {
	registry, err := NewLogRegistry("")
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	log := MakeLogrusLogFactory(registry, buf, false)("Converter")

	log.Debug("hidden")
	require.Zero(t, buf.Len())

	log.WithField("job", "foo").Info("converted")
	line := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "converted", line["msg"])
	require.Equal(t, "foo", line["job"])
	require.Equal(t, "Converter", line["system"])
}
