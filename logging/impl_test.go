package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestConsoleOutputFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewBlankLogger("builder")
	logger.AddAppender(NewWriterAppender(&buf))

	logger.Infof("built %d links", 3)
	line := strings.TrimSuffix(buf.String(), "\n")
	parts := strings.Split(line, "\t")
	test.That(t, len(parts), test.ShouldEqual, 5)
	test.That(t, len(parts[0]), test.ShouldEqual, len("2006-01-02T15:04:05.000Z"))
	test.That(t, parts[1], test.ShouldEqual, "INFO")
	test.That(t, parts[2], test.ShouldEqual, "builder")
	test.That(t, parts[3], test.ShouldStartWith, "logging/impl_test.go:")
	test.That(t, parts[4], test.ShouldEqual, "built 3 links")

	buf.Reset()
	logger.Debugw("resolved joint", "joint", "elbow", "parent", "upper_arm")
	parts = strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\t")
	test.That(t, len(parts), test.ShouldEqual, 6)
	test.That(t, parts[5], test.ShouldEqual, `{"joint":"elbow","parent":"upper_arm"}`)
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewBlankLogger("")
	logger.AddAppender(NewWriterAppender(&buf))
	logger.SetLevel(WARN)

	logger.Debug("dropped")
	logger.Infow("dropped", "joint", "elbow")
	test.That(t, buf.Len(), test.ShouldEqual, 0)

	logger.SetLevel(INFO)
	logger.Debugf("dropped %d", 1)
	test.That(t, buf.Len(), test.ShouldEqual, 0)
	logger.Info("kept")
	test.That(t, buf.String(), test.ShouldContainSubstring, "INFO")
	test.That(t, logger.GetLevel(), test.ShouldEqual, INFO)

	level, err := LevelFromString("ERROR")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, level, test.ShouldEqual, ERROR)
	_, err = LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)

	var parsed Level
	test.That(t, parsed.UnmarshalJSON([]byte(`"debug"`)), test.ShouldBeNil)
	test.That(t, parsed, test.ShouldEqual, DEBUG)
	out, err := WARN.MarshalJSON()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(out), test.ShouldEqual, `"warn"`)
}

func TestSubloggerAndObserver(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	sub := logger.Sublogger("resolver").Sublogger("mimic")

	sub.Infow("cycle", "joints", []string{"a", "b"})
	test.That(t, logs.Len(), test.ShouldEqual, 1)
	entry := logs.All()[0]
	test.That(t, entry.LoggerName, test.ShouldEqual, "resolver.mimic")
	test.That(t, entry.Message, test.ShouldEqual, "cycle")
	test.That(t, entry.ContextMap()["joints"], test.ShouldResemble, []interface{}{"a", "b"})
	test.That(t, logger.Sync(), test.ShouldBeNil)
}
