package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

type poseSummary struct {
	Poses  int
	Format string
	path   string
}

type namedPoint struct {
	Name string
	At   struct {
		X, Y, Z float64
	}
	index int
}

func newBufferLogger(buf *bytes.Buffer, level Level) *impl {
	return &impl{"", NewAtomicLevelAt(level), true, []Appender{NewWriterAppender(buf)}}
}

// assertLogMatches will fuzzy match log lines. Notably, this checks the time format, but ignores
// the exact time. And it expects a match on the filename, but the exact line number can be wrong.
func assertLogMatches(t *testing.T, actual *bytes.Buffer, expected string) {
	t.Helper()

	output, err := actual.ReadString('\n')
	test.That(t, err, test.ShouldBeNil)

	actualParts := strings.Split(strings.TrimSuffix(output, "\n"), "\t")
	expectedParts := strings.Split(expected, "\t")
	// Use the length of the first string as a weak verification of checking that the result looks like a date.
	test.That(t, len(actualParts[0]), test.ShouldEqual, len(expectedParts[0]))
	test.That(t, actualParts[1], test.ShouldEqual, expectedParts[1])

	actualFilename, actualLineNumber, found := strings.Cut(actualParts[2], ":")
	test.That(t, found, test.ShouldBeTrue)
	expectedFilename, _, found := strings.Cut(expectedParts[2], ":")
	test.That(t, found, test.ShouldBeTrue)
	test.That(t, actualFilename, test.ShouldEqual, expectedFilename)
	_, err = strconv.Atoi(actualLineNumber)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, actualParts[3], test.ShouldEqual, expectedParts[3])

	test.That(t, len(actualParts), test.ShouldEqual, len(expectedParts))
	if len(actualParts) == 4 {
		return
	}

	// Map iteration order is not stable, compare the decoded fields instead.
	expectedMap := make(map[string]any)
	test.That(t, json.Unmarshal([]byte(expectedParts[4]), &expectedMap), test.ShouldBeNil)
	actualMap := make(map[string]any)
	test.That(t, json.Unmarshal([]byte(actualParts[4]), &actualMap), test.ShouldBeNil)
	test.That(t, actualMap, test.ShouldResemble, expectedMap)
}

// Lines match the console encoder of NewZapLoggerConfig, e.g:
//
//	2023-10-30T09:12:09.459Z	INFO	logging/impl_test.go:87	read trajectory
func TestConsoleOutputFormat(t *testing.T) {
	notStdout := &bytes.Buffer{}
	logger := newBufferLogger(notStdout, DEBUG)

	logger.Info("read trajectory")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	INFO	logging/impl_test.go:67	read trajectory`)

	logger.Debugf("read %d poses", 12)
	assertLogMatches(t, notStdout,
		`2023-10-30T09:45:20.764Z	DEBUG	logging/impl_test.go:131	read 12 poses`)

	logger.Warnw("skipping bone", "bone", "Neck-RShoulder")
	assertLogMatches(t, notStdout,
		`2023-10-30T13:19:45.806Z	WARN	logging/impl_test.go:132	skipping bone	{"bone":"Neck-RShoulder"}`)

	// Only exported fields are serialized.
	logger.Infow("summary", "key", "val", "summary", poseSummary{12, "kitti", "/tmp/x"})
	assertLogMatches(t, notStdout,
		`2023-10-30T13:20:47.129Z	INFO	logging/impl_test.go:121	summary	{"summary":{"Poses":12,"Format":"kitti"},"key":"val"}`)

	point := namedPoint{Name: "center", index: 3}
	point.At.X = 1
	logger.Errorw("bad point", "point", point)
	assertLogMatches(t, notStdout,
		`2023-10-30T13:20:47.129Z	ERROR	logging/impl_test.go:123	bad point	{"point":{"Name":"center","At":{"X":1,"Y":0,"Z":0}}}`)

	logger.Infow("formatted", "point", fmt.Sprintf("%+v", point.At))
	assertLogMatches(t, notStdout,
		`2023-10-30T13:20:47.129Z	INFO	logging/impl_test.go:127	formatted	{"point":"{X:1 Y:0 Z:0}"}`)

	// A key without a value still shows up.
	logger.Infow("unpaired", "dangling")
	assertLogMatches(t, notStdout,
		`2023-10-30T13:20:47.129Z	INFO	logging/impl_test.go:127	unpaired	{"dangling":"unpaired log key"}`)
}

func TestLevels(t *testing.T) {
	notStdout := &bytes.Buffer{}
	logger := newBufferLogger(notStdout, WARN)

	logger.Debug("hidden")
	logger.Info("hidden")
	test.That(t, notStdout.Len(), test.ShouldEqual, 0)

	logger.Warn("shown")
	assertLogMatches(t, notStdout, `2023-10-30T09:12:09.459Z	WARN	logging/impl_test.go:1	shown`)

	logger.SetLevel(DEBUG)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
	logger.Debug("now shown")
	assertLogMatches(t, notStdout, `2023-10-30T09:12:09.459Z	DEBUG	logging/impl_test.go:1	now shown`)
}

func TestSublogger(t *testing.T) {
	notStdout := &bytes.Buffer{}
	parent := newBufferLogger(notStdout, INFO)
	parent.name = "poseutils"

	child := parent.Sublogger("plots")
	child.Info("saved")
	test.That(t, notStdout.String(), test.ShouldContainSubstring, "\tposeutils.plots\t")

	// the sublogger's level is independent from its parent
	child.SetLevel(ERROR)
	test.That(t, parent.GetLevel(), test.ShouldEqual, INFO)

	unnamed := newBufferLogger(notStdout, INFO).Sublogger("cli")
	test.That(t, unnamed.(*impl).name, test.ShouldEqual, "cli")
	test.That(t, unnamed.(*impl).inUTC, test.ShouldBeTrue)
}

func TestAsZap(t *testing.T) {
	notStdout := &bytes.Buffer{}
	logger := newBufferLogger(notStdout, INFO)

	zapLogger := logger.AsZap()
	zapLogger.Debug("hidden")
	test.That(t, notStdout.Len(), test.ShouldEqual, 0)
	zapLogger.With("poses", 3).Info("through zap")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	INFO	logging/impl_test.go:1	through zap	{"poses":3}`)

	// level changes on the logger apply to loggers handed out earlier
	logger.SetLevel(ERROR)
	zapLogger.Warn("hidden")
	test.That(t, notStdout.Len(), test.ShouldEqual, 0)
	test.That(t, logger.Sync(), test.ShouldBeNil)
}

func TestObservedTestLogger(t *testing.T) {
	logger, observed := NewObservedTestLogger(t)
	logger.Infow("flipped", "axis", 2)
	logger.Sublogger("trajectory").Debug("read")

	test.That(t, observed.Len(), test.ShouldEqual, 2)
	entries := observed.All()
	test.That(t, entries[0].Message, test.ShouldEqual, "flipped")
	test.That(t, entries[0].ContextMap()["axis"], test.ShouldEqual, int64(2))
	test.That(t, entries[1].LoggerName, test.ShouldEqual, "trajectory")
	test.That(t, entries[1].Level, test.ShouldEqual, zapcore.DebugLevel)
	test.That(t, observed.FilterMessage("read").Len(), test.ShouldEqual, 1)
}

func TestLevelParsing(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warning", WARN},
		{"warn", WARN},
		{"error", ERROR},
	} {
		level, err := LevelFromString(tc.in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, tc.expected)
	}
	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldBeError, `unknown log level: "loud"`)

	var cfg struct {
		Level Level `json:"level"`
	}
	test.That(t, json.Unmarshal([]byte(`{"level":"warn"}`), &cfg), test.ShouldBeNil)
	test.That(t, cfg.Level, test.ShouldEqual, WARN)
	test.That(t, json.Unmarshal([]byte(`{"level":"nope"}`), &cfg), test.ShouldNotBeNil)

	out, err := json.Marshal(cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(out), test.ShouldEqual, `{"level":"warn"}`)

	test.That(t, DEBUG.AsZap(), test.ShouldEqual, zapcore.DebugLevel)
	test.That(t, ERROR.AsZap(), test.ShouldEqual, zapcore.ErrorLevel)
	test.That(t, Level(7).String(), test.ShouldEqual, "Unknown")
}
