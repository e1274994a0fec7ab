package goja

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dop251/goja"
	"github.com/jsil-dev/host-sdk/go/application/initqueue"
	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/domain/errors"
	"github.com/jsil-dev/host-sdk/go/host"
	"github.com/jsil-dev/host-sdk/go/host/registry"
	"github.com/jsil-dev/host-sdk/go/infrastructure/runlater"
	"github.com/jsil-dev/host-sdk/go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	vm       *goja.Runtime
	services *registry.Registry
	queue    *initqueue.Queue
	stdout   *testutil.RecordingWriter
	stderr   *testutil.RecordingWriter
	errs     *testutil.RecordingErrorReporter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &fixture{
		vm:       goja.New(),
		services: registry.New(registry.WithLogger(quiet)),
		queue:    initqueue.New(initqueue.WithLogger(quiet)),
		stdout:   &testutil.RecordingWriter{},
		stderr:   &testutil.RecordingWriter{},
		errs:     &testutil.RecordingErrorReporter{},
	}
	require.NoError(t, f.services.RegisterServices(map[string]any{
		"time":     &testutil.StaticClock{UTC: time.UnixMilli(1700000000123).UTC(), Ticks: 16.5},
		"stdout":   f.stdout,
		"stderr":   f.stderr,
		"error":    f.errs,
		"runLater": runlater.New(runlater.WithLogger(quiet)),
		"keyboard": &testutil.FakeKeyboard{Keys: []string{"KeyW"}},
		"mouse":    &testutil.FakeMouse{Position: entities.Point{X: 7, Y: 9}},
	}))
	h := host.New(f.services, host.WithLogger(quiet), host.WithStackTraces(false))
	require.NoError(t, Install(f.vm, h, WithInitQueue(f.queue), WithLogger(quiet)))
	return f
}

func (f *fixture) run(t *testing.T, script string) goja.Value {
	t.Helper()
	v, err := f.vm.RunString(script)
	require.NoError(t, err)
	return v
}

func TestInstall_LogWriteLine(t *testing.T) {
	f := newFixture(t)
	f.run(t, `JSIL.Host.logWriteLine("hi")`)
	testutil.AssertWrites(t, f.stdout, "hi\n")

	f.run(t, `JSIL.Host.logWrite("raw")`)
	f.run(t, `JSIL.Host.warning("careful")`)
	testutil.AssertWrites(t, f.stdout, "hi\n", "raw")
	testutil.AssertWrites(t, f.stderr, "careful")
}

func TestInstall_Time(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, int64(1700000000123), f.run(t, `JSIL.Host.getTime()`).Export())
	assert.Equal(t, 16.5, f.run(t, `JSIL.Host.getTickCount()`).ToFloat())
	assert.Equal(t, int64(0), f.run(t, `JSIL.Host.getTimezoneOffsetInMilliseconds()`).ToInteger())
	assert.Positive(t, f.run(t, `JSIL.Host.getFileTime()`).ToInteger())
}

func TestInstall_RequiredServiceThrows(t *testing.T) {
	f := newFixture(t)
	msg := f.run(t, `
		var caught = "none";
		try { JSIL.Host.getCanvas(); } catch (e) { caught = e.message; }
		caught`).String()
	assert.Contains(t, msg, "service unavailable")
	assert.Contains(t, msg, "canvas")
}

func TestInstall_Input(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, `["KeyW"]`, f.run(t, `JSON.stringify(JSIL.Host.getHeldKeys())`).String())
	assert.Equal(t, `[]`, f.run(t, `JSON.stringify(JSIL.Host.getHeldMouseButtons())`).String())
	assert.Equal(t, int64(9), f.run(t, `JSIL.Host.getMousePosition().y`).ToInteger())
	assert.True(t, f.run(t, `JSIL.Host.isPageVisible()`).ToBoolean())
}

func TestInstall_RunLater(t *testing.T) {
	f := newFixture(t)
	out := f.run(t, `
		var order = [];
		JSIL.Host.runLater(function () {
			order.push("A");
			JSIL.Host.runLater(function () { order.push("C"); });
		});
		JSIL.Host.runLater(function () { order.push("B"); });
		var flushed = JSIL.Host.runLaterFlush();
		flushed + ":" + order.join("")`).String()
	assert.Equal(t, "true:ABC", out)
}

func TestInstall_RunLaterRejectsNonFunction(t *testing.T) {
	f := newFixture(t)
	_, err := f.vm.RunString(`JSIL.Host.runLater(42)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "callback must be a function")
}

func TestInstall_CallbackExceptionAborts(t *testing.T) {
	f := newFixture(t)
	f.run(t, `
		JSIL.Host.runLater(function () { throw new Error("late failure"); });
		JSIL.Host.runLaterFlush();`)

	require.Len(t, f.errs.Reported, 1)
	assert.EqualError(t, f.errs.Reported[0], "late failure")
	require.NotEmpty(t, f.stderr.Writes())
	assert.Equal(t, "late failure\n", f.stderr.Writes()[0])
}

func TestInstall_Abort(t *testing.T) {
	f := newFixture(t)
	f.run(t, `JSIL.Host.abort(new Error("boom"), "level 3")`)

	writes := f.stderr.Writes()
	require.GreaterOrEqual(t, len(writes), 2)
	assert.Equal(t, "level 3\n", writes[0])
	assert.Equal(t, "boom\n", writes[1])
	require.Len(t, f.errs.Reported, 1)
	assert.EqualError(t, f.errs.Reported[0], "boom")
}

func TestInstall_AssertionFailed(t *testing.T) {
	f := newFixture(t)
	f.run(t, `JSIL.Host.assertionFailed(); JSIL.Host.assertionFailed("bad index")`)

	require.Len(t, f.errs.Reported, 2)
	assert.EqualError(t, f.errs.Reported[0], errors.DefaultAssertionMessage)
	assert.EqualError(t, f.errs.Reported[1], "bad index")
}

func TestInstall_QueueInitCallback(t *testing.T) {
	f := newFixture(t)
	f.run(t, `
		var log = [];
		JSIL.queueInitCallback(function () { log.push("f"); });
		JSIL.queueInitCallback(function () { log.push("g"); });`)
	assert.Equal(t, 2, f.queue.Len())

	require.NoError(t, f.queue.Run())
	assert.Equal(t, "fg", f.run(t, `log.join("")`).String())

	msg := f.run(t, `
		var caught = "none";
		try { JSIL.queueInitCallback(function () {}); } catch (e) { caught = e.message; }
		caught`).String()
	assert.Contains(t, msg, "already run")
}

func TestInstall_ScheduleTickAndPerformance(t *testing.T) {
	f := newFixture(t)
	scheduler := &testutil.RecordingScheduler{}
	reporter := &testutil.RecordingReporter{}
	require.NoError(t, f.services.Register("tickScheduler", scheduler))
	require.NoError(t, f.services.Register("performanceReporter", reporter))

	f.run(t, `
		var ticks = 0;
		JSIL.Host.scheduleTick(function () { ticks++; });
		JSIL.Host.reportPerformance(2.5, 1, 10, true);`)

	require.Len(t, scheduler.Callbacks, 1)
	scheduler.Callbacks[0]()
	assert.Equal(t, int64(1), f.run(t, `ticks`).ToInteger())

	require.Len(t, reporter.Samples, 1)
	assert.Equal(t, 2500*time.Microsecond, reporter.Samples[0].Draw)
	assert.True(t, reporter.Samples[0].IsGPUPath)
}

func TestInstall_ExtendsExistingGlobal(t *testing.T) {
	vm := goja.New()
	_, err := vm.RunString(`var JSIL = { version: "1.0" };`)
	require.NoError(t, err)

	require.NoError(t, Install(vm, host.New(registry.New())))

	v, err := vm.RunString(`JSIL.version + ":" + typeof JSIL.Host.getTime + ":" + typeof JSIL.queueInitCallback`)
	require.NoError(t, err)
	assert.Equal(t, "1.0:function:undefined", v.String())
}

func TestInstall_CustomGlobalName(t *testing.T) {
	vm := goja.New()
	require.NoError(t, Install(vm, host.New(registry.New()), WithGlobalName("Runtime")))

	v, err := vm.RunString(`typeof Runtime.Host.logWriteLine`)
	require.NoError(t, err)
	assert.Equal(t, "function", v.String())
}

func TestInstall_RequiresRuntimeAndHost(t *testing.T) {
	assert.Error(t, Install(nil, host.New(registry.New())))
	assert.Error(t, Install(goja.New(), nil))
}

func TestDefineMethods(t *testing.T) {
	vm := goja.New()
	noop := func(goja.FunctionCall) goja.Value { return goja.Undefined() }

	t.Run("defines every method", func(t *testing.T) {
		obj := vm.NewObject()
		require.NoError(t, defineMethods(obj, map[string]func(goja.FunctionCall) goja.Value{
			"a": noop,
			"b": noop,
		}))
		assert.ElementsMatch(t, []string{"a", "b"}, obj.Keys())
	})

	t.Run("reports the failing method", func(t *testing.T) {
		frozen, err := vm.RunString("Object.freeze({})")
		require.NoError(t, err)
		err = defineMethods(frozen.ToObject(vm), map[string]func(goja.FunctionCall) goja.Value{
			"alpha": noop,
			"beta":  noop,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "method alpha")
	})
}
