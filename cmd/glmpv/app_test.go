package main

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dejadejade/glmpv/mpv"
)

func TestSingleFile(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  string
	}{
		{"none", nil, "pass a single media file as argument"},
		{"one", []string{"clip.mkv"}, ""},
		{"two", []string{"a.mkv", "b.mkv"}, "pass a single media file as argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := singleFile(simpleCmd, tt.args)
			if tt.err == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.err)
		})
	}
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"mpv", mpv.ErrVOInitFailed, "mpv API error: video output initialization failed"},
		{"wrapped mpv", errors.Wrap(mpv.ErrNoMem, "failed creating context"), "mpv API error: failed creating context: memory allocation failed"},
		{"other", errors.New("glfw.Init failed"), "glfw.Init failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, apiError(tt.err), tt.want)
		})
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "simple", modeSimple.String())
	assert.Equal(t, "fbo", modeFBO.String())
	assert.Equal(t, "cube", modeCube.String())
	assert.Equal(t, "mode(7)", mode(7).String())
	assert.Equal(t, "cube FILE", cubeCmd.Use)
}

func TestPresents(t *testing.T) {
	tests := []struct {
		mode            mode
		rendered, dirty bool
		want            bool
	}{
		{modeSimple, false, true, false},
		{modeSimple, true, false, true},
		{modeSimple, false, false, false},
		{modeFBO, false, true, true},
		{modeFBO, true, false, true},
		{modeFBO, false, false, false},
		{modeCube, false, true, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.mode.presents(tt.rendered, tt.dirty),
			"%s rendered=%v dirty=%v", tt.mode, tt.rendered, tt.dirty)
	}
}

func TestWaitFor(t *testing.T) {
	assert.Equal(t, waitTimeout, waitFor(false, true))
	assert.Equal(t, waitTimeout, waitFor(false, false))
	assert.Equal(t, time.Duration(0), waitFor(true, true))
	assert.Equal(t, frameTime, waitFor(true, false))
}

func TestWakeOnCancel(t *testing.T) {
	var woken atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	stop := wakeOnCancel(ctx, func() { woken.Add(1) })

	cancel()
	require.Eventually(t, func() bool { return woken.Load() == 1 }, 2*time.Second, time.Millisecond)
	stop()
	stop()
	assert.Equal(t, int32(1), woken.Load())
}

func TestWakeOnCancelAfterStop(t *testing.T) {
	var woken atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	stop := wakeOnCancel(ctx, func() { woken.Add(1) })

	stop()
	cancel()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(0), woken.Load())
}
