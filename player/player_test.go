package player

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dejadejade/glmpv/mpv"
	"github.com/dejadejade/glmpv/query"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type harness struct {
	t      *testing.T
	player *Player
	master *fakeHandle
	client *fakeHandle
	notify chan func()
	closed []string
}

func newHarness(t *testing.T, withClient bool) *harness {
	h := &harness{t: t, notify: make(chan func(), 16)}
	h.master = newFake("master", &h.closed)
	var client handle
	if withClient {
		h.client = newFake("client", &h.closed)
		client = h.client
	} else {
		h.client = h.master
	}
	h.player = newPlayer(Options{File: "clip.mkv", Logger: quietLogger(), Notify: h.notify}, h.master, client)
	return h
}

// next runs the next callback posted to the draw loop.
func (h *harness) next() {
	h.t.Helper()
	select {
	case fn := <-h.notify:
		fn()
	case <-time.After(2 * time.Second):
		h.t.Fatal("no callback posted")
	}
}

func (h *harness) waitGet(name string) getCall {
	h.t.Helper()
	var call getCall
	require.Eventually(h.t, func() bool {
		var ok bool
		call, ok = h.client.lastGet(name)
		return ok
	}, 2*time.Second, time.Millisecond, "no query for %s", name)
	return call
}

func TestStartObservesAndLoads(t *testing.T) {
	h := newHarness(t, false)
	require.NoError(t, h.player.Start(context.Background()))
	defer h.player.Close()

	assert.Equal(t, []string{"pause", "time-pos", "duration"}, h.master.observed)
	assert.Equal(t, [][]string{{"loadfile", "clip.mkv"}}, h.master.commandList())

	assert.Equal(t, errStarted, h.player.Start(context.Background()))
}

func TestPropertyChanges(t *testing.T) {
	h := newHarness(t, false)
	var got []State
	h.player.OnChange(func(s State) { got = append(got, s) })
	require.NoError(t, h.player.Start(context.Background()))
	defer h.player.Close()

	h.master.push(
		&mpv.Event{ID: mpv.EventPropertyChange, ReplyUserdata: observeDuration,
			Property: &mpv.Property{Name: "duration", Format: mpv.FormatDouble, Value: 90.0}},
		&mpv.Event{ID: mpv.EventPropertyChange, ReplyUserdata: observeTimePos,
			Property: &mpv.Property{Name: "time-pos", Format: mpv.FormatDouble, Value: 61.5}},
		&mpv.Event{ID: mpv.EventPropertyChange, ReplyUserdata: observePause,
			Property: &mpv.Property{Name: "pause", Format: mpv.FormatFlag, Value: true}},
	)
	h.next()
	h.next()
	h.next()

	require.Len(t, got, 3)
	last := got[2]
	assert.Equal(t, 90*time.Second, last.Duration)
	assert.Equal(t, 61500*time.Millisecond, last.Position)
	assert.True(t, last.Paused)
	assert.Equal(t, last, h.player.State())
}

func TestUnchangedPropertyIsNotReported(t *testing.T) {
	h := newHarness(t, false)
	calls := 0
	h.player.OnChange(func(State) { calls++ })
	require.NoError(t, h.player.Start(context.Background()))
	defer h.player.Close()

	pause := &mpv.Event{ID: mpv.EventPropertyChange,
		Property: &mpv.Property{Name: "pause", Format: mpv.FormatFlag, Value: false}}
	h.master.push(pause)

	h.master.push(&mpv.Event{ID: mpv.EventPropertyChange,
		Property: &mpv.Property{Name: "pause", Format: mpv.FormatFlag, Value: true}})
	h.next()
	assert.Equal(t, 1, calls)
}

func TestQueryThroughClient(t *testing.T) {
	h := newHarness(t, true)
	require.NoError(t, h.player.Start(context.Background()))
	defer h.player.Close()

	var reply query.Reply
	require.NoError(t, h.player.Query("volume", mpv.FormatDouble, func(r query.Reply) { reply = r }))

	call := h.waitGet("volume")
	assert.Equal(t, mpv.FormatDouble, call.format)
	assert.GreaterOrEqual(t, call.userdata, query.Base)
	_, onMaster := h.master.lastGet("volume")
	assert.False(t, onMaster)

	h.client.push(&mpv.Event{ID: mpv.EventGetPropertyReply, ReplyUserdata: call.userdata,
		Property: &mpv.Property{Name: "volume", Format: mpv.FormatDouble, Value: 80.0}})
	h.next()

	assert.NoError(t, reply.Err)
	assert.Equal(t, 80.0, reply.Value)
}

func TestQueryUnavailable(t *testing.T) {
	h := newHarness(t, false)
	require.NoError(t, h.player.Start(context.Background()))
	defer h.player.Close()

	var reply query.Reply
	require.NoError(t, h.player.Query("duration", mpv.FormatDouble, func(r query.Reply) { reply = r }))
	call := h.waitGet("duration")

	h.master.push(&mpv.Event{ID: mpv.EventGetPropertyReply, ReplyUserdata: call.userdata,
		Property: &mpv.Property{Name: "duration", Format: mpv.FormatNone}})
	h.next()
	assert.Equal(t, mpv.ErrPropertyUnavailable, reply.Err)
}

func TestFileLoadedRefreshesTitle(t *testing.T) {
	h := newHarness(t, true)
	var titles []string
	h.player.OnChange(func(s State) { titles = append(titles, s.Title) })
	require.NoError(t, h.player.Start(context.Background()))
	defer h.player.Close()

	h.master.push(&mpv.Event{ID: mpv.EventFileLoaded})
	call := h.waitGet("media-title")
	h.waitGet("duration")

	h.client.push(&mpv.Event{ID: mpv.EventGetPropertyReply, ReplyUserdata: call.userdata,
		Property: &mpv.Property{Name: "media-title", Format: mpv.FormatString, Value: "Big Buck Bunny"}})
	h.next()

	assert.Equal(t, []string{"Big Buck Bunny"}, titles)
	assert.Equal(t, "Big Buck Bunny  00:00:00 / 00:00:00", h.player.State().Status())
}

func TestBroadcastEventsHandledOnce(t *testing.T) {
	h := newHarness(t, true)
	require.NoError(t, h.player.Start(context.Background()))
	defer h.player.Close()

	// libmpv sends playback events to every client of the core
	for _, f := range []*fakeHandle{h.client, h.master} {
		f.push(&mpv.Event{ID: mpv.EventFileLoaded}, &mpv.Event{ID: mpv.EventVideoReconfig}, &mpv.Event{ID: mpv.EventTick})
	}
	// the trailing tick is taken only after the events before it were handled
	require.Eventually(t, func() bool {
		return h.master.queued() == 0 && h.client.queued() == 0
	}, 2*time.Second, time.Millisecond)
	h.waitGet("height")

	assert.Equal(t, 1, h.client.getCount("media-title"))
	assert.Equal(t, 1, h.client.getCount("duration"))
	assert.Equal(t, 1, h.client.getCount("width"))
	assert.Equal(t, 1, h.client.getCount("height"))
	assert.Equal(t, 0, h.master.getCount("media-title"))
}

func TestVideoReconfigQueriesSize(t *testing.T) {
	h := newHarness(t, true)
	var size [2]int
	h.player.OnChange(func(s State) { size = [2]int{s.Width, s.Height} })
	require.NoError(t, h.player.Start(context.Background()))
	defer h.player.Close()

	h.master.push(&mpv.Event{ID: mpv.EventVideoReconfig})
	w := h.waitGet("width")
	ht := h.waitGet("height")

	h.client.push(&mpv.Event{ID: mpv.EventGetPropertyReply, ReplyUserdata: ht.userdata,
		Property: &mpv.Property{Name: "height", Format: mpv.FormatInt64, Value: int64(1080)}})
	h.client.push(&mpv.Event{ID: mpv.EventGetPropertyReply, ReplyUserdata: w.userdata,
		Property: &mpv.Property{Name: "width", Format: mpv.FormatInt64, Value: int64(1920)}})
	h.next()

	assert.Equal(t, [2]int{1920, 1080}, size)
}

func TestVideoSizeCallback(t *testing.T) {
	h := newHarness(t, false)
	require.NoError(t, h.player.Start(context.Background()))
	defer h.player.Close()

	var got [2]int
	require.NoError(t, h.player.QueryVideoSize(func(w, h int) { got = [2]int{w, h} }))
	w := h.waitGet("width")
	ht := h.waitGet("height")

	h.master.push(
		&mpv.Event{ID: mpv.EventGetPropertyReply, ReplyUserdata: w.userdata,
			Property: &mpv.Property{Name: "width", Format: mpv.FormatInt64, Value: int64(640)}},
		&mpv.Event{ID: mpv.EventGetPropertyReply, ReplyUserdata: ht.userdata,
			Property: &mpv.Property{Name: "height", Format: mpv.FormatInt64, Value: int64(360)}},
	)
	h.next()
	assert.Equal(t, [2]int{640, 360}, got)
}

func TestShutdown(t *testing.T) {
	h := newHarness(t, true)
	shutdowns := 0
	h.player.OnShutdown(func() { shutdowns++ })
	require.NoError(t, h.player.Start(context.Background()))

	h.master.push(&mpv.Event{ID: mpv.EventShutdown})
	h.client.push(&mpv.Event{ID: mpv.EventShutdown})
	h.next()

	h.player.Close()
	assert.Equal(t, 1, shutdowns)
	select {
	case <-h.notify:
		t.Fatal("shutdown reported twice")
	default:
	}
}

func TestCloseOrder(t *testing.T) {
	h := newHarness(t, true)
	require.NoError(t, h.player.Start(context.Background()))

	var reply query.Reply
	require.NoError(t, h.player.Query("duration", mpv.FormatDouble, func(r query.Reply) { reply = r }))

	h.player.Close()
	h.player.Close()

	assert.Equal(t, []string{"close client", "close master"}, h.closed)
	assert.Zero(t, h.player.queries.Pending())
	assert.Nil(t, reply.Value)

	err := h.player.Query("duration", mpv.FormatDouble, nil)
	assert.Equal(t, query.ErrClosed, err)
}

func TestCommands(t *testing.T) {
	h := newHarness(t, false)

	require.NoError(t, h.player.TogglePause())
	require.NoError(t, h.player.Seek(-5))
	require.NoError(t, h.player.Keypress("Ctrl+LEFT"))
	require.NoError(t, h.player.Quit())

	assert.Equal(t, [][]string{
		{"cycle", "pause"},
		{"seek", "-5", "relative"},
		{"keypress", "Ctrl+LEFT"},
		{"quit"},
	}, h.master.commandList())
}

func TestStatus(t *testing.T) {
	s := State{Position: 61 * time.Second, Duration: 2*time.Hour + 3*time.Minute + 4*time.Second}
	assert.Equal(t, "glmpv  00:01:01 / 02:03:04", s.Status())

	s.Title, s.Paused = "clip", true
	assert.Equal(t, "clip  00:01:01 / 02:03:04  (paused)", s.Status())

	assert.Equal(t, time.Duration(0), seconds(-1))
}
