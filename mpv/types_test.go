package mpv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventNames(t *testing.T) {
	assert.Equal(t, "shutdown", EventShutdown.String())
	assert.Equal(t, "get-property-reply", EventGetPropertyReply.String())
	assert.Equal(t, "property-change", EventPropertyChange.String())
	assert.Equal(t, "event-queue-overflow", EventQueueOverflow.String())
	assert.Equal(t, "event(99)", EventID(99).String())
}

func TestFormatNames(t *testing.T) {
	assert.Equal(t, "flag", FormatFlag.String())
	assert.Equal(t, "osd-string", FormatOSDString.String())
	assert.Equal(t, "format(42)", Format(42).String())
}

func TestEndFileReason(t *testing.T) {
	assert.Equal(t, "eof", EndFileEOF.String())
	assert.Equal(t, "error", EndFileError.String())
	assert.Equal(t, "reason(1)", EndFileReason(1).String())
}

func TestPropertyAccessors(t *testing.T) {
	p := &Property{Name: "duration", Format: FormatDouble, Value: 12.5}
	f, ok := p.Float()
	assert.True(t, ok)
	assert.Equal(t, 12.5, f)

	i, ok := p.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(12), i)

	_, ok = p.Flag()
	assert.False(t, ok)

	w := &Property{Name: "width", Format: FormatInt64, Value: int64(1920)}
	f, ok = w.Float()
	assert.True(t, ok)
	assert.Equal(t, 1920.0, f)

	s := &Property{Name: "media-title", Format: FormatString, Value: "clip"}
	title, ok := s.Text()
	assert.True(t, ok)
	assert.Equal(t, "clip", title)

	unavailable := &Property{Name: "duration", Format: FormatDouble}
	_, ok = unavailable.Float()
	assert.False(t, ok)

	var none *Property
	_, ok = none.Text()
	assert.False(t, ok)
}
