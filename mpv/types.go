package mpv

import "fmt"

// Format mirrors mpv_format.
type Format int

const (
	FormatNone Format = iota
	FormatString
	FormatOSDString
	FormatFlag
	FormatInt64
	FormatDouble
	FormatNode
)

var formatNames = [...]string{
	FormatNone:      "none",
	FormatString:    "string",
	FormatOSDString: "osd-string",
	FormatFlag:      "flag",
	FormatInt64:     "int64",
	FormatDouble:    "double",
	FormatNode:      "node",
}

func (f Format) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// EventID mirrors mpv_event_id.
type EventID int

const (
	EventNone             EventID = 0
	EventShutdown         EventID = 1
	EventLogMessage       EventID = 2
	EventGetPropertyReply EventID = 3
	EventSetPropertyReply EventID = 4
	EventCommandReply     EventID = 5
	EventStartFile        EventID = 6
	EventEndFile          EventID = 7
	EventFileLoaded       EventID = 8
	EventIdle             EventID = 11
	EventTick             EventID = 14
	EventClientMessage    EventID = 16
	EventVideoReconfig    EventID = 17
	EventAudioReconfig    EventID = 18
	EventSeek             EventID = 20
	EventPlaybackRestart  EventID = 21
	EventPropertyChange   EventID = 22
	EventQueueOverflow    EventID = 24
	EventHook             EventID = 25
)

var eventNames = map[EventID]string{
	EventNone:             "none",
	EventShutdown:         "shutdown",
	EventLogMessage:       "log-message",
	EventGetPropertyReply: "get-property-reply",
	EventSetPropertyReply: "set-property-reply",
	EventCommandReply:     "command-reply",
	EventStartFile:        "start-file",
	EventEndFile:          "end-file",
	EventFileLoaded:       "file-loaded",
	EventIdle:             "idle",
	EventTick:             "tick",
	EventClientMessage:    "client-message",
	EventVideoReconfig:    "video-reconfig",
	EventAudioReconfig:    "audio-reconfig",
	EventSeek:             "seek",
	EventPlaybackRestart:  "playback-restart",
	EventPropertyChange:   "property-change",
	EventQueueOverflow:    "event-queue-overflow",
	EventHook:             "hook",
}

// String returns the same name as mpv_event_name.
func (id EventID) String() string {
	if name, ok := eventNames[id]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(id))
}

// EndFileReason mirrors mpv_end_file_reason.
type EndFileReason int

const (
	EndFileEOF      EndFileReason = 0
	EndFileStop     EndFileReason = 2
	EndFileQuit     EndFileReason = 3
	EndFileError    EndFileReason = 4
	EndFileRedirect EndFileReason = 5
)

func (r EndFileReason) String() string {
	switch r {
	case EndFileEOF:
		return "eof"
	case EndFileStop:
		return "stop"
	case EndFileQuit:
		return "quit"
	case EndFileError:
		return "error"
	case EndFileRedirect:
		return "redirect"
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// RenderUpdate is the bit set returned by mpv_render_context_update.
type RenderUpdate uint64

// UpdateFrame means a new video frame must be rendered.
const UpdateFrame RenderUpdate = 1 << 0

// Log levels accepted by RequestLogMessages, most to least severe.
var LogLevels = []string{"no", "fatal", "error", "warn", "info", "v", "debug", "trace"}
