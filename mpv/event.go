package mpv

// Event is a copy of an mpv_event. The libmpv-owned memory is not
// retained, so events stay valid after the next WaitEvent.
type Event struct {
	ID            EventID
	Error         error
	ReplyUserdata uint64

	// Set for EventGetPropertyReply and EventPropertyChange.
	Property *Property
	// Set for EventLogMessage.
	LogMessage *LogMessage
	// Set for EventEndFile.
	EndFile *EndFile
}

// Property carries a property value. Value is nil, string, bool, int64
// or float64 depending on Format; nil means the property is unavailable.
type Property struct {
	Name   string
	Format Format
	Value  interface{}
}

type LogMessage struct {
	Prefix string
	Level  string
	Text   string
}

type EndFile struct {
	Reason EndFileReason
	Error  error
}

// Float returns the value as float64, converting int64 values.
func (p *Property) Float() (float64, bool) {
	if p == nil {
		return 0, false
	}
	switch v := p.Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Int returns the value as int64, truncating float64 values.
func (p *Property) Int() (int64, bool) {
	if p == nil {
		return 0, false
	}
	switch v := p.Value.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	}
	return 0, false
}

func (p *Property) Flag() (bool, bool) {
	if p == nil {
		return false, false
	}
	v, ok := p.Value.(bool)
	return v, ok
}

// Text returns a string or OSD string value.
func (p *Property) Text() (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.Value.(string)
	return v, ok
}
