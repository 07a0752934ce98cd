package tail

import "github.com/tidwall/gjson"

// Entry is one structured log record produced by the agent.
//
// Lines that fail structured decode become raw entries carrying the line
// text in Message; a decode failure must never abort tailing.
type Entry struct {
	Timestamp  string
	Level      string
	Message    string
	Target     string
	Path       string
	Instrument string
	Raw        bool
}

// Decode parses one log line. Valid JSON objects become structured entries
// (missing level defaults to INFO); anything else degrades to a raw entry.
func Decode(line string) Entry {
	if !gjson.Valid(line) {
		return Entry{Message: line, Raw: true}
	}
	r := gjson.Parse(line)
	if !r.IsObject() {
		return Entry{Message: line, Raw: true}
	}

	msg := r.Get("message").String()
	if msg == "" {
		msg = r.Get("fields.message").String()
	}
	level := r.Get("level").String()
	if level == "" {
		level = "INFO"
	}
	return Entry{
		Timestamp:  r.Get("timestamp").String(),
		Level:      level,
		Message:    msg,
		Target:     r.Get("target").String(),
		Path:       r.Get("fields.path").String(),
		Instrument: r.Get("fields.instrument").String(),
	}
}
