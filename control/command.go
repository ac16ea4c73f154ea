// Package control defines the intents the UI sends to the application
// command loop. The loop forwards them to the macro engine in the order they
// were enqueued.
package control

import "KeyPulse/key"

// CommandType enumerates supported intents.
type CommandType int

const (
	CmdAdd CommandType = iota
	CmdRemove
	CmdSetEnabled
	CmdStartOne
	CmdStopOne
	CmdStartAll
	CmdStopAll
)

var commandNames = [...]string{
	CmdAdd:        "add",
	CmdRemove:     "remove",
	CmdSetEnabled: "setEnabled",
	CmdStartOne:   "startOne",
	CmdStopOne:    "stopOne",
	CmdStartAll:   "startAll",
	CmdStopAll:    "stopAll",
}

func (t CommandType) String() string {
	if t >= 0 && int(t) < len(commandNames) {
		return commandNames[t]
	}
	return "unknown"
}

// Draft is the payload of CmdAdd.
type Draft struct {
	DisplayName     string
	Key             key.Token
	IntervalSeconds float64
}

// Command is the message sent from the UI to AppManager.commandLoop. The
// optional Reply channel receives the outcome of the intent; it should be
// buffered so the loop never blocks on it.
type Command struct {
	Type    CommandType
	ID      string // target macro, for per-macro intents
	Enabled bool   // CmdSetEnabled only
	Draft   Draft  // CmdAdd only
	Reply   chan error
}
