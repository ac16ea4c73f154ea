package control

import "testing"

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		typ  CommandType
		want string
	}{
		{CmdAdd, "add"},
		{CmdSetEnabled, "setEnabled"},
		{CmdStopAll, "stopAll"},
		{CommandType(-1), "unknown"},
		{CommandType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("CommandType(%d).String() = %q, want %q", int(tt.typ), got, tt.want)
		}
	}
}
