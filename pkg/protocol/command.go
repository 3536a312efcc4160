// Package protocol frames the newline-terminated text protocol spoken between the table and its
// seats. It holds no game state.
package protocol

import (
	"strings"
)

// Command is the first word of a protocol line
type Command string

// server to client
const (
	Welcome        Command = "WELCOME"
	ServerFull     Command = "SERVER_FULL"
	DealerUp       Command = "DEALER_UP"
	YourHand       Command = "YOUR_HAND"
	YourTurn       Command = "YOUR_TURN"
	Hand           Command = "HAND"
	Prompt         Command = "PROMPT"
	Bust           Command = "BUST"
	Blackjack      Command = "BLACKJACK"
	DealerHand     Command = "DEALER_HAND"
	DealerValue    Command = "DEALER_VALUE"
	PlayerValue    Command = "PLAYER_VALUE"
	Result         Command = "RESULT"
	RoundEnd       Command = "ROUND_END"
	UnknownCommand Command = "UNKNOWN_COMMAND"
)

// sent in both directions. Client to server they carry no payload; server to client HIT echoes
// the drawn card and STAND the final value.
const (
	Hit   Command = "HIT"
	Stand Command = "STAND"
)

// PromptText is the payload of PROMPT
const PromptText = "HIT or STAND"

// Encode formats a line, including the trailing newline
func Encode(cmd Command, args ...string) string {
	var sb strings.Builder
	sb.WriteString(string(cmd))
	for _, arg := range args {
		if arg == "" {
			continue
		}

		sb.WriteByte(' ')
		sb.WriteString(arg)
	}

	sb.WriteByte('\n')
	return sb.String()
}

// Normalize strips the line terminator and upper-cases an inbound line
func Normalize(line string) string {
	return strings.ToUpper(strings.TrimRight(line, "\r\n"))
}

// ParseChoice maps an inbound line to HIT or STAND
// The second return value is false for anything else.
func ParseChoice(line string) (Command, bool) {
	switch cmd := Command(Normalize(line)); cmd {
	case Hit, Stand:
		return cmd, true
	}

	return "", false
}

// Line is a decoded server line
type Line struct {
	Command Command
	Payload string
}

// Decode splits a server line into its command and payload
func Decode(line string) Line {
	line = strings.TrimRight(line, "\r\n")
	cmd, payload, _ := strings.Cut(line, " ")

	return Line{
		Command: Command(cmd),
		Payload: payload,
	}
}
