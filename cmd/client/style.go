package main

import (
	"strings"

	"blackjack-server/pkg/protocol"
	"github.com/pterm/pterm"
)

// formatLine styles a server line for the terminal
func formatLine(raw string) string {
	line := protocol.Decode(raw)

	switch line.Command {
	case protocol.Welcome:
		return pterm.LightCyan("Welcome! You are " + line.Payload)
	case protocol.ServerFull:
		return pterm.LightRed("The table is full, try again later")
	case protocol.DealerUp:
		return "Dealer shows " + pterm.Bold.Sprint(line.Payload)
	case protocol.YourHand, protocol.Hand:
		return "Your hand: " + pterm.BgGreen.Sprint(" "+line.Payload+" ")
	case protocol.YourTurn:
		return pterm.LightYellow("Your turn")
	case protocol.Prompt:
		return pterm.LightYellow(line.Payload)
	case protocol.Hit:
		return "You drew " + pterm.Bold.Sprint(line.Payload)
	case protocol.Stand:
		return "You stand on " + line.Payload
	case protocol.Bust:
		return pterm.LightRed("BUST with " + line.Payload)
	case protocol.Blackjack:
		return pterm.LightGreen("BLACKJACK!")
	case protocol.DealerHand:
		return "Dealer's hand: " + pterm.BgGray.Sprint(" "+line.Payload+" ")
	case protocol.DealerValue:
		return "Dealer has " + line.Payload
	case protocol.PlayerValue:
		return "You have " + line.Payload
	case protocol.Result:
		return resultBox(line.Payload)
	case protocol.RoundEnd:
		return pterm.Gray(strings.Repeat("-", 24))
	case protocol.UnknownCommand:
		return pterm.LightRed("Unknown command, type HIT or STAND")
	}

	return raw
}

func resultBox(result string) string {
	var title string
	switch result {
	case "WIN":
		title = pterm.LightGreen("|YOU WIN|")
	case "LOSE":
		title = pterm.LightRed("|YOU LOSE|")
	default:
		title = pterm.LightYellow("|PUSH|")
	}

	return pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTitle(title).WithTitleTopCenter().Sprint(result)
}
