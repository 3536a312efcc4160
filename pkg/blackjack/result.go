package blackjack

// Result is a seat's outcome against the dealer
type Result string

// Result constants
const (
	Win  Result = "WIN"
	Lose Result = "LOSE"
	Push Result = "PUSH"
)

// Settle compares a player value against the dealer value
// A player bust loses even if the dealer also busts.
func Settle(playerValue, dealerValue int) Result {
	switch {
	case playerValue > Blackjack:
		return Lose
	case dealerValue > Blackjack:
		return Win
	case playerValue > dealerValue:
		return Win
	case playerValue < dealerValue:
		return Lose
	}

	return Push
}
