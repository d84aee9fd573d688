// Command cli plays a hotseat game of Love Letter in the terminal,
// passing the keyboard between players.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"loveletter/internal/cards"
	"loveletter/internal/engine"
	"loveletter/internal/random"
)

var stdin = bufio.NewScanner(os.Stdin)

func main() {
	winnerStarts := flag.Bool("winner-starts", false, "winner of a round starts the next one")
	seed := flag.Int64("seed", 0, "RNG seed, 0 picks a random one")
	flag.Parse()

	names := flag.Args()
	if len(names) == 0 {
		names = promptNames()
	}
	if len(names) < 2 || len(names) > 4 {
		fmt.Fprintln(os.Stderr, "Love Letter supports 2-4 players.")
		os.Exit(1)
	}

	seedValue := *seed
	if seedValue == 0 {
		value, err := random.NewSeed()
		if err != nil {
			fmt.Fprintln(os.Stderr, "seed:", err)
			os.Exit(1)
		}
		seedValue = value
	}

	opts := []engine.Option{engine.WithFirstStart(promptStartSeat(names))}
	if *winnerStarts {
		opts = append(opts, engine.WithStartPolicy(engine.StartWinner))
	}
	match, err := engine.NewMatch(names, seedValue, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("\nLove Letter, %d players. First to %d tokens wins.\n", len(names), match.TargetTokens)

	for !match.GameOver() {
		if err := match.StartRound(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		playRound(match)
		printScoreboard(match.Players)
	}

	winners := make([]string, 0, 1)
	for _, id := range match.MatchWinners() {
		winners = append(winners, nameOf(match.Players, id))
	}
	fmt.Printf("Game over. Winner(s): %s.\n", strings.Join(winners, ", "))
}

// playRound runs one round to completion, alternating seats at the
// keyboard.
func playRound(match *engine.Match) {
	r := match.Round
	printEvents(match, r.Events)
	for !r.Over {
		current := r.CurrentPlayer()
		waitForPlayer(current)
		before := len(r.Events)
		if err := match.StartTurn(current.ID); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		printEvents(match, r.Events[before:])
		playTurn(match, current)
	}
}

// playTurn prompts the current player until they make a legal play.
func playTurn(match *engine.Match, current *engine.Player) {
	r := match.Round
	for {
		fmt.Printf("\n%s's hand: %s\n", current.Name, renderHand(current.Hand))
		legal := engine.LegalCards(current.Hand)
		if len(legal) == 1 {
			fmt.Printf("Forced play: %s\n", legal[0])
		}
		card := promptCard(current.Hand, legal)

		action := engine.Action{Seat: current.ID, Card: card}
		switch card {
		case cards.Guard, cards.Priest, cards.Baron, cards.Prince, cards.King:
			targets := r.ValidTargets(current.ID, card)
			if len(targets) == 0 && card != cards.Prince {
				fmt.Println("No valid targets. This card has no effect.")
			} else {
				target := promptTarget(targets)
				action.Target = &target
			}
		}
		if card == cards.Guard && action.Target != nil {
			guess := promptGuess()
			action.Guess = &guess
		}

		before := len(r.Events)
		if err := match.Play(action); err != nil {
			fmt.Printf("Invalid move: %s\n", err)
			continue
		}
		printEvents(match, r.Events[before:])
		return
	}
}

func promptCard(hand, legal []cards.Role) cards.Role {
	for {
		choice := promptInt("Choose a card to play (number): ")
		if choice >= 1 && choice <= len(hand) {
			card := hand[choice-1]
			if slices.Contains(legal, card) {
				return card
			}
		}
		fmt.Println("That card cannot be played. Try again.")
	}
}

func promptTarget(targets []*engine.Player) int {
	for {
		fmt.Println("Targets:")
		for i, t := range targets {
			fmt.Printf("  %d: %s\n", i+1, t.Name)
		}
		choice := promptInt("Choose a target (number): ")
		if choice >= 1 && choice <= len(targets) {
			return targets[choice-1].ID
		}
		fmt.Println("Invalid target.")
	}
}

func promptGuess() cards.Role {
	options := make([]cards.Role, 0, len(cards.Roles())-1)
	for _, role := range cards.Roles() {
		if role != cards.Guard {
			options = append(options, role)
		}
	}
	for {
		fmt.Println("Guess a card:")
		for i, role := range options {
			fmt.Printf("  %d: %s (%d)\n", i+1, role, role.Rank())
		}
		choice := promptInt("Choose a card (number): ")
		if choice >= 1 && choice <= len(options) {
			return options[choice-1]
		}
		fmt.Println("Invalid choice.")
	}
}

func promptNames() []string {
	var count int
	for {
		count = promptInt("Number of players (2-4): ")
		if count >= 2 && count <= 4 {
			break
		}
		fmt.Println("Love Letter supports 2-4 players.")
	}
	names := make([]string, 0, count)
	for i := range count {
		name := promptLine(fmt.Sprintf("Player %d name: ", i+1))
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		names = append(names, name)
	}
	return names
}

func promptStartSeat(names []string) int {
	fmt.Println("Choose the starting player (rule: last on a date or youngest).")
	for {
		for i, name := range names {
			fmt.Printf("  %d: %s\n", i+1, name)
		}
		choice := promptInt("Starting player (number): ")
		if choice >= 1 && choice <= len(names) {
			return choice - 1
		}
		fmt.Println("Invalid choice.")
	}
}

func waitForPlayer(p *engine.Player) {
	promptLine(fmt.Sprintf("\n%s, press Enter when ready (others look away). ", p.Name))
}

func printEvents(match *engine.Match, events []engine.Event) {
	for _, e := range events {
		fmt.Println(renderEvent(e, match.Players))
	}
}

func printScoreboard(players []*engine.Player) {
	width := 0
	for _, p := range players {
		if len(p.Name) > width {
			width = len(p.Name)
		}
	}
	fmt.Println("\nScoreboard")
	for _, p := range players {
		fmt.Printf("  %-*s %d\n", width, p.Name, p.Tokens)
	}
	fmt.Println()
}

// renderEvent formats an event with full card detail. The hotseat game
// has no hidden screens, so nothing is sanitized here.
func renderEvent(e engine.Event, players []*engine.Player) string {
	switch e.Kind {
	case engine.EventRoundStart:
		return fmt.Sprintf("Round %d begins. Start player: %s.", e.Round, nameOf(players, e.Seat))
	case engine.EventFaceUp:
		return fmt.Sprintf("Face-up removed cards: %s.", strings.Join(roleNames(e.Cards), ", "))
	case engine.EventDraw:
		if e.Reason == engine.ReasonPrince {
			return fmt.Sprintf("%s draws a replacement card.", nameOf(players, e.Seat))
		}
		return fmt.Sprintf("%s draws a card.", nameOf(players, e.Seat))
	case engine.EventPlay:
		return fmt.Sprintf("%s plays %s.", nameOf(players, e.Seat), e.Card)
	case engine.EventGuardGuess:
		return fmt.Sprintf("%s guesses %s on %s.", nameOf(players, e.Seat), e.Guess, nameOf(players, e.Target))
	case engine.EventReveal:
		return fmt.Sprintf("%s sees %s's hand: %s.", nameOf(players, e.Seat), nameOf(players, e.Target), e.Card)
	case engine.EventBaronCompare:
		return fmt.Sprintf("Baron compare: %s (%s) vs %s (%s).",
			nameOf(players, e.Seat), e.Card, nameOf(players, e.Target), e.TargetCard)
	case engine.EventProtected:
		return fmt.Sprintf("%s is protected until their next turn.", nameOf(players, e.Seat))
	case engine.EventProtectionEnded:
		return fmt.Sprintf("%s's protection ends.", nameOf(players, e.Seat))
	case engine.EventDiscard:
		return fmt.Sprintf("%s discards %s.", nameOf(players, e.Seat), e.Card)
	case engine.EventEliminated:
		return fmt.Sprintf("%s is eliminated.", nameOf(players, e.Seat))
	case engine.EventSwap:
		return fmt.Sprintf("%s swaps hands with %s.", nameOf(players, e.Seat), nameOf(players, e.Target))
	case engine.EventCountessNoEffect:
		return fmt.Sprintf("%s's Countess has no effect.", nameOf(players, e.Seat))
	case engine.EventRoundEnd:
		winners := make([]string, 0, len(e.Winners))
		for _, id := range e.Winners {
			winners = append(winners, nameOf(players, id))
		}
		return fmt.Sprintf("Round ends. Winner(s): %s.", strings.Join(winners, ", "))
	case engine.EventTokenAwarded:
		return fmt.Sprintf("%s gains a token (total: %d).", nameOf(players, e.Seat), e.Tokens)
	default:
		return string(e.Kind)
	}
}

func renderHand(hand []cards.Role) string {
	parts := make([]string, 0, len(hand))
	for i, card := range hand {
		parts = append(parts, fmt.Sprintf("%d:%s", i+1, card))
	}
	return strings.Join(parts, ", ")
}

func roleNames(roles []cards.Role) []string {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.String())
	}
	return names
}

func nameOf(players []*engine.Player, id int) string {
	for _, p := range players {
		if p.ID == id {
			return p.Name
		}
	}
	return "Unknown"
}

func promptInt(prompt string) int {
	for {
		raw := promptLine(prompt)
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
		fmt.Println("Enter a number.")
	}
}

func promptLine(prompt string) string {
	fmt.Print(prompt)
	if !stdin.Scan() {
		fmt.Println()
		os.Exit(0)
	}
	return strings.TrimSpace(stdin.Text())
}
