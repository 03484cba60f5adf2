// Command simulate runs headless bot-driven games and prints summary
// statistics. Useful for tuning heuristic weights and sanity-checking the
// rules without a terminal UI.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/brensch/termtris/bot"
	"github.com/brensch/termtris/game"
	"github.com/brensch/termtris/rules"
)

func main() {
	games := flag.Int("games", 10, "Number of games to play")
	seed := flag.Int64("seed", 0, "Base seed; game i uses seed+i (0 seeds from the clock)")
	maxPieces := flag.Int("max-pieces", 10000, "Stop a game after this many pieces")
	verbose := flag.Bool("v", false, "Print per-game progress")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	var totalScore, totalLines, totalPieces int64
	best := int64(-1)
	start := time.Now()

	for i := 0; i < *games; i++ {
		rng := rand.New(rand.NewSource(*seed + int64(i)))
		s := playOne(rng, *maxPieces)

		totalScore += s.Score
		totalLines += int64(s.Lines)
		totalPieces += int64(s.Pieces)
		if s.Score > best {
			best = s.Score
		}
		if *verbose {
			fmt.Printf("  game %3d | score %8d | lines %5d | level %3d | pieces %6d\n",
				i+1, s.Score, s.Lines, s.Level, s.Pieces)
		}
	}

	n := int64(*games)
	if n == 0 {
		log.Fatal("nothing to do with -games=0")
	}
	fmt.Printf("%d games in %s\n", n, time.Since(start).Round(time.Millisecond))
	fmt.Printf("avg score %d | avg lines %d | avg pieces %d | best score %d\n",
		totalScore/n, totalLines/n, totalPieces/n, best)
}

// playOne drives a single game with the planner until it ends or hits the
// piece cap.
func playOne(rng *rand.Rand, maxPieces int) *game.GameState {
	s := rules.NewGame(rng)
	for !s.Over && s.Pieces < maxPieces {
		cmds := bot.Plan(s)
		if len(cmds) == 0 {
			break
		}
		for _, cmd := range cmds {
			if s.Over {
				break
			}
			s, _ = rules.Apply(s, cmd, rng)
		}
	}
	return s
}
