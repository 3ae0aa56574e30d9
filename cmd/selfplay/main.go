package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/search"
	"golang.org/x/sync/errgroup"
)

func main() {
	config.SetLogLevel()

	strategies := strings.Join(search.Names(), ", ")

	black := flag.String("black", search.AdvancedName, "strategy playing black, one of: "+strategies)
	white := flag.String("white", search.BasicName, "strategy playing white, one of: "+strategies)
	games := flag.Int("games", 10, "number of games to play")
	seed := flag.Int64("seed", 1, "seed for random tie-breaking")
	verbose := flag.Bool("v", false, "print every move")
	flag.Parse()

	if *games < 1 {
		slog.Error("Number of games must be positive", "games", *games)
		os.Exit(1)
	}

	results := make([]game.Result, *games)

	var printMutex sync.Mutex

	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i := range *games {
		group.Go(func() error {
			result, history, err := play(*black, *white, *seed+int64(i))
			if err != nil {
				return err
			}
			results[i] = result

			printMutex.Lock()
			defer printMutex.Unlock()

			if *verbose {
				for _, event := range history {
					if event.Type == game.EventMove {
						fmt.Printf("game %d: %s plays %s\n", i+1, event.Color, event.Move)
					} else {
						fmt.Printf("game %d: %s %s\n", i+1, event.Color, event.Type)
					}
				}
			}

			fmt.Printf("game %d: black %d white %d winner %s\n", i+1, result.Black, result.White, result.Winner)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		slog.Error("Self play failed", "error", err)
		os.Exit(1)
	}

	wins := make(map[models.Color]int)
	for _, result := range results {
		wins[result.Winner]++
	}

	fmt.Println()
	fmt.Printf("black (%s): %d wins\n", *black, wins[models.BLACK])
	fmt.Printf("white (%s): %d wins\n", *white, wins[models.WHITE])
	fmt.Printf("draws: %d\n", wins[models.EMPTY])
}

// play plays one game between two strategies.
func play(blackName, whiteName string, seed int64) (game.Result, []game.Event, error) {
	blackStrategy, err := search.NewStrategy(blackName, search.Options{Rand: rand.New(rand.NewSource(seed))})
	if err != nil {
		return game.Result{}, nil, fmt.Errorf("black: %w", err)
	}

	whiteStrategy, err := search.NewStrategy(whiteName, search.Options{Rand: rand.New(rand.NewSource(-seed))})
	if err != nil {
		return game.Result{}, nil, fmt.Errorf("white: %w", err)
	}

	controller := game.NewController(game.Players{Black: blackStrategy, White: whiteStrategy})
	history := controller.Advance()

	return controller.Result(), history, nil
}
