package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/evaluate"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/search"
)

func main() {
	config.SetLogLevel()

	boardString := flag.String("board", models.NewBoardStart().String(), "the board to analyze, 64 characters of x, o and -")
	turnString := flag.String("turn", "black", "the side to move")
	depth := flag.Int("depth", 0, "search depth, 0 picks a depth based on the number of empty squares")
	parallel := flag.Bool("parallel", false, "search root moves concurrently")
	flag.Parse()

	board, err := models.NewBoardFromString(*boardString)
	if err != nil {
		slog.Error("Invalid board", "error", err)
		os.Exit(1)
	}

	turn, err := models.ParseColor(*turnString)
	if err != nil {
		slog.Error("Invalid turn", "error", err)
		os.Exit(1)
	}

	if *depth < 0 {
		slog.Error("Depth must not be negative", "depth", *depth)
		os.Exit(1)
	}

	if *depth == 0 {
		*depth = search.Depth(board)
	}

	board.Print(turn)
	fmt.Println()
	fmt.Printf("static score: %d\n", evaluate.Evaluate(board, turn))

	if models.IsTerminal(board) {
		fmt.Println("game over")
		return
	}

	alphaBeta := &search.AlphaBeta{Parallel: *parallel}
	result, ok := alphaBeta.Search(board, turn, *depth)
	if !ok {
		fmt.Printf("%s has to pass\n", turn)
		return
	}

	fmt.Printf("best move:    %s (flips %d)\n", result.Move, result.Move.FlipCount())
	fmt.Printf("score:        %d\n", result.Score)
	fmt.Printf("depth:        %d\n", result.Depth)
	fmt.Printf("nodes:        %d\n", result.Nodes)
	fmt.Printf("time:         %s\n", result.Elapsed)
}
