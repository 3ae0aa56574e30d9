package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/reversi/internal/models"
)

func main() {
	boardString := flag.String("board", "", "the board to show, 64 characters of x, o and -")
	turnString := flag.String("turn", "black", "the side to move, legal moves are marked for it")
	flag.Parse()

	board, err := models.NewBoardFromString(*boardString)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	turn, err := models.ParseColor(*turnString)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	board.Print(turn)
}
