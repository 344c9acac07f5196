// Command randomgame plays random legal moves until the game ends and prints
// the board after every move.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

type printer struct {
	game *model.Game
}

func (p *printer) OnGameStarted() {
	fmt.Println("game started")
	fmt.Println(p.game.Board())
}

func (p *printer) OnMoveTaken(captured *model.Piece) {
	if captured != nil {
		fmt.Printf("%s captured\n", captured)
	}
}

func (p *printer) OnCheck(side model.Color) {
	fmt.Printf("%s is in check\n", side)
}

func (p *printer) OnGameEnded(winner model.Color) {
	outcome, _ := p.game.LastOutcome()
	if outcome.IsDraw() {
		fmt.Printf("draw by %s after %d plies\n", outcome.Method, outcome.Plies)
		return
	}
	fmt.Printf("%s wins by %s after %d plies\n", winner, outcome.Method, outcome.Plies)
}

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	maxPlies := flag.Int("max-plies", 500, "stop after this many plies")
	layoutName := flag.String("layout", "standard", "standard or mega")
	flag.Parse()
	log.SetLevel(log.LevelWarn)

	layout, err := model.LayoutByName(*layoutName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	rng := rand.New(rand.NewSource(*seed))
	game := model.NewGame()
	game.SetEventListener(&printer{game: game})
	if err := game.StartGameWithLayout(layout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for ply := 0; ply < *maxPlies && game.IsInPlay(); ply++ {
		piece, to, ok := pickMove(rng, game)
		if !ok {
			break
		}
		from, _ := piece.Spot()
		if _, err := game.MovePieceTo(piece, to); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("%d. %s %s -> %s\n", ply+1, piece, from, to)
		fmt.Println(game.Board())
		game.StartNewTurn()
	}
	if game.IsInPlay() {
		fmt.Printf("stopped after %d plies (seed %d)\n", *maxPlies, *seed)
	}
}

func pickMove(rng *rand.Rand, game *model.Game) (*model.Piece, model.Spot, bool) {
	type candidate struct {
		piece *model.Piece
		moves []model.Spot
	}
	candidates := []candidate{}
	for _, piece := range game.Pieces(game.TurnColor()) {
		if moves := piece.PossibleMoves(false); len(moves) > 0 {
			candidates = append(candidates, candidate{piece, moves})
		}
	}
	if len(candidates) == 0 {
		return nil, model.Spot{}, false
	}
	chosen := candidates[rng.Intn(len(candidates))]
	return chosen.piece, chosen.moves[rng.Intn(len(chosen.moves))], true
}
