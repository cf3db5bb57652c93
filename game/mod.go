package game

// NumSpots is the number of betting spots, one per die face.
const NumSpots = 6

// NumFaces is the number of faces on a die.
const NumFaces = NumSpots

type StateHash uint64

// Standing is a player's final placing at the end of a game.
type Standing int

const (
	Loss Standing = iota
	Draw
	Win
)

func (s Standing) String() string {
	switch s {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "loss"
	}
}
