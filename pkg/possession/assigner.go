package possession

import (
	"image"
	"math"

	"github.com/matchlens/matchlens/pkg/track"
)

//MaxPlayerBallDistance is the pixel radius inside which a player can be
//considered in control of the ball
const MaxPlayerBallDistance = 70.0

//ProximityAssigner assigns the ball to the player whose feet are nearest to
//the ball center, as long as that distance is below MaxPlayerBallDistance.
type ProximityAssigner struct{}

//AssignBallToPlayer implements BallAssigner. It measures from the ball center
//to both bottom corners of each player's bounding box (a player can shield the
//ball on either side) and keeps the closest qualifying player. Iteration order
//over the map is not deterministic, so ties on exact distance may resolve to
//either player; in practice tracked positions never tie exactly.
func (a ProximityAssigner) AssignBallToPlayer(players track.Frame, ballBbox image.Rectangle) (int, bool) {
	ballX := float64(ballBbox.Min.X+ballBbox.Max.X) / 2
	ballY := float64(ballBbox.Min.Y+ballBbox.Max.Y) / 2

	minDistance := math.Inf(1)
	assigned := 0
	found := false

	for id, player := range players {
		dLeft := distance(float64(player.Bbox.Min.X), float64(player.Bbox.Max.Y), ballX, ballY)
		dRight := distance(float64(player.Bbox.Max.X), float64(player.Bbox.Max.Y), ballX, ballY)
		d := math.Min(dLeft, dRight)

		if d < MaxPlayerBallDistance && d < minDistance {
			minDistance = d
			assigned = id
			found = true
		}
	}

	return assigned, found
}

func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x1-x2, y1-y2)
}
