package possession

import (
	"image"

	"github.com/matchlens/matchlens/pkg/track"
)

//BallAssigner decides which player, if any, controls the ball in one frame.
//The boolean result replaces an invalid-id sentinel: ok == false means no
//player is close enough to the ball this frame.
type BallAssigner interface {
	AssignBallToPlayer(players track.Frame, ballBbox image.Rectangle) (playerID int, ok bool)
}

//Sequence is the per-frame possession attribution, one team label per
//processed frame. Leading frames before the first assignment hold
//track.TeamNone.
type Sequence []int

//Shares returns each team's share of resolved frames up to and including
//given index. Frames still in the TeamNone state are excluded from the
//denominator.
func (s Sequence) Shares(upTo int) (team1, team2 float64) {
	if upTo >= len(s) {
		upTo = len(s) - 1
	}

	var c1, c2 int
	for i := 0; i <= upTo; i++ {
		switch s[i] {
		case track.TeamOne:
			c1++
		case track.TeamTwo:
			c2++
		}
	}

	if c1+c2 == 0 {
		return 0, 0
	}

	total := float64(c1 + c2)
	return float64(c1) / total, float64(c2) / total
}

//Resolver attributes ball possession frame by frame with carry-forward. It is
//a two-state machine: until the first successful assignment it is in the
//"no possession yet" state and emits track.TeamNone; afterwards an unassigned
//frame repeats the previously held team. State depends on the previous frame's
//result, so Resolve must be called in strict frame order.
type Resolver struct {
	assigner BallAssigner
	held     int //track.TeamNone until the first assignment
	sequence Sequence
}

//NewResolver returns a Resolver in the no-possession-yet state
func NewResolver(assigner BallAssigner) *Resolver {
	return &Resolver{
		assigner: assigner,
		held:     track.TeamNone,
		sequence: make(Sequence, 0),
	}
}

//Resolve processes one aligned frame: it asks the assigner for the
//controlling player, marks that player's and the ball's HasBall flags, and
//appends the resolved team to the sequence. Exactly one entry is appended per
//call.
func (r *Resolver) Resolve(frame track.AlignedFrame) {
	ball := frame.Ball.BallObservation()

	if ball != nil {
		if id, ok := r.assigner.AssignBallToPlayer(frame.Players, ball.Bbox); ok {
			if player, exists := frame.Players[id]; exists {
				player.HasBall = true
				ball.HasBall = true
				r.held = player.Team
			}
		}
	}

	r.sequence = append(r.sequence, r.held)
}

//Sequence returns the possession sequence resolved so far
func (r *Resolver) Sequence() Sequence {
	return r.sequence
}
