package track

import "image"

//Team labels carried on player observations. TeamNone means the upstream
//team assigner produced no label for this observation.
const (
	TeamNone = 0
	TeamOne  = 1
	TeamTwo  = 2
)

//Point is a continuous 2D position. Depending on context it holds either
//raw pixel coordinates or homography-corrected field coordinates (meters).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

//Observation is a single tracked entity in a single frame as produced by the
//upstream detection/tracking pipeline. PositionTransformed is the
//homography-corrected field position and is preferred wherever both are set;
//Position is the raw pixel position fallback. Either may be nil.
type Observation struct {
	ID                  int             `json:"id"`
	Bbox                image.Rectangle `json:"bbox"`
	Position            *Point          `json:"position,omitempty"`
	PositionTransformed *Point          `json:"position_transformed,omitempty"`
	Team                int             `json:"team,omitempty"`
	HasBall             bool            `json:"has_ball,omitempty"`
}

//Frame maps a stable entity id to its observation in one video frame.
//Not every id is present in every frame.
type Frame map[int]*Observation

//TrackSet holds the three per-frame sequences for one analyzed video.
//The sequences are independently lengthed: upstream ball interpolation and
//referee filtering routinely leave them a few frames apart.
type TrackSet struct {
	Players  []Frame `json:"players"`
	Ball     []Frame `json:"ball"`
	Referees []Frame `json:"referees"`
}

//NewTrackSet returns an empty TrackSet with allocated sequences.
func NewTrackSet() *TrackSet {
	return &TrackSet{
		Players:  make([]Frame, 0),
		Ball:     make([]Frame, 0),
		Referees: make([]Frame, 0),
	}
}

//BallObservation returns the ball observation for given aligned frame, or nil
//if the ball was not tracked in it. Upstream emits the ball under a single id
//so the first entry of the map is the ball.
func (f Frame) BallObservation() *Observation {
	for _, obs := range f {
		return obs
	}
	return nil
}
