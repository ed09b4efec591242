package heatmap

import "github.com/matchlens/matchlens/pkg/track"

//Engine bins player positions from a full run into per-entity and per-team
//occupancy grids. Homography-corrected field positions are used directly;
//raw pixel positions are rescaled against the reference frame dimensions.
type Engine struct {
	frameWidth  float64
	frameHeight float64
}

//NewEngine returns an Engine using given reference frame dimensions for the
//pixel-position fallback rescale
func NewEngine(frameWidth, frameHeight float64) *Engine {
	return &Engine{frameWidth: frameWidth, frameHeight: frameHeight}
}

//Occupancy holds the grids collected from one run, filtered to entities and
//teams with at least MinSamples recorded positions.
type Occupancy struct {
	Players map[int]*Grid
	Teams   map[int]*Grid
}

//Collect accumulates every player position in the track set into fresh grids.
//Each sample lands in the player's own grid and in parallel in the team grid
//its observation is labeled with, defaulting to team 1 when unlabeled.
//Entities and teams that stay below MinSamples are left out of the result.
func (e *Engine) Collect(ts *track.TrackSet) *Occupancy {
	players := make(map[int]*Grid)
	teams := map[int]*Grid{
		track.TeamOne: NewGrid(),
		track.TeamTwo: NewGrid(),
	}

	for _, frame := range ts.Players {
		for id, obs := range frame {
			x, y, ok := e.gridPosition(obs)
			if !ok {
				continue
			}

			if _, exists := players[id]; !exists {
				players[id] = NewGrid()
			}
			players[id].Add(x, y)

			team := obs.Team
			if team != track.TeamOne && team != track.TeamTwo {
				team = track.TeamOne
			}
			teams[team].Add(x, y)
		}
	}

	for id, g := range players {
		if g.Count() < MinSamples {
			delete(players, id)
		}
	}
	for id, g := range teams {
		if g.Count() < MinSamples {
			delete(teams, id)
		}
	}

	return &Occupancy{Players: players, Teams: teams}
}

//gridPosition converts an observation's position into grid units, preferring
//the transformed field position over the pixel fallback
func (e *Engine) gridPosition(obs *track.Observation) (float64, float64, bool) {
	if obs.PositionTransformed != nil {
		return obs.PositionTransformed.X, obs.PositionTransformed.Y, true
	}

	if obs.Position != nil {
		x := obs.Position.X / e.frameWidth * GridW
		y := obs.Position.Y / e.frameHeight * GridH
		return x, y, true
	}

	return 0, 0, false
}
