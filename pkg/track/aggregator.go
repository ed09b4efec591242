package track

//AlignedFrame is one frame-indexed view over the three track sequences.
type AlignedFrame struct {
	Index    int
	Players  Frame
	Ball     Frame
	Referees Frame
}

//Aligned zips the three track sequences into a common frame-indexed view of
//length min(len(Players), len(Ball), len(Referees)). A sequence too short for
//an index contributes an empty map instead of going out of bounds. Length
//mismatch is expected steady state from upstream interpolation, never an error.
func (ts *TrackSet) Aligned() []AlignedFrame {
	n := len(ts.Players)
	if len(ts.Ball) < n {
		n = len(ts.Ball)
	}
	if len(ts.Referees) < n {
		n = len(ts.Referees)
	}

	frames := make([]AlignedFrame, n)
	for i := 0; i < n; i++ {
		frames[i] = AlignedFrame{
			Index:    i,
			Players:  frameAt(ts.Players, i),
			Ball:     frameAt(ts.Ball, i),
			Referees: frameAt(ts.Referees, i),
		}
	}

	return frames
}

//frameAt returns the frame at given index, or an empty map if the sequence is
//too short for it
func frameAt(seq []Frame, i int) Frame {
	if i >= len(seq) {
		return Frame{}
	}
	if seq[i] == nil {
		return Frame{}
	}
	return seq[i]
}
