package analysis

import (
	"image/color"
	"os"
	"os/exec"
	"path"
	"strings"

	"github.com/spf13/viper"
	"gocv.io/x/gocv"

	"github.com/matchlens/matchlens/pkg/heatmap"
	"github.com/matchlens/matchlens/pkg/possession"
	"github.com/matchlens/matchlens/pkg/report"
	"github.com/matchlens/matchlens/pkg/track"
	"github.com/matchlens/matchlens/pkg/video"
)

//OutputFPS is the frame rate of every produced video
const OutputFPS = 24.0

var (
	teamOneColor = color.RGBA{235, 235, 235, 0}
	teamTwoColor = color.RGBA{80, 80, 220, 0}
	refereeColor = color.RGBA{0, 255, 255, 0}
	ballColor    = color.RGBA{0, 255, 0, 0}
	holderColor  = color.RGBA{0, 0, 255, 0}
)

//Run analyzes one uploaded video end to end: it loads tracking data (from a
//recorded stub when available, otherwise by running the external tracker),
//resolves ball possession, renders static heatmaps and the possession
//timeline, and produces the annotated and heat-overlay videos under the
//'ready' directory. srcVideoName should include the file's extension.
//Progress is published through the tracker registry for the webserver to poll.
func Run(srcVideoName string) {
	tracker := StartTracker(srcVideoName)

	baseName := strings.Split(srcVideoName, ".")[0]
	srcVideoPath := path.Join(viper.GetString("directory.source"), srcVideoName)

	frames, err := video.Read(srcVideoPath)
	if err != nil {
		tracker.Fail(err)
		return
	}
	defer video.CloseFrames(frames)
	tracker.Stepf("Read %d frames from '%s'", len(frames), srcVideoName)

	ts, err := loadTracks(srcVideoPath, baseName, tracker)
	if err != nil {
		tracker.Fail(err)
		return
	}

	aligned := ts.Aligned()
	tracker.Stepf("Aligned %d tracked frames", len(aligned))

	//possession must be resolved over the full sequence before any frame is
	//annotated: the control panel on frame k shows shares computed up to k
	resolver := possession.NewResolver(possession.ProximityAssigner{})
	for _, frame := range aligned {
		resolver.Resolve(frame)
	}
	seq := resolver.Sequence()
	tracker.Stepf("Resolved possession over %d frames", len(seq))

	frameW, frameH := referenceFrameDims()
	heatmapBase := viper.GetString("directory.heatmaps")

	engine := heatmap.NewEngine(frameW, frameH)
	occ := engine.Collect(ts)
	tracker.Stepf("Collected occupancy grids: %d players, %d teams", len(occ.Players), len(occ.Teams))

	renderer := heatmap.StaticRenderer{}
	if err := renderer.RenderIndividual(occ, path.Join(heatmapBase, "individual")); err != nil {
		tracker.Fail(err)
		return
	}
	if err := renderer.RenderTeams(occ, path.Join(heatmapBase, "teams")); err != nil {
		tracker.Fail(err)
		return
	}
	if err := renderer.RenderCombined(occ, path.Join(heatmapBase, "combined")); err != nil {
		tracker.Fail(err)
		return
	}
	tracker.Stepf("Rendered heatmaps under '%s'", heatmapBase)

	if len(seq) > 0 {
		if err := report.WritePossessionTimeline(seq, path.Join(heatmapBase, baseName+"_possession.png")); err != nil {
			tracker.Fail(err)
			return
		}
	}

	//overlay frames are composited from the clean source frames before any
	//annotation is painted on them
	compositor := heatmap.NewCompositor(frameW, frameH)
	overlayFrames := make([]gocv.Mat, len(frames))
	for i, frame := range frames {
		players := track.Frame{}
		if i < len(aligned) {
			players = aligned[i].Players
		}
		overlayFrames[i] = compositor.Apply(frame, players)
	}
	defer video.CloseFrames(overlayFrames)
	tracker.Stepf("Composited heat overlay (%d dropped samples)", compositor.Accumulator().Dropped())

	annotateFrames(frames, aligned, seq)
	tracker.Stepf("Annotated %d frames", len(frames))

	if err := produceVideo(frames, baseName, srcVideoName, tracker); err != nil {
		tracker.Fail(err)
		return
	}

	overlayName := baseName + "_heatmap." + viper.GetString("video.prod_format")
	if err := produceVideo(overlayFrames, baseName+"_heatmap", overlayName, tracker); err != nil {
		tracker.Fail(err)
		return
	}

	tracker.Done()
}

//loadTracks returns the video's TrackSet, preferring a recorded stub over a
//fresh run of the external tracker
func loadTracks(srcVideoPath, baseName string, tracker *Tracker) (*track.TrackSet, error) {
	stubPath := path.Join(viper.GetString("directory.stubs"), baseName+".json")

	if _, err := os.Stat(stubPath); err == nil {
		ts, err := track.LoadStub(stubPath)
		if err != nil {
			return nil, err
		}
		tracker.Stepf("Loaded track stub '%s'", stubPath)
		return ts, nil
	}

	tracker.Stepf("No track stub found, running tracker")
	ts, err := track.RunTracker(srcVideoPath)
	if err != nil {
		return nil, err
	}

	if err := track.SaveStub(ts, stubPath); err != nil {
		return nil, err
	}
	tracker.Stepf("Recorded track stub '%s'", stubPath)

	return ts, nil
}

//annotateFrames paints markers and the possession panel onto the source
//frames in place. Frames past the aligned track length are left bare.
func annotateFrames(frames []gocv.Mat, aligned []track.AlignedFrame, seq possession.Sequence) {
	for i := range frames {
		if i >= len(aligned) {
			continue
		}

		for id, player := range aligned[i].Players {
			clr := teamOneColor
			if player.Team == track.TeamTwo {
				clr = teamTwoColor
			}
			video.DrawEllipse(&frames[i], player.Bbox, clr, id)

			if player.HasBall {
				video.DrawTriangle(&frames[i], player.Bbox, holderColor)
			}
		}

		for _, referee := range aligned[i].Referees {
			video.DrawEllipse(&frames[i], referee.Bbox, refereeColor, -1)
		}

		if ball := aligned[i].Ball.BallObservation(); ball != nil {
			video.DrawTriangle(&frames[i], ball.Bbox, ballColor)
		}

		if i < len(seq) {
			video.DrawTeamBallControl(&frames[i], i, seq)
		}
	}
}

//produceVideo saves frames as a temp XVID '.avi' and converts it to the
//production format in the 'ready' directory, removing the temp file after
func produceVideo(frames []gocv.Mat, tmpBaseName, outputName string, tracker *Tracker) error {
	tmpPath := path.Join(viper.GetString("directory.temp"), tmpBaseName+".avi")
	outPath := path.Join(viper.GetString("directory.ready"), outputName)

	if err := video.Save(frames, tmpPath, OutputFPS); err != nil {
		return err
	}
	defer os.Remove(tmpPath)

	//convert from 'avi' to the production format. example: ffmpeg -i out.avi out.mp4
	cmd := exec.Command("ffmpeg", "-y", "-i", tmpPath, outPath)
	if err := cmd.Run(); err != nil {
		return err
	}

	tracker.Stepf("Saved '%s'", outPath)
	return nil
}

//referenceFrameDims returns the configured reference frame dimensions used to
//rescale pixel positions into grid units
func referenceFrameDims() (float64, float64) {
	w := viper.GetFloat64("video.frame_width")
	h := viper.GetFloat64("video.frame_height")
	if w == 0 {
		w = 1920
	}
	if h == 0 {
		h = 1080
	}
	return w, h
}
