package track

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/viper"
)

//ErrMissingSource is returned when a video or track stub path does not exist
var ErrMissingSource = errors.New("track: missing source")

//trackerObservation is one JSON line printed by the tracking script. 'Kind'
//tells which sequence the observation belongs to.
type trackerObservation struct {
	Kind string `json:"kind"`
	Observation
}

//RunTracker executes the python tracking pipeline (YOLO detection + tracking +
//camera-movement compensation + view transformation + team assignment) for
//given video and collects its standard output into a TrackSet. The script
//prints a 'Frame #:' line per frame followed by one JSON line per observation
//and 'EOF' when done. This function is transport glue only, the tracking
//itself lives in the external script.
func RunTracker(videoPath string) (*TrackSet, error) {
	cmd := exec.Command("python3", viper.GetString("tracker.script"), "--video", videoPath)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("RunTracker: %w", err)
	}
	defer stdout.Close()

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("RunTracker: %w", err)
	}

	ts := parseTrackerOutput(stdout)

	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("RunTracker: waiting tracker process: %w", err)
	}

	return ts, nil
}

//parseTrackerOutput collects the tracking script's line protocol into a
//TrackSet. Malformed lines are logged and skipped so one bad observation does
//not lose the run.
func parseTrackerOutput(r io.Reader) *TrackSet {
	ts := NewTrackSet()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()

		if strings.Contains(line, "Frame #:") {
			ts.Players = append(ts.Players, Frame{})
			ts.Ball = append(ts.Ball, Frame{})
			ts.Referees = append(ts.Referees, Frame{})
			continue
		}

		if line == "EOF" {
			break
		}

		if strings.Contains(line, "FPS: ") { //this is a log print, skip it
			continue
		}

		if strings.Contains(line, "{\"kind\":") {
			if len(ts.Players) == 0 { //observation before any frame marker, malformed output
				log.Printf("parseTrackerOutput: Error, observation before first frame marker, skipping")
				continue
			}

			var obs trackerObservation
			if err := json.Unmarshal(scanner.Bytes(), &obs); err != nil {
				log.Printf("parseTrackerOutput: Error, got '%v'", err)
				continue
			}

			last := len(ts.Players) - 1
			o := obs.Observation
			switch obs.Kind {
			case "player":
				ts.Players[last][o.ID] = &o
			case "ball":
				ts.Ball[last][o.ID] = &o
			case "referee":
				ts.Referees[last][o.ID] = &o
			default:
				log.Printf("parseTrackerOutput: Error, unknown observation kind '%s'", obs.Kind)
			}
		}
	}

	return ts
}

//LoadStub reads a previously recorded TrackSet from a JSON stub file. Using a
//stub skips the expensive tracking run when re-analyzing the same video.
func LoadStub(path string) (*TrackSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("LoadStub: '%s': %w", path, ErrMissingSource)
		}
		return nil, fmt.Errorf("LoadStub: %w", err)
	}

	ts := NewTrackSet()
	if err := json.Unmarshal(data, ts); err != nil {
		return nil, fmt.Errorf("LoadStub: parsing '%s': %w", path, err)
	}

	return ts, nil
}

//SaveStub writes a TrackSet to a JSON stub file for later reuse
func SaveStub(ts *TrackSet, path string) error {
	data, err := json.Marshal(ts)
	if err != nil {
		return fmt.Errorf("SaveStub: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("SaveStub: %w", err)
	}

	return nil
}
