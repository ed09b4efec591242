package video

import (
	"errors"
	"fmt"
	"os"

	"gocv.io/x/gocv"
)

//ErrMissingSource is returned when a video path does not exist
var ErrMissingSource = errors.New("video: missing source")

//ErrEmptyFrameSequence is returned when asked to save zero frames
var ErrEmptyFrameSequence = errors.New("video: empty frame sequence")

//Read decodes a whole video file into an in-memory frame sequence. Caller is
//responsible for closing every returned Mat.
func Read(path string) ([]gocv.Mat, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("Read: '%s': %w", path, ErrMissingSource)
		}
		return nil, fmt.Errorf("Read: %w", err)
	}

	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("Read: %w", err)
	}
	defer cap.Close()

	frameMat := gocv.NewMat()
	defer frameMat.Close()

	frames := make([]gocv.Mat, 0)
	for cap.Read(&frameMat) {
		frames = append(frames, frameMat.Clone())
	}

	return frames, nil
}

//Save encodes given frames to an XVID (MPEG-4 codec) '.avi' file at given
//frame rate. Frame dimensions are taken from the first frame.
func Save(frames []gocv.Mat, path string, fps float64) error {
	if len(frames) == 0 {
		return fmt.Errorf("Save: '%s': %w", path, ErrEmptyFrameSequence)
	}

	writer, err := gocv.VideoWriterFile(path, "XVID", fps, frames[0].Cols(), frames[0].Rows(), true)
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	defer writer.Close()

	for _, frame := range frames {
		if err := writer.Write(frame); err != nil {
			return fmt.Errorf("Save: %w", err)
		}
	}

	return nil
}

//CloseFrames releases every Mat in given sequence
func CloseFrames(frames []gocv.Mat) {
	for i := range frames {
		frames[i].Close()
	}
}
