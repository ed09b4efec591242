package analysis

import (
	"fmt"
	"log"
	"sync"
)

//Progress is a snapshot of one analysis run's state, served to polling clients
type Progress struct {
	Steps []string `json:"steps"`
	Done  bool     `json:"done"`
	Error string   `json:"error,omitempty"`
}

//Tracker records the progress of one analysis run. An analysis runs on a
//background goroutine while the webserver polls the tracker from request
//handlers, so all access is mutex-guarded.
type Tracker struct {
	mu       sync.Mutex
	progress Progress
}

var (
	trackersMu sync.Mutex
	trackers   = make(map[string]*Tracker)
)

//StartTracker registers a fresh progress tracker for given video name,
//replacing any previous run's tracker
func StartTracker(videoName string) *Tracker {
	trackersMu.Lock()
	defer trackersMu.Unlock()

	t := &Tracker{}
	trackers[videoName] = t
	return t
}

//GetProgress returns a snapshot of given video's analysis progress
func GetProgress(videoName string) (Progress, bool) {
	trackersMu.Lock()
	t, ok := trackers[videoName]
	trackersMu.Unlock()
	if !ok {
		return Progress{}, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := Progress{Done: t.progress.Done, Error: t.progress.Error}
	snapshot.Steps = append(snapshot.Steps, t.progress.Steps...)
	return snapshot, true
}

//Stepf appends a formatted progress step and mirrors it to the log
func (t *Tracker) Stepf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("Run: %s", msg)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress.Steps = append(t.progress.Steps, msg)
}

//Done marks the run finished
func (t *Tracker) Done() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress.Done = true
}

//Fail marks the run finished with an error
func (t *Tracker) Fail(err error) {
	log.Printf("Run: Error, got '%v'", err)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress.Done = true
	t.progress.Error = err.Error()
}
