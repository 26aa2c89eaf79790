package datarecording

import (
	"os"
	"strings"
	"time"
)

// ExecInfoTable is the table that holds the run information.
const ExecInfoTable = "exec_info"

// ExecInfo is one property of a run.
type ExecInfo struct {
	Property string
	Value    string
}

// An ExecRecorder records when and how the program ran.
type ExecRecorder struct {
	recorder DataRecorder
	entries  []ExecInfo
	now      func() time.Time
}

// NewExecRecorder creates the run information table on the recorder.
func NewExecRecorder(recorder DataRecorder) *ExecRecorder {
	e := &ExecRecorder{
		recorder: recorder,
		now:      time.Now,
	}

	recorder.CreateTable(ExecInfoTable, ExecInfo{})

	return e
}

// Start notes the start time, the command line, and the working directory.
func (e *ExecRecorder) Start() {
	e.Add("Start Time", e.timestamp())
	e.Add("Command", strings.Join(os.Args, " "))

	if wd, err := os.Getwd(); err == nil {
		e.Add("Working Directory", wd)
	}
}

// Add notes an extra property.
func (e *ExecRecorder) Add(property, value string) {
	e.entries = append(e.entries, ExecInfo{Property: property, Value: value})
}

// End writes the noted properties and the end time, then flushes.
func (e *ExecRecorder) End() {
	e.Add("End Time", e.timestamp())

	for _, entry := range e.entries {
		e.recorder.InsertData(ExecInfoTable, entry)
	}

	e.entries = nil

	e.recorder.Flush()
}

func (e *ExecRecorder) timestamp() string {
	return e.now().Format("2006-01-02 15:04:05.000000000")
}
