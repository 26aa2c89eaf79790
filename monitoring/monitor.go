// Package monitoring serves a mapping run over HTTP.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/rs/xid"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/rammap/arch"
	"github.com/sarchlab/rammap/mapping"
	"github.com/sarchlab/rammap/report"
)

// Monitor turns a mapping run into a web server. The run can be registered
// after the server starts; until then the result endpoints answer 503.
type Monitor struct {
	portNumber      int
	profileDuration time.Duration

	lock    sync.RWMutex
	result  *mapping.Result
	summary report.Summary

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar

	server *http.Server
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		profileDuration: time.Second,
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterResult publishes a finished run.
func (m *Monitor) RegisterResult(r *mapping.Result, a arch.Architecture) {
	s := report.Summarize(r, a)

	m.lock.Lock()
	defer m.lock.Unlock()

	m.result = r
	m.summary = s
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar from the progress list.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Handler returns the router of the API.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/summary", m.getSummary)
	r.HandleFunc("/api/circuits", m.listCircuits)
	r.HandleFunc("/api/circuit/{id}", m.getCircuit)
	r.HandleFunc("/api/mapping/{circuit}/{ram}", m.getMapping)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	return r
}

// StartServer starts serving in the background and returns the address of
// the server.
func (m *Monitor) StartServer() (string, error) {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring mapping with %s\n", url)

	m.server = &http.Server{
		Handler:           m.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		err := m.server.Serve(listener)
		if !errors.Is(err, http.ErrServerClosed) {
			dieOnErr(err)
		}
	}()

	return url, nil
}

// Shutdown stops the server started by StartServer.
func (m *Monitor) Shutdown(ctx context.Context) error {
	if m.server == nil {
		return nil
	}

	return m.server.Shutdown(ctx)
}

func (m *Monitor) snapshot(
	w http.ResponseWriter,
) (*mapping.Result, report.Summary, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if m.result == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, err := w.Write([]byte("Mapping not finished"))
		dieOnErr(err)

		return nil, report.Summary{}, false
	}

	return m.result, m.summary, true
}

type summaryRsp struct {
	Circuits      int            `json:"circuits"`
	Mappings      int            `json:"mappings"`
	Shared        int            `json:"shared"`
	ExtraLUTs     int            `json:"extra_luts"`
	Blocks        map[string]int `json:"blocks"`
	Tiles         int            `json:"tiles"`
	ChipArea      float64        `json:"chip_area"`
	GeometricMean float64        `json:"geometric_mean"`
}

func (m *Monitor) getSummary(w http.ResponseWriter, _ *http.Request) {
	r, s, ok := m.snapshot(w)
	if !ok {
		return
	}

	rsp := summaryRsp{
		Circuits:      len(r.Circuits),
		Mappings:      len(r.Mappings),
		Shared:        len(r.Shared),
		ExtraLUTs:     r.ExtraLUTs(),
		Blocks:        make(map[string]int),
		Tiles:         s.Chip.Tiles,
		ChipArea:      s.Chip.Total,
		GeometricMean: s.GeometricMean,
	}

	for _, k := range arch.Kinds {
		rsp.Blocks[k.String()] = r.Blocks(k)
	}

	writeJSON(w, rsp)
}

type circuitRsp struct {
	CircuitID    int                  `json:"circuit_id"`
	LogicBlocks  int                  `json:"logic_blocks"`
	ExtraLUTs    int                  `json:"extra_luts"`
	LUTRAMBlocks int                  `json:"lutram_blocks"`
	M8KBlocks    int                  `json:"m8k_blocks"`
	M128KBlocks  int                  `json:"m128k_blocks"`
	RegularLBs   int                  `json:"regular_lbs"`
	Tiles        int                  `json:"tiles"`
	Area         float64              `json:"area"`
	Mappings     []mapping.RamMapping `json:"mappings,omitempty"`
}

func newCircuitRsp(c report.CircuitArea) circuitRsp {
	return circuitRsp{
		CircuitID:    c.CircuitID,
		LogicBlocks:  c.Usage.LogicBlocks,
		ExtraLUTs:    c.Usage.ExtraLUTs,
		LUTRAMBlocks: c.Usage.LUTRAMBlocks,
		M8KBlocks:    c.Usage.M8KBlocks,
		M128KBlocks:  c.Usage.M128KBlocks,
		RegularLBs:   c.Area.RegularLBs,
		Tiles:        c.Area.Tiles,
		Area:         c.Area.Total,
	}
}

func (m *Monitor) listCircuits(w http.ResponseWriter, _ *http.Request) {
	_, s, ok := m.snapshot(w)
	if !ok {
		return
	}

	rsp := make([]circuitRsp, 0, len(s.Circuits))
	for _, c := range s.Circuits {
		rsp = append(rsp, newCircuitRsp(c))
	}

	writeJSON(w, rsp)
}

func (m *Monitor) getCircuit(w http.ResponseWriter, req *http.Request) {
	r, s, ok := m.snapshot(w)
	if !ok {
		return
	}

	id, ok := intVarOr400(w, req, "id")
	if !ok {
		return
	}

	for _, c := range s.Circuits {
		if c.CircuitID != id {
			continue
		}

		rsp := newCircuitRsp(c)
		for _, mp := range r.SortedMappings() {
			if mp.CircuitID == id {
				rsp.Mappings = append(rsp.Mappings, mp)
			}
		}

		writeJSON(w, rsp)

		return
	}

	notFound(w, "Circuit not found")
}

func (m *Monitor) getMapping(w http.ResponseWriter, req *http.Request) {
	r, _, ok := m.snapshot(w)
	if !ok {
		return
	}

	circuitID, ok := intVarOr400(w, req, "circuit")
	if !ok {
		return
	}

	ramID, ok := intVarOr400(w, req, "ram")
	if !ok {
		return
	}

	mp, found := r.Find(circuitID, ramID)
	if !found {
		notFound(w, "Mapping not found")
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&mp)
	serializer.SetMaxDepth(1)

	if field := req.URL.Query().Get("field"); field != "" {
		err := serializer.SetEntryPoint(strings.Split(field, "."))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "Error: %s", err)

			return
		}
	}

	err := serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	rsp := make([]progressRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		rsp = append(rsp, b.snapshot())
	}

	writeJSON(w, rsp)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid, err := safecast.Conv[int32](os.Getpid())
	dieOnErr(err)

	process, err := process.NewProcess(pid)
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	time.Sleep(m.profileDuration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func intVarOr400(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: invalid %s", name)

		return 0, false
	}

	return v, true
}

func notFound(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte(msg))
	dieOnErr(err)
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(data)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
