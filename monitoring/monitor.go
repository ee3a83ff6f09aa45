// Package monitoring turns a running board and its check suites into a small
// web server, so a long simulated run can be watched and profiled from
// outside.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/periphsim/board"
	"github.com/sarchlab/periphsim/harness"
)

// Monitor exposes a board and its runners over HTTP and allows external
// control of the board clock.
type Monitor struct {
	board       *board.Board
	portNumber  int
	openBrowser bool

	runnersLock sync.Mutex
	runners     []*harness.Runner
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser makes StartServer open the monitor page in the default
// browser.
func (m *Monitor) WithBrowser() *Monitor {
	m.openBrowser = true
	return m
}

// RegisterBoard registers the board under monitoring.
func (m *Monitor) RegisterBoard(b *board.Board) {
	m.board = b
}

// RegisterRunner registers a suite runner whose progress is reported.
func (m *Monitor) RegisterRunner(r *harness.Runner) {
	m.runnersLock.Lock()
	defer m.runnersLock.Unlock()

	m.runners = append(m.runners, r)
}

// StartServer starts the monitor as a web server, on the configured port if
// one was set.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/pause", m.pauseClock)
	r.HandleFunc("/api/continue", m.continueClock)
	r.HandleFunc("/api/ticks", m.ticks)
	r.HandleFunc("/api/list_devices", m.listDevices)
	r.HandleFunc("/api/device/{name}", m.deviceDetails)
	r.HandleFunc("/api/progress", m.listProgress)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()

	if m.openBrowser {
		_ = browser.OpenURL(url + "/api/progress")
	}
}

func (m *Monitor) pauseClock(w http.ResponseWriter, _ *http.Request) {
	m.board.Pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueClock(w http.ResponseWriter, _ *http.Request) {
	m.board.Continue()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) ticks(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"ticks\":%d}", m.board.Ticks())
}

func (m *Monitor) listDevices(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "[")
	for i, d := range m.board.Devices() {
		if i > 0 {
			fmt.Fprint(w, ",")
		}

		fmt.Fprintf(w, "%q", d.Name())
	}
	fmt.Fprint(w, "]")
}

func (m *Monitor) deviceDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	device := m.board.DeviceByName(name)
	if device == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Device not found"))
		dieOnErr(err)

		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(device)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type progressRsp struct {
	Suite   string `json:"suite"`
	RunID   string `json:"run_id"`
	Total   int    `json:"total"`
	Current int    `json:"current"`
	Passed  int    `json:"passed"`
	Failed  int    `json:"failed"`
}

func (m *Monitor) listProgress(w http.ResponseWriter, _ *http.Request) {
	m.runnersLock.Lock()
	defer m.runnersLock.Unlock()

	rsp := make([]progressRsp, 0, len(m.runners))
	for _, r := range m.runners {
		rsp = append(rsp, progressRsp{
			Suite:   r.Name(),
			RunID:   r.ID(),
			Total:   r.NumChecks(),
			Current: r.Current(),
			Passed:  r.Passed(),
			Failed:  r.Failed(),
		})
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
