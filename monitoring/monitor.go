// Package monitoring exposes the task registry and the dispatch progress
// of a native executable over HTTP, for inspection while a long simulated
// run is alive.
package monitoring

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"

	"github.com/ppryga-nordic/nativesim/nativetask"
)

// Monitor serves the registry contents and the phases dispatched so far.
type Monitor struct {
	registry    *nativetask.Registry
	portNumber  int
	openBrowser bool

	dispatchLock sync.Mutex
	dispatches   []phaseDispatch
}

type phaseDispatch struct {
	Phase     string `json:"phase"`
	Tasks     int    `json:"tasks"`
	Completed bool   `json:"completed"`
}

type taskRsp struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

type phaseRsp struct {
	Phase string `json:"phase"`
	Tasks int    `json:"tasks"`
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor. Ports below 1000
// are rejected and replaced with a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is not allowed for the monitoring server. "+
				"Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser makes StartServer open the monitor page in the local
// browser.
func (m *Monitor) WithBrowser() *Monitor {
	m.openBrowser = true
	return m
}

// RegisterRegistry registers the task registry to monitor and hooks into
// its dispatch. Call it before the boot sequencer runs.
func (m *Monitor) RegisterRegistry(r *nativetask.Registry) {
	m.registry = r
	r.AcceptHook(&dispatchRecorder{monitor: m})
}

// Handler returns the HTTP handler serving the monitoring API.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/phases", m.listPhases)
	r.HandleFunc("/api/tasks/{phase}", m.listTasks)
	r.HandleFunc("/api/dispatches", m.listDispatches)

	return r
}

// StartServer starts the monitor as a web server, on the configured port
// or a random one.
func (m *Monitor) StartServer() {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring boot tasks with %s\n", url)

	go func() {
		dieOnErr(http.Serve(listener, m.Handler()))
	}()

	if m.openBrowser {
		err = browser.OpenURL(url + "/api/phases")
		dieOnErr(err)
	}
}

func (m *Monitor) listPhases(w http.ResponseWriter, _ *http.Request) {
	rsp := make([]phaseRsp, 0, nativetask.NumPhases)
	for p := nativetask.Phase(0); p < nativetask.NumPhases; p++ {
		rsp = append(rsp, phaseRsp{
			Phase: p.String(),
			Tasks: len(m.registry.Tasks(p)),
		})
	}

	writeJSON(w, rsp)
}

func (m *Monitor) listTasks(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["phase"]

	phase, ok := phaseByName(name)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Phase not found"))
		dieOnErr(err)

		return
	}

	tasks := m.registry.Tasks(phase)

	rsp := make([]taskRsp, 0, len(tasks))
	for _, t := range tasks {
		rsp = append(rsp, taskRsp{Name: t.Name, Priority: t.Priority})
	}

	writeJSON(w, rsp)
}

func (m *Monitor) listDispatches(w http.ResponseWriter, _ *http.Request) {
	m.dispatchLock.Lock()
	dispatches := make([]phaseDispatch, len(m.dispatches))
	copy(dispatches, m.dispatches)
	m.dispatchLock.Unlock()

	writeJSON(w, dispatches)
}

func phaseByName(name string) (nativetask.Phase, bool) {
	for p := nativetask.Phase(0); p < nativetask.NumPhases; p++ {
		if p.String() == name {
			return p, true
		}
	}

	return 0, false
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}

// dispatchRecorder tracks which phases have been dispatched.
type dispatchRecorder struct {
	monitor *Monitor
}

func (r *dispatchRecorder) Func(ctx nativetask.HookCtx) {
	m := r.monitor

	m.dispatchLock.Lock()
	defer m.dispatchLock.Unlock()

	switch ctx.Pos {
	case nativetask.HookPosPhaseStart:
		m.dispatches = append(m.dispatches, phaseDispatch{
			Phase: ctx.Phase.String(),
		})
	case nativetask.HookPosBeforeTask:
		m.dispatches[len(m.dispatches)-1].Tasks++
	case nativetask.HookPosPhaseEnd:
		m.dispatches[len(m.dispatches)-1].Completed = true
	}
}
