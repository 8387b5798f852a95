package routes

import (
	"sync"

	"kampung-service-server/engine"
	"kampung-service-server/jobs"
	"kampung-service-server/pipeline"
	"kampung-service-server/store"
	ws "kampung-service-server/websocket"
)

// Shared handler dependencies, set once from main via Init
var (
	bookingEngine *engine.Engine
	runner        *pipeline.Runner
	hub           *ws.Hub
	tracker       *jobs.TrackingJob
	userDir       *store.UserDirectory
	workerDir     *store.WorkerDirectory

	runs = newRunRegistry()
)

// Deps bundles everything the handlers need
type Deps struct {
	Engine  *engine.Engine
	Runner  *pipeline.Runner
	Hub     *ws.Hub
	Tracker *jobs.TrackingJob
	Users   *store.UserDirectory
	Workers *store.WorkerDirectory
}

// Init wires the handler dependencies. Must be called before registering routes.
func Init(d Deps) {
	bookingEngine = d.Engine
	runner = d.Runner
	hub = d.Hub
	tracker = d.Tracker
	userDir = d.Users
	workerDir = d.Workers
	runs = newRunRegistry()
}

// runRegistry tracks the latest pipeline run per booking so the views can
// poll stage progress and read the terminal outcome
type runRegistry struct {
	mu   sync.Mutex
	runs map[string]*trackedRun
}

type trackedRun struct {
	kind string
	run  *pipeline.Run
}

func newRunRegistry() *runRegistry {
	return &runRegistry{runs: make(map[string]*trackedRun)}
}

func (r *runRegistry) put(bookingID, kind string, run *pipeline.Run) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[bookingID] = &trackedRun{kind: kind, run: run}
}

func (r *runRegistry) get(bookingID string) (string, *pipeline.Run, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tr, ok := r.runs[bookingID]
	if !ok {
		return "", nil, false
	}
	return tr.kind, tr.run, true
}
