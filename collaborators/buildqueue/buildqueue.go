// Package buildqueue implements a priority-aware compile dispatcher: it
// coalesces build requests by priority and runs them against an external
// compiler toolchain (spec §6: "build_queue.request_build(project_path,
// priority) → BuildResult").
//
// The worker-pool and debounced-notification shape here is adapted from
// the teacher's lsp-session-manager file watcher (cmd/lsp-session-manager,
// startFsnotifyWatcher/startPollingWatcher), repurposed from "notify the
// LSP server of filesystem changes" to "coalesce and run project builds".
package buildqueue

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"

	"rlscore/logging"
)

// Priority orders pending build requests; a request squashes a still
// pending one for the same project of equal or lower priority, but not one
// of higher priority.
type Priority int

const (
	Normal Priority = iota
	Immediate
)

func (p Priority) String() string {
	if p == Immediate {
		return "immediate"
	}
	return "normal"
}

// ResultKind mirrors the four outcomes the original source's BuildResult
// enum distinguishes: a build either ran and succeeded, ran and failed, was
// squashed by a newer request for the same project before it ran, or could
// not be started at all.
type ResultKind int

const (
	Success ResultKind = iota
	Failure
	Squashed
	Err
)

func (k ResultKind) String() string {
	switch k {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Squashed:
		return "squashed"
	default:
		return "err"
	}
}

// Result is what a completed (or coalesced) build request reports back.
type Result struct {
	Kind   ResultKind
	Output string
	Err    error
}

// Queue is the narrow surface the dispatch core consumes. RequestBuild
// blocks its caller until the build finishes or is squashed — the core
// never calls it from the dispatch loop itself, only from a goroutine it
// spawns for that purpose (spec §4.4, §5: builds must never block message
// dispatch; see dispatch.Dispatcher.enqueueBuild).
type Queue interface {
	RequestBuild(projectPath string, priority Priority) Result
}

// pending tracks the latest request for one project path so a newer
// request can squash an older, not-yet-started one.
type pending struct {
	generation int64
	priority   Priority
}

// Runner runs `command args... projectPath` as the compile step. A real
// deployment points it at the project's actual build tool; tests typically
// point it at a stub script.
type Runner struct {
	mu      sync.Mutex
	pending map[string]*pending
	gen     int64

	command string
	args    []string
	timeout time.Duration

	log logging.Logger
}

// NewRunner builds a Runner that shells out to command+args, appending the
// project path as the final argument, bounded by timeout per build.
func NewRunner(command string, args []string, timeout time.Duration, log logging.Logger) *Runner {
	return &Runner{
		pending: make(map[string]*pending),
		command: command,
		args:    args,
		timeout: timeout,
		log:     log,
	}
}

// RequestBuild registers projectPath's build as the latest generation,
// squashing any build still pending for the same path unless that one has
// a higher priority, then runs it and blocks until the command finishes.
// A build that was squashed while it ran reports Squashed.
func (r *Runner) RequestBuild(projectPath string, priority Priority) Result {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	if prev, ok := r.pending[projectPath]; !ok || prev.priority <= priority {
		if ok {
			r.log.Warning("build queue: squashing pending build for {Project} (priority {Priority})", projectPath, priority)
		}
		r.pending[projectPath] = &pending{generation: gen, priority: priority}
	}
	r.mu.Unlock()

	buildID := uuid.NewString()
	r.log.Information("build queue: starting {BuildID} for {Project} at {Priority}", buildID, projectPath, priority)

	return r.run(projectPath, priority, gen, buildID)
}

func (r *Runner) run(projectPath string, priority Priority, gen int64, buildID string) Result {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	args := append(append([]string{}, r.args...), projectPath)
	cmd := exec.CommandContext(ctx, r.command, args...)
	output, err := cmd.CombinedOutput()

	r.mu.Lock()
	current, ok := r.pending[projectPath]
	squashed := ok && current.generation != gen
	if ok && current.generation == gen {
		delete(r.pending, projectPath)
	}
	r.mu.Unlock()

	var result Result
	switch {
	case squashed:
		result = Result{Kind: Squashed}
		r.log.Information("build queue: {BuildID} squashed", buildID)
	case err != nil && !errors.As(err, new(*exec.ExitError)):
		// The command never ran (e.g. not found): not a build failure.
		result = Result{Kind: Err, Output: string(output), Err: err}
		r.log.Warning("build queue: {BuildID} could not start: {Error}", buildID, err)
	case err != nil:
		result = Result{Kind: Failure, Output: string(output), Err: err}
		r.log.Warning("build queue: {BuildID} failed: {Error}", buildID, err)
	default:
		result = Result{Kind: Success, Output: string(output)}
		r.log.Information("build queue: {BuildID} succeeded", buildID)
	}
	return result
}
