package cli

import (
	"bytes"

	"github.com/qwofford/popper/internal/config"
	"github.com/qwofford/popper/internal/engine"
	"github.com/qwofford/popper/internal/log"
	"github.com/qwofford/popper/internal/output"
	"github.com/qwofford/popper/internal/scm"
	"github.com/qwofford/popper/internal/signals"
	"github.com/qwofford/popper/internal/workflow"
)

// testApp bundles an [App] wired with mocks and the buffer its printer
// writes to.
type testApp struct {
	*App

	Engine *engine.MockEngine
	Repo   *scm.MockRepository
	Finder *workflow.MockFinder
	Out    *bytes.Buffer
}

// newTestApp creates an App backed entirely by mocks. The repository has
// a root and a plain head commit; tests override fields as needed.
func newTestApp() *testApp {
	eng := &engine.MockEngine{}
	repo := &scm.MockRepository{
		RootDir:    "/ws",
		HeadCommit: &scm.Commit{SHA: "abc123", Message: "Plain commit", Parents: []string{"p1"}},
	}
	finder := &workflow.MockFinder{ResolvedPath: "/ws/main.workflow"}
	buf := &bytes.Buffer{}

	return &testApp{
		App: &App{
			Config:    config.DefaultConfig(),
			Repo:      repo,
			Finder:    finder,
			Engine:    eng,
			Printer:   output.NewPrinterWithWriter(buf),
			Logger:    log.Discard(),
			Interrupt: &signals.State{},
		},
		Engine: eng,
		Repo:   repo,
		Finder: finder,
		Out:    buf,
	}
}

// executeRun drives the root command with "run" plus the given arguments
// and returns the resulting exit behavior.
func executeRun(app *testApp, args ...string) ExecuteResult {
	return RunWithApp(app.App, append([]string{"run"}, args...))
}
