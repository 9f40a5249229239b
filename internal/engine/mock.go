package engine

import "context"

// MockEngine implements [Engine] without spawning real processes.
type MockEngine struct {
	// Requests records all execution requests in order.
	Requests []Request

	// FailOnAction specifies a target action whose executions should fail.
	FailOnAction string

	// FailOnWorkflow specifies a workflow file whose executions should fail.
	FailOnWorkflow string

	// FailExitCode is the exit code for failing executions. Zero means 1.
	FailExitCode int

	// Err, when set, is returned by every call, simulating an engine that
	// cannot be invoked.
	Err error
}

func (m *MockEngine) Exec(ctx context.Context, req Request) (Result, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return Result{}, m.Err
	}

	failed := (m.FailOnAction != "" && req.Action == m.FailOnAction) ||
		(m.FailOnWorkflow != "" && req.WorkflowFile == m.FailOnWorkflow)
	if failed {
		code := m.FailExitCode
		if code == 0 {
			code = 1
		}
		return Result{ExitCode: code}, nil
	}
	return Result{ExitCode: 0}, nil
}
