// Package main provides runtime wiring for task runs.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vinayprograms/agentkit/llm"
	"github.com/vinayprograms/agentkit/telemetry"

	"github.com/vinayprograms/taskengine/internal/agent"
	"github.com/vinayprograms/taskengine/internal/bus"
	"github.com/vinayprograms/taskengine/internal/config"
	"github.com/vinayprograms/taskengine/internal/monitor"
	"github.com/vinayprograms/taskengine/internal/plan"
	"github.com/vinayprograms/taskengine/internal/tools"
)

// runtime holds the wired components for one task run.
type runtime struct {
	cfg       *config.Config
	provider  llm.Provider
	registry  *tools.Registry
	mon       *monitor.Monitor
	telem     telemetry.Exporter
	publisher *bus.Publisher
	runID     string

	closers []func()
}

// newRuntime loads config and applies command-line overrides.
func newRuntime(cmd *RunCmd) (*runtime, error) {
	var cfg *config.Config
	var err error
	if cmd.Config != "" {
		cfg, err = config.LoadFile(cmd.Config)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Workspace != "" {
		cfg.Engine.Workspace = cmd.Workspace
	}
	if cmd.Events {
		cfg.Events.Enabled = true
	}

	return &runtime{cfg: cfg, runID: uuid.NewString()}, nil
}

// setup initializes all runtime components.
func (rt *runtime) setup() error {
	if err := rt.createProvider(); err != nil {
		return err
	}
	rt.setupRegistry()
	rt.setupMonitor()
	if err := rt.setupTelemetry(); err != nil {
		return err
	}
	return rt.setupEvents()
}

// createProvider creates the decision provider from config.
func (rt *runtime) createProvider() error {
	providerName := rt.cfg.LLM.Provider
	if providerName == "" {
		providerName = llm.InferProviderFromModel(rt.cfg.LLM.Model)
	}
	if providerName == "" && rt.cfg.LLM.Model == "" {
		return fmt.Errorf("LLM model not configured")
	}

	var err error
	rt.provider, err = llm.NewProvider(llm.ProviderConfig{
		Provider:  providerName,
		Model:     rt.cfg.LLM.Model,
		APIKey:    rt.cfg.GetAPIKey(),
		MaxTokens: rt.cfg.LLM.MaxTokens,
		BaseURL:   rt.cfg.LLM.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("creating LLM provider: %w", err)
	}
	return nil
}

// setupRegistry creates the builtin tool registry. The search capability
// is external; runs without one simply have no search tool.
func (rt *runtime) setupRegistry() {
	rt.registry = tools.NewBuiltinRegistry(rt.cfg.Engine.Workspace, nil)
}

// setupMonitor creates the health monitor with configured thresholds.
func (rt *runtime) setupMonitor() {
	rt.mon = monitor.New()
	if s := rt.cfg.Monitor.StuckThresholdSeconds; s > 0 {
		rt.mon.StuckThreshold = time.Duration(s) * time.Second
	}
	if s := rt.cfg.Monitor.TimeoutReferenceSeconds; s > 0 {
		rt.mon.TimeoutReference = time.Duration(s) * time.Second
	}
}

// setupTelemetry creates the telemetry exporter.
func (rt *runtime) setupTelemetry() error {
	var err error
	if rt.cfg.Telemetry.Enabled {
		rt.telem, err = telemetry.NewExporter(rt.cfg.Telemetry.Protocol, rt.cfg.Telemetry.Endpoint)
		if err != nil {
			return fmt.Errorf("creating telemetry exporter: %w", err)
		}
	} else {
		rt.telem = telemetry.NewNoopExporter()
	}
	rt.addCloser(func() { rt.telem.Close() })
	return nil
}

// setupEvents connects the NATS publisher when event publishing is on.
func (rt *runtime) setupEvents() error {
	if !rt.cfg.Events.Enabled {
		return nil
	}
	pub, err := bus.Connect(rt.cfg.Events.NATSURL, rt.runID)
	if err != nil {
		return fmt.Errorf("connecting event publisher: %w", err)
	}
	rt.publisher = pub
	rt.addCloser(pub.Close)
	return nil
}

func (rt *runtime) addCloser(f func()) {
	rt.closers = append(rt.closers, f)
}

// close tears down runtime components in reverse order.
func (rt *runtime) close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
}

// runTask wires the runtime and drives one autonomous run.
func runTask(cmd *RunCmd) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	if err := rt.setup(); err != nil {
		return err
	}
	defer rt.close()

	task := cmd.Task
	if cmd.Plan != "" {
		p, err := plan.LoadFile(cmd.Plan)
		if err != nil {
			return err
		}
		for i := range p.Steps {
			rt.mon.SetStepTimeout(p.Steps[i].ID, p.Steps[i].StepTimeout())
		}
		if task == "" {
			task = p.Goal
		}
	}
	if task == "" {
		return fmt.Errorf("no task given: pass a task argument or --plan")
	}

	eng := agent.New(rt.provider, rt.registry)
	eng.SetMonitor(rt.mon)

	buffer := rt.cfg.Events.Buffer
	if buffer <= 0 {
		buffer = 64
	}
	events := make(chan agent.Event, buffer)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			fmt.Println(renderEvent(ev))
			if rt.publisher != nil {
				rt.publisher.Publish(ev)
			}
		}
	}()

	actx, runErr := eng.Run(context.Background(), task, events)
	close(events)
	<-done
	if runErr != nil {
		return runErr
	}

	fmt.Print(renderSummary(actx, rt.mon))
	return nil
}

// validatePlanFile loads a plan and reports on its dependency graph.
func validatePlanFile(path string) error {
	p, err := plan.LoadFile(path)
	if err != nil {
		return err
	}
	fmt.Println(renderValidationOK(p))
	return nil
}

// inspectPlanFile prints a plan's structure and its initial ready frontier.
func inspectPlanFile(path string) error {
	p, err := plan.LoadFile(path)
	if err != nil {
		return err
	}
	fmt.Print(renderPlan(p))
	return nil
}
