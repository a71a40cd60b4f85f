// Package flow runs a linear pipeline of named steps, stopping at the
// first failure and reporting which step failed.
package flow

import (
	"context"
	"fmt"

	"fbsbot/pkg/logger"
)

type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed, pipeline errored: %s", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

type Pipeline struct {
	name  string
	steps []Step
	log   *logger.Logger
}

func NewPipeline(name string, log *logger.Logger, steps ...Step) *Pipeline {
	return &Pipeline{
		name:  name,
		steps: steps,
		log:   log,
	}
}

func (p *Pipeline) Run(ctx context.Context) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return &StepError{Step: step.Name, Err: err}
		}
		p.log.Debug("Running pipeline step", "pipeline", p.name, "step", step.Name)
		if err := step.Execute(ctx); err != nil {
			p.log.Error("Pipeline step failed", "pipeline", p.name, "step", step.Name, "error", err)
			return &StepError{Step: step.Name, Err: err}
		}
	}
	return nil
}
