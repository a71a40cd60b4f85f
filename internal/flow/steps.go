package flow

import "context"

type Step struct {
	Name    string
	Execute func(ctx context.Context) error
}

func NewStep(name string, execute func(ctx context.Context) error) Step {
	return Step{
		Name:    name,
		Execute: execute,
	}
}
