package domain

import "context"

type agentKey struct{}

// WithAgent returns a copy of ctx carrying the id of the authenticated agent.
func WithAgent(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, agentKey{}, id)
}

// AgentFromContext returns the agent id stored by WithAgent, if any.
func AgentFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(agentKey{}).(string)
	return id, ok
}
