package data

import (
	"context"
	"fmt"
	"time"

	"yieldsynth-tui/notify"
)

// DefaultActionDelay is the simulated run time of a quick action
const DefaultActionDelay = 2 * time.Second

// QuickAction is a one-shot dashboard shortcut
type QuickAction struct {
	ID          string
	Title       string
	Description string
	Estimate    string
}

// QuickActions in display order
var QuickActions = []QuickAction{
	{ID: "rebalance", Title: "AI Rebalance", Description: "Optimize all positions", Estimate: "~2 min"},
	{ID: "newStrategy", Title: "New Strategy", Description: "Create yield farm", Estimate: "~5 min"},
	{ID: "harvest", Title: "Harvest Yields", Description: "Compound rewards", Estimate: "~1 min"},
	{ID: "optimize", Title: "Risk Analysis", Description: "Assess portfolio", Estimate: "~3 min"},
}

// LookupAction finds a quick action by id
func LookupAction(id string) (QuickAction, bool) {
	for _, a := range QuickActions {
		if a.ID == id {
			return a, true
		}
	}
	return QuickAction{}, false
}

// Run waits delay then posts a success notification. Cancelling ctx aborts
// silently with ctx.Err().
func (a QuickAction) Run(ctx context.Context, n notify.Notifier, delay time.Duration) error {
	if err := wait(ctx, delay); err != nil {
		return err
	}
	notifier(n).Notify(fmt.Sprintf("%s completed successfully!", a.Title), notify.Success, 0)
	return nil
}

// wait blocks for delay or until ctx is done
func wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func notifier(n notify.Notifier) notify.Notifier {
	if n == nil {
		return notify.Discard
	}
	return n
}
