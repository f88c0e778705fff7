package main

import (
	"yieldsynth-tui/data"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}

// toastsChangedMsg signals that a notification was added, dismissed or expired
type toastsChangedMsg struct{}

// walletConnectedMsg carries the result of a connect completion
type walletConnectedMsg struct {
	providerID string
	err        error
}

// networkSwitchedMsg carries the result of a network switch
type networkSwitchedMsg struct {
	network string
	err     error
}

// txSignedMsg carries the signed deployment of a strategy
type txSignedMsg struct {
	strategy data.Strategy
	txID     string
	err      error
}

// refreshDoneMsg indicates the data store cleared its loading flag
type refreshDoneMsg struct{}

// actionDoneMsg indicates a quick action finished
type actionDoneMsg struct {
	id  string
	err error
}

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct {
	what string
	err  error
}
