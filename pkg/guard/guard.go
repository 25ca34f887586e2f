// Package guard protects a running game from being replaced without consent.
package guard

import (
	"context"
	"fmt"

	"github.com/aretw0/chimara/pkg/domain"
	"github.com/aretw0/chimara/pkg/ports"
)

// ReplacePrompt is the question asked before quitting a running game.
var ReplacePrompt = ports.Prompt{
	Message: "Are you sure you want to open a new game?",
	Detail:  "If you open a new game, you will quit the one you are currently playing.",
	Affirm:  "Open",
}

// ConfirmReplace decides whether a new game may be started.
//
// With no session running it proceeds without asking. Otherwise the user is
// asked; anything other than an explicit affirmative cancels and leaves the
// session untouched. On an affirmative answer the session is stopped and
// ConfirmReplace blocks until it has fully ended before returning Proceed.
func ConfirmReplace(ctx context.Context, session ports.Session, prompter ports.Prompter) (domain.Decision, error) {
	if !session.Running() {
		return domain.Proceed, nil
	}

	ok, err := prompter.Confirm(ctx, ReplacePrompt)
	if err != nil {
		return domain.Cancel, fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		return domain.Cancel, nil
	}

	session.Stop()
	if err := session.Wait(ctx); err != nil {
		return domain.Cancel, fmt.Errorf("failed waiting for the current game to end: %w", err)
	}
	return domain.Proceed, nil
}
