// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package session

import (
	"context"
	"fmt"

	"github.com/hfahrudin/apotek/internal/platform/constants"
	"github.com/hfahrudin/apotek/internal/platform/sec"
)

// # CSRF Guard
//
// A token moves through exactly two states: Issued (pending in the store)
// and Consumed (gone). ValidateAndConsume removes the pending token before
// comparing, so mismatch, absence, and double-submit all leave the session
// in the consumed state and a token can succeed at most once per issue.

/*
IssueToken generates a fresh unguessable token and stores it as the
session's pending token, overwriting any prior pending token. Only one
outstanding token per session.

Called when a form-bearing page renders; the token travels to the browser as
a hidden input and must accompany the following POST.

Parameters:
  - ctx: context.Context
  - store: Store
  - sess: *Session

Returns:
  - string: The issued token
  - error: Generation or storage failures
*/
func IssueToken(ctx context.Context, store Store, sess *Session) (string, error) {
	token, err := sec.GenerateSecureToken(constants.CsrfTokenLength)
	if err != nil {
		return "", fmt.Errorf("session_csrf_generate_failed: %w", err)
	}

	if err := store.SetCSRF(ctx, sess.ID, token); err != nil {
		return "", err
	}

	return token, nil
}

/*
ValidateAndConsume reports whether the supplied token exactly matches the
session's pending token, removing the pending token in the same operation.

Description: Returns true at most once per [IssueToken] call. Replaying a
consumed token, submitting a mismatched token, and submitting without a
pending token all return false, and in every case the pending token ends up
absent. Callers must treat false as a hard rejection and never partially
apply the mutation.

Parameters:
  - ctx: context.Context
  - store: Store
  - sess: *Session
  - suppliedToken: string

Returns:
  - bool: true iff the token was pending and matched exactly
  - error: Store connectivity failures only, never for a rejected token
*/
func ValidateAndConsume(ctx context.Context, store Store, sess *Session, suppliedToken string) (bool, error) {
	storedToken, err := store.ConsumeCSRF(ctx, sess.ID)
	if err != nil {
		return false, err
	}

	return sec.TokensEqual(storedToken, suppliedToken), nil
}
