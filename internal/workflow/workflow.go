// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

/*
Package workflow implements the mutation workflow every state-changing page
runs through:

	Start → Authorized → CsrfVerified → Validated → Committed(success|noop|failed)

The Authorization Gate runs earlier, as routing middleware; this package
drives the remaining transitions for a POST:

  - CsrfVerified: the one-shot token is consumed and compared; any failure is
    a hard rejection before the mutation is attempted.
  - Validated: the form-level validator returned zero errors; otherwise the
    form is re-rendered with prior input and the full error list (the CSRF
    token is not reissued implicitly; the re-rendered page issues its own).
  - Committed: the mutation ran, inside a transaction when it spans more than
    one statement. A zero-row outcome is reported as info ("nothing
    changed"), distinct from both success and a hard error.

Every terminal outcome resolves to a redirect (post-redirect-get), so
refreshing the landing page never re-submits the mutation. Nothing in this
workflow is fatal to the process.
*/
package workflow

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hfahrudin/apotek/internal/platform/apperr"
	"github.com/hfahrudin/apotek/internal/platform/constants"
	"github.com/hfahrudin/apotek/internal/platform/ctxutil"
	"github.com/hfahrudin/apotek/internal/platform/metrics"
	"github.com/hfahrudin/apotek/internal/session"
)

// # Outcomes

// Outcome is the terminal state of a successfully executed mutation.
type Outcome int

const (
	// Committed: the store acknowledged the change.
	Committed Outcome = iota

	// Noop: the statement ran but affected zero rows. The target vanished
	// or nothing changed. Reported as info, never as success or error.
	Noop
)

// outcome label values for the metrics counter.
const (
	labelSuccess = "success"
	labelNoop    = "noop"
	labelFailed  = "failed"
)

// # Mutation Specification

// Mutation describes one state-changing form submission.
type Mutation struct {
	// Validate parses and validates the submitted fields, binding them for
	// Mutate. All failures are accumulated into one VALIDATION_FAILED error.
	Validate func(request *http.Request) error

	// Mutate executes the change against the store. Multi-statement changes
	// run inside a transaction owned by the store layer.
	Mutate func(ctx context.Context) (Outcome, error)

	// SuccessMessage is flashed on Committed.
	SuccessMessage string

	// NoopMessage is flashed on Noop. Empty falls back to a generic notice.
	NoopMessage string

	// SuccessPath is the post-redirect-get target for Committed and Noop.
	SuccessPath string

	// FailPath is the redirect target for hard rejections (CSRF, constraint,
	// persistence). Empty falls back to SuccessPath.
	FailPath string

	// RenderInvalid re-renders the form with prior input and the accumulated
	// error list. When nil, validation failures flash-redirect to FailPath
	// instead.
	RenderInvalid func(writer http.ResponseWriter, request *http.Request, details []apperr.FieldError)
}

// # Runner

// Runner executes [Mutation] specs against the session manager.
type Runner struct {
	sessions *session.Manager
}

// NewRunner constructs a workflow [Runner].
func NewRunner(sessions *session.Manager) *Runner {
	return &Runner{sessions: sessions}
}

/*
Run drives a POST through the mutation workflow.

Description: Consumes the CSRF token, validates the form, executes the
mutation, and resolves the terminal state to a flash-carrying redirect. On
any failure the mutation is never partially applied: CSRF and validation
rejections happen before the store is touched, and store-level failures roll
back inside the store layer.

Parameters:
  - writer: http.ResponseWriter
  - request: *http.Request
  - mutation: Mutation
*/
func (runner *Runner) Run(writer http.ResponseWriter, request *http.Request, mutation Mutation) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)
	sess := session.FromContext(ctx)

	failPath := mutation.FailPath
	if failPath == "" {
		failPath = mutation.SuccessPath
	}

	// ── 1. CSRF Guard (Authorized → CsrfVerified) ─────────────────────────
	if err := request.ParseForm(); err != nil {
		runner.reject(writer, request, sess, apperr.CsrfRejected(), failPath)
		return
	}

	supplied := request.PostFormValue(constants.CsrfFormField)
	ok, err := session.ValidateAndConsume(ctx, runner.sessions.Store(), sess, supplied)
	if err != nil {
		logger.ErrorContext(ctx, "csrf_store_failure", slog.Any("error", err))
		runner.fail(writer, request, sess, apperr.PersistenceFailure(err), failPath)
		return
	}
	if !ok {
		metrics.CsrfRejectionsTotal.Inc()
		logger.WarnContext(ctx, "csrf_rejected", slog.String("target", request.URL.Path))
		runner.reject(writer, request, sess, apperr.CsrfRejected(), failPath)
		return
	}

	// ── 2. Field Validation (CsrfVerified → Validated) ────────────────────
	if mutation.Validate != nil {
		if err := mutation.Validate(request); err != nil {
			runner.invalid(writer, request, sess, mutation, err, failPath)
			return
		}
	}

	// ── 3. Transactional Mutation (Validated → Committed) ─────────────────
	outcome, err := mutation.Mutate(ctx)
	if err != nil {
		runner.invalid(writer, request, sess, mutation, err, failPath)
		return
	}

	// ── 4. Terminal Flash (post-redirect-get) ─────────────────────────────
	switch outcome {
	case Noop:
		metrics.MutationsTotal.WithLabelValues(labelNoop).Inc()
		message := mutation.NoopMessage
		if message == "" {
			message = "Nothing changed"
		}
		runner.sessions.PutFlash(ctx, sess, session.FlashInfo, message)
	default:
		metrics.MutationsTotal.WithLabelValues(labelSuccess).Inc()
		if mutation.SuccessMessage != "" {
			runner.sessions.PutFlash(ctx, sess, session.FlashSuccess, mutation.SuccessMessage)
		}
	}

	http.Redirect(writer, request, mutation.SuccessPath, http.StatusSeeOther)
}

// invalid resolves a validation or mutation error to its terminal state.
func (runner *Runner) invalid(
	writer http.ResponseWriter,
	request *http.Request,
	sess *session.Session,
	mutation Mutation,
	err error,
	failPath string,
) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.PersistenceFailure(err)
	}

	switch appError.Code {
	case apperr.CodeValidationFailed:
		// Recovered locally: re-render with prior input and every error.
		metrics.MutationsTotal.WithLabelValues(labelFailed).Inc()
		if mutation.RenderInvalid != nil {
			mutation.RenderInvalid(writer, request, appError.Details)
			return
		}
		runner.reject(writer, request, sess, appError, failPath)

	case apperr.CodeSelfActionBlocked:
		// Recovered locally: no store write was attempted.
		metrics.MutationsTotal.WithLabelValues(labelFailed).Inc()
		logger.WarnContext(ctx, "self_action_blocked", slog.String("target", request.URL.Path))
		runner.reject(writer, request, sess, appError, failPath)

	case apperr.CodeNotFound:
		// Target id absent: an info flash, not a crash.
		metrics.MutationsTotal.WithLabelValues(labelNoop).Inc()
		runner.sessions.PutFlash(ctx, sess, session.FlashInfo, appError.Message)
		http.Redirect(writer, request, failPath, http.StatusSeeOther)

	default:
		runner.fail(writer, request, sess, appError, failPath)
	}
}

// reject flashes the client-safe message and redirects; used for failures
// that never reached the store.
func (runner *Runner) reject(
	writer http.ResponseWriter,
	request *http.Request,
	sess *session.Session,
	appError *apperr.AppError,
	failPath string,
) {
	runner.sessions.PutFlash(request.Context(), sess, session.FlashError, appError.Message)
	http.Redirect(writer, request, failPath, http.StatusSeeOther)
}

// fail handles store-level failures: the transaction has already rolled
// back, the internal detail goes to the logging sink only, and the user
// sees a safe, actionable message.
func (runner *Runner) fail(
	writer http.ResponseWriter,
	request *http.Request,
	sess *session.Session,
	appError *apperr.AppError,
	failPath string,
) {
	ctx := request.Context()
	metrics.MutationsTotal.WithLabelValues(labelFailed).Inc()

	ctxutil.GetLogger(ctx).ErrorContext(ctx, "mutation_failed",
		slog.String("code", appError.Code),
		slog.String("target", request.URL.Path),
		slog.Any("cause", appError.Cause),
	)

	runner.sessions.PutFlash(ctx, sess, session.FlashError, appError.Message)
	http.Redirect(writer, request, failPath, http.StatusSeeOther)
}
