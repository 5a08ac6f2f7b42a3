package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/gatekeeper/internal/audit/domain"
	"github.com/allisson/gatekeeper/internal/database"
)

type interceptor struct {
	recorder         Recorder
	principalFinder  PrincipalFinder
	identityResolver IdentityResolver
	logger           *slog.Logger
}

// NewInterceptor creates an Interceptor. identityResolver may be nil for callers that never
// run behind authentication, such as CLI commands.
func NewInterceptor(
	recorder Recorder,
	principalFinder PrincipalFinder,
	identityResolver IdentityResolver,
	logger *slog.Logger,
) Interceptor {
	return &interceptor{
		recorder:         recorder,
		principalFinder:  principalFinder,
		identityResolver: identityResolver,
		logger:           logger,
	}
}

func (i *interceptor) Intercept(
	ctx context.Context,
	action string,
	args []any,
	op func(ctx context.Context) error,
) (err error) {
	record := i.newRecord(ctx, action, args)

	completed := false
	defer func() {
		if completed {
			return
		}
		r := recover()
		record.Outcome = auditDomain.OutcomeFailed
		record.Message = "aborted" // op left through runtime.Goexit
		if r != nil {
			record.Message = fmt.Sprintf("panic: %v", r)
		}
		i.recorder.Record(ctx, record)
		if r != nil {
			panic(r)
		}
	}()

	err = op(ctx)
	completed = true

	if err != nil {
		record.Outcome = auditDomain.OutcomeFailed
		record.Message = err.Error()
	} else {
		record.Outcome = auditDomain.OutcomeSuccess
	}
	i.recorder.Record(ctx, record)

	return err
}

// newRecord captures everything known before the operation runs.
func (i *interceptor) newRecord(ctx context.Context, action string, args []any) *auditDomain.AuditRecord {
	origin := auditDomain.OriginFromContext(ctx)
	actor := i.resolveActor(ctx, args)

	return &auditDomain.AuditRecord{
		ID:            uuid.Must(uuid.NewV7()),
		EventTime:     auditDomain.Now(),
		Actor:         actor,
		PrincipalID:   i.lookupPrincipal(ctx, actor),
		Action:        action,
		ClientAddress: origin.ClientAddress,
		Path:          origin.Path,
		Method:        origin.Method,
	}
}

func (i *interceptor) resolveActor(ctx context.Context, args []any) string {
	if i.identityResolver != nil {
		if name, ok := i.identityResolver(ctx); ok {
			name = strings.TrimSpace(name)
			if name != "" && name != auditDomain.AnonymousActor {
				return name
			}
		}
	}

	for _, arg := range args {
		carrier, ok := arg.(auditDomain.UsernameCarrier)
		if !ok {
			continue
		}
		if name := strings.TrimSpace(safeUsername(carrier)); name != "" {
			return name
		}
	}

	return auditDomain.AnonymousActor
}

// safeUsername treats a panicking accessor (typically a nil pointer receiver) as no username.
func safeUsername(carrier auditDomain.UsernameCarrier) (name string) {
	defer func() {
		if recover() != nil {
			name = ""
		}
	}()
	return carrier.GetUsername()
}

func (i *interceptor) lookupPrincipal(ctx context.Context, actor string) *uuid.UUID {
	if actor == auditDomain.AnonymousActor || i.principalFinder == nil {
		return nil
	}

	principal, err := i.principalFinder.GetByUsername(database.Detach(ctx), actor)
	if err != nil {
		i.logger.Debug("audit actor is not a known principal",
			slog.String("actor", actor),
			slog.Any("error", err),
		)
		return nil
	}

	id := principal.ID
	return &id
}

// Invoke runs op through the interceptor and returns op's result unchanged.
func Invoke[T any](
	ctx context.Context,
	interceptor Interceptor,
	action string,
	args []any,
	op func(ctx context.Context) (T, error),
) (T, error) {
	var result T
	err := interceptor.Intercept(ctx, action, args, func(ctx context.Context) error {
		var opErr error
		result, opErr = op(ctx)
		return opErr
	})
	return result, err
}
