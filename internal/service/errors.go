package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/splitledger/splitledger/internal/apperr"
	"github.com/splitledger/splitledger/internal/auth"
)

// rpcError maps the engine's typed errors onto Connect codes. The
// taxonomy is deliberate: wrong input (InvalidArgument), wrong state
// (FailedPrecondition), wrong actor (PermissionDenied), and missing
// entity (NotFound) must stay distinguishable on the wire.
func rpcError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}

	var (
		validationErr *apperr.ValidationError
		stateErr      *apperr.InvalidStateError
		permissionErr *apperr.PermissionError
		notFoundErr   *apperr.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.As(err, &stateErr):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.As(err, &permissionErr):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.As(err, &notFoundErr):
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

func errUnauthenticated() error {
	return connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
}
