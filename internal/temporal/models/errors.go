package models

import (
	ierr "github.com/harvestlane/backoffice/internal/errors"
)

// ErrInvalidTenantContext is returned by activities started without a tenant
var ErrInvalidTenantContext = ierr.NewError("invalid tenant context").Mark(ierr.ErrValidation)
