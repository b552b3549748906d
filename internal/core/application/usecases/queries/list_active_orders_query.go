package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrListActiveOrdersQueryIsNotConstructed = errors.New(
		"ListActiveOrdersQuery must be created via NewListActiveOrdersQuery constructor",
	)
)

// ListActiveOrdersQuery retrieves every order that is neither COMPLETED nor
// CANCELLED, oldest first. Used by the kitchen and dispatch boards.
type ListActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewListActiveOrdersQuery() ListActiveOrdersQuery {
	return ListActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListActiveOrdersQueryIsNotConstructed)
}
