package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errs.NewObjectNotFoundError("orderId", 1), http.StatusNotFound},
		{errs.NewIllegalTransitionError("ORDER", "PENDING", "COMPLETED"), http.StatusUnprocessableEntity},
		{errs.NewConsistencyViolationError("dispatch-requires-driver", "no driver"), http.StatusConflict},
		{errs.NewVersionConflictError(1, 2, 3), http.StatusPreconditionFailed},
		{errs.NewLockTimeoutError("order:1", time.Second), http.StatusServiceUnavailable},
		{errs.NewValueIsRequiredError("actor.source"), http.StatusBadRequest},
		{errors.Join(errs.NewValueIsInvalidError("orderId"), errs.NewValueIsRequiredError("items")), http.StatusBadRequest},
		{fmt.Errorf("commit: %w", errs.NewVersionConflictError(1, 2, 3)), http.StatusPreconditionFailed},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.err))
		})
	}
}
