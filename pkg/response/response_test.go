package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_IsThroughWrapping(t *testing.T) {
	req := require.New(t)
	errBusy := NewError(http.StatusServiceUnavailable, "camera unavailable")

	wrapped := fmt.Errorf("%w: device 0 already open", errBusy)

	req.ErrorIs(wrapped, errBusy)
	req.False(errors.Is(wrapped, NewError(http.StatusBadRequest, "camera unavailable")))
	req.Equal(http.StatusServiceUnavailable, StatusOf(wrapped, http.StatusInternalServerError))
	req.Equal(http.StatusInternalServerError, StatusOf(errors.New("boom"), http.StatusInternalServerError))
}
