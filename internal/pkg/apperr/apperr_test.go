package apperr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, 400, Status(Validation("bad")))
	assert.Equal(t, 404, Status(NotFound("gone")))
	assert.Equal(t, 409, Status(Conflict("busy")))
	assert.Equal(t, 423, Status(Locked("day locked")))
	assert.Equal(t, 422, Status(InsufficientBalance("short")))
	assert.Equal(t, 500, Status(fmt.Errorf("plain")))
}

func TestIsKindThroughWrap(t *testing.T) {
	err := fmt.Errorf("apply txn: %w", InsufficientBalance("balance would go negative"))
	assert.True(t, IsKind(err, KindInsufficientBalance))
	assert.False(t, IsKind(err, KindValidation))
	assert.Equal(t, 422, Status(err))
}
