package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tastebook/backend/internal/service"
)

func TestRequireSelf(t *testing.T) {
	id := uuid.New()

	assert.NoError(t, service.RequireSelf(id, id))
	assert.ErrorIs(t, service.RequireSelf(id, uuid.New()), service.ErrForbidden)
}
