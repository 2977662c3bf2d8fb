package errx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestAsRecoversWrappedAppError(t *testing.T) {
	base := NotFound("Restaurant not found")
	wrapped := fmt.Errorf("menu: %w", base)

	ae := As(wrapped)
	require.NotNil(t, ae)
	assert.Same(t, base, ae)
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindValidation))
	assert.Nil(t, As(nil))
}

func TestAsTreatsPlainErrorsAsUnexpected(t *testing.T) {
	ae := As(errors.New("boom"))
	assert.Equal(t, KindUnexpected, ae.Kind)
	assert.Equal(t, http.StatusInternalServerError, ae.Status)
	assert.Equal(t, "boom", ae.Message)
}

func TestUpstreamDefaultsToBadGateway(t *testing.T) {
	assert.Equal(t, http.StatusBadGateway, Upstream(nil, 0, "down").Status)
	assert.Equal(t, http.StatusServiceUnavailable, Upstream(nil, http.StatusServiceUnavailable, "down").Status)
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "bad", Validation("bad").Error())
	cause := errors.New("eof")
	err := Unexpected(cause, "read failed")
	assert.Equal(t, "read failed: eof", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestWrapMongo(t *testing.T) {
	assert.NoError(t, WrapMongo(nil, "restaurants"))

	err := WrapMongo(mongo.ErrNoDocuments, "restaurant")
	assert.True(t, IsKind(err, KindNotFound))

	err = WrapMongo(context.DeadlineExceeded, "restaurants")
	ae := As(err)
	assert.Equal(t, KindUpstream, ae.Kind)
	assert.Contains(t, ae.Message, "Error fetching restaurants")

	err = WrapMongo(errors.New("weird"), "restaurants")
	assert.Equal(t, KindUnexpected, As(err).Kind)
}
