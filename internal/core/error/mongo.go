package errx

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// WrapMongo maps driver failures on list/count queries. The message keeps the
// "Error fetching restaurants" prefix the REST clients already match on.
func WrapMongo(err error, what string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return New(KindNotFound, err, http.StatusNotFound, fmt.Sprintf("%s not found", what))
	}

	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return New(KindUpstream, err, http.StatusInternalServerError, fmt.Sprintf("Error fetching %s: %v", what, err))
	}

	return New(KindUnexpected, err, http.StatusInternalServerError, fmt.Sprintf("Error fetching %s: %v", what, err))
}
