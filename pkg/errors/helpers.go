package errors

import (
	"context"
)

// CheckContext wraps a canceled or expired context into a coded error
// naming the interrupted operation. It returns nil while ctx is live.
func CheckContext(ctx context.Context, operation string) error {
	if err := ctx.Err(); err != nil {
		return Wrap(err, Canceled, operation+" canceled")
	}
	return nil
}
