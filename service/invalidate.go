package service

import (
	"context"

	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/kidsenglish/core"
)

// invalidatePrincipals xóa principal cache sau mutation.
// Mutation đã commit nên lỗi chỉ được log, entry cũ sẽ hết hạn theo TTL.
func invalidatePrincipals(ctx context.Context, invalidator core.CacheInvalidator, location string) {
	if invalidator == nil {
		return
	}
	if err := invalidator.InvalidatePrincipals(ctx); err != nil {
		goerrorkit.LogError(goerrorkit.WrapWithMessage(err, "Failed to invalidate principal cache"), location)
	}
}
