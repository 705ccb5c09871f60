package test_utils

import (
	"context"

	"github.com/padelcoach/padelcoach/pkg/user"
)

// TestUser is the fixture user injected into request contexts in tests.
var TestUser = user.User{
	Id:          123,
	Uid:         "test-user-uid",
	Email:       "coach@example.com",
	DisplayName: "Test Coach",
	Settings: user.Settings{
		Timezone: "Europe/Lisbon",
	},
}

// ContextWithTestUser returns a context carrying the fixture user, the way
// the X-User-Id middleware would populate it.
func ContextWithTestUser(ctx context.Context) context.Context {
	return user.WithUser(ctx, TestUser)
}
