package spotify

import (
	"context"
)

// UsersService provides user profile operations.
type UsersService struct {
	client *Client
}

// Me returns the profile of the user the access token belongs to.
//
// Example:
//
//	me, err := client.Users().Me(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(me.ID, me.DisplayName)
func (s *UsersService) Me(ctx context.Context) (*User, error) {
	return fetch[User](ctx, s.client, epCurrentUser.request())
}

// Get returns the public profile of a user.
func (s *UsersService) Get(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, invalidArgument("user id is required")
	}
	return fetch[User](ctx, s.client, epUser.request(userID))
}
