package entity

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

type User struct {
	ID          uuid.UUID
	Email       string
	CustomerKey string // Acquiring customer key of the user's cards.
	Role        string
}

const (
	RoleManager = "manager"
	RoleUser    = "user"
)

// CanAccessCustomer reports whether the user may read or change cards of the customer.
func (u User) CanAccessCustomer(customerKey string) bool {
	return u.Role == RoleManager || (u.CustomerKey != "" && u.CustomerKey == customerKey)
}

type ctxKey int

const ctxKeyUser ctxKey = iota

func CtxWithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, user)
}

// UserFromCtx returns user from context or ErrUnauthenticated if user is not found.
func UserFromCtx(ctx context.Context) (User, error) {
	user, ok := ctx.Value(ctxKeyUser).(User)
	if !ok {
		return User{}, ErrUnauthenticated
	}

	return user, nil
}
