// Package middlewarectx содержит HTTP middleware аутентификации, проверки доступа
// и ограничения частоты запросов, а также ключи контекста запроса.
package middlewarectx

import "context"

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User: ключ для имени пользователя в контексте
	User Key = "username"
	// Role: ключ для роли пользователя в контексте
	Role Key = "role"
	// UserUID: ключ для UID пользователя в контексте
	UserUID Key = "user_uid"
)

// UserUIDFrom достаёт UID пользователя, положенный JWTMiddleware.
func UserUIDFrom(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(UserUID).(string)
	return uid, ok && uid != ""
}

// WithUser кладёт данные пользователя в контекст.
func WithUser(ctx context.Context, userUID, username, role string) context.Context {
	ctx = context.WithValue(ctx, UserUID, userUID)
	ctx = context.WithValue(ctx, User, username)
	return context.WithValue(ctx, Role, role)
}
