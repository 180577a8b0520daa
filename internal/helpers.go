package internal

// ContextValue returns the request-scoped value stored under key, or T's
// zero value when it is absent or of another type.
func ContextValue[T any](c Context, key any) T {
	v, _ := c.Get(key).(T)
	return v
}
