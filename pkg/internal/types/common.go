package types

// Option configures a component at construction time.
type Option[T any] func(T)
