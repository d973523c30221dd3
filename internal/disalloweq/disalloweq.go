// Package disalloweq provides a method for disallowing struct comparisons
// with the `==` operator.
package disalloweq

// DisallowEqual can be used to cause the compiler to reject attempts to
// compare structs with the `==` operator. Embed it, unexported, in any
// struct that carries secret scalar material.
type DisallowEqual [0]func()
