// Package types defines the World and EntityBuilder interfaces, the closed set
// of component value kinds, the borrow-checked Cell handle, and the standard
// errors for the Larder entity store.
package types
