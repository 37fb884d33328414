// Package kernel holds the identifier value object shared by the order domain,
// the repositories and the REST adapter.
package kernel
