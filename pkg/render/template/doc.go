// Package template defines the engine-agnostic seam page and component
// renderers use to execute templates. Concrete engines live in subpackages.
package template
