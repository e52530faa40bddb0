// Package logging is the application's structured logger: a thin zerolog
// wrapper whose level can be changed at runtime and whose format follows the
// terminal by default.
package logging
