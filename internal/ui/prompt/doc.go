// Package prompt provides small blocking terminal prompts.
//
// [Confirm] asks a yes/no question and defaults to "no".
package prompt
