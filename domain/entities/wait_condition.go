package entities

// WaitCondition describes what a session wait polls for.
// Script is a JS expression evaluating to a boolean; sessions without a
// script engine evaluate Selector and Expect natively.
type WaitCondition struct {
	Selector string
	Expect   Visibility
	Script   string
}
