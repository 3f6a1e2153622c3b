package webcat

// Prompter asks the operator a yes/no question.
type Prompter interface {
	Confirm(message string) (bool, error)
}

// Clipboard receives the final document.
type Clipboard interface {
	Copy(text string) error
}
