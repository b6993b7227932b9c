package iocli

//go:generate moq -out io_mock.go . IO

// IO is the terminal used by the commands.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	// Select asks to pick one of items and returns its index.
	Select(label string, items []string) (int, error)
	Write(p []byte) (n int, err error)
}
