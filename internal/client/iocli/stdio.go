package iocli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// ErrNoChoice is returned by Select when the answer is not a listed item.
var ErrNoChoice = errors.New("no item selected")

type Stdio struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
}

func NewStdio() IO {
	return NewStdioWith(os.Stdin, os.Stdout)
}

// NewStdioWith reads from in and writes to out. Terminal features
// (hidden input, arrow-key menus) are used only when in is a terminal.
func NewStdioWith(in io.Reader, out io.Writer) IO {
	return &Stdio{in: in, out: out, reader: bufio.NewReader(in)}
}

func (s *Stdio) Println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	return s.readLine()
}

func (s *Stdio) readLine() (string, error) {
	input, err := s.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (s *Stdio) ReadPassword(prompt string) (string, error) {
	s.Printf("%s", prompt)
	fd, ok := s.terminal()
	if !ok {
		// ввод из pipe: читаем строку как есть
		return s.readLine()
	}
	pwBytes, err := term.ReadPassword(fd)
	s.Println("")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}

func (s *Stdio) Select(label string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, ErrNoChoice
	}
	if _, ok := s.terminal(); ok {
		prompt := promptui.Select{
			Label: label,
			Items: items,
			Size:  len(items),
		}
		i, _, err := prompt.Run()
		return i, err
	}

	s.Println(label)
	for i, item := range items {
		s.Printf("  %d) %s\n", i+1, item)
	}
	answer, err := s.ReadInput("> ")
	if err != nil {
		return -1, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(items) {
		return -1, fmt.Errorf("%w: %q", ErrNoChoice, answer)
	}
	return n - 1, nil
}

func (s *Stdio) terminal() (int, bool) {
	f, ok := s.in.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}
