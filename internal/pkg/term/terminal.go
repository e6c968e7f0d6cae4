package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNotInteractive возвращается, если ввод не является терминалом
// и спросить пользователя нельзя.
var ErrNotInteractive = errors.New("stdin is not a terminal")

// Terminal обеспечивает интерактивный ввод через терминал.
type Terminal struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewTerminal создает Terminal поверх стандартных потоков процесса.
func NewTerminal() *Terminal {
	return &Terminal{
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// NewTerminalFrom создает Terminal с произвольными потоками (для тестов и пайпов).
func NewTerminalFrom(in io.Reader, out io.Writer, interactive bool) *Terminal {
	return &Terminal{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

// Interactive сообщает, подключен ли ввод к терминалу.
func (t *Terminal) Interactive() bool {
	return t.interactive
}

// Ask печатает приглашение и читает одну строку ответа.
func (t *Terminal) Ask(prompt string) (string, error) {
	if !t.interactive {
		return "", ErrNotInteractive
	}
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
