// Package repl reads command lines interactively and runs each through a
// fresh cobra command tree.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"
)

const prompt = "leetcode> "

// Session holds REPL state.
type Session struct {
	newRoot      func() *cobra.Command
	input        *bufio.Reader
	outputWriter *bufio.Writer
}

// New creates a session. newRoot must return a new tree on every call since
// cobra keeps parsed flag values on the commands.
func New(newRoot func() *cobra.Command, in io.Reader, out io.Writer) *Session {
	return &Session{
		newRoot:      newRoot,
		input:        bufio.NewReader(in),
		outputWriter: bufio.NewWriter(out),
	}
}

// Run reads lines until EOF, exit or context cancellation. Command errors
// are printed and do not end the session.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, _ = s.outputWriter.WriteString(prompt)
		_ = s.outputWriter.Flush()
		line, err := s.input.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				s.printLine("")
				return nil
			}
			return fmt.Errorf("read input failed: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if done := s.handleSystemCommand(line); done {
			return nil
		}
		if err := s.handleCommand(ctx, line); err != nil {
			s.printLine("error: %v", err)
		}
	}
}

// handleSystemCommand reports whether the session should end.
func (s *Session) handleSystemCommand(line string) bool {
	switch line {
	case "exit", "quit":
		s.printLine("bye")
		return true
	}
	return false
}

func (s *Session) handleCommand(ctx context.Context, line string) error {
	tokens, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("parse command failed: %w", err)
	}
	if len(tokens) > 0 && tokens[0] == "help" {
		tokens = append(tokens[1:], "--help")
	}
	root := s.newRoot()
	root.SetArgs(tokens)
	root.SetIn(s.input)
	root.SetOut(s.outputWriter)
	root.SetErr(s.outputWriter)
	err = root.ExecuteContext(ctx)
	_ = s.outputWriter.Flush()
	return err
}

func (s *Session) printLine(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.outputWriter, format+"\n", args...)
	_ = s.outputWriter.Flush()
}
