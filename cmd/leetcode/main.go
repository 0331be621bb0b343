package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wanglun/leetcode.vim/internal/cli/command"
	"github.com/wanglun/leetcode.vim/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := command.NewApp(os.Stdout)
	root := command.NewRootCommand(app)
	err := root.ExecuteContext(ctx)
	_ = app.Close()
	if err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// reportError writes the failure as JSON on stderr so callers can tell the
// error kind apart from the message.
func reportError(err error) {
	payload := map[string]interface{}{"error": err.Error()}
	if code := errors.GetCode(err); code != errors.InternalServerError {
		payload["code"] = int(code)
		payload["retryable"] = code.Retryable()
	}
	data, _ := json.Marshal(payload)
	fmt.Fprintln(os.Stderr, string(data))
}
