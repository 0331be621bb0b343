package logger_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/wanglun/leetcode.vim/pkg/utils/contextkey"
	"github.com/wanglun/leetcode.vim/pkg/utils/logger"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextFieldsAreAttached(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.SetGlobal(logger.NewWithCore(core))
	defer logger.SetGlobal(prev)

	ctx := context.WithValue(context.Background(), contextkey.TraceID, "trace-1")
	ctx = context.WithValue(ctx, contextkey.Operation, "get_problem")
	logger.Info(ctx, "request sent", zap.Int("status", 200))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["trace_id"] != "trace-1" {
		t.Errorf("trace_id = %v", fields["trace_id"])
	}
	if fields["operation"] != "get_problem" {
		t.Errorf("operation = %v", fields["operation"])
	}
	if fields["status"] != int64(200) {
		t.Errorf("status = %v", fields["status"])
	}
	if _, ok := fields["subject"]; ok {
		t.Errorf("subject should be absent")
	}
}

func TestUninitializedGlobalIsSilent(t *testing.T) {
	prev := logger.SetGlobal(nil)
	defer logger.SetGlobal(prev)

	logger.Error(context.Background(), "dropped")
	if err := logger.Sync(); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     logger.Config
		wantErr bool
	}{
		{name: "defaults", cfg: logger.Config{}},
		{name: "json to file", cfg: logger.Config{Level: "debug", Format: "json", OutputPath: filepath.Join(t.TempDir(), "judge.log")}},
		{name: "bad level", cfg: logger.Config{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := logger.NewLogger(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLogger() error = %v", err)
			}
			if l == nil {
				t.Fatal("expected logger")
			}
		})
	}
}
