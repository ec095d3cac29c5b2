package benchmark

import (
	"github.com/philipp01105/rlog/core"
	"github.com/philipp01105/rlog/handler"
)

type noopHandler struct{}

func newNoopHandler() handler.Handler {
	return &noopHandler{}
}

func (h *noopHandler) Handle(level core.Level, line string) error {
	_ = len(line)
	return nil
}

func (h *noopHandler) Close() error {
	return nil
}
