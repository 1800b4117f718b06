// Package script executes the JavaScript snippets an Action may carry in
// its onclick field.
package script

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"
)

// ConsoleHandler receives console output from scripts.
type ConsoleHandler func(level, message string)

// defaultTimeout bounds a single snippet run; onclick handlers are expected
// to be one-liners.
const defaultTimeout = 2 * time.Second

// Engine wraps a Goja runtime for running action handlers.
type Engine struct {
	mu      sync.Mutex
	runtime *goja.Runtime
	console ConsoleHandler
}

// NewEngine creates an engine routing console output to the handler.
func NewEngine(console ConsoleHandler) *Engine {
	e := &Engine{console: console}
	e.initRuntime()
	return e
}

func (e *Engine) initRuntime() {
	e.runtime = goja.New()
	e.runtime.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))
	e.setupConsole()
}

func (e *Engine) setupConsole() {
	console := e.runtime.NewObject()

	emit := func(level string) func(call goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			if e.console != nil {
				parts := make([]string, len(call.Arguments))
				for i, arg := range call.Arguments {
					parts[i] = fmt.Sprintf("%v", arg.Export())
				}
				e.console(level, strings.Join(parts, " "))
			}
			return goja.Undefined()
		}
	}

	console.Set("log", emit("log"))
	console.Set("error", emit("error"))
	console.Set("warn", emit("warn"))
	console.Set("info", emit("info"))
	e.runtime.Set("console", console)
}

// Run executes a snippet with the given globals bound for the duration of
// the call. Long-running snippets are interrupted after a fixed timeout.
func (e *Engine) Run(src string, globals map[string]any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for name, value := range globals {
		e.runtime.Set(name, value)
	}
	defer func() {
		for name := range globals {
			e.runtime.Set(name, goja.Undefined())
		}
	}()

	timer := time.AfterFunc(defaultTimeout, func() {
		e.runtime.Interrupt("script timeout")
	})
	defer timer.Stop()

	if _, err := e.runtime.RunString(src); err != nil {
		return fmt.Errorf("onclick script failed: %w", err)
	}
	return nil
}
