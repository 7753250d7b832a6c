// Package notify shows on-screen toasts by evaluating script in the host window.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// ToastFunc is the page-side function that renders a toast.
const ToastFunc = "pakeToast"

// Evaluator runs a script in the host window.
type Evaluator interface {
	Eval(script string) error
}

// ToastScript returns the call that shows message. The message is encoded as a
// JSON string literal, so quotes, backslashes and line separators cannot break out
// of the argument.
func ToastScript(message string) string {
	lit, err := json.Marshal(message)
	if err != nil {
		// json.Marshal on a string does not fail
		lit = []byte(`""`)
	}
	return fmt.Sprintf("%s(%s);", ToastFunc, lit)
}

// ShowToast asks the window to display message.
func ShowToast(w Evaluator, message string) error {
	if w == nil {
		return nil
	}
	if err := w.Eval(ToastScript(message)); err != nil {
		return fmt.Errorf("show toast: %w", err)
	}
	return nil
}

// WailsWindow evaluates scripts through the Wails runtime bound to Ctx, the
// context Wails passes to OnStartup.
type WailsWindow struct {
	Ctx context.Context
}

func (w WailsWindow) Eval(script string) error {
	if w.Ctx == nil {
		return fmt.Errorf("wails window: no runtime context")
	}
	runtime.WindowExecJS(w.Ctx, script)
	return nil
}

// WriterWindow writes each script as one line, for headless use and tests.
type WriterWindow struct {
	W io.Writer
}

func (w WriterWindow) Eval(script string) error {
	_, err := fmt.Fprintln(w.W, script)
	return err
}
