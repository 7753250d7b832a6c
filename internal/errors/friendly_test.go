package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestKindSentinels(t *testing.T) {
	ioErr := IOError("create dir", "/x/y", fs.ErrPermission)
	wrapped := fmt.Errorf("save: %w", ioErr)
	if !stderrors.Is(wrapped, ErrIO) {
		t.Fatalf("expected ErrIO through wrapping")
	}
	if stderrors.Is(wrapped, ErrConfigParse) {
		t.Fatalf("io error must not match ErrConfigParse")
	}
	if !stderrors.Is(wrapped, fs.ErrPermission) {
		t.Fatalf("details should stay reachable via Unwrap")
	}

	cfgErr := ConfigParseError("pake.json", stderrors.New("unexpected EOF"))
	if !stderrors.Is(cfgErr, ErrConfigParse) {
		t.Fatalf("expected ErrConfigParse")
	}
	if plain := NewFriendlyError("x", ""); stderrors.Is(plain, ErrIO) {
		t.Fatalf("unknown kind must not match")
	}
}

func TestIOErrorSuggestion(t *testing.T) {
	e := IOError("create dir", "/root/cfg/app", stderrors.New("mkdir /root/cfg/app: permission denied"))
	if !strings.Contains(e.Error(), "chmod u+w /root/cfg/app") {
		t.Fatalf("missing permission suggestion: %s", e.Error())
	}
	if !strings.HasPrefix(e.Error(), "create dir /root/cfg/app: mkdir") {
		t.Fatalf("unexpected message: %s", e.Error())
	}
}
