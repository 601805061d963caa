package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add monday pay rent", TypeAdd},
		{"edit friday 0 ship release notes", TypeEdit},
		{"done general 2", TypeDone},
		{"view tuesday", TypeView},
		{"save weekly.json", TypeSave},
		{"load", TypeLoad},
		{"quit", TypeQuit},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddDayDetection(t *testing.T) {
	cmd, err := Parse("add Monday pay rent")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Day != "monday" || cmd.Add.Name != "pay rent" {
		t.Fatalf("unexpected add args: %+v", cmd.Add)
	}

	cmd, err = Parse("add pay rent")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Day != "" || cmd.Add.Name != "pay rent" {
		t.Fatalf("expected blank day for non-day first word, got %+v", cmd.Add)
	}
}

func TestParseEditArgs(t *testing.T) {
	cmd, err := Parse("edit monday 3 new name here")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Edit.Day != "monday" || cmd.Edit.Index != 3 || cmd.Edit.Name != "new name here" {
		t.Fatalf("unexpected edit args: %+v", cmd.Edit)
	}
}

func TestParseRejectsBadDayAndIndex(t *testing.T) {
	for _, in := range []string{
		"edit someday 0 x",
		"edit monday minus x",
		"edit monday -1 x",
		"done monday x",
		"view someday",
	} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestParseFileDefaults(t *testing.T) {
	cmd, err := Parse("save")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Save.Filename != "" {
		t.Fatalf("expected blank filename for bare save, got %q", cmd.Save.Filename)
	}

	cmd, err = Parse("load weekly.json")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Load.Filename != "weekly.json" {
		t.Fatalf("unexpected filename: %q", cmd.Load.Filename)
	}
}

func TestParseViewAllWhenNoDay(t *testing.T) {
	cmd, err := Parse("view")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.View.Day != "" {
		t.Fatalf("expected blank day for view-all, got %q", cmd.View.Day)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/archive monday")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input error, got %v", in, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("done wednesday 1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Done: func(a DoneArgs) (Result, error) {
			called = true
			if a.Day != "wednesday" || a.Index != 1 {
				t.Fatalf("unexpected args: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("view")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
