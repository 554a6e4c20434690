package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	online bool

	calls []string
	args  []string
}

func (f *fakeExec) isOnline() bool { return f.online }
func (f *fakeExec) List(ctx context.Context) error {
	f.calls = append(f.calls, "list")
	return nil
}
func (f *fakeExec) Local(ctx context.Context) error {
	f.calls = append(f.calls, "local")
	return nil
}
func (f *fakeExec) Show(ctx context.Context, id string) error {
	f.calls = append(f.calls, "show")
	f.args = append(f.args, id)
	return nil
}
func (f *fakeExec) Publish(ctx context.Context) error {
	f.calls = append(f.calls, "publish")
	return nil
}
func (f *fakeExec) PublishAt(ctx context.Context, id string) error {
	f.calls = append(f.calls, "put")
	f.args = append(f.args, id)
	return nil
}
func (f *fakeExec) Update(ctx context.Context, id string) error {
	f.calls = append(f.calls, "update")
	f.args = append(f.args, id)
	return nil
}
func (f *fakeExec) Expire(ctx context.Context, id string) error {
	f.calls = append(f.calls, "expire")
	f.args = append(f.args, id)
	return nil
}
func (f *fakeExec) Delete(ctx context.Context, id string) error {
	f.calls = append(f.calls, "delete")
	f.args = append(f.args, id)
	return nil
}
func (f *fakeExec) Import(ctx context.Context, ref string) error {
	f.calls = append(f.calls, "import")
	f.args = append(f.args, ref)
	return nil
}
func (f *fakeExec) Summarize(ctx context.Context, id string) error {
	f.calls = append(f.calls, "summary")
	f.args = append(f.args, id)
	return nil
}

func TestRunREPL_CommandDispatch(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"list",
		"local",
		"get abc",
		"publish",
		"expire abc",
		"delete abc",
		"import https://gist.github.com/u/abc",
		"summary abc",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{online: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"list", "local", "show", "publish", "expire", "delete", "import", "summary"}
	if len(exec.calls) != len(wantOrder) {
		t.Fatalf("unexpected calls: %+v", exec.calls)
	}
	for i, c := range exec.calls {
		if c != wantOrder[i] {
			t.Fatalf("commands order mismatch: got %v, want %v", exec.calls, wantOrder)
		}
	}
	if exec.args[len(exec.args)-1] != "abc" {
		t.Fatalf("unexpected args: %v", exec.args)
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("get\nupdate\nput\nquit\n")
	exec := &fakeExec{online: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_EOFStopsLoop(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("list\n")
	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "list" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
