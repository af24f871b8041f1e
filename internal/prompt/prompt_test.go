package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func TestGamePathNonInteractive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain path", input: "D:\\Games\\Liar's Bar\n", want: `D:\Games\Liar's Bar`},
		{name: "quoted path from explorer", input: "\"D:\\Games\\Liar's Bar\"\r\n", want: `D:\Games\Liar's Bar`},
		{name: "empty line means detect", input: "\n", want: ""},
		{name: "closed input means detect", input: "", want: ""},
		{name: "no trailing newline", input: "/games/lb", want: "/games/lb"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			p := &Prompter{In: strings.NewReader(tt.input), Out: &out}
			got, err := p.GamePath()
			if err != nil {
				t.Fatalf("GamePath failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("GamePath=%q want=%q", got, tt.want)
			}
			if !strings.Contains(out.String(), "Game directory") {
				t.Fatalf("prompt not printed: %q", out.String())
			}
		})
	}
}

func TestWaitForKeyNonInteractiveReturns(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := &Prompter{In: strings.NewReader(""), Out: &out}
	p.WaitForKey("Press any key to exit")
	if out.Len() != 0 {
		t.Fatalf("nothing should be printed without a terminal, got %q", out.String())
	}
}

func TestConfirmNonInteractiveAgrees(t *testing.T) {
	p := &Prompter{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	ok, err := p.Confirm("Remove BepInEx?")
	if err != nil || !ok {
		t.Fatalf("Confirm=%t err=%v want true", ok, err)
	}
}
