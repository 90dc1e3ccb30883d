package render

import (
	"errors"
	"strings"
	"testing"
)

// fullContent exercises every section of a style.
func fullContent() Content {
	return Content{
		Summary:     "Fetch user for Client.",
		Description: "Handles retry and caching.",
		Args: []Arg{
			{Name: "user_id", Type: "int", Description: "The user id."},
			{Name: "timeout", Type: "int", Description: "The timeout.", Default: strPtr("30")},
		},
		Returns: &Return{Type: "dict", Description: "The user."},
		Raises: []Raise{
			{Type: "ValueError", Description: "If an error occurs during fetch user."},
		},
	}
}

func TestRender_Google_Full(t *testing.T) {
	got, err := Render(StyleGoogle, fullContent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Fetch user for Client.\n" +
		"\n" +
		"Handles retry and caching.\n" +
		"\n" +
		"Args:\n" +
		"    user_id (int): The user id.\n" +
		"    timeout (int, optional): The timeout. Defaults to 30.\n" +
		"\n" +
		"Returns:\n" +
		"    dict: The user.\n" +
		"\n" +
		"Raises:\n" +
		"    ValueError: If an error occurs during fetch user.\n"

	if got != want {
		t.Errorf("google output mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestRender_Numpy_Full(t *testing.T) {
	got, err := Render(StyleNumpy, fullContent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Fetch user for Client.\n" +
		"\n" +
		"Handles retry and caching.\n" +
		"\n" +
		"Parameters\n" +
		"----------\n" +
		"user_id : int\n" +
		"    The user id.\n" +
		"timeout : int\n" +
		"    The timeout. Default is 30.\n" +
		"\n" +
		"Returns\n" +
		"-------\n" +
		"dict\n" +
		"    The user.\n" +
		"\n" +
		"Raises\n" +
		"------\n" +
		"ValueError\n" +
		"    If an error occurs during fetch user.\n"

	if got != want {
		t.Errorf("numpy output mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestRender_RST_Full(t *testing.T) {
	got, err := Render(StyleRST, fullContent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Fetch user for Client.\n" +
		"\n" +
		"Handles retry and caching.\n" +
		"\n" +
		":param user_id: The user id.\n" +
		":type user_id: int\n" +
		":param timeout: The timeout.\n" +
		":type timeout: int, optional\n" +
		"\n" +
		":return: The user.\n" +
		":rtype: dict\n" +
		"\n" +
		":raises ValueError: If an error occurs during fetch user.\n"

	if got != want {
		t.Errorf("rst output mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestRender_SummaryOnly(t *testing.T) {
	c := Content{Summary: "Simple module."}

	for _, style := range Styles() {
		got, err := Render(style, c)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", style, err)
		}
		if got != "Simple module.\n" {
			t.Errorf("%s: summary-only output = %q, want %q", style, got, "Simple module.\n")
		}
	}
}

func TestRender_TrailingNewline(t *testing.T) {
	for _, style := range Styles() {
		got, err := Render(style, fullContent())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", style, err)
		}
		if !strings.HasSuffix(got, "\n") {
			t.Errorf("%s: output must end with a newline", style)
		}
		if strings.HasSuffix(got, "\n\n") {
			t.Errorf("%s: output must not end with a blank line", style)
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	c := fullContent()
	for _, style := range Styles() {
		first, err := Render(style, c)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", style, err)
		}
		for i := 0; i < 5; i++ {
			again, err := Render(style, c)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", style, err)
			}
			if again != first {
				t.Fatalf("%s: render is not deterministic", style)
			}
		}
	}
}

func TestRender_UnknownStyle(t *testing.T) {
	_, err := Render(Style("markdown"), Content{Summary: "x"})
	if !errors.Is(err, ErrUnknownStyle) {
		t.Fatalf("expected ErrUnknownStyle, got: %v", err)
	}
}

func TestStyles_Stable(t *testing.T) {
	got := Styles()
	if len(got) != 3 || got[0] != StyleGoogle || got[1] != StyleNumpy || got[2] != StyleRST {
		t.Errorf("unexpected style order: %v", got)
	}
}
