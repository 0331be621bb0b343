package extract_test

import (
	"regexp"
	"testing"

	"github.com/wanglun/leetcode.vim/internal/judge/extract"
	"github.com/wanglun/leetcode.vim/internal/judge/model"
	"github.com/wanglun/leetcode.vim/internal/testutil"
)

func TestUnescape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"unicode", `caf\u00e9`, "café"},
		{"crlf", `a\u000D\u000Ab`, "a\r\nb"},
		{"short escapes", `a\nb\tc\\d`, "a\nb\tc\\d"},
		{"quotes", `it\'s \"ok\"`, `it's "ok"`},
		{"hex", `\x41\xe9`, "Aé"},
		{"surrogate pair", `\uD83D\uDE00`, "\U0001F600"},
		{"non-ascii kept", "naïve", "naïve"},
		{"malformed kept", `bad\q`, `bad\q`},
		{"trailing backslash", `end\`, `end\`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract.Unescape(tt.in); got != tt.want {
				t.Errorf("Unescape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTable_AfterPrevious(t *testing.T) {
	p := regexp.MustCompile(`v: '([^']*)'`)
	table := extract.NewTable(
		extract.Field{Name: "first", Pattern: p},
		extract.Field{Name: "second", Pattern: p, After: "first"},
		extract.Field{Name: "third", Pattern: p, After: "second"},
	)

	values := table.Extract(`v: 'a' x v: 'b'`)
	testutil.AssertEqual(t, values.Get("first"), "a")
	testutil.AssertEqual(t, values.Get("second"), "b")
	testutil.AssertEqual(t, values.Get("third"), model.NotFound)
	testutil.AssertTrue(t, !values.Found("third"), "third should be missing")
}

func TestTable_AfterMissingStartsAtBeginning(t *testing.T) {
	table := extract.NewTable(
		extract.Field{Name: "anchor", Pattern: regexp.MustCompile(`anchor: '([^']*)'`)},
		extract.Field{Name: "value", Pattern: regexp.MustCompile(`v: '([^']*)'`), After: "anchor"},
	)
	values := table.Extract(`v: 'only'`)
	testutil.AssertEqual(t, values.Get("anchor"), model.NotFound)
	testutil.AssertEqual(t, values.Get("value"), "only")
}

func TestSubmissionPage_Accepted(t *testing.T) {
	page := string(testutil.LoadFixture(t, "submission_accepted.html"))

	detail, err := extract.SubmissionPage("73790064", page)
	if err != nil {
		t.Fatalf("SubmissionPage() error = %v", err)
	}
	testutil.AssertEqual(t, detail.ID, "73790064")
	testutil.AssertEqual(t, detail.Status, model.StatusAccepted)
	testutil.AssertEqual(t, detail.Runtime, "25 ms")
	testutil.AssertEqual(t, detail.Passed, "29")
	testutil.AssertEqual(t, detail.Total, "29")
	testutil.AssertEqual(t, detail.ProblemID, "1")
	testutil.AssertEqual(t, detail.TitleSlug, "two-sum")
	testutil.AssertEqual(t, detail.Lang, "cpp")
	testutil.AssertEqual(t, detail.DataInput, "")
	testutil.AssertEqual(t, detail.Code, "class Solution {\r\npublic:\r\n    vector<int> twoSum() { return {}; }\r\n};")
	testutil.AssertEqual(t, detail.RuntimePercentile, 80.0)
}

func TestSubmissionPage_WrongAnswer(t *testing.T) {
	page := string(testutil.LoadFixture(t, "submission_wrong_answer.html"))

	detail, err := extract.SubmissionPage("73789950", page)
	if err != nil {
		t.Fatalf("SubmissionPage() error = %v", err)
	}
	testutil.AssertEqual(t, detail.Status, model.StatusWrongAnswer)
	testutil.AssertEqual(t, detail.Runtime, "N/A")
	testutil.AssertEqual(t, detail.Passed, "1")
	testutil.AssertEqual(t, detail.DataInput, `"café"`)
	testutil.AssertEqual(t, detail.ActualAnswer, `"cafe"`)
	testutil.AssertEqual(t, detail.ExpectedAnswer, `"café"`)
	testutil.AssertEqual(t, detail.Code, "def f(s):\n    return 'cafe'")
	testutil.AssertEqual(t, detail.ProblemID, model.NotFound)
	testutil.AssertEqual(t, detail.TitleSlug, model.NotFound)
	testutil.AssertEqual(t, detail.RuntimePercentile, 0.0)
}

func TestSubmissionPage_NotASubmission(t *testing.T) {
	if _, err := extract.SubmissionPage("1", "<html><body>Sign in</body></html>"); err == nil {
		t.Fatal("expected error for page without status code")
	}
}
