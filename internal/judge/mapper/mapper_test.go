package mapper_test

import (
	"testing"
	"time"

	"github.com/wanglun/leetcode.vim/internal/judge/mapper"
	"github.com/wanglun/leetcode.vim/internal/judge/model"
	"github.com/wanglun/leetcode.vim/internal/testutil"
	"github.com/wanglun/leetcode.vim/pkg/errors"
)

func TestStatusFromCode(t *testing.T) {
	tests := []struct {
		code int
		want model.SubmissionStatus
	}{
		{10, model.StatusAccepted},
		{11, model.StatusWrongAnswer},
		{12, model.StatusMemoryLimitExceeded},
		{13, model.StatusOutputLimitExceeded},
		{14, model.StatusTimeLimitExceeded},
		{15, model.StatusRuntimeError},
		{16, model.StatusInternalError},
		{20, model.StatusCompileError},
		{21, model.StatusUnknownError},
		{99, model.StatusUnknownError},
		{0, model.StatusUnknownError},
	}
	for _, tt := range tests {
		if got := mapper.StatusFromCode(tt.code); got != tt.want {
			t.Errorf("StatusFromCode(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestStatusFromLabel(t *testing.T) {
	tests := []struct {
		label string
		want  model.SubmissionStatus
	}{
		{"Accepted", model.StatusAccepted},
		{"Time Limit Exceeded", model.StatusTimeLimitExceeded},
		{"Compile Error", model.StatusCompileError},
		{"accepted", model.StatusUnknownError},
		{"Presentation Error", model.StatusUnknownError},
		{"", model.StatusUnknownError},
	}
	for _, tt := range tests {
		if got := mapper.StatusFromLabel(tt.label); got != tt.want {
			t.Errorf("StatusFromLabel(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestDifficulty(t *testing.T) {
	levels := map[int]model.Difficulty{
		1: model.DifficultyEasy,
		2: model.DifficultyMedium,
		3: model.DifficultyHard,
		0: model.DifficultyUnknown,
		4: model.DifficultyUnknown,
	}
	for level, want := range levels {
		if got := mapper.DifficultyFromLevel(level); got != want {
			t.Errorf("DifficultyFromLevel(%d) = %q, want %q", level, got, want)
		}
	}

	labels := map[string]model.Difficulty{
		"Easy":   model.DifficultyEasy,
		"Medium": model.DifficultyMedium,
		"Hard":   model.DifficultyHard,
		"easy":   model.DifficultyUnknown,
		"":       model.DifficultyUnknown,
	}
	for label, want := range labels {
		if got := mapper.DifficultyFromLabel(label); got != want {
			t.Errorf("DifficultyFromLabel(%q) = %q, want %q", label, got, want)
		}
	}
}

func TestProblemState(t *testing.T) {
	testutil.AssertEqual(t, mapper.ProblemState("ac"), model.StateAccepted)
	testutil.AssertEqual(t, mapper.ProblemState("notac"), model.StateNotAttempted)
	testutil.AssertEqual(t, mapper.ProblemState(""), model.StateNew)
	testutil.AssertEqual(t, mapper.ProblemState("AC"), model.StateNew)
}

func TestErrorKeys(t *testing.T) {
	testutil.AssertTrue(t, mapper.IsTestErrorKey("full_compile_error"), "full_compile_error")
	testutil.AssertTrue(t, mapper.IsTestErrorKey("full_runtime_error"), "full_runtime_error")
	testutil.AssertTrue(t, !mapper.IsTestErrorKey("compile_error"), "compile_error is not a full error")
	testutil.AssertTrue(t, !mapper.IsTestErrorKey("full_error_count"), "suffix must be _error")

	testutil.AssertTrue(t, mapper.IsSubmissionErrorKey("runtime_error"), "runtime_error")
	testutil.AssertTrue(t, mapper.IsSubmissionErrorKey("error_count"), "error_count")
	testutil.AssertTrue(t, !mapper.IsSubmissionErrorKey("status_msg"), "status_msg")
}

func TestProblems(t *testing.T) {
	problems, err := mapper.Problems(testutil.LoadFixture(t, "problems_all.json"))
	if err != nil {
		t.Fatalf("Problems() error = %v", err)
	}
	if len(problems) != 3 {
		t.Fatalf("expected 3 visible problems, got %d", len(problems))
	}
	for _, p := range problems {
		if p.TitleSlug == "retired" {
			t.Fatal("hidden problem should be excluded")
		}
	}

	twoSum := problems[0]
	testutil.AssertEqual(t, twoSum.QuestionID, "1")
	testutil.AssertEqual(t, twoSum.FrontendQuestionID, "1")
	testutil.AssertEqual(t, twoSum.Difficulty, model.DifficultyEasy)
	testutil.AssertEqual(t, twoSum.State, model.StateAccepted)
	testutil.AssertEqual(t, twoSum.AcRate, 0.4)
	if twoSum.Frequency == nil || *twoSum.Frequency != 0.5 {
		t.Errorf("Frequency = %v, want 0.5", twoSum.Frequency)
	}
	if twoSum.TimePeriodFrequency != nil {
		t.Error("TimePeriodFrequency should be unset")
	}

	addTwo := problems[1]
	testutil.AssertEqual(t, addTwo.State, model.StateNotAttempted)
	testutil.AssertEqual(t, addTwo.Difficulty, model.DifficultyMedium)
	testutil.AssertEqual(t, addTwo.PaidOnly, true)
	testutil.AssertEqual(t, addTwo.AcRate, 0.25)

	median := problems[2]
	testutil.AssertEqual(t, median.FrontendQuestionID, "4")
	testutil.AssertEqual(t, median.State, model.StateNew)
	testutil.AssertEqual(t, median.Difficulty, model.DifficultyUnknown)
	if median.Frequency != nil {
		t.Errorf("Frequency = %v, want nil", *median.Frequency)
	}
}

func TestProblems_ZeroSubmissions(t *testing.T) {
	payload := []byte(`{"stat_status_pairs":[{"stat":{"question_id":9,"question__title_slug":"fresh","question__hide":false,"total_acs":0,"total_submitted":0},"status":null,"difficulty":{"level":1}}]}`)
	_, err := mapper.Problems(payload)
	if err == nil {
		t.Fatal("expected error for zero submissions")
	}
	if !errors.Is(err, errors.InvalidFormat) {
		t.Errorf("code = %v, want InvalidFormat", errors.GetCode(err))
	}
}

func TestProblemDetail(t *testing.T) {
	detail, err := mapper.ProblemDetail(testutil.LoadFixture(t, "question.json"))
	if err != nil {
		t.Fatalf("ProblemDetail() error = %v", err)
	}
	testutil.AssertEqual(t, detail.QuestionID, "1")
	testutil.AssertEqual(t, detail.TitleSlug, "two-sum")
	testutil.AssertEqual(t, detail.Difficulty, model.DifficultyEasy)
	testutil.AssertEqual(t, detail.Testable, true)
	testutil.AssertEqual(t, detail.Testcase, "[2,7,11,15]\n9")
	testutil.AssertEqual(t, detail.TotalAccepted, "2.1M")
	testutil.AssertEqual(t, detail.TotalSubmission, "4.5M")
	testutil.AssertEqual(t, detail.AcRate, "46.6%")
	testutil.AssertEqual(t, detail.Likes, 100)
	testutil.AssertEqual(t, detail.Dislikes, 7)
	testutil.AssertEqual(t, len(detail.Templates), 2)
	testutil.AssertEqual(t, detail.Templates["cpp"], "class Solution { public: };")
	testutil.AssertEqual(t, detail.Templates["python3"], "class Solution:\n    pass")
}

func TestProblemDetail_NullQuestion(t *testing.T) {
	_, err := mapper.ProblemDetail([]byte(`{"data":{"question":null}}`))
	if err != mapper.ErrNoQuestion {
		t.Fatalf("error = %v, want ErrNoQuestion", err)
	}
}

func TestSubmissions(t *testing.T) {
	subs, err := mapper.Submissions(testutil.LoadFixture(t, "submission_list.json"))
	if err != nil {
		t.Fatalf("Submissions() error = %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("expected 3 submissions, got %d", len(subs))
	}
	testutil.AssertEqual(t, subs[0].ID, "73790064")
	testutil.AssertEqual(t, subs[0].Status, model.StatusAccepted)
	testutil.AssertEqual(t, subs[0].Runtime, "8 ms")
	testutil.AssertEqual(t, subs[0].Memory, "9.4 MB")
	testutil.AssertTrue(t, subs[0].Time.Equal(time.Unix(1561532073, 0)), "timestamp from string seconds")

	testutil.AssertEqual(t, subs[1].ID, "73789950")
	testutil.AssertEqual(t, subs[1].Status, model.StatusWrongAnswer)
	testutil.AssertTrue(t, subs[1].Time.Equal(time.Unix(1561531900, 0)), "timestamp from numeric seconds")

	testutil.AssertEqual(t, subs[2].Status, model.StatusUnknownError)
}

func TestTestJobAndSubmissionID(t *testing.T) {
	job, err := mapper.TestJob([]byte(`{"interpret_id":"runcode_1_a","interpret_expected_id":"runcode_1_b","test_case":"[1]"}`))
	if err != nil {
		t.Fatalf("TestJob() error = %v", err)
	}
	testutil.AssertEqual(t, job.ActualID, "runcode_1_a")
	testutil.AssertEqual(t, job.ExpectedID, "runcode_1_b")

	id, err := mapper.SubmissionID([]byte(`{"submission_id": 73790064}`))
	if err != nil {
		t.Fatalf("SubmissionID() error = %v", err)
	}
	testutil.AssertEqual(t, id, "73790064")

	if _, err := mapper.SubmissionID([]byte(`{"error":"bad"}`)); err == nil {
		t.Fatal("expected error for missing submission_id")
	}
}

func TestTestCheck_Running(t *testing.T) {
	for _, state := range []string{"PENDING", "STARTED"} {
		poll, err := mapper.TestCheck([]byte(`{"state":"` + state + `"}`))
		if err != nil {
			t.Fatalf("TestCheck() error = %v", err)
		}
		marker, ok := poll.Running()
		testutil.AssertTrue(t, ok, state+" should be running")
		testutil.AssertEqual(t, string(marker.State), state)
	}
}

func TestTestCheck_CompileError(t *testing.T) {
	poll, err := mapper.TestCheck(testutil.LoadFixture(t, "check_test_compile_error.json"))
	if err != nil {
		t.Fatalf("TestCheck() error = %v", err)
	}
	result, ok := poll.Terminal()
	testutil.AssertTrue(t, ok, "expected terminal result")
	testutil.AssertEqual(t, result.Status, model.StatusCompileError)
	testutil.AssertStrings(t, result.Errors, []string{"Line 4: Char 5: error: expected ';' after class"})
	testutil.AssertStrings(t, result.Answer, []string{})
	testutil.AssertStrings(t, result.Stdout, []string{})
	testutil.AssertEqual(t, result.Runtime, "N/A")
}

func TestTestCheck_NullErrorFieldsSkipped(t *testing.T) {
	poll, err := mapper.TestCheck(testutil.LoadFixture(t, "check_test_runtime_error.json"))
	if err != nil {
		t.Fatalf("TestCheck() error = %v", err)
	}
	result, ok := poll.Terminal()
	testutil.AssertTrue(t, ok, "expected terminal result")
	testutil.AssertEqual(t, result.Status, model.StatusRuntimeError)
	// full_compile_error is null and precedes the runtime error in the payload.
	testutil.AssertStrings(t, result.Errors, []string{
		"IndexError: list index out of range\n    return nums[9]\nLine 3 in twoSum (Solution.py)",
	})
	testutil.AssertStrings(t, result.Stdout, []string{"before crash"})
}

func TestTestCheck_Accepted(t *testing.T) {
	poll, err := mapper.TestCheck(testutil.LoadFixture(t, "check_test_accepted.json"))
	if err != nil {
		t.Fatalf("TestCheck() error = %v", err)
	}
	result, _ := poll.Terminal()
	testutil.AssertEqual(t, result.Status, model.StatusAccepted)
	testutil.AssertStrings(t, result.Answer, []string{"[0,1]"})
	testutil.AssertStrings(t, result.Stdout, []string{"debug line 1", "debug line 2"})
	testutil.AssertStrings(t, result.Errors, []string{})
	testutil.AssertEqual(t, result.Runtime, "0 ms")
}

func TestTestCheck_MissingAnswer(t *testing.T) {
	poll, err := mapper.TestCheck([]byte(`{"state":"SUCCESS","status_code":10}`))
	if err != nil {
		t.Fatalf("TestCheck() error = %v", err)
	}
	result, _ := poll.Terminal()
	if result.Answer == nil || len(result.Answer) != 0 {
		t.Errorf("Answer = %#v, want empty list", result.Answer)
	}
}

func TestSubmissionCheck(t *testing.T) {
	t.Run("wrong answer", func(t *testing.T) {
		poll, err := mapper.SubmissionCheck(testutil.LoadFixture(t, "check_submission_wrong_answer.json"))
		if err != nil {
			t.Fatalf("SubmissionCheck() error = %v", err)
		}
		result, ok := poll.Terminal()
		testutil.AssertTrue(t, ok, "expected terminal result")
		testutil.AssertEqual(t, result.Status, model.StatusWrongAnswer)
		testutil.AssertEqual(t, result.Lang, "cpp")
		testutil.AssertEqual(t, result.Runtime, "N/A")
		testutil.AssertEqual(t, result.Stdout, "hello\n")
		testutil.AssertStrings(t, result.Errors, []string{})
		if result.DataInput == nil || *result.DataInput != "[3,2,4]\n6" {
			t.Errorf("DataInput = %v", result.DataInput)
		}
		if result.ActualAnswer == nil || *result.ActualAnswer != "[1,0]" {
			t.Errorf("ActualAnswer = %v", result.ActualAnswer)
		}
		if result.ExpectedAnswer == nil || *result.ExpectedAnswer != "[1,2]" {
			t.Errorf("ExpectedAnswer = %v", result.ExpectedAnswer)
		}
		if result.RuntimePercentile != nil || result.MemoryPercentile != nil {
			t.Error("percentiles should be absent")
		}
	})

	t.Run("accepted", func(t *testing.T) {
		poll, err := mapper.SubmissionCheck(testutil.LoadFixture(t, "check_submission_accepted.json"))
		if err != nil {
			t.Fatalf("SubmissionCheck() error = %v", err)
		}
		result, _ := poll.Terminal()
		testutil.AssertEqual(t, result.Status, model.StatusAccepted)
		testutil.AssertEqual(t, result.Memory, "13.8 MB")
		if result.RuntimePercentile == nil || *result.RuntimePercentile != 91.27 {
			t.Errorf("RuntimePercentile = %v", result.RuntimePercentile)
		}
		if result.MemoryPercentile == nil || *result.MemoryPercentile != 55.5 {
			t.Errorf("MemoryPercentile = %v", result.MemoryPercentile)
		}
		if result.DataInput != nil || result.ActualAnswer != nil || result.ExpectedAnswer != nil {
			t.Error("failure fields should be absent")
		}
	})

	t.Run("runtime error keeps payload order", func(t *testing.T) {
		poll, err := mapper.SubmissionCheck(testutil.LoadFixture(t, "check_submission_runtime_error.json"))
		if err != nil {
			t.Fatalf("SubmissionCheck() error = %v", err)
		}
		result, _ := poll.Terminal()
		testutil.AssertEqual(t, result.Status, model.StatusRuntimeError)
		testutil.AssertStrings(t, result.Errors, []string{
			"Line 3: ZeroDivisionError",
			"Traceback:\nLine 3: ZeroDivisionError: division by zero",
		})
		if result.ActualAnswer == nil || *result.ActualAnswer != "" {
			t.Errorf("ActualAnswer = %v, want present and empty", result.ActualAnswer)
		}
	})

	t.Run("running", func(t *testing.T) {
		poll, err := mapper.SubmissionCheck([]byte(`{"state":"STARTED"}`))
		if err != nil {
			t.Fatalf("SubmissionCheck() error = %v", err)
		}
		testutil.AssertTrue(t, !poll.Done(), "STARTED should not be done")
	})

	t.Run("malformed", func(t *testing.T) {
		if _, err := mapper.SubmissionCheck([]byte(`<html>`)); err == nil {
			t.Fatal("expected decode error")
		}
	})
}
