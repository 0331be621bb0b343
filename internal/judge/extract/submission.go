package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wanglun/leetcode.vim/internal/judge/mapper"
	"github.com/wanglun/leetcode.vim/internal/judge/model"
	"github.com/wanglun/leetcode.vim/internal/judge/percentile"
)

const (
	fieldStatus       = "status"
	fieldDataInput    = "data_input"
	fieldActualAnswer = "actual_answer"
	fieldExpected     = "expected_answer"
	fieldEditCodeURL  = "edit_code_url"
	fieldCode         = "code"
	fieldRuntime      = "runtime"
	fieldRuntimeValue = "runtime_value"
	fieldPassed       = "passed"
	fieldTotal        = "total"
	fieldProblemID    = "problem_id"
	fieldLang         = "lang"
	fieldDistribution = "runtime_distribution"
)

// The page defines runtime twice: first as a display string ("4 ms"), then
// as the bare number the percentile is computed from.
var runtimePattern = regexp.MustCompile(`runtime: '([^']*)'`)

var submissionPage = NewTable(
	Field{Name: fieldStatus, Pattern: regexp.MustCompile(`status_code: parseInt\('([^']*)'`)},
	Field{Name: fieldDataInput, Pattern: regexp.MustCompile(`input : '([^']*)'`), Unescape: true},
	Field{Name: fieldActualAnswer, Pattern: regexp.MustCompile(`code_output : '([^']*)'`), Unescape: true},
	Field{Name: fieldExpected, Pattern: regexp.MustCompile(`expected_output : '([^']*)'`), Unescape: true},
	Field{Name: fieldEditCodeURL, Pattern: regexp.MustCompile(`editCodeUrl: '([^']*)'`)},
	Field{Name: fieldCode, Pattern: regexp.MustCompile(`submissionCode: '([^']*)'`), Unescape: true},
	Field{Name: fieldRuntime, Pattern: runtimePattern},
	Field{Name: fieldRuntimeValue, Pattern: runtimePattern, After: fieldRuntime},
	Field{Name: fieldPassed, Pattern: regexp.MustCompile(`total_correct : '([^']*)'`)},
	Field{Name: fieldTotal, Pattern: regexp.MustCompile(`total_testcases : '([^']*)'`)},
	Field{Name: fieldProblemID, Pattern: regexp.MustCompile(`questionId: '([^']*)'`)},
	Field{Name: fieldLang, Pattern: regexp.MustCompile(`getLangDisplay: '([^']*)'`)},
	Field{Name: fieldDistribution, Pattern: regexp.MustCompile(`runtimeDistributionFormatted: '([^']*)'`), Unescape: true},
)

// SubmissionPage reads a submission detail page. Fields the page does not
// carry are set to model.NotFound. A page without a numeric status code is
// not a submission page and yields an error.
func SubmissionPage(id, page string) (model.SubmissionDetail, error) {
	v := submissionPage.Extract(page)

	code, err := strconv.Atoi(strings.TrimSpace(v.Get(fieldStatus)))
	if err != nil {
		return model.SubmissionDetail{}, fmt.Errorf("submission %s: status code %q: %w", id, v.Get(fieldStatus), err)
	}

	return model.SubmissionDetail{
		ID:                id,
		Status:            mapper.StatusFromCode(code),
		Runtime:           v.Get(fieldRuntime),
		Passed:            v.Get(fieldPassed),
		Total:             v.Get(fieldTotal),
		DataInput:         v.Get(fieldDataInput),
		ActualAnswer:      v.Get(fieldActualAnswer),
		ExpectedAnswer:    v.Get(fieldExpected),
		ProblemID:         v.Get(fieldProblemID),
		TitleSlug:         slugFromEditURL(v),
		Lang:              v.Get(fieldLang),
		Code:              v.Get(fieldCode),
		RuntimePercentile: runtimePercentile(v),
	}, nil
}

// slugFromEditURL takes the third segment of "/problems/<slug>/".
func slugFromEditURL(v Values) string {
	if !v.Found(fieldEditCodeURL) {
		return model.NotFound
	}
	parts := strings.Split(v.Get(fieldEditCodeURL), "/")
	if len(parts) < 3 || parts[2] == "" {
		return model.NotFound
	}
	return parts[2]
}

// runtimePercentile is 0 when the runtime or the distribution is missing or
// unreadable.
func runtimePercentile(v Values) float64 {
	text := percentile.EmptyDistribution
	if v.Found(fieldDistribution) {
		text = v.Get(fieldDistribution)
	}
	tiers, err := percentile.Parse(text)
	if err != nil {
		return 0
	}
	runtime := 0
	if v.Found(fieldRuntimeValue) {
		if n, err := strconv.Atoi(strings.TrimSpace(v.Get(fieldRuntimeValue))); err == nil {
			runtime = n
		}
	}
	return percentile.Calc(tiers, runtime)
}
