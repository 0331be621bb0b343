package client

const questionDataQuery = `query questionData($titleSlug: String!) {
  question(titleSlug: $titleSlug) {
    questionId
    questionFrontendId
    title
    titleSlug
    content
    isPaidOnly
    difficulty
    likes
    dislikes
    codeSnippets {
      lang
      langSlug
      code
    }
    stats
    sampleTestCase
    enableRunCode
  }
}`

const submissionsQuery = `query Submissions($offset: Int!, $limit: Int!, $lastKey: String, $questionSlug: String!) {
  submissionList(offset: $offset, limit: $limit, lastKey: $lastKey, questionSlug: $questionSlug) {
    lastKey
    hasNext
    submissions {
      id
      statusDisplay
      lang
      runtime
      timestamp
      url
      isPending
      memory
    }
  }
}`

// submissionListLimit is how many recent submissions one listing returns.
const submissionListLimit = 50

type graphQLRequest struct {
	OperationName string      `json:"operationName"`
	Variables     interface{} `json:"variables"`
	Query         string      `json:"query"`
}

type questionVariables struct {
	TitleSlug string `json:"titleSlug"`
}

type submissionsVariables struct {
	Offset       int     `json:"offset"`
	Limit        int     `json:"limit"`
	LastKey      *string `json:"lastKey"`
	QuestionSlug string  `json:"questionSlug"`
}

type testRequest struct {
	DataInput  string `json:"data_input"`
	Lang       string `json:"lang"`
	QuestionID string `json:"question_id"`
	JudgeType  string `json:"judge_type"`
	TypedCode  string `json:"typed_code"`
}

type submitRequest struct {
	Lang       string `json:"lang"`
	QuestionID string `json:"question_id"`
	TypedCode  string `json:"typed_code"`
}
