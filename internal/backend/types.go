package backend

// HealthResponse mirrors GET /health.
type HealthResponse struct {
	Status          string `json:"status"`
	Service         string `json:"service"`
	OllamaConnected bool   `json:"ollama_connected"`
	Model           string `json:"model"`
}

// ModelsResponse mirrors GET /models.
type ModelsResponse struct {
	Models []string `json:"models"`
}

// ModelInfo mirrors GET /model-info. Specs maps a model name to a short
// hardware note such as "3.8B parameters, ~4GB RAM".
type ModelInfo struct {
	CurrentModel    string            `json:"current_model"`
	AvailableModels []string          `json:"available_models"`
	OptimizedFor    string            `json:"optimized_for"`
	Specs           map[string]string `json:"specs"`
	OllamaRunning   bool              `json:"ollama_running"`
}

// ExplainRequest is the body of POST /explain.
type ExplainRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Model      string `json:"model"`
}

// ExplainResponse is a structured explanation of a topic.
type ExplainResponse struct {
	Topic             string   `json:"topic"`
	Difficulty        string   `json:"difficulty"`
	SimpleExplanation string   `json:"simple_explanation"`
	Steps             []string `json:"steps"`
	Analogy           string   `json:"analogy"`
	KeyPoints         []string `json:"key_points"`
}

// SummarizeRequest is the body of POST /summarize.
type SummarizeRequest struct {
	Notes  string `json:"notes"`
	Length string `json:"length"`
	Model  string `json:"model"`
}

// Definition pairs a term with its explanation.
type Definition struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// SummaryResponse mirrors POST /summarize. KeyPoints, Definitions and
// ExamTips are rendered only when non-empty.
type SummaryResponse struct {
	Length      string       `json:"length"`
	Summary     string       `json:"summary"`
	KeyPoints   []string     `json:"key_points"`
	Definitions []Definition `json:"definitions"`
	ExamTips    []string     `json:"exam_tips"`
}

// QuizRequest is the body of POST /quiz.
type QuizRequest struct {
	Content    string `json:"content"`
	Type       string `json:"type"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
	Model      string `json:"model"`
}

// Question types returned by the backend.
const (
	QuestionMCQ       = "mcq"
	QuestionTrueFalse = "truefalse"
	QuestionShort     = "short"
)

// QuizQuestion is one generated question. Options is only set for
// multiple-choice questions.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Type        string   `json:"type"`
	Options     []string `json:"options,omitempty"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

// QuizResponse mirrors POST /quiz.
type QuizResponse struct {
	Difficulty string         `json:"difficulty"`
	Type       string         `json:"type"`
	Questions  []QuizQuestion `json:"questions"`
}

// FlashcardsRequest is the body of POST /flashcards.
type FlashcardsRequest struct {
	Content string `json:"content"`
	Count   int    `json:"count"`
	Model   string `json:"model"`
}

// Flashcard is a question/answer pair. It is also the persisted deck format.
type Flashcard struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// FlashcardsResponse mirrors POST /flashcards.
type FlashcardsResponse struct {
	Flashcards []Flashcard `json:"flashcards"`
}
