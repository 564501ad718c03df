package model

// StartPracticeRequest is the payload for starting a practice run.
// Chapter is required in chapter mode; competency is required in chapter and
// competency modes and ignored in adaptive mode (the weakest skill is chosen
// server-side). Level is ignored in adaptive mode for the same reason.
type StartPracticeRequest struct {
	Mode       string `json:"mode" binding:"required,oneof=chapter competency adaptive"`
	Grade      string `json:"grade" binding:"required,max=4"`
	Semester   int    `json:"semester" binding:"required,oneof=1 2"`
	Chapter    string `json:"chapter" binding:"omitempty,max=200"`
	Competency string `json:"competency" binding:"omitempty,oneof=numerical algebraic visual data logical applied"`
	Level      int    `json:"level" binding:"omitempty,min=1,max=5"`
}

// AnswerRequest is the payload for answering the current question.
type AnswerRequest struct {
	OptionIndex *int `json:"option_index" binding:"required,min=0"`
}
