package session

// defaultInstructions is shown when the backend supplies none for a test.
var defaultInstructions = []string{
	"The test consists of multiple-choice questions with a single correct answer each.",
	"The timer starts when you click Start Test and cannot be paused.",
	"Your answers are saved automatically as you go.",
	"You can navigate between questions freely using Next, Previous or the question palette.",
	"Use Mark for Review to flag questions you want to revisit.",
	"Do not close or refresh the page during the test; the timer keeps running regardless.",
	"The test is submitted automatically when the timer reaches zero.",
	"Once submitted, answers cannot be changed.",
}
