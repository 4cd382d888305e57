package llm

import (
	_ "embed"
	"strings"

	"resume-analyzer/internal/shared/util"
)

//go:embed prompts/analysis.txt
var analysisTemplate string

// Section headings the model is asked to cover, in order.
var Headings = []string{
	"Match Score (0-100)",
	"Key Qualifications Match",
	"Missing Skills/Requirements",
	"Strengths",
	"Areas for Improvement",
	"Suggested Resume Improvements",
}

// BuildPrompt embeds the resume text and job description verbatim into the analysis template.
// Substitution is single-pass, so placeholder-looking text inside the inputs is left alone.
func BuildPrompt(resumeText, jobDescription string) string {
	replacer := strings.NewReplacer(
		"{{RESUME_TEXT}}", resumeText,
		"{{JOB_DESCRIPTION}}", jobDescription,
	)
	return replacer.Replace(analysisTemplate)
}

// PromptHash returns a stable fingerprint of a prompt for logging.
func PromptHash(prompt string) string {
	return util.Hash(prompt)
}
