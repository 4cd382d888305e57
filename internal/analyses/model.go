package analyses

// DownloadFileName is the file name offered for the raw completion.
const DownloadFileName = "resume_analysis.txt"

// Result is the outcome of one analysis. ID is empty until the analysis succeeds.
type Result struct {
	ID         string
	ResumeText string
	Completion Completion
}

type resultResponse struct {
	ID           string `json:"id"`
	ResumeText   string `json:"resumeText"`
	Think        string `json:"think"`
	Response     string `json:"response"`
	HasReasoning bool   `json:"hasReasoning"`
	Raw          string `json:"raw"`
}

func toResponse(res Result) resultResponse {
	return resultResponse{
		ID:           res.ID,
		ResumeText:   res.ResumeText,
		Think:        res.Completion.Think,
		Response:     res.Completion.Response,
		HasReasoning: res.Completion.HasReasoning,
		Raw:          res.Completion.Raw,
	}
}
