package dto

// ProcessResumeRequest carries resume text that was already extracted on the
// client, plus the storage URL the file was uploaded to.
type ProcessResumeRequest struct {
	FileURL     string `json:"fileUrl"`
	FileContent string `json:"fileContent"`
	FileName    string `json:"fileName"`
}
