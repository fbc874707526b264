package model

// Answer represents a single question/answer submission and its optional
// attached file. It is a pure domain model: JSON tags drive the HTTP
// responses, dynamodbav tags drive persistence, and no layer-specific
// behavior lives here.
//
// FileName, FilePath, and MimeType are pointers so that a record created
// without a file serializes them as null rather than empty strings. All
// three are set together or not at all.
type Answer struct {
	ID         string  `json:"id" dynamodbav:"id"`
	Title      string  `json:"title" dynamodbav:"title,omitempty"`
	Question   string  `json:"question" dynamodbav:"question,omitempty"`
	UploadDate string  `json:"uploadDate" dynamodbav:"uploadDate,omitempty"`
	GsPaper    string  `json:"gsPaper" dynamodbav:"gsPaper,omitempty"`
	Source     string  `json:"source" dynamodbav:"source,omitempty"`
	FileName   *string `json:"fileName" dynamodbav:"fileName,omitempty"`
	FilePath   *string `json:"filePath" dynamodbav:"filePath,omitempty"`
	MimeType   *string `json:"mimeType" dynamodbav:"mimeType,omitempty"`
}

// HasFile reports whether the record carries an uploaded payload.
func (a *Answer) HasFile() bool {
	return a.FilePath != nil
}
