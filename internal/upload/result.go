// Package upload implements the bulk ingestion paths: the xlsx match
// workbook and the CSV stats file. Both parse into validated rows plus
// a partial-success Result; a file with some bad rows is not an error,
// the good rows proceed and the bad ones are reported per row.
package upload

// RowError collects the validation messages for one failing row. Row
// numbers are 1-based and count the header, matching what the operator
// sees in their spreadsheet.
type RowError struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

// Result is the partial-success accounting returned to the client.
// A response with FailedRows > 0 still travels on HTTP 200: the upload
// itself worked, some rows did not.
type Result struct {
	UploadID       string     `json:"uploadId"`
	SuccessfulRows int        `json:"successfulRows"`
	FailedRows     int        `json:"failedRows"`
	Errors         []RowError `json:"errors"`
	Warnings       []string   `json:"warnings"`
}
