package request

// ImportRequest carries an encrypted export payload to restore.
type ImportRequest struct {
	Data string `json:"data"`
}
