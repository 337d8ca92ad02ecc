package packets

type TokenResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SelectionResponse struct {
	Selected []string `json:"selected"`
	Count    int      `json:"count"`
}

type BulkAddResponse struct {
	Added int `json:"added"`
	Total int `json:"total"`
}

type UploadResult struct {
	Filename string `json:"filename"`
	ID       string `json:"id,omitempty"`
	Error    string `json:"error,omitempty"`
}

type UploadResponse struct {
	Results []UploadResult `json:"results"`
}
