package testapi

// Echo mirrors the reply of the mock server echo routes.
type Echo struct {
	Method  string              `json:"method"`
	Path    string              `json:"path"`
	Param   string              `json:"param,omitempty"`
	Version string              `json:"version"`
	Query   map[string][]string `json:"query"`
	Headers map[string]string   `json:"headers"`
	Cookies map[string]string   `json:"cookies,omitempty"`
	Body    any                 `json:"body,omitempty"`
	Form    map[string][]string `json:"form,omitempty"`
	Files   map[string]FileInfo `json:"files,omitempty"`
}

// FileInfo describes an uploaded file as echoed by the server.
type FileInfo struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// ModelWithString is a single string property.
type ModelWithString struct {
	Prop string `json:"prop,omitempty"`
}

// ModelWithEnum carries an enumerated status.
type ModelWithEnum struct {
	Status string `json:"status,omitempty"`
}

// ComplexBody nests arrays, maps and pointers.
type ComplexBody struct {
	Key           *string                  `json:"key"`
	Name          *string                  `json:"name"`
	Enabled       bool                     `json:"enabled,omitempty"`
	Type          string                   `json:"type"`
	ListOfModels  []ModelWithString        `json:"listOfModels,omitempty"`
	ListOfStrings []string                 `json:"listOfStrings,omitempty"`
	Parameters    ComplexParameters        `json:"parameters"`
	User          *ComplexUser             `json:"user,omitempty"`
	Dictionary    map[string]ModelWithEnum `json:"dictionary,omitempty"`
}

// ComplexParameters is the nested union-like part of ComplexBody.
type ComplexParameters struct {
	String *ModelWithString  `json:"string,omitempty"`
	Enum   *ModelWithEnum    `json:"enum,omitempty"`
	Array  []ModelWithString `json:"array,omitempty"`
}

// ComplexUser is a read-mostly nested record.
type ComplexUser struct {
	ID   int     `json:"id,omitempty"`
	Name *string `json:"name"`
}

// Parameters holds one value per parameter location.
type Parameters struct {
	Header string
	Query  string
	Cookie string
	Path   string
	Body   any
}

// FormParameters is a multipart upload alongside the other locations.
type FormParameters struct {
	Header string
	Query  string
	Path   string
	Form   string
	// File is sent as the "file" part when set.
	File *FileUpload
}

// FileUpload is a file sent in a multipart form.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}
