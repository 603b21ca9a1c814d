package gateway

import (
	"encoding/json"
	"mime"
	"strings"
)

// Kind classifies a successful response.
type Kind string

const (
	// KindData is a JSON body.
	KindData Kind = "data"

	// KindCode is generated source code returned as text.
	KindCode Kind = "code"

	// KindText is any other text body.
	KindText Kind = "text"
)

// Result is a successful submission response.
type Result struct {
	Kind        Kind            `json:"kind"`
	StatusCode  int             `json:"status_code"`
	ContentType string          `json:"content_type"`
	Data        json.RawMessage `json:"data,omitempty"`
	Text        string          `json:"text,omitempty"`
}

var codePrefixes = []string{
	"#!/",
	"import ",
	"from ",
	"def ",
	"async def ",
	"class ",
	"@pytest",
	"package ",
	"const ",
	"function ",
	"describe(",
	"test(",
}

// classify builds a Result from a 2xx response.
func classify(status int, contentType string, body []byte) *Result {
	res := &Result{StatusCode: status, ContentType: contentType}

	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == "application/json" || strings.HasSuffix(mediaType, "+json") {
		if json.Valid(body) {
			res.Kind = KindData
			res.Data = json.RawMessage(body)
			return res
		}
	}

	res.Text = string(body)
	if code := CleanCode(res.Text); strings.Contains(mediaType, "python") || LooksLikeCode(code) {
		res.Kind = KindCode
		res.Text = code
	} else {
		res.Kind = KindText
	}
	return res
}

// LooksLikeCode reports whether the first meaningful line of text starts the
// way generated test sources do.
func LooksLikeCode(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") || (strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "#!/")) {
			continue
		}
		for _, prefix := range codePrefixes {
			if strings.HasPrefix(line, prefix) {
				return true
			}
		}
		return false
	}
	return false
}
