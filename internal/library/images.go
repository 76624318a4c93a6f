package library

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	"Rabscootle/internal/model"
)

// maxNameLen is the longest display name chat platforms accept for a choice.
const maxNameLen = 100

var imageNameRegex = regexp.MustCompile(`assets/emoji/(?P<id>\d+)?[-_]?(?P<name>.*?)\.(?:gif|png)`)

// ImageLibrary is the read-only set of images served by the pepe commands.
// URIs holds every configured image; Entries only those with a parseable name.
type ImageLibrary struct {
	URIs    []string
	Entries []model.Candidate
	byValue map[string]model.Candidate
}

// LoadImages reads a JSON array of image URIs from path.
func LoadImages(path string) (*ImageLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image library: %w", err)
	}
	var uris []string
	if err := json.Unmarshal(data, &uris); err != nil {
		return nil, fmt.Errorf("parse image library: %w", err)
	}
	return NewImageLibrary(uris), nil
}

// NewImageLibrary builds the library from URIs, parsing display names.
func NewImageLibrary(uris []string) *ImageLibrary {
	lib := &ImageLibrary{
		URIs:    append([]string(nil), uris...),
		Entries: make([]model.Candidate, 0, len(uris)),
		byValue: make(map[string]model.Candidate, len(uris)),
	}
	for _, uri := range lib.URIs {
		name, ok := DisplayName(uri)
		if !ok {
			continue
		}
		if _, dup := lib.byValue[uri]; dup {
			continue
		}
		c := model.Candidate{Name: name, Value: uri}
		lib.Entries = append(lib.Entries, c)
		lib.byValue[uri] = c
	}
	return lib
}

// Find returns the entry whose value is uri.
func (l *ImageLibrary) Find(uri string) (model.Candidate, bool) {
	c, ok := l.byValue[uri]
	return c, ok
}

// Len is the number of URIs, including unnamed ones.
func (l *ImageLibrary) Len() int { return len(l.URIs) }

// DisplayName derives "[id] camelName" from an image URI such as
// ".../assets/emoji/123-sad_pepe.png". The result is capped at 100 characters.
func DisplayName(uri string) (string, bool) {
	m := imageNameRegex.FindStringSubmatch(uri)
	if m == nil {
		return "", false
	}
	id := m[imageNameRegex.SubexpIndex("id")]
	prefix := ""
	if id != "" {
		prefix = "[" + id + "] "
	}
	name := []rune(Camelize(m[imageNameRegex.SubexpIndex("name")]))
	if room := maxNameLen - len([]rune(prefix)); len(name) > room {
		name = name[:max(room, 0)]
	}
	return prefix + string(name), true
}

// Camelize turns "sad-pepe_face" into "sadPepeFace". Only the first '-' and
// the first '_' become word breaks; the first character is lowercased and
// every later word start is uppercased.
func Camelize(s string) string {
	s = strings.Replace(s, "-", " ", 1)
	s = strings.Replace(s, "_", " ", 1)

	var b strings.Builder
	prevWord := false
	for i, r := range []rune(s) {
		word := isWordChar(r)
		switch {
		case i == 0 && word:
			r = unicode.ToLower(r)
		case word && !prevWord:
			r = unicode.ToUpper(r)
		}
		prevWord = word
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isWordChar(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
