package restmachinery

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// File is a file to be uploaded as one part of a multipart request. Its
// content is held in memory so that the request can be re-encoded if it must
// be retried.
type File struct {
	// Name is the file name reported to the API server.
	Name string
	// ContentType is the MIME type of the file. When empty, it is derived from
	// the file name's extension or, failing that, sniffed from the content.
	ContentType string
	// Content is the raw file content.
	Content []byte
}

// NewFileFromPath reads the file at the given path into a File.
func NewFileFromPath(path string) (*File, error) {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading file %s", path)
	}
	return &File{
		Name:    filepath.Base(path),
		Content: content,
	}, nil
}

func (f *File) contentType() string {
	if f.ContentType != "" {
		return f.ContentType
	}
	if byExt := mime.TypeByExtension(filepath.Ext(f.Name)); byExt != "" {
		return byExt
	}
	return http.DetectContentType(f.Content)
}

// MultipartForm is a request body to be sent as multipart/form-data. Each key
// becomes one part. *File values become file parts; nil values are omitted;
// everything else is rendered as a string part.
type MultipartForm map[string]interface{}

func (m MultipartForm) fieldNames() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encode writes the form and returns the encoded body along with the
// Content-Type header (including boundary) that must accompany it.
func (m MultipartForm) encode() ([]byte, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, name := range m.fieldNames() {
		switch v := m[name].(type) {
		case nil:
			continue
		case *File:
			if v == nil {
				continue
			}
			h := textproto.MIMEHeader{}
			h.Set(
				"Content-Disposition",
				fmt.Sprintf(
					`form-data; name="%s"; filename="%s"`,
					quoteEscaper.Replace(name),
					quoteEscaper.Replace(v.Name),
				),
			)
			h.Set("Content-Type", v.contentType())
			part, err := w.CreatePart(h)
			if err != nil {
				return nil, "", errors.Wrapf(err, "error creating part %q", name)
			}
			if _, err = part.Write(v.Content); err != nil {
				return nil, "", errors.Wrapf(err, "error writing part %q", name)
			}
		default:
			if err := w.WriteField(name, formValue(v)); err != nil {
				return nil, "", errors.Wrapf(err, "error writing field %q", name)
			}
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "error closing multipart writer")
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func formValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case []string:
		return strings.Join(val, ",")
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
