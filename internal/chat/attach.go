package chat

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/vatly/vatly/internal/llm"
)

// Attachment is a file the user attached to a turn. Images travel as
// inline parts; documents are only announced to the model by name.
type Attachment struct {
	Name  string
	Image *llm.Image
	Note  string
}

// Attach classifies a file by its content. JPEG and PNG images become
// inline image parts. PDF and .docx files become a placeholder note since
// their text is not extracted. Anything else is rejected.
func Attach(name string, data []byte) (Attachment, error) {
	mime := http.DetectContentType(data)
	ext := strings.ToLower(filepath.Ext(name))

	switch {
	case mime == "image/jpeg" || mime == "image/png":
		return Attachment{Name: name, Image: &llm.Image{MIMEType: mime, Data: data}}, nil
	case mime == "application/pdf",
		mime == "application/zip" && ext == ".docx":
		return Attachment{Name: name, Note: fmt.Sprintf("[Người dùng đã đính kèm tệp: %s]", name)}, nil
	}
	return Attachment{}, fmt.Errorf("%w: %s (%s)", ErrUnsupportedAttachment, name, mime)
}

// Compose merges attachments into the text and image parts of one turn.
// Document notes follow the text after a blank line.
func Compose(text string, atts ...Attachment) (string, []llm.Image) {
	var images []llm.Image
	parts := []string{}
	if t := strings.TrimSpace(text); t != "" {
		parts = append(parts, t)
	}
	for _, a := range atts {
		if a.Image != nil {
			images = append(images, *a.Image)
		}
		if a.Note != "" {
			parts = append(parts, a.Note)
		}
	}
	return strings.Join(parts, "\n\n"), images
}
