package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	doc := &Document{Filename: "De_Vat_Ly_Tong_Hop_1.doc", MIMEType: DocMIMEType, Data: []byte("hello")}

	path, err := Save(dir, doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, doc.Filename), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = Save(dir, nil)
	assert.Error(t, err)
}
