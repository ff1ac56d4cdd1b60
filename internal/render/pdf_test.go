package render

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atsopt/internal/domain"
)

const fakeSoffice = `#!/bin/sh
while [ $# -gt 0 ]; do
  case "$1" in
    --outdir) shift; out="$1" ;;
    *) src="$1" ;;
  esac
  shift
done
name=$(basename "$src" .docx)
printf '%%PDF-1.4\n' > "$out/$name.pdf"
`

func fakeConverter(t *testing.T, script string) *Converter {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script converter")
	}
	path := filepath.Join(t.TempDir(), "soffice")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return NewConverter(path, 10*time.Second)
}

func TestToPDFRenamesOutput(t *testing.T) {
	c := fakeConverter(t, fakeSoffice)
	dir := t.TempDir()
	docx := filepath.Join(dir, "resume.docx")
	require.NoError(t, os.WriteFile(docx, []byte("x"), 0o644))

	pdfPath := filepath.Join(dir, "out", "resume_ATS_Optimized.pdf")
	require.NoError(t, c.ToPDF(context.Background(), docx, pdfPath))

	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4\n", string(data))
}

func TestToPDFFailure(t *testing.T) {
	c := fakeConverter(t, "#!/bin/sh\necho 'no display' >&2\nexit 3\n")
	dir := t.TempDir()
	err := c.ToPDF(context.Background(), filepath.Join(dir, "r.docx"), filepath.Join(dir, "r.pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExternalService)
	assert.Contains(t, err.Error(), "no display")
}

func TestToPDFMissingCommand(t *testing.T) {
	c := NewConverter(filepath.Join(t.TempDir(), "does-not-exist"), time.Second)
	dir := t.TempDir()
	err := c.ToPDF(context.Background(), filepath.Join(dir, "r.docx"), filepath.Join(dir, "r.pdf"))
	assert.ErrorIs(t, err, domain.ErrExternalService)
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "job_description.txt")
	require.NoError(t, os.WriteFile(txt, []byte("Python developer"), 0o644))

	got, err := ReadText(txt)
	require.NoError(t, err)
	assert.Equal(t, "Python developer", got)

	_, err = ReadText(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, domain.ErrInputNotFound)

	bogus := filepath.Join(dir, "jd.pdf")
	require.NoError(t, os.WriteFile(bogus, []byte("plain text, not a pdf"), 0o644))
	_, err = ReadText(bogus)
	assert.ErrorIs(t, err, domain.ErrFormat)
}
