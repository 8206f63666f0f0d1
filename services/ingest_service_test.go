package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-cms/cache"
	"inkwell-cms/converter"
	"inkwell-cms/logger"
	"inkwell-cms/models"
	"inkwell-cms/staging"
	"inkwell-cms/testutils"
)

type ingestFixture struct {
	root     string
	previews *cache.MemoryPreviewStore
	service  IngestService
}

func newIngestFixture(t *testing.T) *ingestFixture {
	t.Helper()
	root := t.TempDir()
	previews := cache.NewMemoryPreviewStore(time.Minute)
	stager := staging.New(root, 1<<20, logger.Discard())
	svc := NewIngestService(stager, converter.NewRegistry(), converter.NewSanitizer(), previews, logger.Discard())
	return &ingestFixture{root: root, previews: previews, service: svc}
}

func (f *ingestFixture) assertNothingStaged(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(f.root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadPDF(t *testing.T) {
	f := newIngestFixture(t)
	writer := testutils.Writer(1)

	res, err := f.service.Upload(context.Background(), writer, bytes.NewReader(testutils.PDF("Hello", "")), "Report.PDF")
	require.NoError(t, err)

	html := strings.Join(strings.Fields(res.HTML), "")
	assert.Contains(t, html, `<div class="pdf-page" data-page="1"><p>Hello</p></div>`)
	assert.Contains(t, html, `<div class="pdf-page" data-page="2"><p></p></div>`)
	assert.NotEmpty(t, res.UploadID)

	preview, err := f.previews.Get(context.Background(), res.UploadID)
	require.NoError(t, err)
	assert.Equal(t, writer.UserID, preview.OwnerID)
	assert.Equal(t, res.HTML, preview.HTML)

	f.assertNothingStaged(t)
}

func TestUploadDOCX(t *testing.T) {
	f := newIngestFixture(t)
	body := testutils.Paragraph("Heading1", "Intro") + testutils.Paragraph("", "Body text")

	res, err := f.service.Upload(context.Background(), testutils.Writer(1), bytes.NewReader(testutils.DOCX(body)), "notes.docx")
	require.NoError(t, err)
	assert.Contains(t, res.HTML, "<h1>Intro</h1>")
	assert.Contains(t, res.HTML, "<p>Body text</p>")

	f.assertNothingStaged(t)
}

func TestUploadCorruptDocumentReleasesStagedFile(t *testing.T) {
	f := newIngestFixture(t)

	_, err := f.service.Upload(context.Background(), testutils.Writer(1), strings.NewReader("not a pdf at all"), "broken.pdf")
	assert.ErrorIs(t, err, models.ErrConversion)

	f.assertNothingStaged(t)
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	f := newIngestFixture(t)

	_, err := f.service.Upload(context.Background(), testutils.Writer(1), strings.NewReader("MZ"), "setup.exe")
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Equal(t, "file type not allowed", err.Error())

	f.assertNothingStaged(t)
}

func TestUploadRequiresWriter(t *testing.T) {
	f := newIngestFixture(t)

	_, err := f.service.Upload(context.Background(), testutils.Admin(2), bytes.NewReader(testutils.PDF("x")), "a.pdf")
	assert.ErrorIs(t, err, models.ErrForbidden)

	f.assertNothingStaged(t)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestUploadReadFailureIsIO(t *testing.T) {
	f := newIngestFixture(t)

	_, err := f.service.Upload(context.Background(), testutils.Writer(1), failingReader{}, "a.pdf")
	assert.ErrorIs(t, err, models.ErrIO)

	f.assertNothingStaged(t)
}
