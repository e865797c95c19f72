package reportdoc

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/reportdoc/docx"
)

func openSaved(t *testing.T, path string) *docx.Reader {
	t.Helper()
	r, err := docx.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestBuildWritesParagraphs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.docx")

	require.NoError(t, Build("A\n\nB\n\nC", out))

	r := openSaved(t, out)
	paras := r.Paragraphs()
	require.Len(t, paras, 3)
	assert.Equal(t, "A", paras[0].Text)
	assert.Equal(t, "B", paras[1].Text)
	assert.Equal(t, "C", paras[2].Text)
}

func TestBuildDropsEmptySegments(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.docx")

	require.NoError(t, Build("\n\nA\n\n\n\nB\n\n", out))

	text, err := openSaved(t, out).Text()
	require.NoError(t, err)
	assert.Equal(t, "A\n\nB", text)
}

func TestBuildDefaultFont(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.docx")

	require.NoError(t, Build("First\n\nSecond line\nwith a break", out))

	r := openSaved(t, out)
	assert.Equal(t, docx.Font{Name: "Arial", Size: 11}, r.DefaultFont())
	for _, p := range r.Paragraphs() {
		require.NotEmpty(t, p.Runs)
		for _, run := range p.Runs {
			assert.Equal(t, "Arial", run.FontName)
			assert.Equal(t, 11.0, run.FontSize)
		}
	}
}

func TestBuildKeepsLineBreaksInsideParagraph(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.docx")

	require.NoError(t, Build("line one\nline two", out))

	paras := openSaved(t, out).Paragraphs()
	require.Len(t, paras, 1)
	assert.Equal(t, "line one\nline two", paras[0].Text)
}

func TestBuildEmptyText(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.docx")

	require.NoError(t, Build("   \n\n  ", out))

	r := openSaved(t, out)
	assert.Empty(t, r.Paragraphs())
	assert.Equal(t, "Arial", r.DefaultFont().Name)
}

func TestBytesDeterministic(t *testing.T) {
	b := New("Alpha\n\nBeta").Title("Report")

	first, err := b.Bytes()
	require.NoError(t, err)
	second, err := b.Bytes()
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second))
}

func TestSaveReplacesExistingFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.docx")
	require.NoError(t, os.WriteFile(out, []byte("old contents"), 0o644))

	require.NoError(t, Build("fresh", out))

	text, err := openSaved(t, out).Text()
	require.NoError(t, err)
	assert.Equal(t, "fresh", text)

	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestSaveSameInputSameBytes(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.docx")
	b := filepath.Join(dir, "b.docx")

	require.NoError(t, Build("one\n\ntwo", a))
	require.NoError(t, Build("one\n\ntwo", b))

	da, err := os.ReadFile(a)
	require.NoError(t, err)
	db, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)
}

func TestSaveFilePermissions(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.docx")
	require.NoError(t, Build("x", out))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o644), info.Mode().Perm())
}

func TestSaveMissingDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "report.docx")

	err := Build("A", out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, out, ioErr.Path)

	_, statErr := os.Stat(out)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist))
}

func TestSaveEmptyPath(t *testing.T) {
	err := Build("A", "")
	assert.ErrorIs(t, err, ErrIO)
}

func TestSaveUnwritableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	dir := filepath.Join(t.TempDir(), "ro")
	require.NoError(t, os.Mkdir(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	err := Build("A", filepath.Join(dir, "report.docx"))
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestSaveNoOverwrite(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.docx")
	require.NoError(t, os.WriteFile(out, []byte("keep me"), 0o644))

	err := New("new text").Overwrite(false).Save(out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, fs.ErrExist)

	data, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Equal(t, "keep me", string(data))
}

func TestSaveNoOverwriteNewFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.docx")

	require.NoError(t, New("A\n\nB").Overwrite(false).Save(out))

	assert.Len(t, openSaved(t, out).Paragraphs(), 2)
}

func TestSaveSerializationError(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.docx")

	err := Build("valid\n\nbad \x01 control", out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerialization)
	assert.ErrorIs(t, err, docx.ErrInvalidText)
	assert.NotErrorIs(t, err, ErrIO)

	_, statErr := os.Stat(out)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist), "nothing should be written")
}

func TestSaveSerializationErrorKeepsExistingFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.docx")
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0o644))

	err := Build("bad \uFFFE", out)
	assert.ErrorIs(t, err, ErrSerialization)

	data, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Equal(t, "previous", string(data))
}

func TestBuilderOptions(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.docx")
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	err := New("Body").
		Font("Times New Roman").
		FontSize(12.5).
		Title("Project Report").
		Subject("Networks").
		Author("Student").
		Keywords("network", "report").
		Description("Coursework").
		CreatedAt(created).
		Save(out)
	require.NoError(t, err)

	r := openSaved(t, out)
	assert.Equal(t, docx.Font{Name: "Times New Roman", Size: 12.5}, r.DefaultFont())

	meta := r.Metadata()
	assert.Equal(t, "Project Report", meta.Title)
	assert.Equal(t, "Networks", meta.Subject)
	assert.Equal(t, "Student", meta.Creator)
	assert.Equal(t, "Coursework", meta.Description)
	assert.Equal(t, []string{"network", "report"}, meta.Keywords)
}

func TestBuilderImmutable(t *testing.T) {
	base := New("text")
	custom := base.Font("Courier New").FontSize(9).Overwrite(false)

	assert.Equal(t, DefaultFont, base.options.font.Name)
	assert.Equal(t, DefaultFontSize, base.options.font.Size)
	assert.True(t, base.options.overwrite)

	assert.Equal(t, "Courier New", custom.options.font.Name)
	assert.Equal(t, 9.0, custom.options.font.Size)
	assert.False(t, custom.options.overwrite)
}

func TestBuilderKeywordsCopied(t *testing.T) {
	kw := []string{"a", "b"}
	b := New("text").Keywords(kw...)
	kw[0] = "changed"

	assert.Equal(t, []string{"a", "b"}, b.options.keywords)

	c := b.Keywords("z")
	assert.Equal(t, []string{"a", "b"}, b.options.keywords)
	assert.Equal(t, []string{"z"}, c.options.keywords)
}

func TestBuilderInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		b    *Builder
	}{
		{"empty font", New("x").Font("  ")},
		{"zero size", New("x").FontSize(0)},
		{"negative size", New("x").FontSize(-4)},
		{"huge size", New("x").FontSize(5000)},
		{"nan size", New("x").FontSize(math.NaN())},
		{"font name with newline", New("x").Font("Ar\nial")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "report.docx")

			err := tt.b.Save(out)
			assert.ErrorIs(t, err, ErrInvalidOption)

			_, statErr := os.Stat(out)
			assert.True(t, errors.Is(statErr, fs.ErrNotExist))
		})
	}
}

func TestBuilderFirstErrorWins(t *testing.T) {
	_, err := New("x").Font("").FontSize(-1).Document()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty font name")
}

func TestBuilderSegments(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, New("A\n\nB").Segments())
}

func TestBuilderDocument(t *testing.T) {
	doc, err := New("one\n\ntwo").Font("Verdana").Document()
	require.NoError(t, err)

	assert.Equal(t, "Verdana", doc.DefaultFont().Name)
	paras := doc.Paragraphs()
	require.Len(t, paras, 2)
	for _, p := range paras {
		assert.Len(t, p.Runs(), 1)
	}
	assert.Equal(t, "two", paras[1].Text())
}

func TestWriteTo(t *testing.T) {
	var buf bytes.Buffer
	n, err := New("A\n\nB").WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	r, err := docx.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	defer r.Close()
	assert.Len(t, r.Paragraphs(), 2)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteToWriterError(t *testing.T) {
	_, err := New("A").WriteTo(failingWriter{})
	assert.ErrorIs(t, err, ErrIO)
}

func TestSaveWarnsOnExtension(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	out := filepath.Join(t.TempDir(), "report.txt")

	require.NoError(t, New("A").WithLogger(logger).Save(out))

	assert.Contains(t, logs.String(), "does not end in .docx")
	assert.Contains(t, logs.String(), "report written")
}

func TestWithNilLogger(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.docx")
	assert.NoError(t, New("A").WithLogger(nil).Save(out))
}

func TestMust(t *testing.T) {
	assert.Equal(t, 3, Must(3, nil))
	assert.Panics(t, func() { Must(0, errors.New("boom")) })
}

func TestErrorMessages(t *testing.T) {
	ioErr := &IOError{Op: "create", Path: "/x/y.docx", Err: fs.ErrPermission}
	assert.True(t, strings.Contains(ioErr.Error(), "/x/y.docx"))

	serErr := newSerializationError(&docx.EncodeError{Part: "word/document.xml", Err: errors.New("bad")})
	assert.Equal(t, "word/document.xml", serErr.Part)
	assert.ErrorIs(t, serErr, ErrSerialization)
}
