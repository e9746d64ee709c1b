package service

import (
	"context"
	"io"
	"testing"

	"github.com/precihole/SolidworkConnect/internal/swconnect/entity"
	"github.com/precihole/SolidworkConnect/internal/swconnect/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "A-B-C", SanitizeFileName(`A/B\C`))
	assert.Equal(t, "Bolt M8-20", SanitizeFileName(`Bolt M8:*?20`))
	assert.Equal(t, "plain name", SanitizeFileName("plain name"))
	assert.Equal(t, `PMT-1 Pipe 1-2-.pdf`, DrawingFileName("PMT-1", `Pipe 1/2"`))
}

func TestDecodeFileContent(t *testing.T) {
	data, err := DecodeFileContent(b64("%PDF-1.7"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))

	data, err = DecodeFileContent("data:application/pdf;base64," + b64("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	data, err = DecodeFileContent("aGVs\nbG8")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = DecodeFileContent("not base64 !!")
	assert.ErrorIs(t, err, ErrInvalidFileContent)

	_, err = DecodeFileContent("")
	assert.ErrorIs(t, err, ErrInvalidFileContent)
}

func TestReplaceItemDrawing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	testutil.SeedItem(t, env.db, "PMT-7001", `Valve 1/2"`, "R1")

	// 两份旧 PDF 和一份非 PDF 附件
	for _, name := range []string{"old-a.pdf", "OLD-B.PDF", "notes.txt"} {
		_, err := env.svc.File.Attach(ctx, testActor, AttachRequest{
			FileName: name, Content: []byte(name), Doctype: entity.DoctypeItem, DocName: "PMT-7001",
		})
		require.NoError(t, err)
	}

	res, err := env.svc.File.ReplaceItemDrawing(ctx, testActor, "PMT-7001", b64("%PDF new"))
	require.NoError(t, err)
	assert.Equal(t, "success", res.Status)
	assert.Equal(t, 2, res.DeletedOldFiles)
	assert.Equal(t, "PMT-7001 Valve 1-2-.pdf", res.FileName)

	files, err := env.svc.File.ListAttached(ctx, entity.DoctypeItem, "PMT-7001")
	require.NoError(t, err)
	require.Len(t, files, 2)

	var pdfs []entity.File
	for _, f := range files {
		if f.FileName != "notes.txt" {
			pdfs = append(pdfs, f)
		}
	}
	require.Len(t, pdfs, 1)
	assert.Equal(t, res.FileURL, pdfs[0].FileURL)
	assert.False(t, pdfs[0].IsPrivate)

	_, rc, err := env.svc.File.Open(ctx, pdfs[0].ID)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF new", string(body))

	// 再替换一次只删除一份
	res, err = env.svc.File.ReplaceItemDrawing(ctx, testActor, "PMT-7001", b64("%PDF newer"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.DeletedOldFiles)

	_, _, err = env.svc.File.Open(ctx, pdfs[0].ID)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestReplaceItemDrawing_MissingItemUsesCode(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.svc.File.ReplaceItemDrawing(context.Background(), testActor, "PMT-GHOST", b64("x"))
	require.NoError(t, err)
	assert.Equal(t, "PMT-GHOST PMT-GHOST.pdf", res.FileName)
	assert.Equal(t, 0, res.DeletedOldFiles)
}

func TestReplaceItemDrawing_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.File.ReplaceItemDrawing(ctx, testActor, "", b64("x"))
	assert.ErrorIs(t, err, ErrItemCodeRequired)

	_, err = env.svc.File.ReplaceItemDrawing(ctx, testActor, "PMT-1", "%%%")
	assert.ErrorIs(t, err, ErrInvalidFileContent)
}
