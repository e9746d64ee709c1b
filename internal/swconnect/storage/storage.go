package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"regexp"
	"strings"
)

// ErrObjectNotFound 存储中不存在该对象
var ErrObjectNotFound = errors.New("object not found")

// Store 附件内容存储
type Store interface {
	// Put 写入对象，size 未知时传 -1
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Get 读取对象，调用方负责关闭
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete 删除对象，对象不存在时不报错
	Delete(ctx context.Context, key string) error
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ObjectKey 生成存储键 <doctype>/<记录名>/<id>-<文件名>
func ObjectKey(doctype, recordName, id, fileName string) string {
	return path.Join(
		slug(doctype),
		slug(recordName),
		id+"-"+slug(fileName),
	)
}

func slug(s string) string {
	s = unsafeKeyChars.ReplaceAllString(strings.TrimSpace(s), "_")
	s = strings.Trim(s, "_.")
	if s == "" {
		return "_"
	}
	return s
}
