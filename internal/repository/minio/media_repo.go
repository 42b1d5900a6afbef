package minio

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/DRSN-tech/semantic-search/internal/cfg"
	"github.com/DRSN-tech/semantic-search/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// MediaRepo хранит архив исходных медиа каталога поверх MinIO.
// Архив позволяет переиндексировать коллекцию без повторного
// скачивания картинок с внешних площадок.
type MediaRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewMediaRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *MediaRepo {
	return &MediaRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Archive кладёт байты медиа под ключом точки и возвращает ключ объекта.
func (m *MediaRepo) Archive(ctx context.Context, pointID uint64, data []byte) (string, error) {
	key := m.objectKey(pointID)
	contentType := http.DetectContentType(data)

	info, err := m.mc.PutObject(ctx, m.cfg.BucketName, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Remove удаляет объект архива по ключу.
func (m *MediaRepo) Remove(ctx context.Context, key string) error {
	if err := m.mc.RemoveObject(ctx, m.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// objectKey возвращает ключ объекта для точки коллекции.
func (m *MediaRepo) objectKey(pointID uint64) string {
	return fmt.Sprintf("media/%d", pointID)
}
