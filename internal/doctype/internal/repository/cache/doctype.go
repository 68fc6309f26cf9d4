package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/edusphere/fyptrack/internal/doctype/internal/domain"
	"github.com/pkg/errors"
)

const docTypeExpiration = 24 * time.Hour

var (
	ErrDocTypeNotFound = errors.New("缓存中没有该文档类型")
)

type DocTypeCache interface {
	SetDocType(ctx context.Context, dt domain.DocumentType) error
	GetDocType(ctx context.Context, id int64) (domain.DocumentType, error)
}

type docTypeCache struct {
	ec ecache.Cache
}

func NewDocTypeCache(ec ecache.Cache) DocTypeCache {
	return &docTypeCache{
		ec: &ecache.NamespaceCache{
			C:         ec,
			Namespace: "doctype:",
		},
	}
}

func (c *docTypeCache) SetDocType(ctx context.Context, dt domain.DocumentType) error {
	data, err := json.Marshal(dt)
	if err != nil {
		return errors.Wrap(err, "序列化文档类型失败")
	}
	return c.ec.Set(ctx, c.key(dt.ID), string(data), docTypeExpiration)
}

func (c *docTypeCache) GetDocType(ctx context.Context, id int64) (domain.DocumentType, error) {
	val := c.ec.Get(ctx, c.key(id))
	if val.KeyNotFound() {
		return domain.DocumentType{}, ErrDocTypeNotFound
	}
	if val.Err != nil {
		return domain.DocumentType{}, errors.Wrap(val.Err, "查询文档类型缓存出错")
	}
	var dt domain.DocumentType
	err := json.Unmarshal([]byte(val.Val.(string)), &dt)
	if err != nil {
		return domain.DocumentType{}, errors.Wrap(err, "反序列化文档类型失败")
	}
	return dt, nil
}

func (c *docTypeCache) key(id int64) string {
	return fmt.Sprintf("id:%d", id)
}
