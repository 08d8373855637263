package persistent

import (
	"media-feed/internal/entity"
	"media-feed/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:        m.ID,
		Caption:   m.Caption,
		URL:       m.URL,
		FileType:  entity.FileType(m.FileType),
		FileName:  m.FileName,
		CreatedAt: m.CreatedAt,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:        e.ID,
		Caption:   e.Caption,
		URL:       e.URL,
		FileType:  string(e.FileType),
		FileName:  e.FileName,
		CreatedAt: e.CreatedAt,
	}
}
