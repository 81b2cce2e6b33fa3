package dto

import (
	"github.com/Jaxki97/lussoautostudio/shared/constant"
	"github.com/Jaxki97/lussoautostudio/shared/model"
)

type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = model.CreatedAt.UTC().Format(constant.DateFormat)
	m.ModifiedAt = model.ModifiedAt.UTC().Format(constant.DateFormat)
}
