package web

import (
	"github.com/edusphere/fyptrack/internal/doctype/internal/domain"
)

type DocumentType struct {
	ID               int64  `json:"id,omitempty"`
	Code             string `json:"code,omitempty"`
	Title            string `json:"title,omitempty"`
	WeightSupervisor int64  `json:"weightSupervisor"`
	WeightCommittee  int64  `json:"weightCommittee"`
	DisplayOrder     int64  `json:"displayOrder"`
	IsActive         bool   `json:"isActive"`
	Utime            int64  `json:"utime,omitempty"`
}

func (d DocumentType) toDomain() domain.DocumentType {
	return domain.DocumentType{
		ID:               d.ID,
		Code:             d.Code,
		Title:            d.Title,
		WeightSupervisor: d.WeightSupervisor,
		WeightCommittee:  d.WeightCommittee,
		DisplayOrder:     d.DisplayOrder,
	}
}

func newDocumentType(dt domain.DocumentType) DocumentType {
	return DocumentType{
		ID:               dt.ID,
		Code:             dt.Code,
		Title:            dt.Title,
		WeightSupervisor: dt.WeightSupervisor,
		WeightCommittee:  dt.WeightCommittee,
		DisplayOrder:     dt.DisplayOrder,
		IsActive:         dt.IsActive,
		Utime:            dt.Utime.UnixMilli(),
	}
}

type SaveReq struct {
	DocumentType DocumentType `json:"documentType"`
}

type IDReq struct {
	ID int64 `json:"id"`
}

type Page struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type ListResp struct {
	Total int64          `json:"total"`
	List  []DocumentType `json:"list"`
}
