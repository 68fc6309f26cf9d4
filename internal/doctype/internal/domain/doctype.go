package domain

import "time"

// DocumentType 一类交付文档（开题报告、终稿等），
// 指导教师与评审委员会的打分权重固定在类型上
type DocumentType struct {
	ID               int64
	Code             string
	Title            string
	WeightSupervisor int64
	WeightCommittee  int64
	DisplayOrder     int64
	IsActive         bool
	Ctime            time.Time
	Utime            time.Time
}

// WeightsValid 权重均在 [0,100] 且相加恰为 100
func (d DocumentType) WeightsValid() bool {
	if d.WeightSupervisor < 0 || d.WeightSupervisor > 100 {
		return false
	}
	if d.WeightCommittee < 0 || d.WeightCommittee > 100 {
		return false
	}
	return d.WeightSupervisor+d.WeightCommittee == 100
}
