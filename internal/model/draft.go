// Package model 定义领域模型
// 本文件定义表单草稿模型，对应前端一次"打开表单 -> 编辑 -> 提交"的完整生命周期
package model

import "time"

// DraftStatus 草稿状态
type DraftStatus string

const (
	DraftEditing   DraftStatus = "editing"   // 编辑中
	DraftSubmitted DraftStatus = "submitted" // 已提交，仅保留照片码
)

// Draft 表单草稿
type Draft struct {
	ID     string       `json:"id"`
	Status DraftStatus  `json:"status"`
	Record Registration `json:"record"`

	// Submitting 提交进行中标记，置位期间再次提交为空操作
	Submitting      bool      `json:"submitting"`
	SubmitStartedAt time.Time `json:"submitStartedAt,omitempty"`

	// SubmitError 最近一次提交失败的横幅提示，成功或重新提交时清空
	SubmitError string `json:"submitError,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsSubmitted 是否已提交
func (d *Draft) IsSubmitted() bool {
	return d.Status == DraftSubmitted
}

// SubmitPending 提交标记是否仍然有效
// 超过 staleAfter 的标记视为进程异常遗留，不再阻塞提交
func (d *Draft) SubmitPending(now time.Time, staleAfter time.Duration) bool {
	if !d.Submitting {
		return false
	}
	if staleAfter <= 0 {
		return true
	}
	return now.Sub(d.SubmitStartedAt) < staleAfter
}

// MarkSubmitted 用确认视图替换草稿，只保留已提交到外部通道的照片码
// 提交进行中仍允许编辑，当前记录的照片码可能已经变化，因此由调用方传入
func (d *Draft) MarkSubmitted(now time.Time, photoCode string) {
	d.Status = DraftSubmitted
	d.Record = Registration{PhotoCode: photoCode}
	d.Submitting = false
	d.SubmitStartedAt = time.Time{}
	d.SubmitError = ""
	d.UpdatedAt = now
}

// Clone 深拷贝草稿
func (d *Draft) Clone() *Draft {
	cp := *d
	cp.Record = d.Record.Clone()
	return &cp
}
