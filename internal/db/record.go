package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record 提供所有业务模型共用的主键与时间戳。
// 主键使用 UUID 字符串，保持与托管端导出数据的 ID 形态一致。
type Record struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate 在缺省时生成 UUID 主键，允许调用方预先指定 ID。
func (r *Record) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
