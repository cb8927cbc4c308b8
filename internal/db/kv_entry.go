package db

import "gorm.io/gorm"

// KVEntry 存储一条序列化后的键值记录，对应浏览器本地存储中的一个键。
type KVEntry struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value []byte `gorm:"type:blob"`
}

// TableName 自定义表名以保持命名一致。
func (KVEntry) TableName() string {
	return "kv_entries"
}
