package db

// RoleAdmin 默认管理员角色
const RoleAdmin = "admin"

// Account 表示持久化的账户。密码字段只保存摘要。
type Account struct {
	UserID    uint   `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Username  string `gorm:"column:username;type:varchar(255);uniqueIndex;not null" json:"username"`
	Password  string `gorm:"column:password;type:varchar(128);not null" json:"-"`
	Role      string `gorm:"column:role;type:varchar(50);index;not null" json:"role"`
	StartTime string `gorm:"column:start_time;type:varchar(19);not null" json:"start_time"`
	EndTime   string `gorm:"column:end_time;type:varchar(19);not null" json:"end_time"`
}

// TableName 指定表名。
func (Account) TableName() string {
	return "account"
}

// AccountUpdates 账户更新字段
type AccountUpdates struct {
	Password  *string
	StartTime *string
	EndTime   *string
}

// ToMap 转换为 GORM 更新 map
func (u AccountUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Password != nil {
		updates["password"] = *u.Password
	}
	if u.StartTime != nil {
		updates["start_time"] = *u.StartTime
	}
	if u.EndTime != nil {
		updates["end_time"] = *u.EndTime
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u AccountUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
