package model

type Language struct {
	Code       string `gorm:"type:varchar(8);primaryKey" json:"code"`
	Name       string `gorm:"not null" json:"name"`
	NativeName string `json:"native_name"`
}

func (Language) TableName() string {
	return "languages"
}
