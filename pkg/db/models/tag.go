package models

// Tagname is the canonical identity of a label. Rows are created on first
// use and intentionally never pruned, so a tagname can be reused cheaply.
type Tagname struct {
	Tagname string `gorm:"primaryKey;size:50;column:tagname;check:length(tagname) <= 50"`

	// Relationships
	Tags []Tag `gorm:"foreignKey:Tagname;references:Tagname;constraint:OnDelete:CASCADE"`
}

// Tag associates a tagname with a single paper. The composite primary key
// keeps a label unique per paper.
type Tag struct {
	Pid     int    `gorm:"primaryKey;autoIncrement:false;column:pid"`
	Tagname string `gorm:"primaryKey;size:50;column:tagname"`
}

func (Tagname) TableName() string {
	return "tagnames"
}
