package models

// Page is a slug-addressed content page. The slug also names the page's
// media subdirectory under the media root.
type Page struct {
	ID       uint   `gorm:"primaryKey"`
	Title    string `gorm:"index"`
	Slug     string `gorm:"uniqueIndex;not null"`
	Content  string `gorm:"type:text"`
	IsPublic bool   `gorm:"not null;default:true"`
}
