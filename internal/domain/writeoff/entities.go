package writeoff

import (
	"time"
)

// User is the account a write-off belongs to. The table predates this
// service; only the columns the write-off feature touches are mapped.
type User struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	FirstName string    `gorm:"column:firstName;size:64;not null" json:"first_name"`
	LastName  string    `gorm:"column:lastName;size:64" json:"last_name"`
	Active    bool      `gorm:"column:active;not null" json:"active"`
	CreatedAt time.Time `gorm:"column:createdAt;type:datetime(6);not null;autoCreateTime:micro" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updatedAt;type:datetime(6);not null;autoUpdateTime:micro" json:"updated_at"`
	Version   int       `gorm:"column:version;not null" json:"-"`
}

func (User) TableName() string { return "user" }

// WriteOff forgives a user's outstanding balance. Amount is in cents.
// PdfID points at the generated receipt once one exists; the receipt cannot
// be deleted while still referenced here.
type WriteOff struct {
	ID        uint         `gorm:"primaryKey;column:id" json:"id"`
	ToID      uint         `gorm:"column:toId;not null" json:"to_id"`
	To        User         `gorm:"foreignKey:ToID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Amount    int64        `gorm:"column:amount;not null" json:"amount"`
	PdfID     *uint        `gorm:"column:pdfId" json:"pdf_id,omitempty"`
	Pdf       *WriteOffPdf `gorm:"foreignKey:PdfID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt time.Time    `gorm:"column:createdAt;type:datetime(6);not null;autoCreateTime:micro" json:"created_at"`
	UpdatedAt time.Time    `gorm:"column:updatedAt;type:datetime(6);not null;autoUpdateTime:micro" json:"updated_at"`
	Version   int          `gorm:"column:version;not null" json:"-"`
}

func (WriteOff) TableName() string { return "write_off" }

// WriteOffPdf is one generated receipt document. Rows are immutable after
// creation apart from updatedAt/version bookkeeping and are removed only by
// cascade when the owning user goes away.
type WriteOffPdf struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"id"`
	Hash         string    `gorm:"column:hash;size:255;not null" json:"hash"`
	DownloadName string    `gorm:"column:downloadName;size:255;not null" json:"download_name"`
	Location     string    `gorm:"column:location;size:255;not null" json:"location"`
	CreatedByID  uint      `gorm:"column:createdById;not null" json:"created_by_id"`
	CreatedBy    User      `gorm:"foreignKey:CreatedByID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time `gorm:"column:createdAt;type:datetime(6);not null;autoCreateTime:micro" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updatedAt;type:datetime(6);not null;autoUpdateTime:micro" json:"updated_at"`
	Version      int       `gorm:"column:version;not null" json:"-"`
}

func (WriteOffPdf) TableName() string { return "write_off_pdf" }
