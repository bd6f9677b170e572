package model

import (
	"time"

	"github.com/google/uuid"
)

// GuardianLinkModel is the parent↔student relationship. Verification is an
// out-of-band step; only verified links grant a parent any visibility.
type GuardianLinkModel struct {
	GuardianLinkID       uuid.UUID `gorm:"column:guardian_link_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"guardian_link_id"`
	GuardianLinkSchoolID uuid.UUID `gorm:"column:guardian_link_school_id;type:uuid;not null" json:"guardian_link_school_id"`

	GuardianLinkParentID  uuid.UUID `gorm:"column:guardian_link_parent_id;type:uuid;not null;index:idx_guardian_links_parent;uniqueIndex:uq_guardian_links_pair,priority:1" json:"guardian_link_parent_id"`
	GuardianLinkStudentID uuid.UUID `gorm:"column:guardian_link_student_id;type:uuid;not null;index:idx_guardian_links_student;uniqueIndex:uq_guardian_links_pair,priority:2" json:"guardian_link_student_id"`

	GuardianLinkIsVerified bool       `gorm:"column:guardian_link_is_verified;not null;default:false" json:"guardian_link_is_verified"`
	GuardianLinkVerifiedAt *time.Time `gorm:"column:guardian_link_verified_at;type:timestamptz" json:"guardian_link_verified_at,omitempty"`

	GuardianLinkCreatedAt time.Time `gorm:"column:guardian_link_created_at;not null;autoCreateTime" json:"guardian_link_created_at"`
}

func (GuardianLinkModel) TableName() string { return "guardian_links" }
