package user

type User struct {
	ID       int64  `gorm:"primaryKey"`
	Username string `gorm:"size:50;not null;uniqueIndex"`
	Email    string `gorm:"size:100;not null;uniqueIndex"`
	IsAdmin  bool   `gorm:"not null;default:false"`
	GroupID  *int64 `gorm:"index"`
}

// Identity is the caller resolved once per request from the user id header.
type Identity struct {
	ID       int64
	Username string
	GroupID  *int64
	IsAdmin  bool
}

func (u User) Identity() Identity {
	return Identity{
		ID:       u.ID,
		Username: u.Username,
		GroupID:  u.GroupID,
		IsAdmin:  u.IsAdmin,
	}
}

func (i Identity) InGroup(groupID int64) bool {
	return i.GroupID != nil && *i.GroupID == groupID
}

func (i Identity) CanAccessGroup(groupID int64) bool {
	return i.IsAdmin || i.InGroup(groupID)
}
