package models

import "time"

// User represents a registered user. The password hash never leaves the server.
type User struct {
	ID          string     `json:"_id"`
	LoginName   string     `json:"login_name"`
	Password    string     `json:"-"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Location    string     `json:"location,omitempty"`
	Description string     `json:"description,omitempty"`
	Occupation  string     `json:"occupation,omitempty"`
	Address     string     `json:"address,omitempty"`
	Birthday    *time.Time `json:"birthday,omitempty"`
}

// DisplayName joins first and last name
func (u *User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Summary returns the login view of the user
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		LoginName: u.LoginName,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// Author returns the name-only view used on comments
func (u *User) Author() Author {
	return Author{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}

// UserSummary is returned by login and registration
type UserSummary struct {
	ID        string `json:"_id"`
	LoginName string `json:"login_name,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Author identifies who wrote a comment
type Author struct {
	ID        string `json:"_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Photo represents an uploaded image owned by a user
type Photo struct {
	ID         string    `json:"_id"`
	Filename   string    `json:"filename"`
	UploadTime time.Time `json:"upload_time"`
	UserID     string    `json:"user_id"`
}

// PhotoView is a photo with its public URL
type PhotoView struct {
	Photo
	URL string `json:"url"`
}

// Comment represents a comment left on a photo
type Comment struct {
	ID       string    `json:"_id"`
	Text     string    `json:"comment"`
	DateTime time.Time `json:"date_time"`
	UserID   string    `json:"user_id"`
	PhotoID  string    `json:"photo_id"`
}

// CommentView is a comment with its author resolved
type CommentView struct {
	ID       string    `json:"_id"`
	Text     string    `json:"comment"`
	DateTime time.Time `json:"date_time"`
	PhotoID  string    `json:"photo_id"`
	User     Author    `json:"user"`
}

// PhotoWithComments is one entry of a user's gallery
type PhotoWithComments struct {
	PhotoView
	Comments []CommentView `json:"comments"`
}

// UserGallery is the aggregate of a user and all of their photos with comments
type UserGallery struct {
	User   Author              `json:"user"`
	Photos []PhotoWithComments `json:"photos"`
}
