package models

// CommunityPost is one entry in the community feed
type CommunityPost struct {
	ID      string `json:"id"`
	Author  string `json:"author" example:"Vivek Vardhan"`
	Initial string `json:"initial" example:"V"` // Avatar letter
	Time    string `json:"time" example:"just now"`
	Text    string `json:"text"`
}
