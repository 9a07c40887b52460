package entity

import (
	"time"
)

// BlogPost is site content, stored as-is.
type BlogPost struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Author    Person    `bson:"author" json:"author"`
	Tags      []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
