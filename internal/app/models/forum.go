package models

type ForumPost struct {
	ID               string   `json:"id" bson:"_id,omitempty"`
	AuthorID         string   `json:"author_id" bson:"author_id"`
	Title            string   `json:"title" bson:"title"`
	Content          string   `json:"content" bson:"content"`
	Tags             []string `json:"tags,omitempty" bson:"tags,omitempty"`
	AttachmentObject string   `json:"-" bson:"attachment_object,omitempty"`
	VoterIDs         []string `json:"-" bson:"voter_ids,omitempty"`
	VoteCount        int      `json:"vote_count" bson:"vote_count"`
	ReplyCount       int      `json:"reply_count" bson:"reply_count"`
	TimeModel        `bson:",inline"`
}

type ForumReply struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	PostID    string `json:"post_id" bson:"post_id"`
	AuthorID  string `json:"author_id" bson:"author_id"`
	Content   string `json:"content" bson:"content"`
	TimeModel `bson:",inline"`
}
