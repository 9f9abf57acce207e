package requests

type CreateForumPost struct {
	Title   string   `json:"title" validate:"required,max=300"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}

type UpdateForumPost struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type CreateForumReply struct {
	Content string `json:"content" validate:"required"`
}
